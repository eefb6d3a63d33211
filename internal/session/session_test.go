package session

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/blackmouth-booking/internal/booking"
	"github.com/iliyamo/blackmouth-booking/internal/cart"
	"github.com/iliyamo/blackmouth-booking/internal/catalog"
	"github.com/iliyamo/blackmouth-booking/internal/logger"
	"github.com/iliyamo/blackmouth-booking/internal/model"
)

var defaultSlots = []string{"19:00", "19:30", "20:00", "21:00", "21:30", "22:00"}

// fakeSlots answers per party size.  A gate blocks the answer until closed.
type fakeSlots struct {
	gates   map[int]chan struct{}
	replies map[int][]string
}

func (f *fakeSlots) Suggest(_ context.Context, _ time.Time, party int) []string {
	if g, ok := f.gates[party]; ok {
		<-g
	}
	if r, ok := f.replies[party]; ok {
		return r
	}
	return defaultSlots
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen []model.Confirmation
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, _ string, c model.Confirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen = append(n.seen, c)
	return nil
}

func clock() time.Time { return time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC) }

func newManager(t *testing.T, sl SlotSuggester, n Notifier) *Manager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if sl == nil {
		sl = &fakeSlots{}
	}
	return NewManager(ctx, Options{
		Catalog:  catalog.Default(),
		Slots:    sl,
		Notifier: n,
		TTL:      time.Hour,
		Now:      clock,
		Logger:   logger.Nop(),
	})
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func TestCartThroughSession(t *testing.T) {
	s := newManager(t, nil, nil).Create()
	if _, err := s.AddItem("PEPPERONI CLÁSICA"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddItem("SALMÓN CLÁSICA"); err != nil {
		t.Fatal(err)
	}
	v, err := s.AddItem("PEPPERONI CLÁSICA")
	if err != nil {
		t.Fatal(err)
	}
	if v.Totals.Items != 3 || !v.Totals.Cost.Equal(decimal.RequireFromString("518")) {
		t.Fatalf("unexpected totals %+v", v.Totals)
	}
	if v.Lines[0].Name != "SALMÓN CLÁSICA" {
		t.Errorf("lines must follow catalog order, got %v", v.Lines)
	}
	if _, err := s.AddItem("CALZONE"); !errors.Is(err, cart.ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if sum := s.Summary(); sum.Items != 3 {
		t.Errorf("summary must mirror the cart, got %d", sum.Items)
	}
	if v := s.ClearCart(); v.Totals.Items != 0 || !v.Totals.Cost.IsZero() {
		t.Fatalf("expected empty cart, got %+v", v.Totals)
	}
}

func TestAddFiltered(t *testing.T) {
	s := newManager(t, nil, nil).Create()
	n, v, err := s.AddFiltered(catalog.FilterState{Size: "individual", Ingredient: "jamón"})
	if err != nil || n != 1 || v.Totals.Items != 1 {
		t.Fatalf("expected one item added, got %d (%+v)", n, v.Totals)
	}
	if v.Lines[0].Name != "JAMÓN SERRANO INDIVIDUAL" {
		t.Errorf("unexpected line %v", v.Lines[0])
	}
	for _, f := range []catalog.FilterState{{Size: "xl"}, {Ingredient: "anchoa"}} {
		n, v, err := s.AddFiltered(f)
		if !errors.Is(err, catalog.ErrUnknownFilter) || n != 0 || v.Totals.Items != 1 {
			t.Errorf("%+v: expected ErrUnknownFilter and an untouched cart, got %v %d %+v", f, err, n, v.Totals)
		}
	}
}

func TestReservationFlow(t *testing.T) {
	notes := &recordingNotifier{}
	s := newManager(t, nil, notes).Create()

	if _, err := s.UpdateDraft(model.KindReservation, booking.Patch{
		Name: str("Ana"), PartySize: num(4), Date: str("2026-10-18"), Email: str("a@b.com"),
	}); err != nil {
		t.Fatal(err)
	}
	s.Wait()
	v, _ := s.Workflow(model.KindReservation)
	if !reflect.DeepEqual(v.Slots, defaultSlots) || v.Draft.Time != "19:00" {
		t.Fatalf("expected slots with first preselected, got %v / %q", v.Slots, v.Draft.Time)
	}

	if _, err := s.Submit(model.KindReservation); err != nil {
		t.Fatal(err)
	}
	s.Wait()
	v, _ = s.Workflow(model.KindReservation)
	if v.State != model.StateSuccess {
		t.Fatalf("expected success, got %s %v", v.State, v.FieldErrors)
	}
	if len(notes.seen) != 1 || notes.seen[0].Kind != model.KindReservation {
		t.Fatalf("expected one reservation notification, got %+v", notes.seen)
	}

	v, _ = s.Reset(model.KindReservation)
	if v.State != model.StateIdle || v.Draft != booking.NewDraft(model.KindReservation) {
		t.Fatalf("reset must restore the initial draft, got %+v", v)
	}
}

func TestStaleSuggestionIgnored(t *testing.T) {
	gate := make(chan struct{})
	sl := &fakeSlots{
		gates:   map[int]chan struct{}{3: gate},
		replies: map[int][]string{3: {"13:00"}, 5: {"14:00", "14:30"}},
	}
	s := newManager(t, sl, nil).Create()

	if _, err := s.UpdateDraft(model.KindReservation, booking.Patch{Date: str("2026-10-19"), PartySize: num(3)}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpdateDraft(model.KindReservation, booking.Patch{PartySize: num(5)}); err != nil {
		t.Fatal(err)
	}
	close(gate)
	s.Wait()

	v, _ := s.Workflow(model.KindReservation)
	if !reflect.DeepEqual(v.Slots, []string{"14:00", "14:30"}) {
		t.Fatalf("slow stale reply must not win, got %v", v.Slots)
	}
	if v.Draft.Time != "14:00" {
		t.Errorf("expected 14:00 preselected, got %q", v.Draft.Time)
	}
}

func TestDeliveryFlowClearsCart(t *testing.T) {
	notes := &recordingNotifier{}
	s := newManager(t, nil, notes).Create()
	patch := booking.Patch{Name: str("Luis"), Phone: str("600 123 456"), Address: str("Carrer Gran 3")}

	if _, err := s.UpdateDraft(model.KindDelivery, patch); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(model.KindDelivery); err != nil {
		t.Fatal(err)
	}
	s.Wait()
	v, _ := s.Workflow(model.KindDelivery)
	if v.State != model.StateError {
		t.Fatalf("empty cart must fail, got %s", v.State)
	}

	if _, err := s.AddItem("MARGARITA INDIVIDUAL"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(model.KindDelivery); err != nil {
		t.Fatalf("error state must allow resubmission: %v", err)
	}
	s.Wait()
	v, _ = s.Workflow(model.KindDelivery)
	if v.State != model.StateSuccess {
		t.Fatalf("expected success, got %s %v", v.State, v.FieldErrors)
	}
	if c := v.Confirmation; c.TotalItems != 1 || len(c.Lines) != 1 {
		t.Errorf("confirmation must carry the order, got %+v", c)
	}
	if s.Summary().Items != 0 {
		t.Error("successful delivery must clear the cart")
	}
	if len(notes.seen) != 1 {
		t.Errorf("expected one notification, got %d", len(notes.seen))
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	m := newManager(t, nil, nil)
	m.delays[model.KindDelivery] = time.Hour
	s := m.Create()
	if _, err := s.UpdateDraft(model.KindDelivery, booking.Patch{Name: str("a"), Phone: str("600123456"), Address: str("b")}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(model.KindDelivery); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(model.KindDelivery); !errors.Is(err, booking.ErrSubmitting) {
		t.Fatalf("expected ErrSubmitting, got %v", err)
	}
	v, _ := s.Reset(model.KindDelivery)
	if v.State != model.StateIdle {
		t.Fatalf("expected idle after reset, got %s", v.State)
	}
}

func TestShutdownResolvesPendingSubmit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, Options{
		Catalog:       catalog.Default(),
		Slots:         &fakeSlots{},
		DeliveryDelay: time.Hour,
		Now:           clock,
		Logger:        logger.Nop(),
	})
	s := m.Create()
	if _, err := s.UpdateDraft(model.KindDelivery, booking.Patch{Name: str("a"), Phone: str("600123456"), Address: str("b")}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(model.KindDelivery); err != nil {
		t.Fatal(err)
	}
	cancel()
	s.Wait()
	v, _ := s.Workflow(model.KindDelivery)
	if v.State != model.StateError || v.Error == "" {
		t.Fatalf("expected a retryable error after shutdown, got %s %q", v.State, v.Error)
	}
}

func TestUnknownWorkflow(t *testing.T) {
	s := newManager(t, nil, nil).Create()
	if _, err := s.Workflow("takeaway"); !errors.Is(err, ErrUnknownWorkflow) {
		t.Fatalf("expected ErrUnknownWorkflow, got %v", err)
	}
	if err := s.SetActive("takeaway"); !errors.Is(err, ErrUnknownWorkflow) {
		t.Fatalf("expected ErrUnknownWorkflow, got %v", err)
	}
	if err := s.SetActive(model.KindDelivery); err != nil {
		t.Fatal(err)
	}
	if s.Summary().Active != model.KindDelivery {
		t.Error("active workflow not recorded")
	}
}

func TestManagerGetAndSweep(t *testing.T) {
	now := clock()
	m := newManager(t, nil, nil)
	m.now = func() time.Time { return now }

	s := m.Create()
	if got, err := m.Get(s.ID); err != nil || got != s {
		t.Fatalf("expected session back, got %v %v", got, err)
	}
	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	now = now.Add(30 * time.Minute)
	if n := m.Sweep(); n != 0 {
		t.Fatalf("session still fresh, swept %d", n)
	}
	now = now.Add(2 * time.Hour)
	if n := m.Sweep(); n != 1 || m.Len() != 0 {
		t.Fatalf("expected idle session swept, got %d (live %d)", n, m.Len())
	}
}
