package booking

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/blackmouth-booking/internal/cart"
	"github.com/iliyamo/blackmouth-booking/internal/model"
)

var fallbackSlots = []string{"19:00", "19:30", "20:00", "21:00", "21:30", "22:00"}

func fixedClock() time.Time {
	return time.Date(2026, time.October, 17, 18, 30, 0, 0, time.UTC)
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

const tomorrow = "2026-10-18"

// fillReservation patches a complete reservation draft and installs slots.
func fillReservation(t *testing.T, w *Workflow, phone string) {
	t.Helper()
	req, err := w.Update(Patch{
		Name:      str("Ana"),
		PartySize: num(4),
		Date:      str(tomorrow),
		Email:     str("a@b.com"),
		Phone:     str(phone),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if req == nil {
		t.Fatal("expected a slot request after setting date and party size")
	}
	if !w.ApplySlots(req.Generation, fallbackSlots) {
		t.Fatal("slots for the current generation must apply")
	}
	if _, err := w.Update(Patch{Time: str("20:00")}); err != nil {
		t.Fatalf("update time: %v", err)
	}
}

func submit(t *testing.T, w *Workflow, order Order) {
	t.Helper()
	tk, err := w.BeginSubmit()
	if err != nil {
		t.Fatalf("begin submit: %v", err)
	}
	if w.State() != model.StateSubmitting {
		t.Fatalf("expected submitting, got %s", w.State())
	}
	if !w.CompleteSubmit(tk, order) {
		t.Fatal("expected ticket to resolve")
	}
}

func TestReservation_SuccessAndInvalidPhone(t *testing.T) {
	ok := NewWorkflow(model.KindReservation, fixedClock)
	fillReservation(t, ok, "")
	submit(t, ok, Order{})
	if ok.State() != model.StateSuccess {
		t.Fatalf("expected success, got %s (%v)", ok.State(), ok.View().FieldErrors)
	}
	c := ok.Confirmation()
	if c == nil || c.Name != "Ana" || c.PartySize != 4 || c.Time != "20:00" || c.Date != tomorrow {
		t.Fatalf("unexpected confirmation %+v", c)
	}
	if c.Reference == "" {
		t.Error("confirmation must carry a reference")
	}

	bad := NewWorkflow(model.KindReservation, fixedClock)
	fillReservation(t, bad, "abc")
	if bad.View().FieldErrors[FieldPhone] != MsgPhone {
		t.Error("invalid phone must be flagged on change")
	}
	submit(t, bad, Order{})
	if bad.State() != model.StateError {
		t.Fatalf("expected error, got %s", bad.State())
	}
	if bad.View().Error != MsgSubmitFailed {
		t.Errorf("unexpected message %q", bad.View().Error)
	}
}

func TestDelivery_RequiresItems(t *testing.T) {
	patch := Patch{Name: str("Luis"), Phone: str("+34 600 123 456"), Address: str("Carrer de Mallorca 1")}
	full := Order{Totals: cart.Totals{Items: 2, Cost: decimal.RequireFromString("24.50")}}

	ok := NewWorkflow(model.KindDelivery, fixedClock)
	if _, err := ok.Update(patch); err != nil {
		t.Fatal(err)
	}
	submit(t, ok, full)
	if ok.State() != model.StateSuccess {
		t.Fatalf("expected success, got %s (%v)", ok.State(), ok.View().FieldErrors)
	}
	if c := ok.Confirmation(); c.TotalItems != 2 || !c.TotalCost.Equal(decimal.RequireFromString("24.50")) {
		t.Errorf("unexpected confirmation totals %+v", c)
	}

	empty := NewWorkflow(model.KindDelivery, fixedClock)
	if _, err := empty.Update(patch); err != nil {
		t.Fatal(err)
	}
	submit(t, empty, Order{Totals: cart.Totals{Cost: decimal.Zero}})
	if empty.State() != model.StateError {
		t.Fatalf("expected error for empty cart, got %s", empty.State())
	}
	if empty.View().FieldErrors[FieldCart] != MsgEmptyCart {
		t.Error("expected cart field error")
	}
}

func TestResetAfterSuccess(t *testing.T) {
	w := NewWorkflow(model.KindReservation, fixedClock)
	fillReservation(t, w, "600 123 456")
	submit(t, w, Order{})
	if w.State() != model.StateSuccess {
		t.Fatalf("expected success, got %s", w.State())
	}
	if _, err := w.Update(Patch{Name: str("Otro")}); !errors.Is(err, ErrFinalized) {
		t.Fatalf("expected ErrFinalized, got %v", err)
	}
	w.Reset()
	if w.State() != model.StateIdle {
		t.Fatalf("expected idle after reset, got %s", w.State())
	}
	if !reflect.DeepEqual(w.Draft(), NewDraft(model.KindReservation)) {
		t.Fatalf("expected initial draft, got %+v", w.Draft())
	}
	if w.Draft().PartySize != DefaultPartySize {
		t.Errorf("expected default party size %d", DefaultPartySize)
	}
	v := w.View()
	if len(v.Slots) != 0 || v.Confirmation != nil || len(v.FieldErrors) != 0 {
		t.Errorf("reset left state behind: %+v", v)
	}
}

func TestErrorIsNotSticky(t *testing.T) {
	w := NewWorkflow(model.KindReservation, fixedClock)
	fillReservation(t, w, "12")
	submit(t, w, Order{})
	if w.State() != model.StateError {
		t.Fatalf("expected error, got %s", w.State())
	}
	if _, err := w.Update(Patch{Phone: str("612345678")}); err != nil {
		t.Fatal(err)
	}
	if w.State() != model.StateIdle {
		t.Fatalf("edit must return to idle, got %s", w.State())
	}
	submit(t, w, Order{})
	if w.State() != model.StateSuccess {
		t.Fatalf("expected success on resubmit, got %s", w.State())
	}
}

func TestSubmitGuards(t *testing.T) {
	w := NewWorkflow(model.KindReservation, fixedClock)
	if _, err := w.BeginSubmit(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if w.State() != model.StateIdle {
		t.Fatalf("incomplete submit must not leave idle, got %s", w.State())
	}
	if w.View().FieldErrors[FieldName] != MsgRequired {
		t.Error("missing name must be flagged")
	}

	fillReservation(t, w, "")
	if _, err := w.BeginSubmit(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.BeginSubmit(); !errors.Is(err, ErrSubmitting) {
		t.Fatalf("expected ErrSubmitting, got %v", err)
	}
	if _, err := w.Update(Patch{Name: str("x")}); !errors.Is(err, ErrSubmitting) {
		t.Fatalf("expected edits to be refused while submitting, got %v", err)
	}
	if w.View().CanSubmit {
		t.Error("submit must be disabled while submitting")
	}
}

func TestSubmitUsesDraftAtSubmitTime(t *testing.T) {
	w := NewWorkflow(model.KindReservation, fixedClock)
	fillReservation(t, w, "")
	tk, err := w.BeginSubmit()
	if err != nil {
		t.Fatal(err)
	}
	if tk.Draft.Name != "Ana" || tk.Draft.Time != "20:00" {
		t.Fatalf("ticket must snapshot the draft, got %+v", tk.Draft)
	}
}

func TestResetDiscardsPendingSubmit(t *testing.T) {
	w := NewWorkflow(model.KindDelivery, fixedClock)
	if _, err := w.Update(Patch{Name: str("a"), Phone: str("600123456"), Address: str("b")}); err != nil {
		t.Fatal(err)
	}
	tk, err := w.BeginSubmit()
	if err != nil {
		t.Fatal(err)
	}
	w.Reset()
	if w.CompleteSubmit(tk, Order{Totals: cart.Totals{Items: 1}}) {
		t.Fatal("a superseded ticket must be ignored")
	}
	if w.State() != model.StateIdle {
		t.Fatalf("expected idle, got %s", w.State())
	}
}

func TestAbortSubmitLeavesDraftEditable(t *testing.T) {
	w := NewWorkflow(model.KindDelivery, fixedClock)
	if _, err := w.Update(Patch{Name: str("a"), Phone: str("600123456"), Address: str("b")}); err != nil {
		t.Fatal(err)
	}
	tk, err := w.BeginSubmit()
	if err != nil {
		t.Fatal(err)
	}
	if !w.AbortSubmit(tk) {
		t.Fatal("expected the pending attempt to resolve")
	}
	v := w.View()
	if v.State != model.StateError || v.Error != MsgSubmitFailed || !v.CanSubmit {
		t.Fatalf("expected a retryable error, got %+v", v)
	}
	if w.AbortSubmit(tk) || w.CompleteSubmit(tk, Order{Totals: cart.Totals{Items: 1}}) {
		t.Fatal("an aborted ticket must not resolve again")
	}
	if _, err := w.Update(Patch{Name: str("b")}); err != nil || w.State() != model.StateIdle {
		t.Fatalf("expected editing to resume, got %v / %s", err, w.State())
	}
}

func TestStaleSlotsAreDiscarded(t *testing.T) {
	w := NewWorkflow(model.KindReservation, fixedClock)
	first, _ := w.Update(Patch{Date: str(tomorrow)})
	second, _ := w.Update(Patch{PartySize: num(6)})
	if first == nil || second == nil || first.Generation == second.Generation {
		t.Fatalf("expected two distinct requests, got %+v %+v", first, second)
	}
	if second.PartySize != 6 {
		t.Errorf("request must carry the new party size, got %d", second.PartySize)
	}
	if !w.ApplySlots(second.Generation, []string{"13:00", "13:30"}) {
		t.Fatal("current generation must apply")
	}
	if w.ApplySlots(first.Generation, []string{"22:00"}) {
		t.Fatal("stale generation must be discarded")
	}
	if got := w.Slots(); !reflect.DeepEqual(got, []string{"13:00", "13:30"}) {
		t.Fatalf("stale result overwrote slots: %v", got)
	}
	if w.Draft().Time != "13:00" {
		t.Errorf("first slot must be preselected, got %q", w.Draft().Time)
	}
}

func TestDateChangeClearsTime(t *testing.T) {
	w := NewWorkflow(model.KindReservation, fixedClock)
	fillReservation(t, w, "")
	req, _ := w.Update(Patch{Date: str("2026-10-20")})
	if req == nil {
		t.Fatal("expected a slot request")
	}
	if w.Draft().Time != "" || len(w.Slots()) != 0 {
		t.Fatalf("date change must clear selection, got time %q slots %v", w.Draft().Time, w.Slots())
	}
	if !w.View().LoadingSlots {
		t.Error("expected loading flag")
	}
	// Same value again is not a change.
	if again, _ := w.Update(Patch{Date: str("2026-10-20")}); again != nil {
		t.Error("unchanged date must not re-trigger suggestions")
	}
}

func TestFieldValidation(t *testing.T) {
	w := NewWorkflow(model.KindReservation, fixedClock)
	req, err := w.Update(Patch{Date: str("2026-10-16"), PartySize: num(13)})
	if err != nil {
		t.Fatal(err)
	}
	if req != nil {
		t.Error("invalid inputs must not request slots")
	}
	fe := w.View().FieldErrors
	if fe[FieldDate] != MsgDatePast || fe[FieldPartySize] != MsgPartySize {
		t.Fatalf("unexpected field errors %v", fe)
	}
	// Editing another field still works.
	if _, err := w.Update(Patch{Name: str("Ana")}); err != nil {
		t.Fatal(err)
	}
	if w.Draft().Name != "Ana" {
		t.Error("name must be stored despite other field errors")
	}
	if req, _ := w.Update(Patch{Date: str("2026-10-17"), PartySize: num(12)}); req == nil {
		t.Error("today and 12 diners are valid inputs")
	}
	if _, err := w.Update(Patch{Address: str("x")}); !errors.Is(err, ErrFieldNotApplicable) {
		t.Fatalf("expected ErrFieldNotApplicable, got %v", err)
	}
}

func TestTimeMustBeSuggested(t *testing.T) {
	w := NewWorkflow(model.KindReservation, fixedClock)
	fillReservation(t, w, "")
	if _, err := w.Update(Patch{Time: str("16:45")}); err != nil {
		t.Fatal(err)
	}
	if w.View().FieldErrors[FieldTime] != MsgTime {
		t.Fatal("time outside suggestions must be flagged")
	}
	submit(t, w, Order{})
	if w.State() != model.StateError {
		t.Fatalf("expected error, got %s", w.State())
	}
}

func TestValidPhone(t *testing.T) {
	cases := map[string]bool{
		"612345678":        true,
		"+34 612 345 678":  true,
		"612 34":           false,
		"abc":              false,
		"+34-612-345-678":  false,
		"1234567890123456": false,
	}
	for in, want := range cases {
		if got := ValidPhone(in); got != want {
			t.Errorf("ValidPhone(%q) = %v, want %v", in, got, want)
		}
	}
}
