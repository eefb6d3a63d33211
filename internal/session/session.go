// Package session holds the per-visitor application state: one cart, the
// active checkout flow and both booking workflows.  Every mutation of a
// session runs under its mutex; slot suggestion and the submit delay run in
// goroutines that re-acquire it only to apply their result.
package session

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iliyamo/blackmouth-booking/internal/booking"
	"github.com/iliyamo/blackmouth-booking/internal/cart"
	"github.com/iliyamo/blackmouth-booking/internal/catalog"
	"github.com/iliyamo/blackmouth-booking/internal/model"
)

// ErrUnknownWorkflow is returned for a workflow kind other than
// reservation or delivery.
var ErrUnknownWorkflow = errors.New("unknown workflow")

// CartView is the rendered cart: lines in catalog order plus totals.
type CartView struct {
	Lines  []model.OrderLine `json:"lines"`
	Totals cart.Totals       `json:"totals"`
	Limit  int               `json:"max_quantity"`
}

// Summary is what page chrome reads: the header badge and the active flow.
type Summary struct {
	ID     string             `json:"session_id"`
	Active model.WorkflowKind `json:"active"`
	cart.Totals
}

// Session is one visitor's application state.  Its methods are safe for
// concurrent use.
type Session struct {
	ID string

	mgr      *Manager
	mu       sync.Mutex
	cart     *cart.Engine
	active   model.WorkflowKind
	flows    map[model.WorkflowKind]*booking.Workflow
	lastSeen atomic.Int64
	pending  sync.WaitGroup
}

func newSession(id string, m *Manager) *Session {
	s := &Session{
		ID:     id,
		mgr:    m,
		cart:   cart.NewEngine(m.catalog),
		active: model.KindReservation,
		flows: map[model.WorkflowKind]*booking.Workflow{
			model.KindReservation: booking.NewWorkflow(model.KindReservation, m.now),
			model.KindDelivery:    booking.NewWorkflow(model.KindDelivery, m.now),
		},
	}
	s.touch()
	return s
}

func (s *Session) touch() { s.lastSeen.Store(s.mgr.now().UnixNano()) }

func (s *Session) idleSince() time.Time { return time.Unix(0, s.lastSeen.Load()) }

// Wait blocks until every background step started so far has applied its
// result.
func (s *Session) Wait() { s.pending.Wait() }

// Summary returns the cart totals and the active flow.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{ID: s.ID, Active: s.active, Totals: s.cart.Totals()}
}

// SetActive records which checkout flow the visitor is on.
func (s *Session) SetActive(kind model.WorkflowKind) error {
	if !kind.Valid() {
		return ErrUnknownWorkflow
	}
	s.mu.Lock()
	s.active = kind
	s.mu.Unlock()
	return nil
}

// Cart returns the current order.
func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

func (s *Session) cartView() CartView {
	return CartView{
		Lines:  s.cart.Lines(s.mgr.catalogOrder),
		Totals: s.cart.Totals(),
		Limit:  cart.MaxQuantity,
	}
}

// AddItem adds one unit of name.  At the cap the cart is unchanged.
func (s *Session) AddItem(name string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.Add(name); err != nil {
		return CartView{}, fmt.Errorf("add %q: %w", name, err)
	}
	return s.cartView(), nil
}

// RemoveItem takes one unit of name off the order.  Absent names are a
// no-op.
func (s *Session) RemoveItem(name string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(name)
	return s.cartView()
}

// AddFiltered adds one unit of every catalog item matching f and reports
// how many quantities changed.  Unknown size or ingredient tokens leave the
// cart untouched.
func (s *Session) AddFiltered(f catalog.FilterState) (int, CartView, error) {
	f = f.Normalized()
	if err := s.mgr.catalog.CheckFilter(f); err != nil {
		return 0, s.Cart(), err
	}
	items := s.mgr.catalog.Filter(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.cart.AddAll(items)
	return n, s.cartView(), nil
}

// ClearCart empties the order.
func (s *Session) ClearCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.cartView()
}

func (s *Session) flow(kind model.WorkflowKind) (*booking.Workflow, error) {
	wf, ok := s.flows[kind]
	if !ok {
		return nil, ErrUnknownWorkflow
	}
	return wf, nil
}

// Workflow returns a snapshot of the workflow of kind.
func (s *Session) Workflow(kind model.WorkflowKind) (booking.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, err := s.flow(kind)
	if err != nil {
		return booking.View{}, err
	}
	return wf.View(), nil
}

// UpdateDraft applies p and starts a slot suggestion when the reservation
// date or party size changed.
func (s *Session) UpdateDraft(kind model.WorkflowKind, p booking.Patch) (booking.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, err := s.flow(kind)
	if err != nil {
		return booking.View{}, err
	}
	req, err := wf.Update(p)
	if err != nil {
		return wf.View(), err
	}
	if req != nil {
		s.suggest(wf, *req)
	}
	return wf.View(), nil
}

// RefreshSlots asks for suggestions again for the current date and party
// size.
func (s *Session) RefreshSlots() booking.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf := s.flows[model.KindReservation]
	if req := wf.RequestSlots(); req != nil {
		s.suggest(wf, *req)
	}
	return wf.View()
}

// Submit starts a submission of kind.  The result is applied after the
// configured processing delay.
func (s *Session) Submit(kind model.WorkflowKind) (booking.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, err := s.flow(kind)
	if err != nil {
		return booking.View{}, err
	}
	t, err := wf.BeginSubmit()
	if err != nil {
		return wf.View(), err
	}
	s.pending.Add(1)
	go s.complete(wf, t)
	return wf.View(), nil
}

// Reset starts a fresh draft of kind, invalidating pending work for it.
func (s *Session) Reset(kind model.WorkflowKind) (booking.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, err := s.flow(kind)
	if err != nil {
		return booking.View{}, err
	}
	wf.Reset()
	return wf.View(), nil
}

// suggest must be called with s.mu held.
func (s *Session) suggest(wf *booking.Workflow, req booking.SlotRequest) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		times := s.mgr.slots.Suggest(s.mgr.ctx, req.Date, req.PartySize)

		s.mu.Lock()
		applied := wf.ApplySlots(req.Generation, times)
		s.mu.Unlock()
		if !applied {
			s.mgr.log.Debug().Str("session_id", s.ID).Uint64("generation", req.Generation).
				Msg("discarding stale slot suggestions")
		}
	}()
}

func (s *Session) complete(wf *booking.Workflow, t booking.Ticket) {
	defer s.pending.Done()
	timer := time.NewTimer(s.mgr.delay(wf.Kind()))
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.mgr.ctx.Done():
		s.mu.Lock()
		wf.AbortSubmit(t)
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	order := booking.Order{Totals: s.cart.Totals(), Lines: s.cart.Lines(s.mgr.catalogOrder)}
	applied := wf.CompleteSubmit(t, order)
	var conf *model.Confirmation
	if applied && wf.State() == model.StateSuccess {
		conf = wf.Confirmation()
		if wf.Kind() == model.KindDelivery {
			s.cart.Clear()
		}
	}
	state := wf.State()
	s.mu.Unlock()

	log := s.mgr.log.With().Str("session_id", s.ID).Str("kind", string(wf.Kind())).Logger()
	if !applied {
		log.Debug().Msg("discarding superseded submission")
		return
	}
	log.Info().Str("state", string(state)).Msg("submission resolved")
	if conf != nil && s.mgr.notifier != nil {
		if err := s.mgr.notifier.BookingConfirmed(s.mgr.ctx, s.ID, *conf); err != nil {
			log.Warn().Err(err).Str("reference", conf.Reference).Msg("publish booking.confirmed failed")
		}
	}
}
