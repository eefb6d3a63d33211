package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/blackmouth-booking/internal/cart"
	"github.com/iliyamo/blackmouth-booking/internal/model"
)

var (
	// ErrSubmitting is returned while a submission is in flight.
	ErrSubmitting = errors.New("submission in progress")
	// ErrFinalized is returned for edits after a successful submission.
	// Reset starts a new draft.
	ErrFinalized = errors.New("booking already confirmed")
	// ErrIncomplete is returned by BeginSubmit when required fields are blank.
	ErrIncomplete = errors.New("required fields missing")
	// ErrFieldNotApplicable is returned when a patch names a field of the
	// other workflow kind.
	ErrFieldNotApplicable = errors.New("field not applicable")
)

// SlotRequest asks the owner to fetch suggestions for the current date and
// party size.  The result must be handed back to ApplySlots with the same
// Generation.
type SlotRequest struct {
	Generation uint64
	Date       time.Time
	PartySize  int
}

// Ticket identifies one submission attempt and carries the draft as it was
// when the user pressed submit.
type Ticket struct {
	Attempt uint64
	Draft   Draft
	Slots   []string
}

// Order is what a workflow needs to know about the cart at completion time.
type Order struct {
	Totals cart.Totals
	Lines  []model.OrderLine
}

// View is a read-only snapshot for rendering.
type View struct {
	Kind         model.WorkflowKind    `json:"kind"`
	State        model.SubmissionState `json:"state"`
	Draft        Draft                 `json:"draft"`
	Slots        []string              `json:"slots,omitempty"`
	LoadingSlots bool                  `json:"loading_slots,omitempty"`
	FieldErrors  map[string]string     `json:"field_errors,omitempty"`
	Error        string                `json:"error,omitempty"`
	CanSubmit    bool                  `json:"can_submit"`
	Confirmation *model.Confirmation   `json:"confirmation,omitempty"`
}

// Workflow is the checkout state machine of one kind.  It is not safe for
// concurrent use; the owning session serializes access.
//
// Idle is the editing state.  Submit moves Idle or Error to Submitting and
// CompleteSubmit resolves it to Success or Error.  Any edit leaves Error.
// Success only leaves through Reset.
type Workflow struct {
	kind         model.WorkflowKind
	draft        Draft
	state        model.SubmissionState
	slots        []string
	loadingSlots bool
	fieldErrors  map[string]string
	submitError  string
	confirmation *model.Confirmation

	generation uint64 // bumped on every (date, party size) change
	attempt    uint64 // bumped on every submit and on reset

	now func() time.Time
}

// NewWorkflow returns an idle workflow with an empty draft.  now supplies
// the clock used for date checks and confirmation stamps.
func NewWorkflow(kind model.WorkflowKind, now func() time.Time) *Workflow {
	if now == nil {
		now = time.Now
	}
	return &Workflow{
		kind:        kind,
		draft:       NewDraft(kind),
		state:       model.StateIdle,
		fieldErrors: map[string]string{},
		now:         now,
	}
}

func (w *Workflow) Kind() model.WorkflowKind     { return w.kind }
func (w *Workflow) State() model.SubmissionState { return w.state }
func (w *Workflow) Draft() Draft                 { return w.draft }

// Update applies p.  Invalid values are stored and reported as field
// errors; they never block editing of other fields.  When the date or party
// size changes, the selected time is cleared and a SlotRequest is returned
// if both inputs are usable.
func (w *Workflow) Update(p Patch) (*SlotRequest, error) {
	switch w.state {
	case model.StateSubmitting:
		return nil, ErrSubmitting
	case model.StateSuccess:
		return nil, ErrFinalized
	}
	touched := p.fields()
	for _, f := range touched {
		if !applicable(w.kind, f) {
			return nil, fmt.Errorf("%w: %s", ErrFieldNotApplicable, f)
		}
	}
	if len(touched) == 0 {
		return nil, nil
	}
	if w.state == model.StateError {
		w.state = model.StateIdle
		w.submitError = ""
	}

	d := &w.draft
	slotInputsChanged := false
	if p.Name != nil {
		d.Name = *p.Name
		w.clearIfPresent(FieldName, d.Name)
	}
	if p.Email != nil {
		d.Email = *p.Email
		w.clearIfPresent(FieldEmail, d.Email)
	}
	if p.Address != nil {
		d.Address = *p.Address
		w.clearIfPresent(FieldAddress, d.Address)
	}
	if p.Instructions != nil {
		d.Instructions = *p.Instructions
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
		w.setFieldError(FieldPhone, phoneError(d.Phone))
	}
	if p.PartySize != nil && *p.PartySize != d.PartySize {
		d.PartySize = *p.PartySize
		w.setFieldError(FieldPartySize, partySizeError(d.PartySize))
		slotInputsChanged = true
	}
	if p.Date != nil && *p.Date != d.Date {
		d.Date = strings.TrimSpace(*p.Date)
		_, msg := parseDate(d.Date, w.now())
		w.setFieldError(FieldDate, msg)
		slotInputsChanged = true
	}

	var req *SlotRequest
	if slotInputsChanged {
		req = w.invalidateSlots()
	}
	if p.Time != nil {
		d.Time = *p.Time
		w.setFieldError(FieldTime, timeError(d.Time, w.slots))
	}
	return req, nil
}

// invalidateSlots drops the current suggestions and selection.  It returns
// a request when date and party size are both valid.
func (w *Workflow) invalidateSlots() *SlotRequest {
	w.generation++
	w.slots = nil
	w.draft.Time = ""
	delete(w.fieldErrors, FieldTime)
	w.loadingSlots = false

	if w.draft.Date == "" || partySizeError(w.draft.PartySize) != "" {
		return nil
	}
	date, msg := parseDate(w.draft.Date, w.now())
	if msg != "" {
		return nil
	}
	w.loadingSlots = true
	return &SlotRequest{Generation: w.generation, Date: date, PartySize: w.draft.PartySize}
}

// RequestSlots re-issues the request for the current inputs, e.g. when a
// client asks for suggestions again.  It returns nil when the inputs are
// not usable or the workflow is not editable.
func (w *Workflow) RequestSlots() *SlotRequest {
	if w.kind != model.KindReservation || w.state == model.StateSubmitting || w.state == model.StateSuccess {
		return nil
	}
	return w.invalidateSlots()
}

// ApplySlots installs suggestions for generation gen.  Results for a
// superseded generation are discarded and false is returned.  The first
// slot becomes the selected time unless the selection is already one of
// the new slots.
func (w *Workflow) ApplySlots(gen uint64, times []string) bool {
	if gen != w.generation || len(times) == 0 {
		return false
	}
	w.slots = append([]string(nil), times...)
	w.loadingSlots = false
	if w.draft.Time == "" || timeError(w.draft.Time, w.slots) != "" {
		w.draft.Time = w.slots[0]
	}
	delete(w.fieldErrors, FieldTime)
	return true
}

// Slots returns the current suggestions.
func (w *Workflow) Slots() []string {
	return append([]string(nil), w.slots...)
}

// BeginSubmit moves the workflow to Submitting and returns the ticket the
// caller must hand to CompleteSubmit once the processing delay elapses.
func (w *Workflow) BeginSubmit() (Ticket, error) {
	switch w.state {
	case model.StateSubmitting:
		return Ticket{}, ErrSubmitting
	case model.StateSuccess:
		return Ticket{}, ErrFinalized
	}
	if missing := w.draft.Missing(); len(missing) > 0 {
		for _, f := range missing {
			w.fieldErrors[f] = MsgRequired
		}
		return Ticket{}, fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	w.attempt++
	w.state = model.StateSubmitting
	w.submitError = ""
	return Ticket{Attempt: w.attempt, Draft: w.draft, Slots: w.Slots()}, nil
}

// CompleteSubmit re-validates the ticket's draft against order and resolves
// the attempt.  It returns false, changing nothing, when the ticket was
// superseded by a reset.
func (w *Workflow) CompleteSubmit(t Ticket, order Order) bool {
	if t.Attempt != w.attempt || w.state != model.StateSubmitting {
		return false
	}
	errs := Validate(t.Draft, t.Slots, order.Totals, w.now())
	if len(errs) > 0 {
		for f, msg := range errs {
			w.fieldErrors[f] = msg
		}
		w.state = model.StateError
		w.submitError = MsgSubmitFailed
		return true
	}
	w.state = model.StateSuccess
	w.fieldErrors = map[string]string{}
	w.confirmation = w.confirm(t.Draft, order)
	return true
}

// AbortSubmit resolves an attempt that can no longer complete to Error, so
// the draft stays editable and can be submitted again.  Like CompleteSubmit
// it ignores superseded tickets.
func (w *Workflow) AbortSubmit(t Ticket) bool {
	if t.Attempt != w.attempt || w.state != model.StateSubmitting {
		return false
	}
	w.state = model.StateError
	w.submitError = MsgSubmitFailed
	return true
}

// Validate checks a draft as a submission would.  slots are the suggestions
// the time must belong to; totals matter only for delivery.
func Validate(d Draft, slots []string, totals cart.Totals, now time.Time) map[string]string {
	errs := map[string]string{}
	for _, f := range d.Missing() {
		errs[f] = MsgRequired
	}
	if msg := phoneError(d.Phone); msg != "" {
		errs[FieldPhone] = msg
	}
	switch d.Kind {
	case model.KindReservation:
		if _, ok := errs[FieldPartySize]; !ok {
			if msg := partySizeError(d.PartySize); msg != "" {
				errs[FieldPartySize] = msg
			}
		}
		if _, ok := errs[FieldDate]; !ok {
			if _, msg := parseDate(d.Date, now); msg != "" {
				errs[FieldDate] = msg
			}
		}
		if _, ok := errs[FieldTime]; !ok {
			if msg := timeError(d.Time, slots); msg != "" {
				errs[FieldTime] = msg
			}
		}
	case model.KindDelivery:
		if totals.Items <= 0 {
			errs[FieldCart] = MsgEmptyCart
		}
	}
	return errs
}

func (w *Workflow) confirm(d Draft, order Order) *model.Confirmation {
	c := &model.Confirmation{
		Reference:   uuid.NewString(),
		Kind:        w.kind,
		ConfirmedAt: w.now().UTC(),
		Name:        strings.TrimSpace(d.Name),
		Phone:       strings.TrimSpace(d.Phone),
		TotalCost:   order.Totals.Cost,
	}
	switch w.kind {
	case model.KindReservation:
		c.PartySize = d.PartySize
		c.Date = d.Date
		c.Time = d.Time
		c.Email = strings.TrimSpace(d.Email)
	case model.KindDelivery:
		c.Address = strings.TrimSpace(d.Address)
		c.Instructions = strings.TrimSpace(d.Instructions)
		c.Lines = order.Lines
		c.TotalItems = order.Totals.Items
	}
	return c
}

// Confirmation returns the acknowledgment of the last successful submit.
func (w *Workflow) Confirmation() *model.Confirmation {
	return w.confirmation
}

// Reset restores the initial draft and Idle state.  Pending slot requests
// and submissions are invalidated.
func (w *Workflow) Reset() {
	w.draft = NewDraft(w.kind)
	w.state = model.StateIdle
	w.slots = nil
	w.loadingSlots = false
	w.fieldErrors = map[string]string{}
	w.submitError = ""
	w.confirmation = nil
	w.generation++
	w.attempt++
}

// View returns a snapshot of the workflow.
func (w *Workflow) View() View {
	v := View{
		Kind:         w.kind,
		State:        w.state,
		Draft:        w.draft,
		Slots:        w.Slots(),
		LoadingSlots: w.loadingSlots,
		Error:        w.submitError,
		Confirmation: w.confirmation,
	}
	if len(w.fieldErrors) > 0 {
		v.FieldErrors = make(map[string]string, len(w.fieldErrors))
		for k, msg := range w.fieldErrors {
			v.FieldErrors[k] = msg
		}
	}
	v.CanSubmit = (w.state == model.StateIdle || w.state == model.StateError) &&
		len(w.draft.Missing()) == 0 && w.fieldErrors[FieldPhone] == ""
	return v
}

func (w *Workflow) setFieldError(field, msg string) {
	if msg == "" {
		delete(w.fieldErrors, field)
		return
	}
	w.fieldErrors[field] = msg
}

func (w *Workflow) clearIfPresent(field, value string) {
	if strings.TrimSpace(value) != "" {
		delete(w.fieldErrors, field)
	}
}
