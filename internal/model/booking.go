package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkflowKind selects one of the two checkout flows.
type WorkflowKind string

const (
	KindReservation WorkflowKind = "reservation"
	KindDelivery    WorkflowKind = "delivery"
)

// Valid reports whether k names a known workflow.
func (k WorkflowKind) Valid() bool {
	return k == KindReservation || k == KindDelivery
}

// SubmissionState is the state of a booking workflow.  Idle doubles as the
// interactive editing state.
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateSuccess    SubmissionState = "success"
	StateError      SubmissionState = "error"
)

// OrderLine is one cart entry priced against the catalog.
type OrderLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Confirmation is the simulated acknowledgment produced by a successful
// submission.  Only the fields of the confirmed workflow kind are set.
type Confirmation struct {
	Reference   string       `json:"reference"`
	Kind        WorkflowKind `json:"kind"`
	ConfirmedAt time.Time    `json:"confirmed_at"`

	Name      string `json:"name"`
	PartySize int    `json:"party_size,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	Address      string          `json:"address,omitempty"`
	Instructions string          `json:"instructions,omitempty"`
	Lines        []OrderLine     `json:"lines,omitempty"`
	TotalItems   int             `json:"total_items,omitempty"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}
