// Package booking implements the reservation and delivery checkout flows as
// one state machine over a tagged draft.
package booking

import (
	"strings"

	"github.com/iliyamo/blackmouth-booking/internal/model"
)

// Field names used as keys of field error maps.
const (
	FieldName         = "name"
	FieldPartySize    = "party_size"
	FieldDate         = "date"
	FieldTime         = "time"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldAddress      = "address"
	FieldInstructions = "instructions"
	FieldCart         = "cart"
)

// Party size bounds offered by the reservation form.
const (
	MinPartySize     = 1
	MaxPartySize     = 12
	DefaultPartySize = 2
)

// Draft is the in-progress form of either workflow kind.  Fields that do not
// belong to Kind stay zero.
type Draft struct {
	Kind         model.WorkflowKind `json:"kind"`
	Name         string             `json:"name"`
	PartySize    int                `json:"party_size,omitempty"`
	Date         string             `json:"date,omitempty"`
	Time         string             `json:"time,omitempty"`
	Email        string             `json:"email,omitempty"`
	Phone        string             `json:"phone"`
	Address      string             `json:"address,omitempty"`
	Instructions string             `json:"instructions,omitempty"`
}

// NewDraft returns the initial empty draft of kind.
func NewDraft(kind model.WorkflowKind) Draft {
	d := Draft{Kind: kind}
	if kind == model.KindReservation {
		d.PartySize = DefaultPartySize
	}
	return d
}

var (
	reservationFields = []string{FieldName, FieldPartySize, FieldDate, FieldTime, FieldEmail, FieldPhone}
	deliveryFields    = []string{FieldName, FieldPhone, FieldAddress, FieldInstructions}

	reservationRequired = []string{FieldName, FieldPartySize, FieldDate, FieldTime, FieldEmail}
	deliveryRequired    = []string{FieldName, FieldPhone, FieldAddress}
)

// RequiredFields lists the fields a draft of kind must carry to be submitted.
func RequiredFields(kind model.WorkflowKind) []string {
	if kind == model.KindDelivery {
		return deliveryRequired
	}
	return reservationRequired
}

func applicable(kind model.WorkflowKind, field string) bool {
	fields := reservationFields
	if kind == model.KindDelivery {
		fields = deliveryFields
	}
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// Missing returns the required fields that are blank, in declaration order.
func (d Draft) Missing() []string {
	var out []string
	for _, f := range RequiredFields(d.Kind) {
		if d.blank(f) {
			out = append(out, f)
		}
	}
	return out
}

func (d Draft) blank(field string) bool {
	switch field {
	case FieldName:
		return strings.TrimSpace(d.Name) == ""
	case FieldPartySize:
		return d.PartySize == 0
	case FieldDate:
		return strings.TrimSpace(d.Date) == ""
	case FieldTime:
		return strings.TrimSpace(d.Time) == ""
	case FieldEmail:
		return strings.TrimSpace(d.Email) == ""
	case FieldPhone:
		return strings.TrimSpace(d.Phone) == ""
	case FieldAddress:
		return strings.TrimSpace(d.Address) == ""
	}
	return false
}

// Patch carries a partial draft update.  Nil fields are left untouched.
type Patch struct {
	Name         *string `json:"name"`
	PartySize    *int    `json:"party_size"`
	Date         *string `json:"date"`
	Time         *string `json:"time"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Instructions *string `json:"instructions"`
}

// fields lists the draft fields p touches.
func (p Patch) fields() []string {
	var out []string
	add := func(set bool, f string) {
		if set {
			out = append(out, f)
		}
	}
	add(p.Name != nil, FieldName)
	add(p.PartySize != nil, FieldPartySize)
	add(p.Date != nil, FieldDate)
	add(p.Time != nil, FieldTime)
	add(p.Email != nil, FieldEmail)
	add(p.Phone != nil, FieldPhone)
	add(p.Address != nil, FieldAddress)
	add(p.Instructions != nil, FieldInstructions)
	return out
}
