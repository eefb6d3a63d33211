// Package queue defines the booking.confirmed message and the consumer that
// appends confirmed bookings to logs/booking.log.
package queue

import (
	"fmt"
	"time"

	"github.com/iliyamo/blackmouth-booking/internal/model"
)

// BookingQueue is the durable queue booking events are published to.
const BookingQueue = "booking.confirmed"

// BookingConfirmedEvent is published when a reservation or delivery reaches
// Success.  It carries the whole acknowledgment so consumers never need to
// reach back into the session.
type BookingConfirmedEvent struct {
	Reference   string             `json:"reference"`
	SessionID   string             `json:"session_id"`
	Kind        model.WorkflowKind `json:"kind"`
	Name        string             `json:"name"`
	PartySize   int                `json:"party_size,omitempty"`
	Date        string             `json:"date,omitempty"`
	Time        string             `json:"time,omitempty"`
	Email       string             `json:"email,omitempty"`
	Phone       string             `json:"phone,omitempty"`
	Address     string             `json:"address,omitempty"`
	Items       []string           `json:"items,omitempty"` // "2x MARGARITA CLÁSICA"
	TotalItems  int                `json:"total_items,omitempty"`
	TotalCost   string             `json:"total_cost"`
	ConfirmedAt string             `json:"confirmed_at"`
}

// NewBookingConfirmedEvent flattens a confirmation into an event.
func NewBookingConfirmedEvent(sessionID string, c model.Confirmation) BookingConfirmedEvent {
	ev := BookingConfirmedEvent{
		Reference:   c.Reference,
		SessionID:   sessionID,
		Kind:        c.Kind,
		Name:        c.Name,
		PartySize:   c.PartySize,
		Date:        c.Date,
		Time:        c.Time,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		TotalItems:  c.TotalItems,
		TotalCost:   c.TotalCost.StringFixed(2),
		ConfirmedAt: c.ConfirmedAt.UTC().Format(time.RFC3339),
	}
	for _, l := range c.Lines {
		ev.Items = append(ev.Items, itemLabel(l))
	}
	return ev
}

func itemLabel(l model.OrderLine) string {
	return fmt.Sprintf("%dx %s", l.Quantity, l.Name)
}
