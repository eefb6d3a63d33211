// Package service holds adapters the session layer talks to.  Publisher
// sends booking.confirmed events to RabbitMQ.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iliyamo/blackmouth-booking/internal/model"
	"github.com/iliyamo/blackmouth-booking/internal/queue"
)

// Publisher dials the broker per event.  Confirmations are rare, so a
// long-lived connection is not worth its reconnect logic here.
type Publisher struct {
	url     string
	timeout time.Duration
	log     zerolog.Logger
}

// NewPublisher returns nil when url is empty; callers then skip publishing.
func NewPublisher(url string, log zerolog.Logger) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url, timeout: 5 * time.Second, log: log}
}

// BookingConfirmed publishes c as a persistent booking.confirmed message.
func (p *Publisher) BookingConfirmed(ctx context.Context, sessionID string, c model.Confirmation) error {
	body, err := json.Marshal(queue.NewBookingConfirmedEvent(sessionID, c))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.timeout)})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.BookingQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	err = ch.PublishWithContext(ctx, "", queue.BookingQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    c.Reference,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	p.log.Debug().Str("reference", c.Reference).Str("kind", string(c.Kind)).Msg("booking.confirmed published")
	return nil
}
