package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/reposekdz/eastgate-sub004/models"
)

// Booking lifecycle event types. booking.checked_out is the turnover
// signal the external housekeeping service consumes before flipping
// the room back to available.
const (
	EventBookingCreated    = "booking.created"
	EventBookingConfirmed  = "booking.confirmed"
	EventBookingModified   = "booking.modified"
	EventBookingCheckedIn  = "booking.checked_in"
	EventBookingCheckedOut = "booking.checked_out"
	EventBookingCancelled  = "booking.cancelled"
)

type BookingEvent struct {
	Type          string               `json:"type"`
	BookingID     uint                 `json:"booking_id"`
	RoomID        uint                 `json:"room_id"`
	ReferenceCode string               `json:"reference_code"`
	Status        models.BookingStatus `json:"status"`
	CheckIn       string               `json:"check_in"`
	CheckOut      string               `json:"check_out"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

func newBookingEvent(eventType string, booking *models.Booking) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		RoomID:        booking.RoomID,
		ReferenceCode: booking.ReferenceCode,
		Status:        booking.Status,
		CheckIn:       booking.CheckIn.Format(dateLayout),
		CheckOut:      booking.CheckOut.Format(dateLayout),
		OccurredAt:    time.Now().UTC(),
	}
}

// EventPublisher delivers booking events to downstream consumers.
// Publishing is best effort: commands log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

// AmqpPublisher publishes to a durable RabbitMQ queue per event type.
// A connection is dialed per publish; booking volume does not justify
// holding a channel open across requests.
type AmqpPublisher struct {
	url string
}

func NewAmqpPublisher(url string) *AmqpPublisher {
	return &AmqpPublisher{url: url}
}

func (p *AmqpPublisher) Publish(ctx context.Context, event BookingEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable queue per event type, declared idempotently.
	if _, err := ch.QueueDeclare(event.Type, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", event.Type, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}

// NoopPublisher is used when no broker is configured and in tests.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }
