package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/parkbooking/internal/kafka"
	"github.com/Domenick1991/parkbooking/internal/logger"
	kafkago "github.com/segmentio/kafka-go"
)

// Recorder writes booking lifecycle events to the audit log.
type Recorder struct {
	log *logger.Logger
}

func NewRecorder(log *logger.Logger) *Recorder {
	return &Recorder{log: log.With("component", "audit")}
}

func (r *Recorder) Record(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case kafka.EventBookingCreated, kafka.EventBookingUpdated, kafka.EventBookingDeleted:
	default:
		return fmt.Errorf("unknown booking event type %q", event.Type)
	}

	r.log.InfoContext(ctx, "Booking audit event",
		"event_id", event.ID,
		"type", event.Type,
		"booking_id", event.BookingID,
		"owner_id", event.UserID,
		"actor_id", event.ActorID,
		"parking_id", event.ParkingID,
		"start_date", event.StartDate,
		"end_date", event.EndDate,
		"occurred_at", event.OccurredAt,
	)
	return nil
}

// Handle decodes a Kafka message and records it. Undecodable or unknown
// messages are logged and skipped so they do not block the partition.
func (r *Recorder) Handle(ctx context.Context, msg kafkago.Message) error {
	var event kafka.BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		r.log.Warn("Skipping undecodable booking event", "offset", msg.Offset, "partition", msg.Partition, "error", err)
		return nil
	}
	if err := r.Record(ctx, event); err != nil {
		r.log.Warn("Skipping booking event", "offset", msg.Offset, "error", err)
	}
	return nil
}
