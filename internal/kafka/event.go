package kafka

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingCreated EventType = "booking_created"
	EventBookingUpdated EventType = "booking_updated"
	EventBookingDeleted EventType = "booking_deleted"
)

type BookingEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	BookingID  int64     `json:"bookingId"`
	UserID     int64     `json:"userId"`
	ParkingID  int64     `json:"parkingId"`
	ActorID    int64     `json:"actorId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType EventType, actorID, bookingID, userID, parkingID int64, start, end time.Time) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		BookingID:  bookingID,
		UserID:     userID,
		ParkingID:  parkingID,
		ActorID:    actorID,
		StartDate:  start,
		EndDate:    end,
		OccurredAt: time.Now().UTC(),
	}
}
