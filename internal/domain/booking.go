package domain

import "time"

// Booking is a reservation of one parking for a closed time interval.
// User and Parking are filled only when the booking is read with its owner and parking joined.
type Booking struct {
	ID        int64
	UserID    int64
	ParkingID int64
	User      *User
	Parking   *Parking
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Booking) Timeframe() Timeframe {
	return Timeframe{Start: b.StartTime, End: b.EndTime}
}

// Timeframe is a closed interval [Start, End].
type Timeframe struct {
	Start time.Time
	End   time.Time
}

// NewTimeframe normalizes both bounds to UTC.
func NewTimeframe(start, end time.Time) Timeframe {
	return Timeframe{Start: start.UTC(), End: end.UTC()}
}

// Overlaps reports whether two closed intervals intersect. Touching endpoints overlap.
func (t Timeframe) Overlaps(other Timeframe) bool {
	return !t.Start.After(other.End) && !other.Start.After(t.End)
}

func (t Timeframe) Valid() bool {
	return t.Start.Before(t.End)
}
