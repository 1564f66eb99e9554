package repository

import (
	"context"

	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForOwner(ctx context.Context, id, ownerID int64) (*domain.Booking, error)
	UpdateTimeframe(ctx context.Context, id int64, tf domain.Timeframe) error
	Delete(ctx context.Context, id int64) error
	FindOverlapping(ctx context.Context, parkingID int64, tf domain.Timeframe) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const selectBookingSQL = `
SELECT
	b.id, b.created_by_user, b.parking_spot, b.start_date_time, b.end_date_time, b.created_at, b.updated_at,
	u.id, u.first_name, u.last_name, u.email, u.role,
	p.id, p.name
FROM bookings b
LEFT JOIN users u ON b.created_by_user = u.id
LEFT JOIN parkings p ON b.parking_spot = p.id`

// Timestamps are stored as UTC wall time in TIMESTAMP columns.
const (
	insertBookingSQL = `INSERT INTO bookings (created_by_user, parking_spot, start_date_time, end_date_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now() AT TIME ZONE 'UTC', now() AT TIME ZONE 'UTC')
		RETURNING id, created_at, updated_at`

	updateTimeframeSQL = `UPDATE bookings
		SET start_date_time = $1, end_date_time = $2, updated_at = now() AT TIME ZONE 'UTC'
		WHERE id = $3`

	// closed intervals: a booking ending exactly at tf.Start still overlaps
	findOverlappingSQL = selectBookingSQL + `
		WHERE b.parking_spot = $1 AND b.start_date_time <= $3 AND b.end_date_time >= $2
		ORDER BY b.start_date_time`
)

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, insertBookingSQL,
		booking.UserID, booking.ParkingID, booking.StartTime, booking.EndTime).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	return translateError(err)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, selectBookingSQL+` WHERE b.id = $1 LIMIT 1`, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, translateError(err)
	}
	return b, nil
}

func (r *PGBookingRepository) GetByIDForOwner(ctx context.Context, id, ownerID int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, selectBookingSQL+` WHERE b.id = $1 AND b.created_by_user = $2 LIMIT 1`, id, ownerID)
	b, err := scanBooking(row)
	if err != nil {
		return nil, translateError(err)
	}
	return b, nil
}

func (r *PGBookingRepository) UpdateTimeframe(ctx context.Context, id int64, tf domain.Timeframe) error {
	cmd, err := r.db.Exec(ctx, updateTimeframeSQL, tf.Start, tf.End, id)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindOverlapping returns the bookings of parkingID whose closed interval intersects tf.
func (r *PGBookingRepository) FindOverlapping(ctx context.Context, parkingID int64, tf domain.Timeframe) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, findOverlappingSQL, overlappingArgs(parkingID, tf)...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// overlappingArgs binds $1 parking, $2 start, $3 end for findOverlappingSQL.
func overlappingArgs(parkingID int64, tf domain.Timeframe) []any {
	return []any{parkingID, tf.Start, tf.End}
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b                          domain.Booking
		ownerID, parkingID         *int64
		userID                     *int64
		firstName, lastName, email *string
		role                       *string
		joinedParkingID            *int64
		parkingName                *string
	)
	if err := row.Scan(
		&b.ID, &ownerID, &parkingID, &b.StartTime, &b.EndTime, &b.CreatedAt, &b.UpdatedAt,
		&userID, &firstName, &lastName, &email, &role,
		&joinedParkingID, &parkingName,
	); err != nil {
		return nil, err
	}

	if ownerID != nil {
		b.UserID = *ownerID
	}
	if parkingID != nil {
		b.ParkingID = *parkingID
	}
	if userID != nil {
		b.User = &domain.User{
			ID:        *userID,
			FirstName: deref(firstName),
			LastName:  deref(lastName),
			Email:     deref(email),
			Role:      domain.Role(deref(role)),
		}
	}
	if joinedParkingID != nil {
		b.Parking = &domain.Parking{ID: *joinedParkingID, Name: deref(parkingName)}
	}
	return &b, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ BookingRepository = (*PGBookingRepository)(nil)
