package booking

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Domenick1991/parkbooking/internal/apperrors"
	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/Domenick1991/parkbooking/internal/kafka"
	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/Domenick1991/parkbooking/internal/repository"
)

const (
	MsgUnableToBook       = "Unable to book"
	MsgUnknownParking     = "Unable to book, parking does not exist"
	MsgCreateLocked       = "Unable to book, parking is locked by another request"
	MsgParkingNotAttached = "Unable to update, parking not attached"
	MsgInvalidTimeframe   = "Unable to update booking, invalid timeframe"
	MsgUpdateLocked       = "Unable to update booking, parking is locked by another request"
)

const (
	defaultLockTTL     = 5 * time.Second
	lockReleaseTimeout = time.Second
	lockRetryMin       = 10 * time.Millisecond
	lockRetryMax       = 200 * time.Millisecond
	publishTimeout     = 2 * time.Second
)

type BookingUseCase interface {
	Create(ctx context.Context, callerID, parkingID int64, tf domain.Timeframe) (*domain.Booking, error)
	GetByID(ctx context.Context, caller domain.User, id int64) (*domain.Booking, error)
	DeleteByID(ctx context.Context, caller domain.User, id int64) error
	Update(ctx context.Context, caller domain.User, id int64, tf domain.Timeframe) error
}

// Locker serializes the overlap check and the write for one parking.
type Locker interface {
	AcquireParkingLock(ctx context.Context, parkingID int64, ttl time.Duration) (string, bool, error)
	ReleaseParkingLock(ctx context.Context, parkingID int64, token string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type BookingService struct {
	bookings    repository.BookingRepository
	locker      Locker
	producer    Producer
	log         *logger.Logger
	eventsTopic string
	lockTTL     time.Duration
	lockWait    time.Duration
}

type BookingServiceOption func(*BookingService)

func WithEventsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.eventsTopic = topic
	}
}

func WithLockTTL(ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithLockWait bounds how long a request waits for a parking lock held by
// another request. It defaults to the lock TTL.
func WithLockWait(wait time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if wait > 0 {
			s.lockWait = wait
		}
	}
}

// NewBookingService wires the booking rules. locker and producer may be nil:
// without a locker concurrent creates are not serialized, without a producer
// no events are published.
func NewBookingService(
	bookings repository.BookingRepository,
	locker Locker,
	producer Producer,
	log *logger.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		locker:   locker,
		producer: producer,
		log:      log,
		lockTTL:  defaultLockTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	if service.lockWait == 0 {
		service.lockWait = service.lockTTL
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, callerID, parkingID int64, tf domain.Timeframe) (*domain.Booking, error) {
	release, err := s.lockParking(ctx, parkingID, MsgCreateLocked)
	if err != nil {
		return nil, err
	}
	defer release()

	overlapping, err := s.bookings.FindOverlapping(ctx, parkingID, tf)
	if err != nil {
		return nil, s.internal("find overlapping bookings", err, "parking_id", parkingID)
	}
	if conflict, found := firstConflict(overlapping, tf, 0); found {
		s.log.Info("Booking rejected, timeframe overlaps",
			"user_id", callerID,
			"parking_id", parkingID,
			"conflicting_booking_id", conflict.ID,
		)
		return nil, apperrors.Conflict(MsgUnableToBook)
	}

	booking := &domain.Booking{
		UserID:    callerID,
		ParkingID: parkingID,
		StartTime: tf.Start,
		EndTime:   tf.End,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrReferenceViolation) {
			return nil, apperrors.Wrap(err, apperrors.KindConflict, MsgUnknownParking)
		}
		return nil, s.internal("insert booking", err, "parking_id", parkingID)
	}

	s.log.Info("Booking created successfully",
		"booking_id", booking.ID,
		"user_id", callerID,
		"parking_id", parkingID,
	)
	s.publish(ctx, kafka.EventBookingCreated, callerID, booking)
	return booking, nil
}

// GetByID hides bookings of other users from standard callers: a foreign
// booking and a missing one both yield NotFound.
func (s *BookingService) GetByID(ctx context.Context, caller domain.User, id int64) (*domain.Booking, error) {
	var (
		booking *domain.Booking
		err     error
	)
	if caller.IsAdmin() {
		booking, err = s.bookings.GetByID(ctx, id)
	} else {
		booking, err = s.bookings.GetByIDForOwner(ctx, id, caller.ID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound()
		}
		return nil, s.internal("get booking", err, "booking_id", id)
	}
	return booking, nil
}

func (s *BookingService) DeleteByID(ctx context.Context, caller domain.User, id int64) error {
	booking, err := s.GetByID(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, booking.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound()
		}
		return s.internal("delete booking", err, "booking_id", booking.ID)
	}

	s.log.Info("Booking deleted", "booking_id", booking.ID, "actor_id", caller.ID)
	s.publish(ctx, kafka.EventBookingDeleted, caller.ID, booking)
	return nil
}

func (s *BookingService) Update(ctx context.Context, caller domain.User, id int64, tf domain.Timeframe) error {
	booking, err := s.GetByID(ctx, caller, id)
	if err != nil {
		return err
	}
	if booking.Parking == nil {
		return apperrors.Conflict(MsgParkingNotAttached)
	}

	release, err := s.lockParking(ctx, booking.Parking.ID, MsgUpdateLocked)
	if err != nil {
		return err
	}
	defer release()

	overlapping, err := s.bookings.FindOverlapping(ctx, booking.Parking.ID, tf)
	if err != nil {
		return s.internal("find overlapping bookings", err, "parking_id", booking.Parking.ID)
	}
	if conflict, found := firstConflict(overlapping, tf, booking.ID); found {
		s.log.Info("Booking update rejected, timeframe overlaps",
			"booking_id", booking.ID,
			"parking_id", booking.Parking.ID,
			"conflicting_booking_id", conflict.ID,
		)
		return apperrors.Conflict(MsgInvalidTimeframe)
	}

	if err := s.bookings.UpdateTimeframe(ctx, booking.ID, tf); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound()
		}
		return s.internal("update booking", err, "booking_id", booking.ID)
	}

	booking.StartTime = tf.Start
	booking.EndTime = tf.End
	s.log.Info("Booking updated", "booking_id", booking.ID, "actor_id", caller.ID)
	s.publish(ctx, kafka.EventBookingUpdated, caller.ID, booking)
	return nil
}

// lockParking waits for the parking lock with backoff. A lock still held
// after lockWait is a Conflict; an expired request context is an internal
// error wrapping ctx.Err().
func (s *BookingService) lockParking(ctx context.Context, parkingID int64, busyMessage string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	backoff := lockRetryMin
	for {
		token, ok, err := s.locker.AcquireParkingLock(waitCtx, parkingID, s.lockTTL)
		if err != nil && waitCtx.Err() == nil {
			return nil, s.internal("acquire parking lock", err, "parking_id", parkingID)
		}
		if ok {
			return s.releaser(ctx, parkingID, token), nil
		}

		timer := time.NewTimer(backoff)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, s.internal("wait for parking lock", ctxErr, "parking_id", parkingID)
			}
			s.log.Warn("Parking lock is held by another request", "parking_id", parkingID, "waited", s.lockWait)
			return nil, apperrors.Conflict(busyMessage)
		case <-timer.C:
		}
		backoff = min(backoff*2, lockRetryMax)
	}
}

func (s *BookingService) releaser(ctx context.Context, parkingID int64, token string) func() {
	return func() {
		// the request context may already be cancelled here
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lockReleaseTimeout)
		defer cancel()
		if err := s.locker.ReleaseParkingLock(releaseCtx, parkingID, token); err != nil {
			s.log.Warn("Failed to release parking lock", "parking_id", parkingID, "error", err)
		}
	}
}

func (s *BookingService) publish(ctx context.Context, eventType kafka.EventType, actorID int64, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.NewBookingEvent(eventType, actorID, booking.ID, booking.UserID, booking.ParkingID, booking.StartTime, booking.EndTime)

	// detached: the mutation is already committed
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.producer.Publish(publishCtx, s.eventsTopic, strconv.FormatInt(booking.ID, 10), event); err != nil {
		s.log.Warn("Failed to publish booking event", "type", eventType, "booking_id", booking.ID, "error", err)
	}
}

// firstConflict returns the first candidate whose interval really intersects
// tf, skipping the booking identified by self.
func firstConflict(candidates []domain.Booking, tf domain.Timeframe, self int64) (domain.Booking, bool) {
	for _, other := range candidates {
		if self != 0 && other.ID == self {
			continue
		}
		if tf.Overlaps(other.Timeframe()) {
			return other, true
		}
	}
	return domain.Booking{}, false
}

func (s *BookingService) internal(op string, err error, args ...any) error {
	s.log.Error("Booking operation failed", append([]any{"op", op, "error", err}, args...)...)
	return apperrors.Internal(err)
}

var _ BookingUseCase = (*BookingService)(nil)
