package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/repository"
)

// StatusCacheInvalidator drops the cached room-status listing after a
// mutation. Implemented by the Redis cache; a no-op in tests.
type StatusCacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// BookingRequest is a validated-on-entry booking submission.
type BookingRequest struct {
	RoomName       string
	UserID         uint
	RequesterName  string
	Start          string
	End            string
	ActivityDetail string
}

// BookingService owns booking admission and administrator decisions.
type BookingService struct {
	bookings repository.BookingRepository
	rooms    repository.RoomRepository
	hours    *OperationalHoursPolicy
	clock    Clock
	loc      *time.Location
	cache    StatusCacheInvalidator
}

func NewBookingService(
	bookings repository.BookingRepository,
	rooms repository.RoomRepository,
	hours *OperationalHoursPolicy,
	clock Clock,
	loc *time.Location,
	cache StatusCacheInvalidator,
) *BookingService {
	if bookings == nil || rooms == nil {
		panic("repositories cannot be nil for BookingService")
	}
	if hours == nil {
		hours = NewOperationalHoursPolicy()
	}
	if clock == nil {
		panic("Clock cannot be nil for BookingService")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{
		bookings: bookings,
		rooms:    rooms,
		hours:    hours,
		clock:    clock,
		loc:      loc,
		cache:    cache,
	}
}

// RequestBooking validates and admits a booking request for a window on
// the current civil day. Validation order: time format, room existence,
// operational hours, then conflict detection — the latter re-checked
// atomically by the repository under the room lock.
func (s *BookingService) RequestBooking(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	logCtx := logrus.WithFields(logrus.Fields{
		"room":    req.RoomName,
		"user_id": req.UserID,
		"window":  req.Start + "-" + req.End,
	})

	window, err := domain.NewTimeWindow(req.Start, req.End)
	if err != nil {
		logCtx.WithError(err).Warn("Booking request rejected: malformed window")
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}

	room, err := s.rooms.FindByName(ctx, req.RoomName)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Booking request failed: room lookup")
		return nil, ErrInternalServer
	}

	if err := s.hours.Validate(room.Category, window); err != nil {
		logCtx.WithField("category", room.Category).Warn("Booking request rejected: out of hours")
		return nil, err
	}

	now := s.clock.Now().In(s.loc)
	booking := domain.NewBooking(room.Name, req.UserID, req.RequesterName, window, req.ActivityDetail, now, s.loc)

	conflict, err := s.bookings.Admit(ctx, booking)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingConflict):
			logCtx.WithField("blocking_booking", conflict.ID).Info("Booking request rejected: window conflict")
			return nil, fmt.Errorf("%w: taken %s", ErrRoomUnavailable, conflict.Window)
		case errors.Is(err, repository.ErrRoomNotFound):
			return nil, ErrRoomNotFound
		default:
			logCtx.WithError(err).Error("Booking admission failed")
			return nil, ErrInternalServer
		}
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	logCtx.WithField("booking_id", booking.ID).Info("Booking admitted")
	return booking, nil
}

// DecideBooking applies an administrator decision to a Pending booking.
// Only Pending bookings may be decided; the status write is a guarded
// compare-and-set so concurrent decisions (or a racing sweep) cannot
// both win.
func (s *BookingService) DecideBooking(ctx context.Context, id uuid.UUID, decision domain.Decision, actorIsAdmin bool) (*domain.Booking, error) {
	logCtx := logrus.WithFields(logrus.Fields{"booking_id": id, "decision": decision})

	if !actorIsAdmin {
		logCtx.Warn("Booking decision refused: actor is not an administrator")
		return nil, ErrForbidden
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		logCtx.WithError(err).Error("Booking decision failed: lookup")
		return nil, ErrInternalServer
	}

	if err := booking.Decide(decision); err != nil {
		logCtx.WithField("status", booking.Status).Warn("Booking decision refused: not pending or unknown decision")
		return nil, ErrInvalidTransition
	}

	err = s.bookings.UpdateStatusFrom(ctx, id, domain.BookingPending, booking.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleStatus):
			// Lost the race against another decision or the sweeper.
			return nil, ErrInvalidTransition
		case errors.Is(err, repository.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		default:
			logCtx.WithError(err).Error("Booking decision failed: status update")
			return nil, ErrInternalServer
		}
	}

	now := s.clock.Now().In(s.loc)
	if err := reconcileRoomStatus(ctx, s.rooms, s.bookings, booking.RoomName, now); err != nil {
		// The booking transition committed; the cached room status will be
		// repaired by the next sweep tick or read-time projection.
		logCtx.WithError(err).Warn("Room status reconciliation deferred to sweeper")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	logCtx.WithField("status", booking.Status).Info("Booking decided")
	return booking, nil
}

// ListUserBookings returns every booking the user has requested.
func (s *BookingService) ListUserBookings(ctx context.Context, userID uint) ([]domain.Booking, error) {
	bookings, err := s.bookings.FindByUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list user bookings")
		return nil, ErrInternalServer
	}
	return bookings, nil
}

// ListPendingBookings returns the administrator review queue.
func (s *BookingService) ListPendingBookings(ctx context.Context, actorIsAdmin bool) ([]domain.Booking, error) {
	if !actorIsAdmin {
		return nil, ErrForbidden
	}
	bookings, err := s.bookings.FindByStatus(ctx, domain.BookingPending)
	if err != nil {
		logrus.WithError(err).Error("Failed to list pending bookings")
		return nil, ErrInternalServer
	}
	return bookings, nil
}

// ListAllBookings returns the full booking history for administrators.
func (s *BookingService) ListAllBookings(ctx context.Context, actorIsAdmin bool) ([]domain.Booking, error) {
	if !actorIsAdmin {
		return nil, ErrForbidden
	}
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list all bookings")
		return nil, ErrInternalServer
	}
	return bookings, nil
}

// reconcileRoomStatus re-derives a room's cached status from its active
// bookings and persists it. Shared by the decision path and the sweeper;
// idempotent, so repeated application is safe.
func reconcileRoomStatus(
	ctx context.Context,
	rooms repository.RoomRepository,
	bookings repository.BookingRepository,
	roomName string,
	now time.Time,
) error {
	active, err := bookings.FindActiveByRoom(ctx, roomName)
	if err != nil {
		return err
	}
	status := domain.ProjectRoomStatus(active, now)
	return rooms.UpdateStatus(ctx, roomName, status)
}
