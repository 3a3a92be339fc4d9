package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/repository"
)

// ErrSweepInProgress is returned when a tick is requested while the
// previous one is still running; the caller skips instead of stacking.
var ErrSweepInProgress = errors.New("expiry sweep already running")

// SweepService releases stale bookings and repairs the cached room
// statuses. It is triggerless: a scheduler invokes RunTick on a fixed
// cadence, and each booking transition is an independent unit of work —
// a failure on one is logged and skipped, never aborting the batch.
// Releasing is idempotent, so a booking skipped this tick is simply
// retried on the next (at-least-once).
type SweepService struct {
	bookings repository.BookingRepository
	rooms    repository.RoomRepository
	clock    Clock
	loc      *time.Location
	cache    StatusCacheInvalidator

	mu sync.Mutex
}

func NewSweepService(
	bookings repository.BookingRepository,
	rooms repository.RoomRepository,
	clock Clock,
	loc *time.Location,
	cache StatusCacheInvalidator,
) *SweepService {
	if bookings == nil || rooms == nil {
		panic("repositories cannot be nil for SweepService")
	}
	if clock == nil {
		panic("Clock cannot be nil for SweepService")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SweepService{bookings: bookings, rooms: rooms, clock: clock, loc: loc, cache: cache}
}

// RunTick executes one sweep cycle. Only one tick runs at a time; a tick
// landing while the previous is still in flight returns
// ErrSweepInProgress and is dropped.
func (s *SweepService) RunTick(ctx context.Context) error {
	if !s.mu.TryLock() {
		return ErrSweepInProgress
	}
	defer s.mu.Unlock()

	now := s.clock.Now().In(s.loc)
	logCtx := logrus.WithField("sweep_at", now.Format(time.RFC3339))

	due, err := s.bookings.FindSweepDue(ctx, now)
	if err != nil {
		// Transient store failure: log and let the next tick retry.
		logCtx.WithError(err).Error("Sweep tick failed to select due bookings")
		return err
	}
	if len(due) == 0 {
		return nil
	}
	logCtx.WithField("due", len(due)).Info("Releasing stale bookings")

	released := 0
	roomsTouched := make(map[string]struct{})
	for i := range due {
		b := &due[i]
		if !b.SweepDue(now) {
			continue
		}
		err := s.bookings.UpdateStatusFrom(ctx, b.ID, b.Status, domain.BookingReleased)
		if err != nil {
			if errors.Is(err, repository.ErrStaleStatus) {
				// Someone else moved it first; re-applying release to an
				// already-released booking is a no-op, so nothing to do.
				roomsTouched[b.RoomName] = struct{}{}
				continue
			}
			logCtx.WithError(err).WithField("booking_id", b.ID).Error("Failed to release booking, will retry next tick")
			continue
		}
		released++
		roomsTouched[b.RoomName] = struct{}{}
	}

	for roomName := range roomsTouched {
		if err := reconcileRoomStatus(ctx, s.rooms, s.bookings, roomName, now); err != nil {
			logCtx.WithError(err).WithField("room", roomName).Error("Failed to reconcile room status, will retry next tick")
		}
	}

	if s.cache != nil && len(roomsTouched) > 0 {
		s.cache.Invalidate(ctx)
	}

	logCtx.WithFields(logrus.Fields{"released": released, "rooms": len(roomsTouched)}).Info("Sweep tick complete")
	return nil
}
