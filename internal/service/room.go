package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/repository"
)

// RoomStatusCache is the read accelerator for the room-status listing.
// Implemented over Redis; nil disables caching.
type RoomStatusCache interface {
	Get(ctx context.Context) ([]domain.RoomStatusEntry, error)
	Set(ctx context.Context, entries []domain.RoomStatusEntry) error
	Invalidate(ctx context.Context)
}

// RoomService answers room listing queries.
type RoomService struct {
	rooms    repository.RoomRepository
	bookings repository.BookingRepository
	clock    Clock
	loc      *time.Location
	cache    RoomStatusCache
}

func NewRoomService(
	rooms repository.RoomRepository,
	bookings repository.BookingRepository,
	clock Clock,
	loc *time.Location,
	cache RoomStatusCache,
) *RoomService {
	if rooms == nil || bookings == nil {
		panic("repositories cannot be nil for RoomService")
	}
	if clock == nil {
		panic("Clock cannot be nil for RoomService")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &RoomService{rooms: rooms, bookings: bookings, clock: clock, loc: loc, cache: cache}
}

// ListRoomStatuses returns every room with its status projected at read
// time from the current booking set. Projection here tolerates sweep
// latency: it is a pure re-derivation, never a write, so it cannot fight
// the sweeper over the cached Room.Status. The listing itself is cached
// in Redis with a short TTL and invalidated on every booking mutation.
func (s *RoomService) ListRoomStatuses(ctx context.Context) ([]domain.RoomStatusEntry, error) {
	if s.cache != nil {
		if entries, err := s.cache.Get(ctx); err != nil {
			logrus.WithError(err).Warn("Room status cache read failed, falling back to store")
		} else if entries != nil {
			return entries, nil
		}
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list rooms")
		return nil, ErrInternalServer
	}

	now := s.clock.Now().In(s.loc)
	entries := make([]domain.RoomStatusEntry, 0, len(rooms))
	for i := range rooms {
		active, err := s.bookings.FindActiveByRoom(ctx, rooms[i].Name)
		if err != nil {
			logrus.WithError(err).WithField("room", rooms[i].Name).Error("Failed to load bookings for projection")
			return nil, ErrInternalServer
		}
		entries = append(entries, domain.RoomStatusEntry{
			RoomName: rooms[i].Name,
			Status:   domain.ProjectRoomStatus(active, now),
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			logrus.WithError(err).Warn("Room status cache write failed")
		}
	}
	return entries, nil
}
