package repository

import (
	"context"

	"github.com/aadeeee/booking-backend/internal/domain"
)

// RoomRepository stores and retrieves rooms. Room.Status is a cache; the
// only writers are the admission path and the sweeper, both of which go
// through UpdateStatus after deriving the value from bookings.
type RoomRepository interface {
	// FindByName returns the room with the given unique name, or
	// ErrRoomNotFound.
	FindByName(ctx context.Context, name string) (*domain.Room, error)

	// List returns every provisioned room, ordered by name.
	List(ctx context.Context) ([]domain.Room, error)

	// UpdateStatus persists the cached status for a room.
	UpdateStatus(ctx context.Context, name string, status domain.RoomStatus) error

	// EnsureExists creates the room if no room with its name exists yet.
	// Used by provisioning; existing rooms are left untouched.
	EnsureExists(ctx context.Context, room *domain.Room) error
}
