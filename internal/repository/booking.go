package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aadeeee/booking-backend/internal/domain"
)

// BookingRepository stores bookings and performs the two state changes
// that must be atomic with respect to the room: admission and the
// guarded lifecycle updates. Bookings are never deleted.
type BookingRepository interface {
	// Admit inserts the booking and refreshes the room's cached status as
	// one atomic unit. The implementation must lock the room row, re-run
	// conflict detection against the room's active bookings under that
	// lock, and abort with ErrBookingConflict (returning the blocking
	// booking) when the window is taken. Returns ErrRoomNotFound when the
	// room does not exist.
	Admit(ctx context.Context, booking *domain.Booking) (conflict *domain.Booking, err error)

	// FindByID returns the booking or ErrBookingNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)

	// FindActiveByRoom returns the room's Pending and Accepted bookings.
	FindActiveByRoom(ctx context.Context, roomName string) ([]domain.Booking, error)

	// FindByUser returns every booking requested by the user.
	FindByUser(ctx context.Context, userID uint) ([]domain.Booking, error)

	// FindByStatus returns every booking in the given status.
	FindByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)

	// FindAll returns every booking.
	FindAll(ctx context.Context) ([]domain.Booking, error)

	// UpdateStatusFrom moves the booking from one status to another as a
	// compare-and-set. ErrBookingNotFound when no such booking exists,
	// ErrStaleStatus when the booking is no longer in from.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) error

	// FindSweepDue returns the bookings the sweeper must release at now:
	// active bookings with expires_at <= now plus every Rejected booking.
	FindSweepDue(ctx context.Context, now time.Time) ([]domain.Booking, error)
}
