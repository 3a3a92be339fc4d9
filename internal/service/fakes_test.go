package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/repository"
)

// memBookingRepo is an in-memory BookingRepository honouring the same
// admission and compare-and-set contracts as the MySQL implementation.
// Used for scenario tests where the interplay of several operations
// matters more than individual call expectations.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings []domain.Booking
}

func (r *memBookingRepo) Admit(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sameRoom []domain.Booking
	for _, b := range r.bookings {
		if b.RoomName == booking.RoomName {
			sameRoom = append(sameRoom, b)
		}
	}
	if conflict := domain.FindConflict(booking.Window, sameRoom); conflict != nil {
		return conflict, repository.ErrBookingConflict
	}
	r.bookings = append(r.bookings, *booking)
	return nil, nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (r *memBookingRepo) FindActiveByRoom(_ context.Context, roomName string) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.RoomName == roomName && b.Active() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) FindByUser(_ context.Context, userID uint) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) FindByStatus(_ context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) FindAll(_ context.Context) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *memBookingRepo) UpdateStatusFrom(_ context.Context, id uuid.UUID, from, to domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID != id {
			continue
		}
		if r.bookings[i].Status != from {
			return repository.ErrStaleStatus
		}
		r.bookings[i].Status = to
		return nil
	}
	return repository.ErrBookingNotFound
}

func (r *memBookingRepo) FindSweepDue(_ context.Context, now time.Time) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.SweepDue(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

// memRoomRepo is the in-memory counterpart for rooms.
type memRoomRepo struct {
	mu    sync.Mutex
	rooms map[string]domain.Room
}

func newMemRoomRepo(rooms ...domain.Room) *memRoomRepo {
	r := &memRoomRepo{rooms: make(map[string]domain.Room, len(rooms))}
	for _, room := range rooms {
		if room.Status == "" {
			room.Status = domain.RoomAvailable
		}
		r.rooms[room.Name] = room
	}
	return r
}

func (r *memRoomRepo) FindByName(_ context.Context, name string) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[name]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &room, nil
}

func (r *memRoomRepo) List(_ context.Context) ([]domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out, nil
}

func (r *memRoomRepo) UpdateStatus(_ context.Context, name string, status domain.RoomStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[name]
	if !ok {
		return repository.ErrRoomNotFound
	}
	room.Status = status
	r.rooms[name] = room
	return nil
}

func (r *memRoomRepo) EnsureExists(_ context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[room.Name]; !ok {
		r.rooms[room.Name] = *room
	}
	return nil
}

func (r *memRoomRepo) status(name string) domain.RoomStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms[name].Status
}
