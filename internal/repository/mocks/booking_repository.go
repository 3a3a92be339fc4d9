package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/aadeeee/booking-backend/internal/domain"
)

// BookingRepository is a testify mock of repository.BookingRepository.
type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Admit(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	var conflict *domain.Booking
	if v := args.Get(0); v != nil {
		conflict = v.(*domain.Booking)
	}
	return conflict, args.Error(1)
}

func (m *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	var booking *domain.Booking
	if v := args.Get(0); v != nil {
		booking = v.(*domain.Booking)
	}
	return booking, args.Error(1)
}

func (m *BookingRepository) FindActiveByRoom(ctx context.Context, roomName string) ([]domain.Booking, error) {
	args := m.Called(ctx, roomName)
	var bookings []domain.Booking
	if v := args.Get(0); v != nil {
		bookings = v.([]domain.Booking)
	}
	return bookings, args.Error(1)
}

func (m *BookingRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	var bookings []domain.Booking
	if v := args.Get(0); v != nil {
		bookings = v.([]domain.Booking)
	}
	return bookings, args.Error(1)
}

func (m *BookingRepository) FindByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, status)
	var bookings []domain.Booking
	if v := args.Get(0); v != nil {
		bookings = v.([]domain.Booking)
	}
	return bookings, args.Error(1)
}

func (m *BookingRepository) FindAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	var bookings []domain.Booking
	if v := args.Get(0); v != nil {
		bookings = v.([]domain.Booking)
	}
	return bookings, args.Error(1)
}

func (m *BookingRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *BookingRepository) FindSweepDue(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, now)
	var bookings []domain.Booking
	if v := args.Get(0); v != nil {
		bookings = v.([]domain.Booking)
	}
	return bookings, args.Error(1)
}
