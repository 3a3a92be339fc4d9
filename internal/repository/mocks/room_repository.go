package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aadeeee/booking-backend/internal/domain"
)

// RoomRepository is a testify mock of repository.RoomRepository.
type RoomRepository struct {
	mock.Mock
}

func (m *RoomRepository) FindByName(ctx context.Context, name string) (*domain.Room, error) {
	args := m.Called(ctx, name)
	var room *domain.Room
	if v := args.Get(0); v != nil {
		room = v.(*domain.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	var rooms []domain.Room
	if v := args.Get(0); v != nil {
		rooms = v.([]domain.Room)
	}
	return rooms, args.Error(1)
}

func (m *RoomRepository) UpdateStatus(ctx context.Context, name string, status domain.RoomStatus) error {
	args := m.Called(ctx, name, status)
	return args.Error(0)
}

func (m *RoomRepository) EnsureExists(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
