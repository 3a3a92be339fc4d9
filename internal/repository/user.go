package repository

import (
	"context"

	"github.com/aadeeee/booking-backend/internal/domain"
)

// UserRepository stores user accounts.
type UserRepository interface {
	// FindByUsername returns the user or ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID returns the user or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// Save creates the user, or ErrDuplicateEntry when the username is
	// already taken.
	Save(ctx context.Context, user *domain.User) error
}
