package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/repository"
)

// GormBookingRepository is the GORM implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	if db == nil {
		panic("database connection cannot be nil for GormBookingRepository")
	}
	return &GormBookingRepository{db: db}
}

// Admit performs the whole admission as one transaction: it takes a
// SELECT ... FOR UPDATE lock on the room row, re-runs conflict detection
// against the room's active bookings under that lock, inserts the
// booking, and writes the projected room status. The row lock serializes
// concurrent admissions (and the sweeper's reconciliation) on the same
// room, closing the check-then-insert race of a naive two-step write.
func (r *GormBookingRepository) Admit(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	var conflict *domain.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", booking.RoomName).
			First(&room).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrRoomNotFound
			}
			return fmt.Errorf("gorm: lock room %q: %w", booking.RoomName, err)
		}

		active, err := findActiveByRoom(tx, booking.RoomName)
		if err != nil {
			return err
		}

		if blocking := domain.FindConflict(booking.Window, active); blocking != nil {
			conflict = blocking
			return repository.ErrBookingConflict
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("gorm: insert booking %s: %w", booking.ID, err)
		}

		status := domain.ProjectRoomStatus(append(active, *booking), booking.CreatedAt)
		if status != room.Status {
			err := tx.Model(&domain.Room{}).
				Where("name = ?", room.Name).
				Update("status", status).Error
			if err != nil {
				return fmt.Errorf("gorm: update room %q status: %w", room.Name, err)
			}
		}
		return nil
	})

	if errors.Is(err, repository.ErrBookingConflict) {
		return conflict, err
	}
	return nil, err
}

func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}
		return nil, fmt.Errorf("gorm: find booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *GormBookingRepository) FindActiveByRoom(ctx context.Context, roomName string) ([]domain.Booking, error) {
	return findActiveByRoom(r.db.WithContext(ctx), roomName)
}

func findActiveByRoom(tx *gorm.DB, roomName string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := tx.Where("room_name = ? AND status IN ?", roomName,
		[]domain.BookingStatus{domain.BookingPending, domain.BookingAccepted}).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find active bookings for room %q: %w", roomName, err)
	}
	return bookings, nil
}

func (r *GormBookingRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find bookings for user %d: %w", userID, err)
	}
	return bookings, nil
}

func (r *GormBookingRepository) FindByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find bookings with status %q: %w", status, err)
	}
	return bookings, nil
}

func (r *GormBookingRepository) FindAll(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find all bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatusFrom is a guarded compare-and-set: the UPDATE matches on
// both id and the expected current status, so a booking concurrently
// moved elsewhere affects zero rows instead of being clobbered.
func (r *GormBookingRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("gorm: update booking %s status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: recheck booking %s: %w", id, err)
		}
		if count == 0 {
			return repository.ErrBookingNotFound
		}
		return repository.ErrStaleStatus
	}
	return nil
}

func (r *GormBookingRepository) FindSweepDue(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("(status IN ? AND expires_at <= ?) OR status = ?",
			[]domain.BookingStatus{domain.BookingPending, domain.BookingAccepted},
			now, domain.BookingRejected).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find sweep-due bookings: %w", err)
	}
	return bookings, nil
}
