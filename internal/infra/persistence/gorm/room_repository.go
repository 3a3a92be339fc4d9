package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/repository"
)

// GormRoomRepository is the GORM implementation of RoomRepository.
type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRoomRepository")
	}
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) FindByName(ctx context.Context, name string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find room by name %q: %w", name, err)
	}
	return &room, nil
}

func (r *GormRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list rooms: %w", err)
	}
	return rooms, nil
}

// UpdateStatus takes the same row lock as admission before writing the
// cached status, so a reconciliation cannot interleave with an admission
// on the same room.
func (r *GormRoomRepository) UpdateStatus(ctx context.Context, name string, status domain.RoomStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
			First(&room).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrRoomNotFound
			}
			return fmt.Errorf("gorm: lock room %q: %w", name, err)
		}
		if room.Status == status {
			return nil
		}
		if err := tx.Model(&domain.Room{}).Where("name = ?", name).Update("status", status).Error; err != nil {
			return fmt.Errorf("gorm: update room %q status: %w", name, err)
		}
		return nil
	})
}

func (r *GormRoomRepository) EnsureExists(ctx context.Context, room *domain.Room) error {
	err := r.db.WithContext(ctx).
		Where("name = ?", room.Name).
		FirstOrCreate(room).Error
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			// Concurrent seeding; the room exists, which is what we wanted.
			return nil
		}
		return fmt.Errorf("gorm: ensure room %q: %w", room.Name, err)
	}
	return nil
}
