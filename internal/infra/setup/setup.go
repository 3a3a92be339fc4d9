package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/repository"
)

// InitDB opens the MySQL connection pool used by every repository.
func InitDB(user, password, host, port, name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// MigrateDB creates or updates the schema for all persisted models.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Room{}, &domain.Booking{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	logrus.Info("Database migration completed")
	return nil
}

// InitRedis connects the Redis client used by the rate limiter, the
// room-status cache and asynq.
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 5,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// seedRooms is the provisioning list of known rooms. Rooms are created
// once and never deleted; re-running the seed leaves existing rows (and
// their cached status) untouched.
var seedRooms = []domain.Room{
	{Name: "Lapangan Olahraga", Category: domain.CategoryMultiPurpose},
	{Name: "Lapangan Upacara", Category: domain.CategoryMultiPurpose},
	{Name: "Auditorium", Category: domain.CategoryMultiPurpose},
	{Name: "Ruang Serbaguna A", Category: domain.CategoryMultiPurpose},
	{Name: "Ruang Serbaguna B", Category: domain.CategoryMultiPurpose},
	{Name: "Kelas TK A", Category: domain.CategoryKindergarten},
	{Name: "Kelas TK B", Category: domain.CategoryKindergarten},
	{Name: "Kelas SMP 8A", Category: domain.CategoryJuniorHigh},
	{Name: "Kelas SMA 11A", Category: domain.CategorySeniorHigh},
}

// SeedRooms provisions the known room list.
func SeedRooms(ctx context.Context, rooms repository.RoomRepository) error {
	for i := range seedRooms {
		room := seedRooms[i]
		room.Status = domain.RoomAvailable
		if err := rooms.EnsureExists(ctx, &room); err != nil {
			return fmt.Errorf("seed room %q: %w", room.Name, err)
		}
	}
	logrus.WithField("rooms", len(seedRooms)).Info("Room provisioning complete")
	return nil
}
