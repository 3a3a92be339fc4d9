package domain

import "time"

// RoomStatus is the externally visible state of a room. It is a
// denormalized cache of the room's booking set and must always be
// re-derivable via ProjectRoomStatus.
type RoomStatus string

const (
	RoomAvailable RoomStatus = "Available"
	RoomPending   RoomStatus = "Pending"
	RoomAccepted  RoomStatus = "Accepted"
	RoomRejected  RoomStatus = "Rejected"
)

// RoomCategory selects the operational-hours rule for a room.
type RoomCategory string

const (
	// CategoryKindergarten rooms close at 11:00.
	CategoryKindergarten RoomCategory = "kindergarten"
	// CategoryJuniorHigh rooms close at 14:00.
	CategoryJuniorHigh RoomCategory = "junior_high"
	// CategorySeniorHigh rooms close at 15:00.
	CategorySeniorHigh RoomCategory = "senior_high"
	// CategoryMultiPurpose rooms (halls, fields, the auditorium) open at
	// 07:00 and have no fixed closing time.
	CategoryMultiPurpose RoomCategory = "multipurpose"
)

// Room is a reservable space, keyed by its unique name.
type Room struct {
	ID        uint         `gorm:"primaryKey" json:"-"`
	Name      string       `gorm:"type:varchar(191);uniqueIndex:idx_room_name;not null" json:"namatempat"`
	Category  RoomCategory `gorm:"type:varchar(32);not null" json:"category"`
	Status    RoomStatus   `gorm:"type:varchar(16);not null;default:'Available'" json:"status"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"-"`
}
