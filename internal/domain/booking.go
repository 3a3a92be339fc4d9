package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ExpiryGrace is how long after its window end a booking keeps blocking
// the room before the sweeper releases it.
const ExpiryGrace = time.Minute

// BookingStatus is the lifecycle state of a booking. BookingReleased
// reuses the room-status vocabulary ("Available") because the original
// wire format does; it denotes an expired or released booking and is
// terminal.
type BookingStatus string

const (
	BookingPending  BookingStatus = "Pending"
	BookingAccepted BookingStatus = "Accepted"
	BookingRejected BookingStatus = "Rejected"
	BookingReleased BookingStatus = "Available"
)

// Decision is an administrator verdict on a pending booking.
type Decision string

const (
	DecisionAccept Decision = "Accepted"
	DecisionReject Decision = "Rejected"
)

var (
	// ErrInvalidTransition is returned when a lifecycle transition is not
	// legal from the booking's current status, or when the decision value
	// itself is unrecognized.
	ErrInvalidTransition = errors.New("domain: invalid booking transition")
)

// Booking is a reservation of one room for a time-of-day window on the
// day it was created. Bookings are never deleted; terminal ones are kept
// for history.
type Booking struct {
	ID             uuid.UUID     `gorm:"type:char(36);primaryKey" json:"id"`
	RoomName       string        `gorm:"type:varchar(191);index:idx_booking_room;not null" json:"namatempat"`
	UserID         uint          `gorm:"index:idx_booking_user;not null" json:"user_id"`
	RequesterName  string        `gorm:"type:varchar(191);not null" json:"nama"`
	Window         TimeWindow    `gorm:"embedded;embeddedPrefix:window_" json:"jam_peminjaman"`
	ActivityDetail string        `gorm:"type:text" json:"detail_kegiatan"`
	Status         BookingStatus `gorm:"type:varchar(16);index:idx_booking_status;not null;default:'Pending'" json:"status"`
	ExpiresAt      time.Time     `gorm:"index:idx_booking_expires;not null" json:"expired_at"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewBooking admits a validated request as a Pending booking. The window
// is anchored to now's civil day in loc; expiry is the window end plus
// the fixed grace period.
func NewBooking(roomName string, userID uint, requesterName string, window TimeWindow, detail string, now time.Time, loc *time.Location) *Booking {
	return &Booking{
		ID:             uuid.New(),
		RoomName:       roomName,
		UserID:         userID,
		RequesterName:  requesterName,
		Window:         window,
		ActivityDetail: detail,
		Status:         BookingPending,
		ExpiresAt:      window.EndOn(now, loc).Add(ExpiryGrace),
		CreatedAt:      now,
	}
}

// Active reports whether the booking blocks its room's window: only
// Pending and Accepted bookings participate in conflict detection.
func (b *Booking) Active() bool {
	return b.Status == BookingPending || b.Status == BookingAccepted
}

// Decide applies an administrator decision. Only Pending bookings may be
// decided; anything else fails with ErrInvalidTransition, as does an
// unrecognized decision value.
func (b *Booking) Decide(decision Decision) error {
	if decision != DecisionAccept && decision != DecisionReject {
		return ErrInvalidTransition
	}
	if b.Status != BookingPending {
		return ErrInvalidTransition
	}
	b.Status = BookingStatus(decision)
	return nil
}

// SweepDue reports whether the sweeper should release this booking at
// now: active bookings past their expiry, and every Rejected booking
// regardless of its window.
func (b *Booking) SweepDue(now time.Time) bool {
	if b.Status == BookingRejected {
		return true
	}
	return b.Active() && !now.Before(b.ExpiresAt)
}

// Release moves the booking to its terminal state. Releasing an
// already-released booking is a no-op, which keeps sweep retries
// idempotent.
func (b *Booking) Release() {
	b.Status = BookingReleased
}
