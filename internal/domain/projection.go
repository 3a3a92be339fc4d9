package domain

import "time"

// RoomStatusEntry is one row of the projected room-status listing.
type RoomStatusEntry struct {
	RoomName string     `json:"namatempat"`
	Status   RoomStatus `json:"status"`
}

// ProjectRoomStatus derives a room's externally visible status from its
// booking set at the given instant. Priority order: an Accepted booking
// that has not expired wins, then any Pending booking, otherwise the
// room is Available. Pure function; callers persist the result into
// Room.Status only as a cache.
func ProjectRoomStatus(bookings []Booking, now time.Time) RoomStatus {
	pending := false
	for i := range bookings {
		b := &bookings[i]
		switch b.Status {
		case BookingAccepted:
			if now.Before(b.ExpiresAt) {
				return RoomAccepted
			}
		case BookingPending:
			pending = true
		}
	}
	if pending {
		return RoomPending
	}
	return RoomAvailable
}
