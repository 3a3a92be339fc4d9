package domain

// FindConflict scans a room's bookings and returns the first active one
// whose window overlaps the candidate, or nil when the room is free for
// that window. Rejected and released bookings never block. The decision
// is a pure read over the supplied snapshot; admission must re-run it
// under the room row lock to make it authoritative.
func FindConflict(candidate TimeWindow, existing []Booking) *Booking {
	for i := range existing {
		b := &existing[i]
		if !b.Active() {
			continue
		}
		if candidate.Overlaps(b.Window) {
			return b
		}
	}
	return nil
}
