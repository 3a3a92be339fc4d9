package service

import "time"

// Clock supplies the current instant. Injected so tests can pin time;
// the production clock reports time in the configured operating
// timezone, which is what anchors "today" for same-day bookings.
type Clock interface {
	Now() time.Time
}

type locationClock struct {
	loc *time.Location
}

// NewLocationClock returns the real clock observed in loc.
func NewLocationClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &locationClock{loc: loc}
}

func (c *locationClock) Now() time.Time {
	return time.Now().In(c.loc)
}
