package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrInvalidTimeFormat is returned when a window bound is not a valid
// HH:MM:SS clock time, or when the window would be empty or inverted.
var ErrInvalidTimeFormat = errors.New("domain: invalid time window format")

// timeOfDayPattern matches HH:MM:SS with hour 00-23 and minute/second 00-59.
var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d):([0-5]\d)$`)

// TimeWindow is a half-open [Start, End) interval of a single civil day,
// both bounds expressed as zero-padded HH:MM:SS strings. Because the
// representation is fixed-width and both bounds share the day, plain
// string comparison is a correct ordering.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NewTimeWindow validates both bounds and requires Start < End.
func NewTimeWindow(start, end string) (TimeWindow, error) {
	if !timeOfDayPattern.MatchString(start) {
		return TimeWindow{}, fmt.Errorf("%w: start %q", ErrInvalidTimeFormat, start)
	}
	if !timeOfDayPattern.MatchString(end) {
		return TimeWindow{}, fmt.Errorf("%w: end %q", ErrInvalidTimeFormat, end)
	}
	if start >= end {
		return TimeWindow{}, fmt.Errorf("%w: start %q must be before end %q", ErrInvalidTimeFormat, start, end)
	}
	return TimeWindow{Start: start, End: end}, nil
}

// Overlaps reports whether the two half-open windows intersect.
// Touching endpoints (w.End == other.Start) do not conflict.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start < other.End && w.End > other.Start
}

// StartOn anchors the window start to the given civil day in loc.
func (w TimeWindow) StartOn(day time.Time, loc *time.Location) time.Time {
	return anchorClock(w.Start, day, loc)
}

// EndOn anchors the window end to the given civil day in loc.
func (w TimeWindow) EndOn(day time.Time, loc *time.Location) time.Time {
	return anchorClock(w.End, day, loc)
}

func (w TimeWindow) String() string {
	return w.Start + "-" + w.End
}

func anchorClock(clock string, day time.Time, loc *time.Location) time.Time {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		// Bounds are validated on construction; an unparseable value here
		// means the window bypassed NewTimeWindow.
		panic(fmt.Sprintf("domain: malformed time-of-day %q: %v", clock, err))
	}
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
}
