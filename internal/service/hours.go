package service

import (
	"fmt"

	"github.com/aadeeee/booking-backend/internal/domain"
)

const openingTime = "07:00:00"

// closingTimes holds the fixed closing time per room category.
// Multi-purpose rooms are absent: they open at 07:00 but close whenever
// the requester's own window ends.
var closingTimes = map[domain.RoomCategory]string{
	domain.CategoryKindergarten: "11:00:00",
	domain.CategoryJuniorHigh:   "14:00:00",
	domain.CategorySeniorHigh:   "15:00:00",
}

// OperationalHoursPolicy validates a candidate window against the
// room's allowed hours. It runs strictly before conflict detection.
type OperationalHoursPolicy struct{}

func NewOperationalHoursPolicy() *OperationalHoursPolicy {
	return &OperationalHoursPolicy{}
}

// AllowedWindow returns the room's allowed window for the given
// candidate. For flexible-end categories the closing time is the
// candidate's own end.
func (p *OperationalHoursPolicy) AllowedWindow(category domain.RoomCategory, candidate domain.TimeWindow) domain.TimeWindow {
	closing, fixed := closingTimes[category]
	if !fixed {
		closing = candidate.End
	}
	return domain.TimeWindow{Start: openingTime, End: closing}
}

// Validate fails with ErrOutOfHours when the candidate starts before the
// room opens or ends after it closes.
func (p *OperationalHoursPolicy) Validate(category domain.RoomCategory, candidate domain.TimeWindow) error {
	allowed := p.AllowedWindow(category, candidate)
	if candidate.Start < allowed.Start || candidate.End > allowed.End {
		return fmt.Errorf("%w: allowed %s, requested %s", ErrOutOfHours, allowed, candidate)
	}
	return nil
}
