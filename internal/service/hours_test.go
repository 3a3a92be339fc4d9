package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/service"
)

func TestOperationalHoursPolicy_FixedClosingTimes(t *testing.T) {
	policy := service.NewOperationalHoursPolicy()

	cases := []struct {
		name       string
		category   domain.RoomCategory
		start, end string
		wantErr    bool
	}{
		{"kindergarten inside hours", domain.CategoryKindergarten, "07:00:00", "11:00:00", false},
		{"kindergarten ends past closing", domain.CategoryKindergarten, "10:30:00", "11:30:00", true},
		{"kindergarten starts before opening", domain.CategoryKindergarten, "06:30:00", "08:00:00", true},
		{"junior high inside hours", domain.CategoryJuniorHigh, "13:00:00", "14:00:00", false},
		{"junior high ends past closing", domain.CategoryJuniorHigh, "13:30:00", "14:30:00", true},
		{"senior high inside hours", domain.CategorySeniorHigh, "14:00:00", "15:00:00", false},
		{"senior high ends past closing", domain.CategorySeniorHigh, "14:30:00", "15:00:01", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Validate(tc.category, mustWindow(t, tc.start, tc.end))
			if tc.wantErr {
				assert.ErrorIs(t, err, service.ErrOutOfHours)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOperationalHoursPolicy_MultiPurposeHasFlexibleEnd(t *testing.T) {
	policy := service.NewOperationalHoursPolicy()

	// Any end time is fine as long as the room has opened.
	assert.NoError(t, policy.Validate(domain.CategoryMultiPurpose, mustWindow(t, "07:00:00", "23:59:59")))
	assert.NoError(t, policy.Validate(domain.CategoryMultiPurpose, mustWindow(t, "18:00:00", "21:00:00")))

	err := policy.Validate(domain.CategoryMultiPurpose, mustWindow(t, "06:00:00", "09:00:00"))
	assert.ErrorIs(t, err, service.ErrOutOfHours)
}

func TestOperationalHoursPolicy_AllowedWindow(t *testing.T) {
	policy := service.NewOperationalHoursPolicy()
	candidate := mustWindow(t, "09:00:00", "16:00:00")

	allowed := policy.AllowedWindow(domain.CategorySeniorHigh, candidate)
	assert.Equal(t, domain.TimeWindow{Start: "07:00:00", End: "15:00:00"}, allowed)

	flexible := policy.AllowedWindow(domain.CategoryMultiPurpose, candidate)
	assert.Equal(t, domain.TimeWindow{Start: "07:00:00", End: "16:00:00"}, flexible)
}
