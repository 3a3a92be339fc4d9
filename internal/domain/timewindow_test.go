package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadeeee/booking-backend/internal/domain"
)

func TestNewTimeWindow_Valid(t *testing.T) {
	w, err := domain.NewTimeWindow("09:00:00", "10:30:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", w.Start)
	assert.Equal(t, "10:30:00", w.End)
}

func TestNewTimeWindow_RejectsMalformedBounds(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"missing seconds", "09:00", "10:00:00"},
		{"hour out of range", "24:00:00", "25:00:00"},
		{"minute out of range", "09:60:00", "10:00:00"},
		{"second out of range", "09:00:60", "10:00:00"},
		{"not a time", "morning", "10:00:00"},
		{"empty start", "", "10:00:00"},
		{"unpadded hour", "9:00:00", "10:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.NewTimeWindow(tc.start, tc.end)
			assert.ErrorIs(t, err, domain.ErrInvalidTimeFormat)
		})
	}
}

func TestNewTimeWindow_RejectsInvertedAndEmpty(t *testing.T) {
	_, err := domain.NewTimeWindow("10:00:00", "09:00:00")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeFormat)

	_, err = domain.NewTimeWindow("10:00:00", "10:00:00")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeFormat)
}

func mustWindow(t *testing.T, start, end string) domain.TimeWindow {
	t.Helper()
	w, err := domain.NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestTimeWindow_Overlaps(t *testing.T) {
	a := mustWindow(t, "09:00:00", "10:00:00")

	cases := []struct {
		name  string
		other domain.TimeWindow
		want  bool
	}{
		{"identical", mustWindow(t, "09:00:00", "10:00:00"), true},
		{"partial overlap right", mustWindow(t, "09:30:00", "10:30:00"), true},
		{"partial overlap left", mustWindow(t, "08:30:00", "09:30:00"), true},
		{"contained", mustWindow(t, "09:15:00", "09:45:00"), true},
		{"containing", mustWindow(t, "08:00:00", "11:00:00"), true},
		{"touches at end", mustWindow(t, "10:00:00", "11:00:00"), false},
		{"touches at start", mustWindow(t, "08:00:00", "09:00:00"), false},
		{"disjoint after", mustWindow(t, "11:00:00", "12:00:00"), false},
		{"disjoint before", mustWindow(t, "07:00:00", "08:00:00"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Overlaps(tc.other))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, tc.other.Overlaps(a))
		})
	}
}

func TestTimeWindow_AnchorsToCivilDay(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	day := time.Date(2024, time.March, 12, 15, 4, 5, 0, loc)
	w := mustWindow(t, "09:00:00", "10:00:00")

	start := w.StartOn(day, loc)
	end := w.EndOn(day, loc)

	assert.Equal(t, time.Date(2024, time.March, 12, 9, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, time.March, 12, 10, 0, 0, 0, loc), end)
}
