package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aadeeee/booking-backend/internal/domain"
)

var wib = time.FixedZone("WIB", 7*3600)

// fixedClock pins Now to a chosen instant so window anchoring and expiry
// arithmetic are deterministic.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func clockAt(t time.Time) *fixedClock {
	return &fixedClock{t: t}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// spyInvalidator counts Invalidate calls.
type spyInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (s *spyInvalidator) Invalidate(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
}

func (s *spyInvalidator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// fakeStatusCache is an in-memory stand-in for the Redis listing cache.
type fakeStatusCache struct {
	entries []domain.RoomStatusEntry
	getErr  error

	gets, sets, invalidations int
}

func (f *fakeStatusCache) Get(context.Context) ([]domain.RoomStatusEntry, error) {
	f.gets++
	return f.entries, f.getErr
}

func (f *fakeStatusCache) Set(_ context.Context, entries []domain.RoomStatusEntry) error {
	f.sets++
	f.entries = entries
	return nil
}

func (f *fakeStatusCache) Invalidate(context.Context) {
	f.invalidations++
	f.entries = nil
}

func mustWindow(t *testing.T, start, end string) domain.TimeWindow {
	t.Helper()
	w, err := domain.NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}
