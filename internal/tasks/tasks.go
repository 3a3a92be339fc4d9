package tasks

import "encoding/json"

// Task type names routed by the asynq mux.
const (
	// TypeBookingExpirySweep is the periodic tick that releases stale
	// bookings and repairs room statuses.
	TypeBookingExpirySweep = "booking:expiry_sweep"
)

// ExpirySweepPayload is the (currently empty) payload of a sweep tick.
// Kept as a struct so a future tick can carry parameters without
// changing the task type.
type ExpirySweepPayload struct{}

// NewExpirySweepPayload serializes the sweep payload.
func NewExpirySweepPayload() ([]byte, error) {
	return json.Marshal(ExpirySweepPayload{})
}
