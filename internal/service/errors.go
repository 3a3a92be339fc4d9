package service

import "errors"

// Business errors surfaced to the handler layer. Each maps to a distinct
// HTTP response so clients can tell "try a different time" from "not
// allowed" from "bad input".
var (
	ErrInvalidTimeFormat    = errors.New("invalid time format, expected HH:MM:SS with start before end")
	ErrOutOfHours           = errors.New("requested window is outside the room's operational hours")
	ErrRoomUnavailable      = errors.New("room is not available for the requested window")
	ErrRoomNotFound         = errors.New("room not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidTransition    = errors.New("booking cannot be decided in its current status")
	ErrForbidden            = errors.New("administrator role required")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed: username already exists")
	ErrInternalServer       = errors.New("internal server error")
)
