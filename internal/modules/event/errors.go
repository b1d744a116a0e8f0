package event

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid event request")
	ErrEventNotFound  = errors.New("event not found")
	ErrSeatsBooked    = errors.New("cannot remove seats that are already booked")
	ErrConflict       = errors.New("event was modified concurrently")
)
