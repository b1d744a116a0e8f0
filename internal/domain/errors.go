package domain

import (
	"errors"
	"fmt"
)

// Seat validation failures. Every seat-level error is wrapped in a SeatError
// so callers can report the exact seat number in conflict.
var (
	ErrSeatOutOfRange    = errors.New("seat number out of range")
	ErrSeatNotFound      = errors.New("seat does not exist for this event")
	ErrSeatAlreadyBooked = errors.New("seat is already booked")
	ErrCapacityExceeded  = errors.New("exceeds maximum allowed seats")
)

// SeatError identifies which seat number failed validation.
type SeatError struct {
	SeatNumber int
	Err        error
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("seat %d: %v", e.SeatNumber, e.Err)
}

func (e *SeatError) Unwrap() error { return e.Err }

func newSeatError(n int, err error) error {
	return &SeatError{SeatNumber: n, Err: err}
}
