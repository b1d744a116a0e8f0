package booking

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid booking request")
	ErrEventNotFound    = errors.New("event not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrForbidden        = errors.New("not authorized for this booking")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrConflict         = errors.New("booking conflicts with a concurrent update")
)
