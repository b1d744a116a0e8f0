package admin

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid admin request")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")
)
