package payment

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid payment request")
	ErrOrderNotFound    = errors.New("payment order not found")
	ErrInvalidSignature = errors.New("payment signature verification failed")
)
