package auth

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBlocked        = errors.New("user account is blocked")
	ErrUserNotFound       = errors.New("user not found")
)
