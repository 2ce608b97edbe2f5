package application

import "errors"

var (
	// ErrInvalidInput marks validation failures; the wrapped message is
	// safe to show to the caller.
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
)
