package session

import "errors"

var (
	ErrAlreadyInitialized = errors.New("session already initialized")
	ErrClosed             = errors.New("session closed")
	ErrEmptyToken         = errors.New("empty credential token")

	// ErrProfileUnavailable wraps the failure of the profile fetch that
	// follows a Login.
	ErrProfileUnavailable = errors.New("profile unavailable after login")
)
