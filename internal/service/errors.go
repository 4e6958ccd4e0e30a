package service

import "errors"

// Common service errors, checked by callers with errors.Is.
var (
	// ErrInvalidCredentials indicates an unknown email or a wrong password at login.
	// The two cases are indistinguishable to the caller.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
