package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")

	ErrForbidden = errors.New("access forbidden")
	ErrNotOwner  = errors.New("not the resource owner")

	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrCounterUnavailable = errors.New("counter store unavailable")

	ErrEventNotFound = errors.New("event not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidTask   = errors.New("invalid task payload")
)
