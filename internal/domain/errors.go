package domain

import "errors"

// Domain error taxonomy. Operations surface these directly; the transport
// layer maps them to response codes in one place.
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrSpotNotFound      = errors.New("spot not found")
	ErrBanned            = errors.New("account banned")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUnsupported       = errors.New("unsupported storage driver")
	ErrValidation        = errors.New("validation failed")
)
