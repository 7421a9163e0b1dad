package domain

import "errors"

// Gateway error taxonomy. Handlers match these with errors.Is and map
// them to HTTP statuses; resolvers wrap them with operation detail.
var (
	ErrUnauthenticated       = errors.New("authentication required")
	ErrForbidden             = errors.New("admin role required for this operation")
	ErrValidation            = errors.New("validation error")
	ErrNotFound              = errors.New("not found")
	ErrStore                 = errors.New("store error")
	ErrUnrecognizedOperation = errors.New("unrecognized operation")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)
