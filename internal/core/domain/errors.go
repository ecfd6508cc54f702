package domain

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrInvalidID      = errors.New("invalid object id")
	ErrNotImplemented = errors.New("not implemented")

	// ErrIdempotencyKeyReused means the key was first used with a different payload.
	ErrIdempotencyKeyReused = errors.New("idempotency key reused with a different payload")
	// ErrRequestInProgress means another request holding the same key has not finished.
	ErrRequestInProgress = errors.New("request with this idempotency key is in progress")
)

const RoleAdmin = "admin"
