package domain

import "errors"

// Session and access errors.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrProfileNotFound    = errors.New("user profile not found")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Data access errors. Store failures are wrapped with one of the operation
// errors so callers can tell which step failed.
var (
	ErrClientNotFound  = errors.New("client not found")
	ErrDuplicateClient = errors.New("client already exists")
	ErrInvalidInput    = errors.New("invalid input")

	ErrFetch  = errors.New("fetch failed")
	ErrCreate = errors.New("create failed")
	ErrUpdate = errors.New("update failed")
	ErrDelete = errors.New("delete failed")
)
