package domain

import "errors"

var (
	// ErrRequestFailed is the single failure signal for catalog calls:
	// network errors and 4xx/5xx responses all collapse into it. The
	// underlying cause is wrapped for logging, never for branching.
	ErrRequestFailed = errors.New("request failed")

	// ErrProductNotFound is returned when a product lookup by id or slug
	// yields nothing.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidCredentials covers rejected logins and registrations.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned when registering an already-taken email.
	ErrUserExists = errors.New("user already exists")

	// ErrNoToken is returned when an operation needs a persisted token and
	// the store holds none.
	ErrNoToken = errors.New("no token stored")

	// ErrInvalidDraft is returned when a product draft fails validation;
	// the per-field messages travel alongside it.
	ErrInvalidDraft = errors.New("invalid product draft")
)
