package auth

import "errors"

// Sentinel errors for outcome discrimination. Services wrap these with
// fmt.Errorf("...: %w", ...) so handlers can map them to HTTP status codes
// with errors.Is without parsing messages.
var (
	// ErrConflict is returned when a registration collides with an existing email.
	ErrConflict = errors.New("email already registered")

	// ErrNotFound is returned for an unknown user, email, or token value.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned for a wrong password, an unverified account,
	// or a mismatched two-factor code.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired is returned when a presented token is past its TTL.
	// Distinct from ErrNotFound so clients can offer a resend.
	ErrTokenExpired = errors.New("token expired")

	// ErrSessionPersist is returned when the session store cannot durably
	// record or remove a session binding.
	ErrSessionPersist = errors.New("session store failure")
)
