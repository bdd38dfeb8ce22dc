package token

import (
	"time"

	"github.com/google/uuid"
)

// Purpose scopes the single-active-token invariant: for any (email, purpose)
// pair at most one token row exists at a time.
type Purpose string

const (
	PurposeVerification  Purpose = "verification"
	PurposePasswordReset Purpose = "password_reset"
	PurposeTwoFactor     Purpose = "two_factor"
)

func (p Purpose) String() string {
	return string(p)
}

func (p Purpose) IsValid() bool {
	switch p {
	case PurposeVerification, PurposePasswordReset, PurposeTwoFactor:
		return true
	default:
		return false
	}
}

// Token is a single-use verification artifact. A successful validation
// consumes it; it is never updated in place, only created and deleted.
type Token struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Value     string    `json:"value" db:"value"`
	Purpose   Purpose   `json:"purpose" db:"purpose"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsExpired reports whether the token is past its TTL.
func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// Status is the outcome of validating a presented token value.
type Status int

const (
	StatusOk Status = iota
	StatusExpired
	StatusNotFound
	// StatusMismatch means a token exists for the (email, purpose) pair but the
	// presented value does not match. The stored token is kept so the caller can
	// retry within the TTL.
	StatusMismatch
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusExpired:
		return "expired"
	case StatusNotFound:
		return "not_found"
	case StatusMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}
