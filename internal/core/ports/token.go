package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/lumenedu/studyhub/internal/core/domain/token"
)

// TokenRepository persists single-use verification tokens. It supports both
// lookup modes the flows need: by (email, purpose) when the caller knows the
// identity (two-factor login), and by opaque value when the caller holds only
// the token itself (email confirmation, password recovery links).
//
// GetByEmail and GetByValue return (nil, nil) when no matching row exists.
type TokenRepository interface {
	// Replace stores t, displacing any existing token for the same
	// (email, purpose) pair in a single atomic operation.
	Replace(ctx context.Context, t *token.Token) error
	GetByEmail(ctx context.Context, email string, purpose token.Purpose) (*token.Token, error)
	GetByValue(ctx context.Context, value string, purpose token.Purpose) (*token.Token, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenService manages the single-use-token invariant and the
// purpose-specific value shape and TTL.
type TokenService interface {
	// Issue generates and persists a fresh token for (email, purpose),
	// superseding any previous one for the pair.
	Issue(ctx context.Context, email string, purpose token.Purpose) (*token.Token, error)

	// Validate checks a presented value against the stored token for
	// (email, purpose). StatusOk consumes the token; StatusExpired removes it;
	// StatusMismatch keeps it so the caller may retry within the TTL.
	Validate(ctx context.Context, email string, purpose token.Purpose, presented string) (token.Status, error)

	// Consume resolves a token by its opaque value, for flows where the caller
	// does not know which email owns it. StatusOk returns the consumed token;
	// StatusExpired removes it; an unrecognized value is StatusNotFound.
	Consume(ctx context.Context, value string, purpose token.Purpose) (*token.Token, token.Status, error)
}
