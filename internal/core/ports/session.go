package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lumenedu/studyhub/internal/core/domain/auth"
)

// SessionRepository is the key-value backing store for sessions: session id
// maps to user id with an independent TTL. Get returns ok=false for a missing
// or expired session.
type SessionRepository interface {
	Put(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (uuid.UUID, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionManager creates and destroys server-side sessions bound to a user id.
type SessionManager interface {
	Create(ctx context.Context, userID uuid.UUID) (*auth.Session, error)
	Get(ctx context.Context, sessionID string) (*auth.Session, error)
	Destroy(ctx context.Context, sessionID string) error
}
