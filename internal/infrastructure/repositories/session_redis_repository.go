package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lumenedu/studyhub/internal/core/ports"
)

const sessionPrefix = "sess"

// SessionRedisRepository implements the session backing store on top of the
// generic key-value cache: session id maps to the bound user id, with the
// store's own TTL handling passive expiry.
type SessionRedisRepository struct {
	cache  ports.Cache
	logger *logrus.Logger
}

func NewSessionRedisRepository(cache ports.Cache, logger *logrus.Logger) ports.SessionRepository {
	return &SessionRedisRepository{cache: cache, logger: logger}
}

func (r *SessionRedisRepository) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", sessionPrefix, sessionID)
}

func (r *SessionRedisRepository) Put(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	if err := r.cache.Set(ctx, r.key(sessionID), []byte(userID.String()), ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *SessionRedisRepository) Get(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	b, ok, err := r.cache.Get(ctx, r.key(sessionID))
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to get session: %w", err)
	}
	if !ok {
		return uuid.Nil, false, nil
	}

	userID, err := uuid.ParseBytes(b)
	if err != nil {
		// A corrupt value is unusable; drop it so the client re-authenticates.
		if r.logger != nil {
			r.logger.WithError(err).Warn("redis: corrupt session value, removing")
		}
		_ = r.cache.Delete(ctx, r.key(sessionID))
		return uuid.Nil, false, nil
	}

	return userID, true, nil
}

func (r *SessionRedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, r.key(sessionID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
