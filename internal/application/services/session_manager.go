package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	config "github.com/lumenedu/studyhub/configs"
	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/internal/core/ports"
)

// SessionManager binds opaque session ids to user ids in the backing store.
// Sessions hold nothing else; role and verification state are re-fetched from
// the user store on each authenticated request so profile updates are never
// served stale.
type SessionManager struct {
	repo   ports.SessionRepository
	cfg    *config.SessionConfig
	logger *logrus.Logger
}

func NewSessionManager(repo ports.SessionRepository, cfg *config.SessionConfig, logger *logrus.Logger) ports.SessionManager {
	return &SessionManager{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

func (m *SessionManager) Create(ctx context.Context, userID uuid.UUID) (*auth.Session, error) {
	sessionID := uuid.NewString()

	if err := m.repo.Put(ctx, sessionID, userID, m.cfg.TTL); err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrSessionPersist, err)
	}

	if m.logger != nil {
		m.logger.WithFields(logrus.Fields{"user_id": userID}).Debug("session created")
	}

	return &auth.Session{ID: sessionID, UserID: userID}, nil
}

func (m *SessionManager) Get(ctx context.Context, sessionID string) (*auth.Session, error) {
	userID, ok, err := m.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrSessionPersist, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: session", auth.ErrNotFound)
	}

	return &auth.Session{ID: sessionID, UserID: userID}, nil
}

func (m *SessionManager) Destroy(ctx context.Context, sessionID string) error {
	if err := m.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: %v", auth.ErrSessionPersist, err)
	}

	if m.logger != nil {
		m.logger.Debug("session destroyed")
	}

	return nil
}
