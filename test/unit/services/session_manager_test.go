package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	config "github.com/lumenedu/studyhub/configs"
	impl "github.com/lumenedu/studyhub/internal/application/services"
	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/test/mocks"
)

func TestSessionCreate_StoresWithConfiguredTTL(t *testing.T) {
	userID := uuid.New()
	var gotTTL time.Duration
	var gotID string
	repo := &mocks.SessionRepositoryMock{
		PutFn: func(ctx context.Context, sessionID string, uid uuid.UUID, ttl time.Duration) error {
			require.Equal(t, userID, uid)
			gotID = sessionID
			gotTTL = ttl
			return nil
		},
	}

	mgr := impl.NewSessionManager(repo, &config.SessionConfig{TTL: 42 * time.Minute}, nil)
	session, err := mgr.Create(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, gotID, session.ID)
	require.Equal(t, userID, session.UserID)
	require.Equal(t, 42*time.Minute, gotTTL)
	require.NotEmpty(t, session.ID)
}

func TestSessionCreate_IDsAreUnique(t *testing.T) {
	repo := &mocks.SessionRepositoryMock{}
	mgr := impl.NewSessionManager(repo, &config.SessionConfig{TTL: time.Hour}, nil)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		session, err := mgr.Create(context.Background(), uuid.New())
		require.NoError(t, err)
		require.False(t, seen[session.ID])
		seen[session.ID] = true
	}
}

func TestSessionCreate_StoreFailure(t *testing.T) {
	repo := &mocks.SessionRepositoryMock{
		PutFn: func(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
			return fmt.Errorf("redis down")
		},
	}
	mgr := impl.NewSessionManager(repo, &config.SessionConfig{TTL: time.Hour}, nil)

	_, err := mgr.Create(context.Background(), uuid.New())
	require.Error(t, err)
	require.True(t, errors.Is(err, auth.ErrSessionPersist))
}

func TestSessionGet_Missing(t *testing.T) {
	repo := &mocks.SessionRepositoryMock{}
	mgr := impl.NewSessionManager(repo, &config.SessionConfig{TTL: time.Hour}, nil)

	_, err := mgr.Get(context.Background(), "no-such-session")
	require.Error(t, err)
	require.True(t, errors.Is(err, auth.ErrNotFound))
}

func TestSessionGet_ReturnsBoundUser(t *testing.T) {
	userID := uuid.New()
	repo := &mocks.SessionRepositoryMock{
		GetFn: func(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
			if sessionID == "live" {
				return userID, true, nil
			}
			return uuid.Nil, false, nil
		},
	}
	mgr := impl.NewSessionManager(repo, &config.SessionConfig{TTL: time.Hour}, nil)

	session, err := mgr.Get(context.Background(), "live")
	require.NoError(t, err)
	require.Equal(t, userID, session.UserID)
}

func TestSessionDestroy(t *testing.T) {
	deleted := false
	repo := &mocks.SessionRepositoryMock{
		DeleteFn: func(ctx context.Context, sessionID string) error {
			require.Equal(t, "gone", sessionID)
			deleted = true
			return nil
		},
	}
	mgr := impl.NewSessionManager(repo, &config.SessionConfig{TTL: time.Hour}, nil)

	require.NoError(t, mgr.Destroy(context.Background(), "gone"))
	require.True(t, deleted)
}

func TestSessionDestroy_StoreFailure(t *testing.T) {
	repo := &mocks.SessionRepositoryMock{
		DeleteFn: func(ctx context.Context, sessionID string) error {
			return fmt.Errorf("redis down")
		},
	}
	mgr := impl.NewSessionManager(repo, &config.SessionConfig{TTL: time.Hour}, nil)

	err := mgr.Destroy(context.Background(), "any")
	require.True(t, errors.Is(err, auth.ErrSessionPersist))
}
