package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lumenedu/studyhub/internal/core/domain/token"
	"github.com/lumenedu/studyhub/internal/core/ports"
	"github.com/lumenedu/studyhub/internal/infrastructure/db"
)

// TokenRepository implements the token repository interface over Postgres.
// The tokens table carries UNIQUE(email, purpose), so Replace is a single
// upsert statement and two concurrent issues for the same pair can never
// leave two live rows.
type TokenRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(database *db.Database, logger *logrus.Logger) ports.TokenRepository {
	return &TokenRepository{
		db:     database,
		logger: logger,
	}
}

// Replace stores t, displacing any existing token for (email, purpose).
func (r *TokenRepository) Replace(ctx context.Context, t *token.Token) error {
	query := `
		INSERT INTO tokens (id, email, value, purpose, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email, purpose) DO UPDATE
		SET id = EXCLUDED.id, value = EXCLUDED.value,
			expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at`

	_, err := r.db.DB.ExecContext(ctx, query,
		t.ID, t.Email, t.Value, t.Purpose, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"email": t.Email, "purpose": t.Purpose}).WithError(err).Error("db: failed to store token")
		}
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}

// GetByEmail retrieves the token for (email, purpose). Returns (nil, nil)
// when no row matches.
func (r *TokenRepository) GetByEmail(ctx context.Context, email string, purpose token.Purpose) (*token.Token, error) {
	var t token.Token
	query := `
		SELECT id, email, value, purpose, expires_at, created_at
		FROM tokens
		WHERE email = $1 AND purpose = $2`

	err := r.db.DB.GetContext(ctx, &t, query, email, purpose)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"email": email, "purpose": purpose}).WithError(err).Error("db: failed to get token by email")
		}
		return nil, fmt.Errorf("failed to get token by email: %w", err)
	}

	return &t, nil
}

// GetByValue retrieves a token by its opaque value. Returns (nil, nil) when
// no row matches.
func (r *TokenRepository) GetByValue(ctx context.Context, value string, purpose token.Purpose) (*token.Token, error) {
	var t token.Token
	query := `
		SELECT id, email, value, purpose, expires_at, created_at
		FROM tokens
		WHERE value = $1 AND purpose = $2`

	err := r.db.DB.GetContext(ctx, &t, query, value, purpose)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"purpose": purpose}).WithError(err).Error("db: failed to get token by value")
		}
		return nil, fmt.Errorf("failed to get token by value: %w", err)
	}

	return &t, nil
}

// Delete removes a token by its store-assigned id. Deleting a row that is
// already gone is not an error; single-use consumption races resolve to one
// winner either way.
func (r *TokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tokens WHERE id = $1`

	if _, err := r.db.DB.ExecContext(ctx, query, id); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"token_id": id}).WithError(err).Error("db: failed to delete token")
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}
