package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	config "github.com/lumenedu/studyhub/configs"
	"github.com/lumenedu/studyhub/internal/core/domain/token"
	"github.com/lumenedu/studyhub/internal/core/ports"
)

type TokenService struct {
	repo   ports.TokenRepository
	cfg    *config.TokenConfig
	logger *logrus.Logger
}

func NewTokenService(repo ports.TokenRepository, cfg *config.TokenConfig, logger *logrus.Logger) ports.TokenService {
	return &TokenService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Issue generates a fresh token for (email, purpose) and persists it,
// superseding any previous token for the pair. Verification and password
// reset tokens are opaque UUID strings; two-factor tokens are 6-digit codes
// with a much shorter TTL.
func (s *TokenService) Issue(ctx context.Context, email string, purpose token.Purpose) (*token.Token, error) {
	var value string
	var ttl time.Duration

	switch purpose {
	case token.PurposeTwoFactor:
		code, err := generateTwoFactorCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate two-factor code: %w", err)
		}
		value = code
		ttl = s.cfg.TwoFactorTTL
	default:
		value = uuid.NewString()
		ttl = s.cfg.VerificationTTL
	}

	now := time.Now()
	t := &token.Token{
		ID:        uuid.New(),
		Email:     email,
		Value:     value,
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if err := s.repo.Replace(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to store %s token: %w", purpose, err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"email": email, "purpose": purpose}).Debug("token issued")
	}

	return t, nil
}

// Validate checks a presented value against the stored token for
// (email, purpose). The mismatch check precedes the expiry check so a wrong
// code never consumes the stored token.
func (s *TokenService) Validate(ctx context.Context, email string, purpose token.Purpose, presented string) (token.Status, error) {
	t, err := s.repo.GetByEmail(ctx, email, purpose)
	if err != nil {
		return token.StatusNotFound, fmt.Errorf("failed to look up %s token: %w", purpose, err)
	}
	if t == nil {
		return token.StatusNotFound, nil
	}

	if t.Value != presented {
		return token.StatusMismatch, nil
	}

	return s.finish(ctx, t)
}

// Consume resolves a token by its opaque value for flows where the caller does
// not know which email owns it. An unrecognized value is indistinguishable
// from an absent token.
func (s *TokenService) Consume(ctx context.Context, value string, purpose token.Purpose) (*token.Token, token.Status, error) {
	t, err := s.repo.GetByValue(ctx, value, purpose)
	if err != nil {
		return nil, token.StatusNotFound, fmt.Errorf("failed to look up %s token: %w", purpose, err)
	}
	if t == nil {
		return nil, token.StatusNotFound, nil
	}

	status, err := s.finish(ctx, t)
	if err != nil || status != token.StatusOk {
		return nil, status, err
	}
	return t, status, nil
}

// finish applies the expiry check and the single-use deletion. Expired tokens
// are removed as part of the determination so stale rows never accumulate.
func (s *TokenService) finish(ctx context.Context, t *token.Token) (token.Status, error) {
	if t.IsExpired() {
		if err := s.repo.Delete(ctx, t.ID); err != nil {
			return token.StatusExpired, fmt.Errorf("failed to delete expired %s token: %w", t.Purpose, err)
		}
		return token.StatusExpired, nil
	}

	if err := s.repo.Delete(ctx, t.ID); err != nil {
		return token.StatusOk, fmt.Errorf("failed to consume %s token: %w", t.Purpose, err)
	}
	return token.StatusOk, nil
}

// generateTwoFactorCode samples a 6-digit code uniformly from [100000, 999999].
func generateTwoFactorCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
