package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/internal/core/domain/token"
	"github.com/lumenedu/studyhub/internal/core/domain/user"
	"github.com/lumenedu/studyhub/internal/core/ports"
	"github.com/lumenedu/studyhub/internal/utils"
)

// AuthService orchestrates registration, login with optional two-factor
// step-up, email confirmation, password recovery, and logout. All outcomes are
// reported through the sentinel errors in the auth domain package.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	sessions ports.SessionManager
	mail     ports.EmailService
	logger   *logrus.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, sessions ports.SessionManager, mail ports.EmailService, logger *logrus.Logger) ports.AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		mail:     mail,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*user.User, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: please use another email address or log in", auth.ErrConflict)
	}

	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		Surname:      req.Surname,
		Patronymic:   req.Patronymic,
		Role:         user.RoleRegular,
		Method:       user.MethodCredentials,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.issueAndMail(ctx, newUser.Email, token.PurposeVerification); err != nil {
		return nil, err
	}

	return newUser, nil
}

func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error) {
	foundUser, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if foundUser == nil || foundUser.PasswordHash == "" {
		return nil, fmt.Errorf("%w: user", auth.ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: incorrect password", auth.ErrUnauthorized)
	}

	if !foundUser.IsVerified {
		// Every unverified login attempt reissues the confirmation token,
		// superseding any prior one.
		if err := s.issueAndMail(ctx, foundUser.Email, token.PurposeVerification); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: email is not confirmed, check your mail", auth.ErrUnauthorized)
	}

	if foundUser.IsTwoFactorEnabled {
		if req.Code == "" {
			if err := s.issueAndMail(ctx, foundUser.Email, token.PurposeTwoFactor); err != nil {
				return nil, err
			}
			return &auth.LoginResult{TwoFactorRequired: true}, nil
		}

		status, err := s.tokens.Validate(ctx, foundUser.Email, token.PurposeTwoFactor, req.Code)
		if err != nil {
			return nil, err
		}
		switch status {
		case token.StatusOk:
		case token.StatusMismatch:
			return nil, fmt.Errorf("%w: invalid two-factor code", auth.ErrUnauthorized)
		case token.StatusExpired:
			return nil, fmt.Errorf("%w: two-factor code, request a new one", auth.ErrTokenExpired)
		default:
			return nil, fmt.Errorf("%w: two-factor code, request a new one", auth.ErrNotFound)
		}
	}

	session, err := s.sessions.Create(ctx, foundUser.ID)
	if err != nil {
		return nil, err
	}

	return &auth.LoginResult{User: foundUser, Session: session}, nil
}

func (s *AuthService) ConfirmEmail(ctx context.Context, tokenValue string) (*auth.LoginResult, error) {
	t, status, err := s.tokens.Consume(ctx, tokenValue, token.PurposeVerification)
	if err != nil {
		return nil, err
	}
	switch status {
	case token.StatusOk:
	case token.StatusExpired:
		return nil, fmt.Errorf("%w: confirmation token", auth.ErrTokenExpired)
	default:
		return nil, fmt.Errorf("%w: confirmation token", auth.ErrNotFound)
	}

	foundUser, err := s.users.GetByEmail(ctx, t.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if foundUser == nil {
		return nil, fmt.Errorf("%w: user", auth.ErrNotFound)
	}

	foundUser.IsVerified = true
	foundUser.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, foundUser); err != nil {
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}

	// Confirming the address logs the user in directly.
	session, err := s.sessions.Create(ctx, foundUser.ID)
	if err != nil {
		return nil, err
	}

	return &auth.LoginResult{User: foundUser, Session: session}, nil
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	foundUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if foundUser == nil {
		return fmt.Errorf("%w: user", auth.ErrNotFound)
	}

	return s.issueAndMail(ctx, foundUser.Email, token.PurposePasswordReset)
}

func (s *AuthService) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	// Check the replacement password before touching the token: a rejected
	// password must not burn the single-use recovery link.
	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	t, status, err := s.tokens.Consume(ctx, tokenValue, token.PurposePasswordReset)
	if err != nil {
		return err
	}
	switch status {
	case token.StatusOk:
	case token.StatusExpired:
		return fmt.Errorf("%w: recovery token", auth.ErrTokenExpired)
	default:
		return fmt.Errorf("%w: recovery token", auth.ErrNotFound)
	}

	foundUser, err := s.users.GetByEmail(ctx, t.Email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if foundUser == nil {
		return fmt.Errorf("%w: user", auth.ErrNotFound)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	foundUser.PasswordHash = string(hashedPassword)
	foundUser.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, foundUser); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}

// issueAndMail persists a fresh token and dispatches the matching email.
// The token is stored before the mail goes out; a notifier failure leaves the
// token valid and is logged as a warning instead of unwinding the transition.
func (s *AuthService) issueAndMail(ctx context.Context, email string, purpose token.Purpose) error {
	t, err := s.tokens.Issue(ctx, email, purpose)
	if err != nil {
		return err
	}

	switch purpose {
	case token.PurposeVerification:
		err = s.mail.SendConfirmationEmail(ctx, email, t.Value)
	case token.PurposePasswordReset:
		err = s.mail.SendPasswordResetEmail(ctx, email, t.Value)
	case token.PurposeTwoFactor:
		err = s.mail.SendTwoFactorEmail(ctx, email, t.Value)
	}
	if err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"email": email, "purpose": purpose}).WithError(err).Warn("failed to send token email")
	}

	return nil
}
