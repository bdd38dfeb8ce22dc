package ports

import (
	"context"

	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/internal/core/domain/user"
)

// AuthService defines the interface for authentication flows
type AuthService interface {
	// Register creates an unverified account and mails a confirmation token.
	// It never establishes a session.
	Register(ctx context.Context, req *auth.RegisterRequest) (*user.User, error)

	// Login runs the credential check, the verification gate, and the optional
	// two-factor step-up. The result either carries an established session or
	// signals that a two-factor code was mailed.
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error)

	// ConfirmEmail consumes a verification token, marks the owning account
	// verified, and logs the user in.
	ConfirmEmail(ctx context.Context, tokenValue string) (*auth.LoginResult, error)

	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes a recovery token and replaces the password.
	// No session is established.
	ResetPassword(ctx context.Context, tokenValue, newPassword string) error

	Logout(ctx context.Context, sessionID string) error
}
