package ports

import (
	"context"
)

// EmailService defines the interface for outgoing auth mail. Each method maps
// to a purpose-specific template owned by the mail subsystem.
type EmailService interface {
	SendConfirmationEmail(ctx context.Context, email, token string) error
	SendPasswordResetEmail(ctx context.Context, email, token string) error
	SendTwoFactorEmail(ctx context.Context, email, code string) error
}
