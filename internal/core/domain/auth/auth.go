package auth

import (
	"github.com/google/uuid"

	"github.com/lumenedu/studyhub/internal/core/domain/user"
)

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=32"`
	PasswordRepeat string `json:"password_repeat" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Surname        string `json:"surname" validate:"required"`
	Patronymic     string `json:"patronymic"`
}

// LoginRequest represents the login request. Code carries the emailed
// two-factor code on the second step of a 2FA login; it is empty otherwise.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Code     string `json:"code,omitempty"`
}

// ResetPasswordRequest asks for a password recovery email.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewPasswordRequest carries the replacement password for a recovery token.
type NewPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=32"`
}

// Session is an opaque server-side session handle bound to a user id.
// Only the id travels to the client (as a cookie value); user data is
// re-fetched from the user store on every authenticated request.
type Session struct {
	ID     string    `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

// LoginResult is the terminal state of a login attempt. Exactly one of the
// two shapes occurs: TwoFactorRequired is true and no session exists (the
// caller must re-submit with the emailed code), or a session was established.
type LoginResult struct {
	TwoFactorRequired bool       `json:"two_factor_required"`
	User              *user.User `json:"user,omitempty"`
	Session           *Session   `json:"-"`
}
