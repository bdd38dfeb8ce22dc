package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	Email              string     `json:"email" db:"email"`
	PasswordHash       string     `json:"-" db:"password_hash"`
	Name               string     `json:"name" db:"name"`
	Surname            string     `json:"surname" db:"surname"`
	Patronymic         string     `json:"patronymic" db:"patronymic"`
	Picture            string     `json:"picture" db:"picture"`
	Role               UserRole   `json:"role" db:"role"`
	Method             AuthMethod `json:"method" db:"method"`
	IsVerified         bool       `json:"is_verified" db:"is_verified"`
	IsTwoFactorEnabled bool       `json:"is_two_factor_enabled" db:"is_two_factor_enabled"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

type UserRole string

const (
	RoleRegular UserRole = "regular"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleRegular, RoleAdmin:
		return true
	default:
		return false
	}
}

// AuthMethod records how the account was created. Accounts created through
// federated providers carry an empty password hash and cannot log in with
// credentials.
type AuthMethod string

const (
	MethodCredentials AuthMethod = "credentials"
	MethodGoogle      AuthMethod = "google"
	MethodYandex      AuthMethod = "yandex"
)

// UpdateProfileRequest represents the request to update the current user's profile
type UpdateProfileRequest struct {
	Email              *string `json:"email,omitempty"`
	IsTwoFactorEnabled *bool   `json:"is_two_factor_enabled,omitempty"`
}
