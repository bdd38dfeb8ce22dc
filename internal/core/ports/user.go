package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/lumenedu/studyhub/internal/core/domain/user"
)

// UserRepository defines the interface for user data operations.
// GetByEmail and GetByID return (nil, nil) when no matching row exists;
// a non-nil error always means a store failure.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Update(ctx context.Context, user *user.User) error
}

// UserService defines the interface for user profile operations
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error)
}
