package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/internal/core/domain/user"
	"github.com/lumenedu/studyhub/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger *logrus.Logger
}

func NewUserService(repo ports.UserRepository, logger *logrus.Logger) ports.UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user", auth.ErrNotFound)
	}
	return u, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user", auth.ErrNotFound)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	existingUser, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != existingUser.Email {
		other, err := s.repo.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email availability: %w", err)
		}
		if other != nil {
			return nil, fmt.Errorf("%w: email already in use", auth.ErrConflict)
		}
		existingUser.Email = *req.Email
	}
	if req.IsTwoFactorEnabled != nil {
		existingUser.IsTwoFactorEnabled = *req.IsTwoFactorEnabled
	}
	existingUser.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existingUser); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return existingUser, nil
}
