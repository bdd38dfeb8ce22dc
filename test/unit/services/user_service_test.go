package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	impl "github.com/lumenedu/studyhub/internal/application/services"
	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/internal/core/domain/user"
	"github.com/lumenedu/studyhub/test/mocks"
)

func TestGetUser_NotFound(t *testing.T) {
	svc := impl.NewUserService(&mocks.UserRepositoryMock{}, nil)

	_, err := svc.GetUser(context.Background(), uuid.New())
	require.True(t, errors.Is(err, auth.ErrNotFound))
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	svc := impl.NewUserService(&mocks.UserRepositoryMock{}, nil)

	_, err := svc.GetUserByEmail(context.Background(), "nobody@b.com")
	require.True(t, errors.Is(err, auth.ErrNotFound))
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	me := &user.User{ID: uuid.New(), Email: "me@b.com"}
	other := &user.User{ID: uuid.New(), Email: "taken@b.com"}
	ur := &mocks.UserRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) { return me, nil },
		GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			if email == "taken@b.com" {
				return other, nil
			}
			return nil, nil
		},
	}
	svc := impl.NewUserService(ur, nil)

	newEmail := "taken@b.com"
	_, err := svc.UpdateProfile(context.Background(), me.ID, &user.UpdateProfileRequest{Email: &newEmail})
	require.True(t, errors.Is(err, auth.ErrConflict))
}

func TestUpdateProfile_ChangesEmail(t *testing.T) {
	me := &user.User{ID: uuid.New(), Email: "me@b.com"}
	var updated *user.User
	ur := &mocks.UserRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) { return me, nil },
		UpdateFn:  func(ctx context.Context, u *user.User) error { updated = u; return nil },
	}
	svc := impl.NewUserService(ur, nil)

	newEmail := "fresh@b.com"
	result, err := svc.UpdateProfile(context.Background(), me.ID, &user.UpdateProfileRequest{Email: &newEmail})
	require.NoError(t, err)
	require.Equal(t, "fresh@b.com", result.Email)
	require.NotNil(t, updated)
}

func TestUpdateProfile_TogglesTwoFactor(t *testing.T) {
	me := &user.User{ID: uuid.New(), Email: "me@b.com"}
	ur := &mocks.UserRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) { return me, nil },
	}
	svc := impl.NewUserService(ur, nil)

	enabled := true
	result, err := svc.UpdateProfile(context.Background(), me.ID, &user.UpdateProfileRequest{IsTwoFactorEnabled: &enabled})
	require.NoError(t, err)
	require.True(t, result.IsTwoFactorEnabled)

	disabled := false
	result, err = svc.UpdateProfile(context.Background(), me.ID, &user.UpdateProfileRequest{IsTwoFactorEnabled: &disabled})
	require.NoError(t, err)
	require.False(t, result.IsTwoFactorEnabled)
}

func TestUpdateProfile_SameEmailNoConflictCheck(t *testing.T) {
	me := &user.User{ID: uuid.New(), Email: "me@b.com"}
	ur := &mocks.UserRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) { return me, nil },
		GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			t.Fatalf("unexpected availability check for unchanged email")
			return nil, nil
		},
	}
	svc := impl.NewUserService(ur, nil)

	same := "me@b.com"
	_, err := svc.UpdateProfile(context.Background(), me.ID, &user.UpdateProfileRequest{Email: &same})
	require.NoError(t, err)
}
