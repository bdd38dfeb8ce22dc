package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/internal/core/domain/token"
	"github.com/lumenedu/studyhub/internal/core/domain/user"
)

// UserRepository mock
type UserRepositoryMock struct {
	CreateFn     func(ctx context.Context, u *user.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*user.User, error)
	UpdateFn     func(ctx context.Context, u *user.User) error
}

func (m *UserRepositoryMock) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}
func (m *UserRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, nil
}
func (m *UserRepositoryMock) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, u)
	}
	return nil
}

// TokenRepository mock
type TokenRepositoryMock struct {
	ReplaceFn    func(ctx context.Context, t *token.Token) error
	GetByEmailFn func(ctx context.Context, email string, purpose token.Purpose) (*token.Token, error)
	GetByValueFn func(ctx context.Context, value string, purpose token.Purpose) (*token.Token, error)
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *TokenRepositoryMock) Replace(ctx context.Context, t *token.Token) error {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, t)
	}
	return nil
}
func (m *TokenRepositoryMock) GetByEmail(ctx context.Context, email string, purpose token.Purpose) (*token.Token, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email, purpose)
	}
	return nil, nil
}
func (m *TokenRepositoryMock) GetByValue(ctx context.Context, value string, purpose token.Purpose) (*token.Token, error) {
	if m.GetByValueFn != nil {
		return m.GetByValueFn(ctx, value, purpose)
	}
	return nil, nil
}
func (m *TokenRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// InMemoryTokenRepository is a map-backed token store that honors the
// one-token-per-(email, purpose) constraint, for tests exercising full
// issue/validate cycles.
type InMemoryTokenRepository struct {
	Tokens map[string]*token.Token
}

func NewInMemoryTokenRepository() *InMemoryTokenRepository {
	return &InMemoryTokenRepository{Tokens: make(map[string]*token.Token)}
}

func (m *InMemoryTokenRepository) pairKey(email string, purpose token.Purpose) string {
	return email + "|" + string(purpose)
}

func (m *InMemoryTokenRepository) Replace(ctx context.Context, t *token.Token) error {
	cp := *t
	m.Tokens[m.pairKey(t.Email, t.Purpose)] = &cp
	return nil
}
func (m *InMemoryTokenRepository) GetByEmail(ctx context.Context, email string, purpose token.Purpose) (*token.Token, error) {
	t, ok := m.Tokens[m.pairKey(email, purpose)]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}
func (m *InMemoryTokenRepository) GetByValue(ctx context.Context, value string, purpose token.Purpose) (*token.Token, error) {
	for _, t := range m.Tokens {
		if t.Value == value && t.Purpose == purpose {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *InMemoryTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for k, t := range m.Tokens {
		if t.ID == id {
			delete(m.Tokens, k)
		}
	}
	return nil
}

// SessionRepository mock
type SessionRepositoryMock struct {
	PutFn    func(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	GetFn    func(ctx context.Context, sessionID string) (uuid.UUID, bool, error)
	DeleteFn func(ctx context.Context, sessionID string) error
}

func (m *SessionRepositoryMock) Put(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, sessionID, userID, ttl)
	}
	return nil
}
func (m *SessionRepositoryMock) Get(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, sessionID)
	}
	return uuid.Nil, false, nil
}
func (m *SessionRepositoryMock) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, sessionID)
	}
	return nil
}

// TokenService mock
type TokenServiceMock struct {
	IssueFn    func(ctx context.Context, email string, purpose token.Purpose) (*token.Token, error)
	ValidateFn func(ctx context.Context, email string, purpose token.Purpose, presented string) (token.Status, error)
	ConsumeFn  func(ctx context.Context, value string, purpose token.Purpose) (*token.Token, token.Status, error)
}

func (m *TokenServiceMock) Issue(ctx context.Context, email string, purpose token.Purpose) (*token.Token, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, email, purpose)
	}
	return &token.Token{ID: uuid.New(), Email: email, Value: uuid.NewString(), Purpose: purpose}, nil
}
func (m *TokenServiceMock) Validate(ctx context.Context, email string, purpose token.Purpose, presented string) (token.Status, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, email, purpose, presented)
	}
	return token.StatusNotFound, nil
}
func (m *TokenServiceMock) Consume(ctx context.Context, value string, purpose token.Purpose) (*token.Token, token.Status, error) {
	if m.ConsumeFn != nil {
		return m.ConsumeFn(ctx, value, purpose)
	}
	return nil, token.StatusNotFound, nil
}

// SessionManager mock
type SessionManagerMock struct {
	CreateFn  func(ctx context.Context, userID uuid.UUID) (*auth.Session, error)
	GetFn     func(ctx context.Context, sessionID string) (*auth.Session, error)
	DestroyFn func(ctx context.Context, sessionID string) error
}

func (m *SessionManagerMock) Create(ctx context.Context, userID uuid.UUID) (*auth.Session, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID)
	}
	return &auth.Session{ID: uuid.NewString(), UserID: userID}, nil
}
func (m *SessionManagerMock) Get(ctx context.Context, sessionID string) (*auth.Session, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, sessionID)
	}
	return nil, nil
}
func (m *SessionManagerMock) Destroy(ctx context.Context, sessionID string) error {
	if m.DestroyFn != nil {
		return m.DestroyFn(ctx, sessionID)
	}
	return nil
}

// AuthService mock
type AuthServiceMock struct {
	RegisterFn             func(ctx context.Context, req *auth.RegisterRequest) (*user.User, error)
	LoginFn                func(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error)
	ConfirmEmailFn         func(ctx context.Context, tokenValue string) (*auth.LoginResult, error)
	RequestPasswordResetFn func(ctx context.Context, email string) error
	ResetPasswordFn        func(ctx context.Context, tokenValue, newPassword string) error
	LogoutFn               func(ctx context.Context, sessionID string) error
}

func (m *AuthServiceMock) Register(ctx context.Context, req *auth.RegisterRequest) (*user.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return &user.User{ID: uuid.New(), Email: req.Email}, nil
}
func (m *AuthServiceMock) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req)
	}
	return nil, nil
}
func (m *AuthServiceMock) ConfirmEmail(ctx context.Context, tokenValue string) (*auth.LoginResult, error) {
	if m.ConfirmEmailFn != nil {
		return m.ConfirmEmailFn(ctx, tokenValue)
	}
	return nil, nil
}
func (m *AuthServiceMock) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFn != nil {
		return m.RequestPasswordResetFn(ctx, email)
	}
	return nil
}
func (m *AuthServiceMock) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	if m.ResetPasswordFn != nil {
		return m.ResetPasswordFn(ctx, tokenValue, newPassword)
	}
	return nil
}
func (m *AuthServiceMock) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, sessionID)
	}
	return nil
}

// UserService mock
type UserServiceMock struct {
	GetUserFn        func(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetUserByEmailFn func(ctx context.Context, email string) (*user.User, error)
	UpdateProfileFn  func(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error)
}

func (m *UserServiceMock) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return nil, nil
}
func (m *UserServiceMock) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetUserByEmailFn != nil {
		return m.GetUserByEmailFn(ctx, email)
	}
	return nil, nil
}
func (m *UserServiceMock) UpdateProfile(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, id, req)
	}
	return nil, nil
}

// EmailService mock
type EmailServiceMock struct {
	SendConfirmationEmailFn  func(ctx context.Context, email, token string) error
	SendPasswordResetEmailFn func(ctx context.Context, email, token string) error
	SendTwoFactorEmailFn     func(ctx context.Context, email, code string) error
}

func (m *EmailServiceMock) SendConfirmationEmail(ctx context.Context, email, token string) error {
	if m.SendConfirmationEmailFn != nil {
		return m.SendConfirmationEmailFn(ctx, email, token)
	}
	return nil
}
func (m *EmailServiceMock) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	if m.SendPasswordResetEmailFn != nil {
		return m.SendPasswordResetEmailFn(ctx, email, token)
	}
	return nil
}
func (m *EmailServiceMock) SendTwoFactorEmail(ctx context.Context, email, code string) error {
	if m.SendTwoFactorEmailFn != nil {
		return m.SendTwoFactorEmailFn(ctx, email, code)
	}
	return nil
}
