package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/internal/core/domain/user"
	studyhub_http "github.com/lumenedu/studyhub/internal/infrastructure/httpserver"
	"github.com/lumenedu/studyhub/test/mocks"
)

const testCookieName = "studyhub_session"

func newTestServer(authMock *mocks.AuthServiceMock, userMock *mocks.UserServiceMock, sessionMock *mocks.SessionManagerMock) *httptest.Server {
	deps := studyhub_http.ServerDeps{
		AuthService:    authMock,
		UserService:    userMock,
		SessionManager: sessionMock,
		HealthCheckers: nil,
	}
	srv := studyhub_http.NewServer(&studyhub_http.ServerConfig{
		Host:        "127.0.0.1",
		Port:        "0",
		ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second,
		CookieName: testCookieName,
		CookieTTL:  time.Hour,
	}, logrus.New(), deps)
	return httptest.NewServer(srv.Echo())
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any, cookie *http.Cookie) (*http.Response, []byte) {
	t.Helper()
	var b []byte
	if body != nil {
		var err error
		b, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(b))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func sessionCookieFrom(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	userID := uuid.New()
	authMock := &mocks.AuthServiceMock{
		LoginFn: func(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error) {
			return &auth.LoginResult{
				User:    &user.User{ID: userID, Email: req.Email},
				Session: &auth.Session{ID: "sess-abc", UserID: userID},
			}, nil
		},
	}
	ts := newTestServer(authMock, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{})
	defer ts.Close()

	resp, body := doJSON(t, ts, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@b.com", "password": "pw"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookieFrom(resp)
	require.NotNil(t, cookie)
	require.Equal(t, "sess-abc", cookie.Value)
	require.True(t, cookie.HttpOnly)

	// The session id must not leak into the response body
	require.NotContains(t, string(body), "sess-abc")
}

func TestLogin_TwoFactorRequired_NoCookie(t *testing.T) {
	authMock := &mocks.AuthServiceMock{
		LoginFn: func(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error) {
			return &auth.LoginResult{TwoFactorRequired: true}, nil
		},
	}
	ts := newTestServer(authMock, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{})
	defer ts.Close()

	resp, body := doJSON(t, ts, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@b.com", "password": "pw"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Nil(t, sessionCookieFrom(resp))

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Equal(t, true, parsed["two_factor_required"])
}

func TestLogin_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown email", fmt.Errorf("%w: user", auth.ErrNotFound), http.StatusNotFound},
		{"wrong password", fmt.Errorf("%w: incorrect password", auth.ErrUnauthorized), http.StatusUnauthorized},
		{"expired code", fmt.Errorf("%w: two-factor code", auth.ErrTokenExpired), http.StatusGone},
		{"store down", fmt.Errorf("%w: redis", auth.ErrSessionPersist), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			authMock := &mocks.AuthServiceMock{
				LoginFn: func(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResult, error) {
					return nil, tc.err
				},
			}
			ts := newTestServer(authMock, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{})
			defer ts.Close()

			resp, _ := doJSON(t, ts, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@b.com", "password": "pw"}, nil)
			require.Equal(t, tc.wantCode, resp.StatusCode)
		})
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	ts := newTestServer(&mocks.AuthServiceMock{}, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{})
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "a@b.com", "password": "Sup3rSecret!", "password_repeat": "different",
		"name": "A", "surname": "B",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_ReturnsAcknowledgmentOnly(t *testing.T) {
	userID := uuid.New()
	authMock := &mocks.AuthServiceMock{
		RegisterFn: func(ctx context.Context, req *auth.RegisterRequest) (*user.User, error) {
			return &user.User{ID: userID, Email: req.Email, Name: req.Name}, nil
		},
	}
	ts := newTestServer(authMock, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{})
	defer ts.Close()

	resp, body := doJSON(t, ts, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "alice@test.com", "password": "Sup3rSecret!", "password_repeat": "Sup3rSecret!",
		"name": "Alice", "surname": "B",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Registration answers with a generic acknowledgment, never the account
	var parsed map[string]string
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Contains(t, parsed["message"], "check your email")
	require.NotContains(t, string(body), userID.String())
	require.NotContains(t, string(body), "alice@test.com")
	require.NotContains(t, string(body), "Alice")
}

func TestRegister_Conflict(t *testing.T) {
	authMock := &mocks.AuthServiceMock{
		RegisterFn: func(ctx context.Context, req *auth.RegisterRequest) (*user.User, error) {
			return nil, fmt.Errorf("%w: please use another email address", auth.ErrConflict)
		},
	}
	ts := newTestServer(authMock, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{})
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "a@b.com", "password": "Sup3rSecret!", "password_repeat": "Sup3rSecret!",
		"name": "A", "surname": "B",
	}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestConfirmEmail_QueryToken_LogsIn(t *testing.T) {
	userID := uuid.New()
	authMock := &mocks.AuthServiceMock{
		ConfirmEmailFn: func(ctx context.Context, tokenValue string) (*auth.LoginResult, error) {
			require.Equal(t, "tok-123", tokenValue)
			return &auth.LoginResult{
				User:    &user.User{ID: userID, Email: "a@b.com", IsVerified: true},
				Session: &auth.Session{ID: "sess-confirm", UserID: userID},
			}, nil
		},
	}
	ts := newTestServer(authMock, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{})
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodGet, "/api/v1/auth/email-confirmation?token=tok-123", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookieFrom(resp)
	require.NotNil(t, cookie)
	require.Equal(t, "sess-confirm", cookie.Value)
}

func TestConfirmEmail_MissingToken(t *testing.T) {
	ts := newTestServer(&mocks.AuthServiceMock{}, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{})
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodGet, "/api/v1/auth/email-confirmation", nil, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	authMock := &mocks.AuthServiceMock{
		ResetPasswordFn: func(ctx context.Context, tokenValue, newPassword string) error {
			return fmt.Errorf("%w: recovery token", auth.ErrTokenExpired)
		},
	}
	ts := newTestServer(authMock, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{})
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/v1/auth/password-recovery/new/stale-token", map[string]string{"password": "N3wSecret!pass"}, nil)
	require.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestRequestPasswordReset_OK(t *testing.T) {
	requested := ""
	authMock := &mocks.AuthServiceMock{
		RequestPasswordResetFn: func(ctx context.Context, email string) error { requested = email; return nil },
	}
	ts := newTestServer(authMock, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{})
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/v1/auth/password-recovery/reset", map[string]string{"email": "a@b.com"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "a@b.com", requested)
}

func TestUsersMe_RequiresSession(t *testing.T) {
	ts := newTestServer(&mocks.AuthServiceMock{}, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{
		GetFn: func(ctx context.Context, sessionID string) (*auth.Session, error) {
			return nil, fmt.Errorf("%w: session", auth.ErrNotFound)
		},
	})
	defer ts.Close()

	// No cookie at all
	resp, _ := doJSON(t, ts, http.MethodGet, "/api/v1/users/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Dead session id
	resp, _ = doJSON(t, ts, http.MethodGet, "/api/v1/users/me", nil, &http.Cookie{Name: testCookieName, Value: "dead"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsersMe_StoreOutageIsNot401(t *testing.T) {
	ts := newTestServer(&mocks.AuthServiceMock{}, &mocks.UserServiceMock{}, &mocks.SessionManagerMock{
		GetFn: func(ctx context.Context, sessionID string) (*auth.Session, error) {
			return nil, fmt.Errorf("%w: redis down", auth.ErrSessionPersist)
		},
	})
	defer ts.Close()

	// A store blip must not read as an invalid session, or clients would
	// discard a cookie that is still live.
	resp, _ := doJSON(t, ts, http.MethodGet, "/api/v1/users/me", nil, &http.Cookie{Name: testCookieName, Value: "live"})
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestUsersMe_ReturnsFreshUser(t *testing.T) {
	userID := uuid.New()
	sessionMock := &mocks.SessionManagerMock{
		GetFn: func(ctx context.Context, sessionID string) (*auth.Session, error) {
			require.Equal(t, "live", sessionID)
			return &auth.Session{ID: sessionID, UserID: userID}, nil
		},
	}
	userMock := &mocks.UserServiceMock{
		GetUserFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			require.Equal(t, userID, id)
			return &user.User{ID: id, Email: "a@b.com", IsVerified: true}, nil
		},
	}
	ts := newTestServer(&mocks.AuthServiceMock{}, userMock, sessionMock)
	defer ts.Close()

	resp, body := doJSON(t, ts, http.MethodGet, "/api/v1/users/me", nil, &http.Cookie{Name: testCookieName, Value: "live"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var u user.User
	require.NoError(t, json.Unmarshal(body, &u))
	require.Equal(t, userID, u.ID)
	require.Equal(t, "a@b.com", u.Email)
}

func TestLogout_DestroysSessionAndClearsCookie(t *testing.T) {
	userID := uuid.New()
	destroyed := ""
	authMock := &mocks.AuthServiceMock{
		LogoutFn: func(ctx context.Context, sessionID string) error { destroyed = sessionID; return nil },
	}
	sessionMock := &mocks.SessionManagerMock{
		GetFn: func(ctx context.Context, sessionID string) (*auth.Session, error) {
			return &auth.Session{ID: sessionID, UserID: userID}, nil
		},
	}
	userMock := &mocks.UserServiceMock{
		GetUserFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return &user.User{ID: id, Email: "a@b.com"}, nil
		},
	}
	ts := newTestServer(authMock, userMock, sessionMock)
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/v1/auth/logout", nil, &http.Cookie{Name: testCookieName, Value: "sess-out"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "sess-out", destroyed)

	cookie := sessionCookieFrom(resp)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Negative(t, cookie.MaxAge)
}
