package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/internal/infrastructure/httpserver/helpers"
	"github.com/lumenedu/studyhub/internal/utils"
)

// setSessionCookie attaches the opaque session id to the response. The cookie
// never carries user data or token values.
func (s *Server) setSessionCookie(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     s.config.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(s.config.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// authError maps domain sentinel errors onto HTTP status codes.
func authError(err error) error {
	switch {
	case errors.Is(err, auth.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	case utils.IsPasswordError(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// Auth handlers
func (s *Server) register(c echo.Context) error {
	var req auth.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" || req.Name == "" || req.Surname == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email, password, name and surname are required")
	}
	if req.Password != req.PasswordRepeat {
		return echo.NewHTTPError(http.StatusBadRequest, "passwords do not match")
	}

	if _, err := s.authSvc.Register(c.Request().Context(), &req); err != nil {
		return authError(err)
	}

	// The response deliberately carries no account data; confirmation happens
	// over email.
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "account created, check your email to confirm your address",
	})
}

func (s *Server) login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	result, err := s.authSvc.Login(c.Request().Context(), &req)
	if err != nil {
		return authError(err)
	}

	if result.TwoFactorRequired {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"two_factor_required": true,
			"message":             "a verification code was sent to your email",
		})
	}

	s.setSessionCookie(c, result.Session.ID)

	return c.JSON(http.StatusOK, result)
}

func (s *Server) confirmEmail(c echo.Context) error {
	tokenValue := c.QueryParam("token")
	if tokenValue == "" {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.Bind(&req); err == nil {
			tokenValue = req.Token
		}
	}
	if tokenValue == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}

	result, err := s.authSvc.ConfirmEmail(c.Request().Context(), tokenValue)
	if err != nil {
		return authError(err)
	}

	s.setSessionCookie(c, result.Session.ID)

	return c.JSON(http.StatusOK, result)
}

func (s *Server) requestPasswordReset(c echo.Context) error {
	var req auth.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	if err := s.authSvc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return authError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "a password reset link was sent to your email",
	})
}

func (s *Server) resetPassword(c echo.Context) error {
	tokenValue := c.Param("token")
	if tokenValue == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}

	var req auth.NewPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}

	if err := s.authSvc.ResetPassword(c.Request().Context(), tokenValue, req.Password); err != nil {
		return authError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "password updated successfully",
	})
}

func (s *Server) logout(c echo.Context) error {
	sessionID, err := helpers.GetSessionIDFromContext(c)
	if err != nil {
		return err
	}

	if err := s.authSvc.Logout(c.Request().Context(), sessionID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to logout")
	}

	s.clearSessionCookie(c)

	return c.NoContent(http.StatusOK)
}
