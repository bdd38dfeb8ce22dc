package helpers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lumenedu/studyhub/internal/core/domain/user"
)

// GetCurrentUserFromContext returns the authenticated user placed in the
// request context by the session middleware.
func GetCurrentUserFromContext(c echo.Context) (*user.User, error) {
	u, ok := c.Get(CurrentUserKey).(*user.User)
	if !ok || u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return u, nil
}

// GetUserIDFromContext returns the id of the authenticated user.
func GetUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	u, err := GetCurrentUserFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}

// GetSessionIDFromContext returns the id of the session that authenticated
// this request.
func GetSessionIDFromContext(c echo.Context) (string, error) {
	id, ok := c.Get(SessionIDKey).(string)
	if !ok || id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}
