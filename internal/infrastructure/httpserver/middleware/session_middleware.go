package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/internal/core/ports"
	"github.com/lumenedu/studyhub/internal/infrastructure/httpserver/helpers"
)

// SessionMiddleware authenticates requests from the session cookie. The cookie
// carries only the opaque session id; the user is re-fetched from the store on
// every request, so profile changes and deletions take effect immediately.
type SessionMiddleware struct {
	sessions   ports.SessionManager
	users      ports.UserService
	cookieName string
	logger     *logrus.Logger
}

func NewSessionMiddleware(sessions ports.SessionManager, users ports.UserService, cookieName string, logger *logrus.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		users:      users,
		cookieName: cookieName,
		logger:     logger,
	}
}

// RequireSession rejects requests without a live session and places the
// session id and current user in the request context.
func (m *SessionMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(m.cookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			session, err := m.sessions.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				// A store outage is not an invalid session; a 401 here would
				// make clients discard a cookie that may still be live.
				if errors.Is(err, auth.ErrSessionPersist) {
					if m.logger != nil {
						m.logger.WithError(err).Error("session store unavailable")
					}
					return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired or invalid")
			}

			currentUser, err := m.users.GetUser(c.Request().Context(), session.UserID)
			if err != nil {
				// Session outlived the account; treat as unauthenticated.
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"user_id": session.UserID}).Debug("session references missing user")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired or invalid")
			}

			c.Set(helpers.SessionIDKey, session.ID)
			c.Set(helpers.CurrentUserKey, currentUser)

			return next(c)
		}
	}
}
