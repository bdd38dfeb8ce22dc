package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumenedu/studyhub/internal/core/domain/auth"
	"github.com/lumenedu/studyhub/internal/core/domain/user"
	"github.com/lumenedu/studyhub/internal/infrastructure/httpserver/helpers"
)

// User handlers

// getOwnProfile returns the current user's profile. The session middleware
// already fetched a fresh copy, no extra store roundtrip needed.
func (s *Server) getOwnProfile(c echo.Context) error {
	currentUser, err := helpers.GetCurrentUserFromContext(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, currentUser)
}

func (s *Server) updateOwnProfile(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req user.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updatedUser, err := s.userService.UpdateProfile(c.Request().Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update profile")
		}
	}

	return c.JSON(http.StatusOK, updatedUser)
}
