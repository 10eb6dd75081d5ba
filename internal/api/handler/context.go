package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/makersmarket/marketplace-api/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Session middleware.
// Its presence proves the middleware ran; handlers behind the session group
// must never see a request without it.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}
