package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/makersmarket/marketplace-api/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the opaque session id.
const SessionCookie = "session_id"

// Session authenticates the request and injects the current user into the
// echo context under the "user" key. Two credentials are accepted:
//
//   - the session cookie, resolved against the session store
//   - an Authorization: Bearer JWT, for non-browser API clients
//
// The user record is reloaded from the repository on every request so that
// role and approval changes take effect immediately, not at next login.
func Session(store ports.SessionStore, users ports.UserRepository, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := resolveUserID(c, store, jwtSecret)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			c.Set("user", user)
			c.Set("role", user.Role)

			return next(c)
		}
	}
}

func resolveUserID(c echo.Context, store ports.SessionStore, jwtSecret string) (int64, bool) {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if userID, err := store.Get(c.Request().Context(), cookie.Value); err == nil {
			return userID, true
		}
		return 0, false
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return 0, false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return 0, false
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}
