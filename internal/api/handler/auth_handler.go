package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/makersmarket/marketplace-api/internal/api/middleware"
	"github.com/makersmarket/marketplace-api/internal/core/ports"
)

// AuthHandler handles signup, login, logout and the current-identity endpoint.
type AuthHandler struct {
	accounts   ports.AccountService
	sessions   ports.SessionStore
	sessionTTL time.Duration
}

func NewAuthHandler(accounts ports.AccountService, sessions ports.SessionStore, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, sessionTTL: sessionTTL}
}

// Signup creates a new account.
//
// @Summary      Register a new account
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.accounts.SignUp(c.Request().Context(), ports.SignUpInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "User created"})
}

// Login verifies credentials, establishes a session cookie and returns the
// identity projection plus a bearer token for API clients.
//
// @Summary      Log in
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, token, err := h.accounts.LogIn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	sessionID, err := h.sessions.Create(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(sessionID, h.sessionTTL))

	return c.JSON(http.StatusOK, loginResponse{
		Message:  "Logged in",
		Role:     user.Role,
		Approved: user.Approved,
		Username: user.Username,
		Token:    token,
	})
}

// Logout terminates the current session and expires the cookie.
//
// @Summary      Log out
// @Tags         account
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	c.SetCookie(h.sessionCookie("", -time.Hour))

	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

// Me returns the identity projection for the active session.
//
// @Summary      Current identity
// @Tags         account
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  currentUserResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, currentUserResponse{
		Role:     user.Role,
		Approved: user.Approved,
		Username: user.Username,
	})
}

func (h *AuthHandler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
