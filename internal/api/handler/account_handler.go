package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/makersmarket/marketplace-api/internal/core/ports"
)

// AccountHandler handles the self-service account operations that require an
// existing session: creator requests and referral info.
type AccountHandler struct {
	accounts ports.AccountService
	// baseURL overrides the request host when building referral links.
	baseURL string
}

func NewAccountHandler(accounts ports.AccountService, baseURL string) *AccountHandler {
	return &AccountHandler{accounts: accounts, baseURL: baseURL}
}

// RequestCreator transitions the caller from user to creator (pending approval).
//
// @Summary      Request creator status
// @Tags         account
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/request_creator [post]
func (h *AccountHandler) RequestCreator(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.accounts.RequestCreator(c.Request().Context(), user.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Request sent for approval"})
}

// Referral returns the caller's referral code and a shareable signup link.
//
// @Summary      Referral info
// @Tags         account
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  referralResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/referral [get]
func (h *AccountHandler) Referral(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	base := h.baseURL
	if base == "" {
		base = "https://" + c.Request().Host
	}

	return c.JSON(http.StatusOK, referralResponse{
		ReferralCode: user.ReferralCode,
		ReferralLink: base + "/signup?ref=" + user.ReferralCode,
	})
}
