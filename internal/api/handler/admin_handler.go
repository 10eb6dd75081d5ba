package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/makersmarket/marketplace-api/internal/core/ports"
)

// AdminHandler handles the admin-only account operations. Role enforcement
// happens in the RBAC middleware on the route group, not here.
type AdminHandler struct {
	accounts ports.AccountService
}

func NewAdminHandler(accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

// ApproveCreator grants approval to the target account.
//
// @Summary      Approve a creator
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Param        user_id  path      int  true  "Target user id"
// @Success      200      {object}  messageResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/admin/approve_creator/{user_id} [post]
func (h *AdminHandler) ApproveCreator(c echo.Context) error {
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.accounts.ApproveCreator(c.Request().Context(), targetID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Approved"})
}

// ListUsers returns the admin projection of all accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   userSummaryResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.accounts.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userSummaryResponse, len(users))
	for i, u := range users {
		out[i] = userSummaryResponse{
			ID:       u.ID,
			Username: u.Username,
			Role:     u.Role,
			Approved: u.Approved,
		}
	}
	return c.JSON(http.StatusOK, out)
}
