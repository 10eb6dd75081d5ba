package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/makersmarket/marketplace-api/internal/core/domain"
	"github.com/makersmarket/marketplace-api/internal/core/ports"
)

// ProductHandler handles catalog requests.
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// Add creates a new listing owned by the caller. Only approved creators pass;
// the role/approval pair is re-checked by the service against the freshly
// loaded user, so a revoked creator is rejected immediately.
//
// @Summary      Add a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      addProductRequest  true  "Product details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Add(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req addProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.catalog.AddProduct(c.Request().Context(), ports.AddProductInput{
		Creator:     user,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Type:        req.Type,
		DemoURL:     req.DemoURL,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "Product added"})
}

// List returns every listing. Any authenticated caller may list, including
// unapproved creators.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   productResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponses(products))
}

func toProductResponses(products []*domain.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Type:        p.Type,
			DemoURL:     p.DemoURL,
		}
	}
	return out
}
