package ports

import (
	"context"

	"github.com/makersmarket/marketplace-api/internal/core/domain"
)

// AddProductInput carries all data needed to create a catalog listing.
// Creator is the authenticated caller as resolved for this request; the
// service re-checks role and approval on it.
type AddProductInput struct {
	Creator     *domain.User
	Name        string
	Description string
	Price       float64
	Type        string
	DemoURL     string
}

// CatalogService defines use-case operations for the product catalog.
type CatalogService interface {
	AddProduct(ctx context.Context, input AddProductInput) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}
