package ports

import (
	"context"

	"github.com/makersmarket/marketplace-api/internal/core/domain"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
