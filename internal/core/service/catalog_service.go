package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/makersmarket/marketplace-api/internal/api/metrics"
	"github.com/makersmarket/marketplace-api/internal/core/domain"
	"github.com/makersmarket/marketplace-api/internal/core/ports"
)

// CatalogService implements product creation and listing.
type CatalogService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

// AddProduct persists a new listing bound to the caller. The caller must be
// an approved creator at this moment; the check is not repeated later.
func (s *CatalogService) AddProduct(ctx context.Context, input ports.AddProductInput) (*domain.Product, error) {
	if input.Creator == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !input.Creator.CanPublish() {
		return nil, domain.ErrNotApprovedCreator
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Type:        input.Type,
		CreatorID:   input.Creator.ID,
		DemoURL:     input.DemoURL,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.log.Error().Err(err).Int64("creator_id", input.Creator.ID).Msg("failed to create product")
		return nil, err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(created.Type).Inc()
	s.log.Info().Int64("product_id", created.ID).Int64("creator_id", created.CreatorID).Str("type", created.Type).Msg("product added")

	return created, nil
}

// ListProducts returns every listing; no filtering by caller.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}
