package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CatalogService implements product listing and admin catalog management.
type CatalogService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) List(ctx context.Context, page, limit int, includeInactive bool) (*ports.ProductPage, error) {
	page, limit = clampPage(page, limit)

	products, total, err := s.repo.List(ctx, ports.ListProductsFilter{
		ActiveOnly: !includeInactive,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	return &ports.ProductPage{Products: products, Total: total, Page: page, Limit: limit}, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if in.Name == "" || in.PriceCents <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Currency:    in.Currency,
		ImageID:     in.ImageID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	if in.Name == "" || in.PriceCents <= 0 {
		return nil, domain.ErrInvalidInput
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.PriceCents = in.PriceCents
	if in.Currency != "" {
		p.Currency = in.Currency
	}
	p.ImageID = in.ImageID
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Deactivate removes a product from the storefront without deleting it;
// existing orders keep valid references.
func (s *CatalogService) Deactivate(ctx context.Context, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.Active {
		return nil
	}
	p.Active = false
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deactivated")
	return nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
