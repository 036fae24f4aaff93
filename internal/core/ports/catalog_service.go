package ports

import (
	"context"

	"github.com/velora/commerce-system/internal/core/domain"
)

// ProductInput carries the admin-supplied fields of a catalog entry.
type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	ImageID     string
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products []*domain.Product `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

type CatalogService interface {
	// List returns active products for the storefront; includeInactive is
	// reserved for the admin surface.
	List(ctx context.Context, page, limit int, includeInactive bool) (*ProductPage, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	// Deactivate soft-deletes: ordered products keep valid references.
	Deactivate(ctx context.Context, id string) error
}
