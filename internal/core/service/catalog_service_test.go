package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/core/ports"
)

func TestCatalogService_Create(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewCatalogService(repo, zerolog.Nop())
	ctx := context.Background()

	p, err := svc.Create(ctx, ports.ProductInput{Name: "Shirt", PriceCents: 1999})
	if err != nil {
		t.Fatal(err)
	}
	if !p.Active {
		t.Fatal("new products start active")
	}
	if p.Currency != "USD" {
		t.Fatalf("expected USD default, got %q", p.Currency)
	}

	for name, in := range map[string]ports.ProductInput{
		"missing name":   {PriceCents: 1999},
		"zero price":     {Name: "Shirt"},
		"negative price": {Name: "Shirt", PriceCents: -5},
	} {
		if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestCatalogService_Update(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewCatalogService(repo, zerolog.Nop())
	ctx := context.Background()
	p := repo.seed(t, "Shirt", 1999, true)

	updated, err := svc.Update(ctx, p.ID, ports.ProductInput{Name: "Better Shirt", PriceCents: 2499, Currency: "EUR"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Better Shirt" || updated.PriceCents != 2499 || updated.Currency != "EUR" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, err := svc.Update(ctx, "nope", ports.ProductInput{Name: "X", PriceCents: 1}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_DeactivateHidesFromStorefront(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewCatalogService(repo, zerolog.Nop())
	ctx := context.Background()
	p := repo.seed(t, "Shirt", 1999, true)

	if err := svc.Deactivate(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	// Idempotent.
	if err := svc.Deactivate(ctx, p.ID); err != nil {
		t.Fatal(err)
	}

	// The record survives so existing orders keep a valid reference.
	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Active {
		t.Fatal("product must be inactive")
	}

	storefront, err := svc.List(ctx, 1, 20, false)
	if err != nil {
		t.Fatal(err)
	}
	if storefront.Total != 0 {
		t.Fatalf("inactive product must not list on the storefront, got %d", storefront.Total)
	}

	adminView, err := svc.List(ctx, 1, 20, true)
	if err != nil {
		t.Fatal(err)
	}
	if adminView.Total != 1 {
		t.Fatalf("admin listing must include inactive products, got %d", adminView.Total)
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, defaultPageLimit},
		{-3, -1, 1, defaultPageLimit},
		{2, 50, 2, 50},
		{1, 500, 1, maxPageLimit},
	}
	for _, tc := range cases {
		p, l := clampPage(tc.page, tc.limit)
		if p != tc.wantPage || l != tc.wantLimit {
			t.Errorf("clampPage(%d, %d) = (%d, %d), want (%d, %d)", tc.page, tc.limit, p, l, tc.wantPage, tc.wantLimit)
		}
	}
}
