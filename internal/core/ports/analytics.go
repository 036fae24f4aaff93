package ports

import (
	"context"
	"time"

	"github.com/velora/commerce-system/internal/core/domain"
)

// RevenueAggregate is the raw result of the revenue aggregation query.
type RevenueAggregate struct {
	RevenueCents int64
	OrderCount   int64
}

// AnalyticsRepository runs aggregation queries over the order store.
type AnalyticsRepository interface {
	RevenueSince(ctx context.Context, from time.Time) (*RevenueAggregate, error)
	StatusBreakdown(ctx context.Context) (map[domain.OrderStatus]int64, error)
}

// Summary is the admin analytics response for one time window.
type Summary struct {
	Window       string                       `json:"window"`
	From         *time.Time                   `json:"from,omitempty"`
	RevenueCents int64                        `json:"revenue_cents"`
	OrderCount   int64                        `json:"order_count"`
	UserCount    int64                        `json:"user_count"`
	ByStatus     map[domain.OrderStatus]int64 `json:"by_status"`
}

type AnalyticsService interface {
	// Summary aggregates over the window "week", "month" or "all".
	Summary(ctx context.Context, window string) (*Summary, error)
}
