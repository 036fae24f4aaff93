package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/core/ports"
)

// AnalyticsService aggregates revenue and order counts over sliding
// windows for the admin dashboard.
type AnalyticsService struct {
	analytics ports.AnalyticsRepository
	users     ports.UserRepository
	logger    zerolog.Logger
}

func NewAnalyticsService(analytics ports.AnalyticsRepository, users ports.UserRepository, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, users: users, logger: logger}
}

func (s *AnalyticsService) Summary(ctx context.Context, window string) (*ports.Summary, error) {
	from, err := windowStart(window, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	agg, err := s.analytics.RevenueSince(ctx, from)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.analytics.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	out := &ports.Summary{
		Window:       window,
		RevenueCents: agg.RevenueCents,
		OrderCount:   agg.OrderCount,
		UserCount:    userCount,
		ByStatus:     byStatus,
	}
	if !from.IsZero() {
		out.From = &from
	}
	return out, nil
}

// windowStart converts a window name to its inclusive lower bound.
// A zero time means no lower bound (all time).
func windowStart(window string, now time.Time) (time.Time, error) {
	switch window {
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	case "all", "":
		return time.Time{}, nil
	default:
		return time.Time{}, domain.ErrInvalidInput
	}
}
