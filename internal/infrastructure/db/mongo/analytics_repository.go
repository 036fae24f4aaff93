package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/core/ports"
)

// AnalyticsRepository runs aggregation queries over verified orders.
type AnalyticsRepository struct {
	orders *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{orders: db.Collection(collectionOrders)}
}

// RevenueSince aggregates revenue and order count over verified orders
// whose payment was reviewed at or after from. A zero from means all time.
func (r *AnalyticsRepository) RevenueSince(ctx context.Context, from time.Time) (*ports.RevenueAggregate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{"status": domain.OrderVerified}
	if !from.IsZero() {
		match["payment.reviewed_at"] = bson.M{"$gte": from}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"revenue_cents": bson.M{"$sum": "$total_cents"},
			"order_count":   bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate revenue: %w", err)
	}
	defer cur.Close(ctx)

	agg := &ports.RevenueAggregate{}
	if cur.Next(ctx) {
		var row struct {
			RevenueCents int64 `bson:"revenue_cents"`
			OrderCount   int64 `bson:"order_count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode revenue row: %w", err)
		}
		agg.RevenueCents = row.RevenueCents
		agg.OrderCount = row.OrderCount
	}
	return agg, cur.Err()
}

// StatusBreakdown counts orders per status, for the admin dashboard.
func (r *AnalyticsRepository) StatusBreakdown(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate status breakdown: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[domain.OrderStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status domain.OrderStatus `bson:"_id"`
			Count  int64              `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status row: %w", err)
		}
		out[row.Status] = row.Count
	}
	return out, cur.Err()
}
