package ports

import (
	"context"

	"github.com/velora/commerce-system/internal/core/domain"
)

// ListOrdersFilter carries the query parameters for listing orders.
// UserID is enforced by the service layer for non-admin callers.
type ListOrdersFilter struct {
	UserID string // empty = no filter (admin); non-empty = scoped to owner
	Status domain.OrderStatus
	Page   int // 1-based
	Limit  int // capped at 100 by the service
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	// FindByOrderNumber retrieves an order; when userID is non-empty the
	// query additionally enforces ownership.
	FindByOrderNumber(ctx context.Context, orderNumber, userID string) (*domain.Order, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
	// UpdateStatus flips the status only while the order still holds
	// fromStatus, optionally replacing the payment sub-document.
	UpdateStatus(ctx context.Context, orderNumber string, fromStatus, toStatus domain.OrderStatus, payment *domain.Payment) error
}

// AuditRecorder persists payment audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry *domain.PaymentAudit) error
}

// AuditEnqueuer hands audit entries to the asynchronous dispatcher.
type AuditEnqueuer interface {
	Enqueue(entry *domain.PaymentAudit)
}
