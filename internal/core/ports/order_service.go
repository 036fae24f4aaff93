package ports

import (
	"context"

	"github.com/velora/commerce-system/internal/core/domain"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// SubmitPaymentInput carries a manual bank-transfer submission.
type SubmitPaymentInput struct {
	OrderNumber   string
	TransactionID string
	ScreenshotID  string
}

// OrderPage is one page of order results.
type OrderPage struct {
	Orders []*domain.Order `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

type OrderService interface {
	Create(ctx context.Context, userID string, items []OrderItemInput) (*domain.Order, error)
	// Get returns an order; non-admin callers must own it.
	Get(ctx context.Context, orderNumber, userID string, admin bool) (*domain.Order, error)
	ListForUser(ctx context.Context, userID string, page, limit int) (*OrderPage, error)
	ListAdmin(ctx context.Context, status domain.OrderStatus, page, limit int) (*OrderPage, error)
	// SubmitPayment records a bank-transfer reference against an order the
	// caller owns. A reference already used by any order yields
	// domain.ErrDuplicateTransaction.
	SubmitPayment(ctx context.Context, userID string, in SubmitPaymentInput) (*domain.Order, error)
	// Verify and Reject are the admin review decisions.
	Verify(ctx context.Context, adminID, orderNumber, note string) (*domain.Order, error)
	Reject(ctx context.Context, adminID, orderNumber, note string) (*domain.Order, error)
}
