package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/velora/commerce-system/internal/api/metrics"
	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/core/ports"
)

const paymentMethodBankTransfer = "bank_transfer"

// OrderService implements order creation and the manual bank-transfer
// payment flow, including the admin review decisions.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	audit    ports.AuditEnqueuer
	logger   zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, audit ports.AuditEnqueuer, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, audit: audit, logger: logger}
}

// Create prices the requested items against the current catalog and opens
// an order awaiting payment.
func (s *OrderService) Create(ctx context.Context, userID string, items []ports.OrderItemInput) (*domain.Order, error) {
	if userID == "" || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var (
		lines    []domain.OrderItem
		total    int64
		currency string
	)
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		p, err := s.products.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.Active {
			return nil, domain.ErrProductNotFound
		}
		if currency == "" {
			currency = p.Currency
		}
		lines = append(lines, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitCents: p.PriceCents,
			Quantity:  it.Quantity,
		})
		total += p.PriceCents * int64(it.Quantity)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OrderNumber: generateOrderNumber(),
		UserID:      userID,
		Items:       lines,
		TotalCents:  total,
		Currency:    currency,
		Status:      domain.OrderPendingPayment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	s.logger.Info().
		Str("order_number", order.OrderNumber).
		Str("user_id", userID).
		Int64("total_cents", total).
		Msg("order created")
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderNumber, userID string, admin bool) (*domain.Order, error) {
	owner := userID
	if admin {
		owner = ""
	}
	return s.orders.FindByOrderNumber(ctx, orderNumber, owner)
}

func (s *OrderService) ListForUser(ctx context.Context, userID string, page, limit int) (*ports.OrderPage, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	page, limit = clampPage(page, limit)

	orders, total, err := s.orders.List(ctx, ports.ListOrdersFilter{UserID: userID, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}
	return &ports.OrderPage{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) ListAdmin(ctx context.Context, status domain.OrderStatus, page, limit int) (*ports.OrderPage, error) {
	page, limit = clampPage(page, limit)

	orders, total, err := s.orders.List(ctx, ports.ListOrdersFilter{Status: status, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}
	return &ports.OrderPage{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

// SubmitPayment records a bank-transfer reference against an order the
// caller owns and moves it into review.
func (s *OrderService) SubmitPayment(ctx context.Context, userID string, in ports.SubmitPaymentInput) (*domain.Order, error) {
	if in.TransactionID == "" {
		return nil, domain.ErrInvalidInput
	}

	order, err := s.orders.FindByOrderNumber(ctx, in.OrderNumber, userID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(domain.OrderPaymentSubmitted) {
		return nil, domain.ErrInvalidTransition
	}

	if existing, err := s.orders.FindByTransactionID(ctx, in.TransactionID); err == nil {
		if existing.OrderNumber != order.OrderNumber {
			return nil, domain.ErrDuplicateTransaction
		}
	} else if !errors.Is(err, domain.ErrOrderNotFound) {
		return nil, err
	}

	payment := &domain.Payment{
		Method:        paymentMethodBankTransfer,
		TransactionID: in.TransactionID,
		ScreenshotID:  in.ScreenshotID,
		SubmittedAt:   time.Now().UTC(),
	}

	from := order.Status
	if err := s.orders.UpdateStatus(ctx, order.OrderNumber, from, domain.OrderPaymentSubmitted, payment); err != nil {
		return nil, err
	}

	order.Status = domain.OrderPaymentSubmitted
	order.Payment = payment

	metrics.PaymentsSubmittedTotal.Inc()
	s.recordAudit(order.OrderNumber, from, domain.OrderPaymentSubmitted, userID, "")
	s.logger.Info().
		Str("order_number", order.OrderNumber).
		Str("transaction_id", in.TransactionID).
		Msg("payment submitted")
	return order, nil
}

// Verify marks a submitted payment as confirmed against the bank ledger.
func (s *OrderService) Verify(ctx context.Context, adminID, orderNumber, note string) (*domain.Order, error) {
	return s.review(ctx, adminID, orderNumber, note, domain.OrderVerified)
}

// Reject sends a submitted payment back; the client may resubmit with a
// corrected reference.
func (s *OrderService) Reject(ctx context.Context, adminID, orderNumber, note string) (*domain.Order, error) {
	return s.review(ctx, adminID, orderNumber, note, domain.OrderRejected)
}

func (s *OrderService) review(ctx context.Context, adminID, orderNumber, note string, decision domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.FindByOrderNumber(ctx, orderNumber, "")
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(decision) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	payment := order.Payment
	if payment == nil {
		return nil, domain.ErrInvalidTransition
	}
	payment.ReviewedAt = &now
	payment.ReviewedBy = adminID
	payment.ReviewNote = note

	from := order.Status
	if err := s.orders.UpdateStatus(ctx, orderNumber, from, decision, payment); err != nil {
		return nil, err
	}

	order.Status = decision
	metrics.PaymentsReviewedTotal.WithLabelValues(string(decision)).Inc()
	s.recordAudit(orderNumber, from, decision, adminID, note)
	s.logger.Info().
		Str("order_number", orderNumber).
		Str("decision", string(decision)).
		Str("admin_id", adminID).
		Msg("payment reviewed")
	return order, nil
}

func (s *OrderService) recordAudit(orderNumber string, from, to domain.OrderStatus, actorID, note string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(&domain.PaymentAudit{
		OrderNumber: orderNumber,
		FromStatus:  from,
		ToStatus:    to,
		ActorID:     actorID,
		Note:        note,
		At:          time.Now().UTC(),
	})
}

// generateOrderNumber returns a unique order number in the format VL-XXXXXXXX.
func generateOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("VL-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("VL-%08X", b)
}
