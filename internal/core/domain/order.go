package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order's manual
// bank-transfer payment.
type OrderStatus string

const (
	OrderPendingPayment   OrderStatus = "pending_payment"
	OrderPaymentSubmitted OrderStatus = "payment_submitted"
	OrderVerified         OrderStatus = "verified"
	OrderRejected         OrderStatus = "rejected"
	OrderCancelled        OrderStatus = "cancelled"
)

// validOrderTransitions defines the allowed state machine transitions.
// A rejected payment may be resubmitted with a corrected reference.
var validOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderPendingPayment:   {OrderPaymentSubmitted, OrderCancelled},
	OrderPaymentSubmitted: {OrderVerified, OrderRejected},
	OrderRejected:         {OrderPaymentSubmitted},
}

var ErrInvalidTransition = errors.New("invalid order status transition")

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a priced line captured at order time; later catalog edits do
// not rewrite history.
type OrderItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Name      string `json:"name" bson:"name"`
	UnitCents int64  `json:"unit_cents" bson:"unit_cents"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Payment records a manual bank-transfer submission against an order.
type Payment struct {
	Method        string     `json:"method" bson:"method"`
	TransactionID string     `json:"transaction_id" bson:"transaction_id"`
	ScreenshotID  string     `json:"screenshot_id,omitempty" bson:"screenshot_id,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at" bson:"submitted_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	ReviewedBy    string     `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewNote    string     `json:"review_note,omitempty" bson:"review_note,omitempty"`
}

// Order is a purchase awaiting, carrying, or past manual payment review.
type Order struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	OrderNumber string      `json:"order_number" bson:"order_number"`
	UserID      string      `json:"user_id" bson:"user_id"`
	Items       []OrderItem `json:"items" bson:"items"`
	TotalCents  int64       `json:"total_cents" bson:"total_cents"`
	Currency    string      `json:"currency" bson:"currency"`
	Status      OrderStatus `json:"status" bson:"status"`
	Payment     *Payment    `json:"payment,omitempty" bson:"payment,omitempty"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}

// PaymentAudit is one entry in the payment audit trail, written
// asynchronously whenever an order's payment status changes.
type PaymentAudit struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	OrderNumber string      `json:"order_number" bson:"order_number"`
	FromStatus  OrderStatus `json:"from_status" bson:"from_status"`
	ToStatus    OrderStatus `json:"to_status" bson:"to_status"`
	ActorID     string      `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Note        string      `json:"note,omitempty" bson:"note,omitempty"`
	At          time.Time   `json:"at" bson:"at"`
}
