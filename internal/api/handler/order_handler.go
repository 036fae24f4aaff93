package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velora/commerce-system/internal/api/middleware"
	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/core/ports"
)

// AuditReader lists the payment audit trail of one order.
type AuditReader interface {
	ListByOrder(ctx context.Context, orderNumber string) ([]*domain.PaymentAudit, error)
}

type OrderHandler struct {
	orders ports.OrderService
	audit  AuditReader
}

func NewOrderHandler(orders ports.OrderService, audit AuditReader) *OrderHandler {
	return &OrderHandler{orders: orders, audit: audit}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type submitPaymentRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,min=4"`
	ScreenshotID  string `json:"screenshot_id,omitempty"`
}

type reviewRequest struct {
	Note string `json:"note,omitempty"`
}

// Create opens a new order for the authenticated caller.
//
// @Summary      Create order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order lines"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.orders.Create(c.Request().Context(), middleware.PrincipalFromContext(c).ID, items)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// List returns the caller's own orders.
func (h *OrderHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	out, err := h.orders.ListForUser(c.Request().Context(), middleware.PrincipalFromContext(c).ID, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one of the caller's orders.
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("number"), middleware.PrincipalFromContext(c).ID, false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// SubmitPayment records a bank-transfer payment against the caller's order.
//
// @Summary      Submit bank-transfer payment
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        number  path      string                true  "Order number"
// @Param        body    body      submitPaymentRequest  true  "Transfer reference"
// @Success      200     {object}  domain.Order
// @Failure      400     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Router       /orders/{number}/payment [post]
func (h *OrderHandler) SubmitPayment(c echo.Context) error {
	var req submitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orders.SubmitPayment(c.Request().Context(), middleware.PrincipalFromContext(c).ID, ports.SubmitPaymentInput{
		OrderNumber:   c.Param("number"),
		TransactionID: req.TransactionID,
		ScreenshotID:  req.ScreenshotID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// AdminList returns orders across all users, optionally by status.
func (h *OrderHandler) AdminList(c echo.Context) error {
	page, limit := pagination(c)
	out, err := h.orders.ListAdmin(c.Request().Context(), domain.OrderStatus(c.QueryParam("status")), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// AdminGet returns any order by number.
func (h *OrderHandler) AdminGet(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("number"), "", true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Verify confirms a submitted payment.
func (h *OrderHandler) Verify(c echo.Context) error {
	return h.reviewDecision(c, true)
}

// Reject sends a submitted payment back for resubmission.
func (h *OrderHandler) Reject(c echo.Context) error {
	return h.reviewDecision(c, false)
}

func (h *OrderHandler) reviewDecision(c echo.Context, verify bool) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	adminID := middleware.PrincipalFromContext(c).ID
	var (
		order *domain.Order
		err   error
	)
	if verify {
		order, err = h.orders.Verify(c.Request().Context(), adminID, c.Param("number"), req.Note)
	} else {
		order, err = h.orders.Reject(c.Request().Context(), adminID, c.Param("number"), req.Note)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// AuditTrail returns the payment audit entries of one order.
func (h *OrderHandler) AuditTrail(c echo.Context) error {
	entries, err := h.audit.ListByOrder(c.Request().Context(), c.Param("number"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"entries": entries})
}
