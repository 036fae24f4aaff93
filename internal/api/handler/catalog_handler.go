package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/velora/commerce-system/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type productRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents" validate:"required,gt=0"`
	Currency    string `json:"currency,omitempty"`
	ImageID     string `json:"image_id,omitempty"`
}

// List returns the active catalog for the storefront.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  ports.ProductPage
// @Router       /products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	out, err := h.catalog.List(c.Request().Context(), page, limit, false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// AdminList includes deactivated products.
func (h *CatalogHandler) AdminList(c echo.Context) error {
	page, limit := pagination(c)
	out, err := h.catalog.List(c.Request().Context(), page, limit, true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one product.
//
// @Summary      Product detail
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	p, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create adds a catalog entry (admin only).
func (h *CatalogHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.catalog.Create(c.Request().Context(), ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		ImageID:     req.ImageID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update rewrites a catalog entry (admin only).
func (h *CatalogHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.catalog.Update(c.Request().Context(), c.Param("id"), ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		ImageID:     req.ImageID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete deactivates a catalog entry (admin only).
func (h *CatalogHandler) Delete(c echo.Context) error {
	if err := h.catalog.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
