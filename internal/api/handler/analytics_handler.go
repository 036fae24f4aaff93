package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velora/commerce-system/internal/core/ports"
)

type AnalyticsHandler struct {
	analytics ports.AnalyticsService
}

func NewAnalyticsHandler(analytics ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Summary aggregates revenue, order and user counts for the requested
// window ("week", "month" or "all"; default all).
//
// @Summary      Analytics summary
// @Tags         analytics
// @Produce      json
// @Param        window  query     string  false  "week | month | all"
// @Success      200     {object}  ports.Summary
// @Failure      400     {object}  map[string]string
// @Router       /admin/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	window := c.QueryParam("window")
	if window == "" {
		window = "all"
	}

	out, err := h.analytics.Summary(c.Request().Context(), window)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
