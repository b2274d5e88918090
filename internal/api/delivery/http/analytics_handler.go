package http

import (
	"net/http"

	"golang-asset-analytics/internal/api/service"
	"golang-asset-analytics/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler handles HTTP requests for the news and sentiment feed.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	logger           *logger.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, logger: logger}
}

// RegisterRoutes registers the analytics routes to the Echo group.
func (h *AnalyticsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/analytics", h.GetAnalytics)
}

// GetAnalytics returns the combined news and sentiment feed.
func (h *AnalyticsHandler) GetAnalytics(c echo.Context) error {
	analytics, err := h.analyticsService.GetAnalytics(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get analytics", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get analytics"})
	}
	return c.JSON(http.StatusOK, analytics)
}
