package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-asset-analytics/internal/api/delivery/http/middleware"
	"golang-asset-analytics/internal/api/service"
	"golang-asset-analytics/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ProfileHandler handles HTTP requests for the authenticated user's profile,
// favorites and prediction view log.
type ProfileHandler struct {
	profileService   service.ProfileService
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, dashboardService service.DashboardService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService:   profileService,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// RegisterRoutes registers the authenticated routes to the Echo group. The
// group is expected to carry the JWT middleware.
func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.POST("/profile/favorites/:assetID", h.ToggleFavorite)
	g.POST("/predictions/:id/view", h.RecordPredictionView)
	g.GET("/dashboard", h.GetDashboard)
}

// GetProfile returns the user's plan and favorites.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profileService.GetProfile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Profile not found"})
		}
		h.logger.Error("Failed to get profile", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get profile"})
	}
	return c.JSON(http.StatusOK, profile)
}

// ToggleFavorite adds or removes one asset from the user's favorites.
func (h *ProfileHandler) ToggleFavorite(c echo.Context) error {
	assetID, err := strconv.ParseUint(c.Param("assetID"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid asset ID"})
	}

	result, err := h.profileService.ToggleFavorite(c.Request().Context(), middleware.UserID(c), uint(assetID))
	if err != nil {
		if errors.Is(err, service.ErrAssetNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Asset not found"})
		}
		h.logger.Error("Failed to toggle favorite", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to toggle favorite"})
	}
	return c.JSON(http.StatusOK, result)
}

// RecordPredictionView appends one prediction to the user's view log.
func (h *ProfileHandler) RecordPredictionView(c echo.Context) error {
	predictionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid prediction ID"})
	}

	view, err := h.profileService.RecordPredictionView(c.Request().Context(), middleware.UserID(c), uint(predictionID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Prediction not found"})
		}
		h.logger.Error("Failed to record prediction view", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to record prediction view"})
	}
	return c.JSON(http.StatusCreated, view)
}

// GetDashboard returns the personalized view.
func (h *ProfileHandler) GetDashboard(c echo.Context) error {
	dashboard, err := h.dashboardService.GetDashboard(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Profile not found"})
		}
		h.logger.Error("Failed to get dashboard", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get dashboard"})
	}
	return c.JSON(http.StatusOK, dashboard)
}
