package http

import (
	"errors"
	"net/http"

	"golang-asset-analytics/internal/api/service"
	"golang-asset-analytics/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AssetHandler handles HTTP requests for the catalog, the per-asset detail
// view and the landing view.
type AssetHandler struct {
	assetService service.AssetService
	logger       *logger.Logger
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService service.AssetService, logger *logger.Logger) *AssetHandler {
	return &AssetHandler{assetService: assetService, logger: logger}
}

// RegisterRoutes registers the asset routes to the Echo group.
func (h *AssetHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/assets", h.GetCatalog)
	g.GET("/assets/:ticker", h.GetAssetDetail)
	g.GET("/home", h.GetHome)
}

// GetCatalog returns every asset split by type with quotes and sparklines.
func (h *AssetHandler) GetCatalog(c echo.Context) error {
	catalog, err := h.assetService.GetCatalog(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get catalog", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get assets"})
	}
	return c.JSON(http.StatusOK, catalog)
}

// GetAssetDetail returns the full view for one ticker.
func (h *AssetHandler) GetAssetDetail(c echo.Context) error {
	detail, err := h.assetService.GetAssetDetail(c.Request().Context(), c.Param("ticker"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Asset not found"})
		}
		h.logger.Error("Failed to get asset detail", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get asset"})
	}
	return c.JSON(http.StatusOK, detail)
}

// GetHome returns the landing view.
func (h *AssetHandler) GetHome(c echo.Context) error {
	home, err := h.assetService.GetHome(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get home view", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get home view"})
	}
	return c.JSON(http.StatusOK, home)
}
