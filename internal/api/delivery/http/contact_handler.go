package http

import (
	"errors"
	"net/http"

	"golang-asset-analytics/internal/api/dto"
	"golang-asset-analytics/internal/api/service"
	"golang-asset-analytics/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ContactHandler handles HTTP requests for the contact form.
type ContactHandler struct {
	contactService service.ContactService
	logger         *logger.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService service.ContactService, logger *logger.Logger) *ContactHandler {
	return &ContactHandler{contactService: contactService, logger: logger}
}

// RegisterRoutes registers the contact routes to the Echo group.
func (h *ContactHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/contact", h.SubmitMessage)
}

// SubmitMessage stores one contact form submission.
func (h *ContactHandler) SubmitMessage(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.contactService.SubmitMessage(c.Request().Context(), &req); err != nil {
		if errors.Is(err, service.ErrInvalidContact) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to store contact message", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store message"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "received"})
}
