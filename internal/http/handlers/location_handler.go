package handlers

import (
	"github.com/adpilot/backend/internal/http/dto"
	"github.com/adpilot/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LocationHandler struct {
	locationService *services.LocationService
	log             *zap.Logger
}

func NewLocationHandler(locationService *services.LocationService, log *zap.Logger) *LocationHandler {
	return &LocationHandler{locationService: locationService, log: log}
}

// SearchLocations serves the plain REST search. Typing clients should prefer
// the WebSocket search, which debounces per connection.
func (h *LocationHandler) SearchLocations(c *fiber.Ctx) error {
	query := c.Query("q")
	locations, err := h.locationService.Search(c.Context(), query)
	if err != nil {
		h.log.Error("location search failed", zap.String("query", query), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "location search is unavailable right now"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: locations})
}
