package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	collectorservice "reputation-scryper/internal/collector/service"
	"reputation-scryper/internal/collector/strategy"
	"reputation-scryper/internal/dashboard/service"
	"reputation-scryper/pkg/logger"
)

// RefreshHandler handles on-demand refresh requests.
type RefreshHandler struct {
	trigger service.RefreshTrigger
	logger  *logger.Logger
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(trigger service.RefreshTrigger, logger *logger.Logger) *RefreshHandler {
	return &RefreshHandler{trigger: trigger, logger: logger}
}

// RegisterRoutes registers the refresh route to the Echo group.
func (h *RefreshHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/refresh", h.Refresh)
}

// Refresh godoc
// @Summary Refresh company data
// @Description Acquire, normalize and persist fresh feedback for the caller's company
// @Tags data
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} dto.RefreshSummary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /data/refresh [post]
func (h *RefreshHandler) Refresh(c echo.Context) error {
	userID, ok := UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	summary, err := h.trigger.TriggerRefresh(c.Request().Context(), userID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, summary)
	case errors.Is(err, service.ErrNoCompanyForUser), errors.Is(err, collectorservice.ErrCompanyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, collectorservice.ErrRefreshThrottled):
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": err.Error()})
	case errors.Is(err, strategy.ErrAcquisitionFailure):
		h.logger.Warn("Refresh acquisition failed", logger.ErrorField(err), logger.StringField("user_id", userID.String()))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Failed to acquire data from upstream"})
	default:
		h.logger.Error("Refresh failed", logger.ErrorField(err), logger.StringField("user_id", userID.String()))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to refresh data"})
	}
}
