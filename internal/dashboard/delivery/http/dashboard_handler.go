package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"reputation-scryper/internal/dashboard/dto"
	"reputation-scryper/internal/dashboard/service"
	"reputation-scryper/pkg/logger"
)

// DashboardHandler handles HTTP requests for dashboard analytics.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// RegisterRoutes registers the dashboard routes to the Echo group.
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stats", h.GetStats)
	g.GET("/topics", h.GetTopTopics)
	g.GET("/feed", h.GetFeed)
}

// GetStats godoc
// @Summary Sentiment statistics
// @Description Count the caller's company data points per sentiment over the last N days
// @Tags dashboard
// @Produce  json
// @Security BearerAuth
// @Param   period  query   int false   "Window in days (default 30)"
// @Success 200 {object} dto.StatsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c echo.Context) error {
	var query dto.PeriodQuery
	if err := bindAndValidate(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, ok := UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	stats, err := h.dashboardService.GetStats(c.Request().Context(), userID, query.Period)
	if err != nil {
		return h.handleError(c, "Failed to get stats", err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetTopTopics godoc
// @Summary Topic frequencies
// @Description Count topic occurrences across the caller's company data points over the last N days
// @Tags dashboard
// @Produce  json
// @Security BearerAuth
// @Param   period  query   int false   "Window in days (default 30)"
// @Success 200 {object} dto.TopicsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard/topics [get]
func (h *DashboardHandler) GetTopTopics(c echo.Context) error {
	var query dto.PeriodQuery
	if err := bindAndValidate(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, ok := UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	topics, err := h.dashboardService.GetTopTopics(c.Request().Context(), userID, query.Period)
	if err != nil {
		return h.handleError(c, "Failed to get topics", err)
	}
	return c.JSON(http.StatusOK, topics)
}

// GetFeed godoc
// @Summary Mentions feed
// @Description Page through the newest data point per distinct content
// @Tags dashboard
// @Produce  json
// @Security BearerAuth
// @Param   page       query   int    false   "Page number (default 1)"
// @Param   limit      query   int    false   "Page size (default 10)"
// @Param   sentiment  query   string false   "POSITIVE, NEGATIVE or NEUTRAL"
// @Param   period     query   int    false   "Window in days (default unbounded)"
// @Success 200 {object} dto.FeedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard/feed [get]
func (h *DashboardHandler) GetFeed(c echo.Context) error {
	var query dto.FeedQuery
	if err := bindAndValidate(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, ok := UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	feed, err := h.dashboardService.GetFeed(c.Request().Context(), userID, query)
	if err != nil {
		return h.handleError(c, "Failed to get feed", err)
	}
	return c.JSON(http.StatusOK, feed)
}

func (h *DashboardHandler) handleError(c echo.Context, msg string, err error) error {
	if errors.Is(err, service.ErrNoCompanyForUser) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	h.logger.Error(msg, logger.ErrorField(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

func bindAndValidate(c echo.Context, target interface{}) error {
	if err := c.Bind(target); err != nil {
		return errors.New("Invalid query parameters")
	}
	if err := c.Validate(target); err != nil {
		return err
	}
	return nil
}
