package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"reputation-scryper/internal/collector/strategy"
	"reputation-scryper/internal/dashboard/dto"
	"reputation-scryper/internal/dashboard/service"
	"reputation-scryper/pkg/logger"
)

// SampleHandler serves the public free sample.
type SampleHandler struct {
	sampleService service.SampleService
	logger        *logger.Logger
}

// NewSampleHandler creates a new SampleHandler.
func NewSampleHandler(sampleService service.SampleService, logger *logger.Logger) *SampleHandler {
	return &SampleHandler{sampleService: sampleService, logger: logger}
}

// RegisterRoutes registers the sample route to the Echo group.
func (h *SampleHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/sample", h.GetSample)
}

// GetSample godoc
// @Summary Free reputation sample
// @Description Acquire and normalize a few recent reviews for any company without saving them
// @Tags sample
// @Produce  json
// @Param   company  query   string true   "Company name"
// @Success 200 {object} dto.SampleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sample [get]
func (h *SampleHandler) GetSample(c echo.Context) error {
	var query dto.SampleQuery
	if err := bindAndValidate(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	sample, err := h.sampleService.GetSample(c.Request().Context(), query.Company)
	if err != nil {
		if errors.Is(err, strategy.ErrAcquisitionFailure) {
			h.logger.Warn("Sample acquisition failed", logger.ErrorField(err), logger.StringField("company", query.Company))
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "Failed to acquire data from upstream"})
		}
		h.logger.Error("Sample failed", logger.ErrorField(err), logger.StringField("company", query.Company))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build sample"})
	}
	return c.JSON(http.StatusOK, sample)
}
