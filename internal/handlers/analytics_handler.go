package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	BaseHandler
	service services.AnalyticsService
}

func NewAnalyticsHandler(service services.AnalyticsService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetAnalytics handles GET /analytics
// @Summary Get the analytics snapshot
// @Description Aggregates all stored responses, optionally narrowed by date range and section.
// @Tags analytics
// @Produce json
// @Param startDate query string false "Inclusive start (YYYY-MM-DD or RFC 3339)"
// @Param endDate query string false "Inclusive end (YYYY-MM-DD or RFC 3339)"
// @Param section query string false "Section key"
// @Success 200 {object} models.AnalyticsSnapshot
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} models.AnalyticsSnapshot
// @Router /analytics [get]
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	snapshot, err := h.service.GetSnapshot(c.Request.Context(), filterParams(c))
	if err != nil {
		if services.IsValidation(err) {
			h.handleServiceError(c, err, "Invalid analytics filters")
			return
		}
		// the snapshot still has the full shape, with the failure insight
		status, _ := statusForError(err)
		h.LogError(c, err, "Failed to compute analytics", "status_code", status)
		c.JSON(status, snapshot)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetSections handles GET /analytics/sections
// @Summary List sections that have responses
// @Tags analytics
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 503 {object} ErrorResponse
// @Router /analytics/sections [get]
func (h *AnalyticsHandler) GetSections(c *gin.Context) {
	sections, err := h.service.GetSections(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "Failed to load sections")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Sections retrieved successfully", sections)
}

// GetDateRange handles GET /analytics/date-range
// @Summary Get the earliest and latest response timestamps
// @Tags analytics
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 503 {object} ErrorResponse
// @Router /analytics/date-range [get]
func (h *AnalyticsHandler) GetDateRange(c *gin.Context) {
	dateRange, err := h.service.GetDateRange(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, "Failed to load date range")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Date range retrieved successfully", dateRange)
}
