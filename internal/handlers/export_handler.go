package handlers

import (
	"github.com/SAP-F-2025/survey-service/internal/export"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	BaseHandler
	service services.ExportService
}

func NewExportHandler(service services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ExportAnalytics handles GET /export
// @Summary Download the analytics snapshot
// @Tags export
// @Produce text/csv,application/json,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default), json or xlsx"
// @Param startDate query string false "Inclusive start"
// @Param endDate query string false "Inclusive end"
// @Param section query string false "Section key"
// @Success 200 {file} file
// @Failure 400 {object} export.Result
// @Failure 503 {object} export.Result
// @Router /export [get]
func (h *ExportHandler) ExportAnalytics(c *gin.Context) {
	result, err := h.service.ExportAnalytics(c.Request.Context(), c.Query("format"), filterParams(c))
	h.respond(c, result, err)
}

// ExportSummary handles GET /export/summary
// @Summary Download the per-question summary as CSV
// @Tags export
// @Produce text/csv
// @Success 200 {file} file
// @Failure 400 {object} export.Result
// @Failure 503 {object} export.Result
// @Router /export/summary [get]
func (h *ExportHandler) ExportSummary(c *gin.Context) {
	result, err := h.service.ExportSummary(c.Request.Context(), filterParams(c))
	h.respond(c, result, err)
}

// ExportResponses handles GET /export/responses
// @Summary Download raw per-session answers
// @Tags export
// @Produce text/csv,application/json
// @Param format query string false "csv (default) or json"
// @Success 200 {file} file
// @Failure 400 {object} export.Result
// @Failure 503 {object} export.Result
// @Router /export/responses [get]
func (h *ExportHandler) ExportResponses(c *gin.Context) {
	result, err := h.service.ExportResponses(c.Request.Context(), c.Query("format"), filterParams(c))
	h.respond(c, result, err)
}

func (h *ExportHandler) respond(c *gin.Context, result *export.Result, err error) {
	if err != nil {
		status, _ := statusForError(err)
		if status >= 500 {
			h.LogError(c, err, "Export failed", "status_code", status)
		} else {
			h.LogWarn(c, "Export rejected", "status_code", status, "error", err)
		}
		c.JSON(status, result)
		return
	}
	sendFile(c, result)
}
