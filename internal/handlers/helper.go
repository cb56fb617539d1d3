package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/survey-service/internal/analytics"
	"github.com/SAP-F-2025/survey-service/internal/export"
	"github.com/gin-gonic/gin"
)

// filterParams reads startDate, endDate and section from the query string
func filterParams(c *gin.Context) analytics.FilterParams {
	return analytics.FilterParams{
		StartDate: strings.TrimSpace(c.Query("startDate")),
		EndDate:   strings.TrimSpace(c.Query("endDate")),
		Section:   strings.TrimSpace(c.Query("section")),
	}
}

// sendFile writes an export result as an attachment
func sendFile(c *gin.Context, result *export.Result) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
