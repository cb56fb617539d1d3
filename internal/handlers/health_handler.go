package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	repo repositories.Repository
}

func NewHealthHandler(repo repositories.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Check handles GET /health
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "survey-service",
			"store":   "unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "survey-service",
		"store":   "ok",
	})
}
