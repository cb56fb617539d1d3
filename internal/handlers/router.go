package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// RouterOptions carries the optional pieces of the HTTP surface
type RouterOptions struct {
	// Verifier enables bearer auth on analytics and export routes when set.
	Verifier     TokenVerifier
	RequireAdmin bool
	// Metrics is served on /metrics when set.
	Metrics http.Handler
}

type HandlerManager struct {
	surveyHandler    *SurveyHandler
	analyticsHandler *AnalyticsHandler
	exportHandler    *ExportHandler
	healthHandler    *HealthHandler

	auth    gin.HandlerFunc
	metrics http.Handler
	logger  utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	repo repositories.Repository,
	logger utils.Logger,
	opts RouterOptions,
) *HandlerManager {
	hm := &HandlerManager{
		surveyHandler:    NewSurveyHandler(serviceManager.Survey(), logger),
		analyticsHandler: NewAnalyticsHandler(serviceManager.Analytics(), logger),
		exportHandler:    NewExportHandler(serviceManager.Export(), logger),
		healthHandler:    NewHealthHandler(repo),
		metrics:          opts.Metrics,
		logger:           logger,
	}
	if opts.Verifier != nil {
		hm.auth = AuthMiddleware(opts.Verifier, opts.RequireAdmin, logger)
	}
	return hm
}

// NewRouter builds a gin engine with recovery and request logging and
// registers every route.
func (hm *HandlerManager) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		utils.ContextLogger(hm.logger),
		utils.LoggerMiddleware(hm.logger),
	)
	hm.SetupRoutes(router)
	return router
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthHandler.Check)
	if hm.metrics != nil {
		router.GET("/metrics", gin.WrapH(hm.metrics))
	}

	v1 := router.Group("/api/v1")
	{
		// Public survey routes
		survey := v1.Group("/survey")
		{
			survey.GET("", hm.surveyHandler.GetSurvey)
			survey.POST("/responses", hm.surveyHandler.SubmitResponse)
		}

		protected := v1.Group("")
		if hm.auth != nil {
			protected.Use(hm.auth)
		}

		analytics := protected.Group("/analytics")
		{
			analytics.GET("", hm.analyticsHandler.GetAnalytics)
			analytics.GET("/sections", hm.analyticsHandler.GetSections)
			analytics.GET("/date-range", hm.analyticsHandler.GetDateRange)
		}

		exports := protected.Group("/export")
		{
			exports.GET("", hm.exportHandler.ExportAnalytics)
			exports.GET("/summary", hm.exportHandler.ExportSummary)
			exports.GET("/responses", hm.exportHandler.ExportResponses)
		}
	}
}
