package services

import (
	"log/slog"

	"github.com/SAP-F-2025/survey-service/internal/cache"
	"github.com/SAP-F-2025/survey-service/internal/events"
	"github.com/SAP-F-2025/survey-service/internal/metrics"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/validator"
)

// ServiceManager exposes the services the handlers depend on
type ServiceManager interface {
	Survey() SurveyService
	Analytics() AnalyticsService
	Export() ExportService
}

// Dependencies bundles what the services are built from
type Dependencies struct {
	Repo              repositories.Repository
	Guard             cache.SessionGuard
	Publisher         events.EventPublisher
	Metrics           *metrics.Metrics
	Logger            *slog.Logger
	Validator         *validator.Validator
	Survey            SurveyInfo
	InvitedPopulation int
}

type serviceManager struct {
	survey    SurveyService
	analytics AnalyticsService
	export    ExportService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}

	analyticsService := NewAnalyticsService(deps.Repo, deps.Metrics, deps.Logger, deps.Survey.Title, deps.InvitedPopulation)

	return &serviceManager{
		survey:    NewSurveyService(deps.Repo, deps.Guard, deps.Publisher, deps.Metrics, deps.Logger, deps.Validator, deps.Survey),
		analytics: analyticsService,
		export:    NewExportService(analyticsService, deps.Metrics, deps.Logger, deps.Validator, deps.Survey.Title),
	}
}

func (m *serviceManager) Survey() SurveyService       { return m.survey }
func (m *serviceManager) Analytics() AnalyticsService { return m.analytics }
func (m *serviceManager) Export() ExportService       { return m.export }
