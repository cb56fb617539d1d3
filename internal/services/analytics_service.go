package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/analytics"
	"github.com/SAP-F-2025/survey-service/internal/metrics"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
)

// AnalyticsService computes snapshots from the stored responses. Nothing is
// cached; every call reads the store.
type AnalyticsService interface {
	// GetSnapshot never returns a nil snapshot. On store failure it returns the
	// failure snapshot together with an ErrStoreUnavailable error.
	GetSnapshot(ctx context.Context, params analytics.FilterParams) (*models.AnalyticsSnapshot, error)
	GetSections(ctx context.Context) ([]models.Section, error)
	GetDateRange(ctx context.Context) (*models.DateRange, error)

	// QueryResponses returns the date-filtered rows of the configured survey
	QueryResponses(ctx context.Context, filters repositories.ResponseFilters) ([]*models.SurveyResponse, error)
}

type analyticsService struct {
	repo              repositories.Repository
	metrics           *metrics.Metrics
	log               *ServiceLogger
	surveyTitle       string
	invitedPopulation int
	now               func() time.Time
}

func NewAnalyticsService(
	repo repositories.Repository,
	m *metrics.Metrics,
	logger *slog.Logger,
	surveyTitle string,
	invitedPopulation int,
) AnalyticsService {
	return &analyticsService{
		repo:              repo,
		metrics:           m,
		log:               NewServiceLogger(logger, "analytics"),
		surveyTitle:       surveyTitle,
		invitedPopulation: invitedPopulation,
		now:               time.Now,
	}
}

// ===== SNAPSHOT =====

func (s *analyticsService) GetSnapshot(ctx context.Context, params analytics.FilterParams) (*models.AnalyticsSnapshot, error) {
	op := s.log.WithOperation(ctx, "get_snapshot")
	start := time.Now()

	filters, err := analytics.ParseFilters(params)
	if err != nil {
		op.LogResult(err)
		return analytics.BuildSnapshot(nil, repositories.ResponseFilters{}, s.snapshotOptions()), err
	}

	rows, err := s.QueryResponses(ctx, filters)
	if err != nil {
		op.LogResult(err)
		s.metrics.ObserveSnapshot(time.Since(start), 0, true)
		return analytics.FailureSnapshot(), err
	}

	snapshot := analytics.BuildSnapshot(rows, filters, s.snapshotOptions())
	s.metrics.ObserveSnapshot(time.Since(start), len(rows), false)
	op.LogResult(nil,
		slog.Int("rows", len(rows)),
		slog.Int("sections", len(snapshot.Sections)))

	return snapshot, nil
}

func (s *analyticsService) snapshotOptions() analytics.SnapshotOptions {
	return analytics.SnapshotOptions{
		Now:               s.now(),
		InvitedPopulation: s.invitedPopulation,
	}
}

// ===== QUERIES =====

func (s *analyticsService) QueryResponses(ctx context.Context, filters repositories.ResponseFilters) ([]*models.SurveyResponse, error) {
	surveyID, found, err := s.surveyID(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*models.SurveyResponse{}, nil
	}

	rows, err := s.repo.Responses().Query(ctx, surveyID, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (s *analyticsService) GetSections(ctx context.Context) ([]models.Section, error) {
	surveyID, found, err := s.surveyID(ctx)
	if err != nil || !found {
		return []models.Section{}, err
	}

	keys, err := s.repo.Responses().Sections(ctx, surveyID)
	if err != nil {
		return []models.Section{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	sections := make([]models.Section, 0, len(keys))
	for _, key := range keys {
		if section, ok := models.LookupSection(key); ok {
			sections = append(sections, section)
		}
	}
	return sections, nil
}

func (s *analyticsService) GetDateRange(ctx context.Context) (*models.DateRange, error) {
	surveyID, found, err := s.surveyID(ctx)
	if err != nil {
		return &models.DateRange{}, err
	}
	if !found {
		return &models.DateRange{}, nil
	}

	dateRange, err := s.repo.Responses().DateRange(ctx, surveyID)
	if err != nil {
		return &models.DateRange{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return dateRange, nil
}

// surveyID resolves the configured survey. A survey that was never created
// has no responses, which is not an error.
func (s *analyticsService) surveyID(ctx context.Context) (uint, bool, error) {
	survey, err := s.repo.Surveys().GetByTitle(ctx, s.surveyTitle)
	if err != nil {
		if repositories.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return survey.ID, true, nil
}
