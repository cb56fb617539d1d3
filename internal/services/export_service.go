package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/analytics"
	"github.com/SAP-F-2025/survey-service/internal/export"
	"github.com/SAP-F-2025/survey-service/internal/metrics"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/validator"
)

// ExportService renders analytics and raw responses as files. Every method
// returns a non-nil result; Success is false whenever the error is non-nil.
type ExportService interface {
	ExportAnalytics(ctx context.Context, format string, params analytics.FilterParams) (*export.Result, error)
	ExportSummary(ctx context.Context, params analytics.FilterParams) (*export.Result, error)
	ExportResponses(ctx context.Context, format string, params analytics.FilterParams) (*export.Result, error)
}

type exportService struct {
	analytics   AnalyticsService
	metrics     *metrics.Metrics
	log         *ServiceLogger
	validator   *validator.Validator
	surveyTitle string
	now         func() time.Time
}

func NewExportService(
	analyticsService AnalyticsService,
	m *metrics.Metrics,
	logger *slog.Logger,
	validator *validator.Validator,
	surveyTitle string,
) ExportService {
	return &exportService{
		analytics:   analyticsService,
		metrics:     m,
		log:         NewServiceLogger(logger, "export"),
		validator:   validator,
		surveyTitle: surveyTitle,
		now:         time.Now,
	}
}

// ===== ANALYTICS EXPORT =====

func (s *exportService) ExportAnalytics(ctx context.Context, format string, params analytics.FilterParams) (*export.Result, error) {
	format = normalizeFormat(format)
	return s.run(ctx, "export_analytics", format, func() (*export.Result, error) {
		if err := s.validator.ValidateVar("format", format, "export_format"); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}

		snapshot, err := s.analytics.GetSnapshot(ctx, params)
		if err != nil {
			return nil, err
		}

		var data []byte
		switch format {
		case export.FormatJSON:
			data, err = export.AnalyticsJSON(snapshot)
		case export.FormatXLSX:
			data, err = export.AnalyticsXLSX(snapshot)
		default:
			data, err = export.AnalyticsCSV(snapshot)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
		}

		return &export.Result{
			Success:     true,
			Data:        data,
			Filename:    export.AnalyticsFilename(format, s.now()),
			ContentType: export.ContentType(format),
		}, nil
	})
}

// ExportSummary always produces CSV
func (s *exportService) ExportSummary(ctx context.Context, params analytics.FilterParams) (*export.Result, error) {
	return s.run(ctx, "export_summary", export.FormatCSV, func() (*export.Result, error) {
		rows, section, err := s.filteredRows(ctx, params)
		if err != nil {
			return nil, err
		}

		data, err := export.SummaryCSV(rows, section)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
		}

		return &export.Result{
			Success:     true,
			Data:        data,
			Filename:    export.SummaryFilename(s.now()),
			ContentType: export.ContentTypeCSV,
		}, nil
	})
}

// ===== RAW RESPONSE EXPORT =====

func (s *exportService) ExportResponses(ctx context.Context, format string, params analytics.FilterParams) (*export.Result, error) {
	format = normalizeFormat(format)
	return s.run(ctx, "export_responses", format, func() (*export.Result, error) {
		if err := s.validator.ValidateVar("format", format, "oneof=csv json"); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}

		rows, section, err := s.filteredRows(ctx, params)
		if err != nil {
			return nil, err
		}

		var data []byte
		if format == export.FormatJSON {
			data, err = export.ResponsesJSON(rows, s.surveyTitle, section)
		} else {
			data, err = export.ResponsesCSV(rows, s.surveyTitle, section)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
		}

		return &export.Result{
			Success:     true,
			Data:        data,
			Filename:    export.ResponsesFilename(format, s.now()),
			ContentType: export.ContentType(format),
		}, nil
	})
}

// ===== HELPERS =====

// filteredRows applies the date bounds and hands back the section filter for
// the row-level exporters.
func (s *exportService) filteredRows(ctx context.Context, params analytics.FilterParams) ([]*models.SurveyResponse, models.SectionKey, error) {
	filters, err := analytics.ParseFilters(params)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.analytics.QueryResponses(ctx, filters)
	return rows, filters.Section, err
}

func (s *exportService) run(ctx context.Context, operation, format string, fn func() (*export.Result, error)) (*export.Result, error) {
	op := s.log.WithOperation(ctx, operation)

	result, err := fn()
	if err != nil {
		result = export.Failed(err)
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		format = "unsupported"
	}

	s.metrics.ObserveExport(format, err == nil)
	op.LogResult(err, slog.String("format", format), slog.Int("bytes", len(result.Data)))
	return result, err
}

func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return export.FormatCSV
	}
	return format
}
