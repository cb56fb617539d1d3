package analytics

import (
	"time"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
)

type SnapshotOptions struct {
	// Now anchors the trend window when the filter has no end date.
	Now time.Time
	// InvitedPopulation enables the response rate when > 0.
	InvitedPopulation int
	Rules             []InsightRule
}

// BuildSnapshot runs the full pipeline over rows: date filter, aggregation,
// derived metrics, section filter and insights.
func BuildSnapshot(rows []*models.SurveyResponse, filters repositories.ResponseFilters, opts SnapshotOptions) *models.AnalyticsSnapshot {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Rules == nil {
		opts.Rules = DefaultInsightRules
	}

	rows = FilterRows(rows, filters)
	total := 0
	for _, row := range rows {
		if row != nil {
			total++
		}
	}

	trendEnd := opts.Now
	if filters.EndDate != nil {
		trendEnd = *filters.EndDate
	}

	sections := FilterSections(Aggregate(rows), filters.Section)

	snapshot := models.NewEmptySnapshot()
	snapshot.TotalResponses = total
	snapshot.CompletionRate = CompletionRate(rows)
	snapshot.AverageCompletionTime = FormatMinutes(AverageCompletionMinutes(rows))
	snapshot.ResponseRate = ResponseRate(total, opts.InvitedPopulation)
	snapshot.Sections = sections
	snapshot.KeyInsights = GenerateInsights(sections, total, opts.Rules)
	snapshot.Trends = ResponseTrend(rows, trendEnd)
	return snapshot
}

// FailureSnapshot is returned when the store cannot be read
func FailureSnapshot() *models.AnalyticsSnapshot {
	snapshot := models.NewEmptySnapshot()
	snapshot.KeyInsights = []models.Insight{ConnectionIssueInsight()}
	return snapshot
}
