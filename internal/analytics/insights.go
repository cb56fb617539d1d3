package analytics

import (
	"fmt"
	"math"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

// InsightRule inspects the aggregated sections and optionally emits one
// insight. Returning stop ends evaluation of the remaining rules.
type InsightRule interface {
	Evaluate(sections []models.AggregatedSection, totalResponses int) (insight *models.Insight, stop bool)
}

// DefaultInsightRules are evaluated in this order
var DefaultInsightRules = []InsightRule{
	NoDataRule{},
	EngagementRule{High: 0.6, Low: 0.4},
	WellnessRule{Threshold: 0.3},
	DataSourceRule{},
}

// GenerateInsights runs rules in order and collects what they emit
func GenerateInsights(sections []models.AggregatedSection, totalResponses int, rules []InsightRule) []models.Insight {
	insights := make([]models.Insight, 0, len(rules))
	for _, rule := range rules {
		insight, stop := rule.Evaluate(sections, totalResponses)
		if insight != nil {
			insights = append(insights, *insight)
		}
		if stop {
			break
		}
	}
	return insights
}

// ConnectionIssueInsight is the single insight of a failed snapshot
func ConnectionIssueInsight() models.Insight {
	return models.Insight{
		Type:        models.InsightConcern,
		Title:       "Database Connection Issue",
		Description: "Unable to fetch real data. Please check database connection.",
	}
}

// ===== RULES =====

type NoDataRule struct{}

func (NoDataRule) Evaluate(_ []models.AggregatedSection, total int) (*models.Insight, bool) {
	if total > 0 {
		return nil, false
	}
	return &models.Insight{
		Type:        models.InsightConcern,
		Title:       "No Responses Yet",
		Description: "No survey responses have been collected yet.",
	}, true
}

// EngagementRule looks at the share of 4-5 ratings in overall engagement.
type EngagementRule struct {
	High float64
	Low  float64
}

func (r EngagementRule) Evaluate(sections []models.AggregatedSection, _ int) (*models.Insight, bool) {
	fraction, ok := averageShare(sections, models.SectionOverallEngagement, "4", "5")
	if !ok {
		return nil, false
	}

	percent := int(math.Round(fraction * 100))
	switch {
	case fraction > r.High:
		return &models.Insight{
			Type:        models.InsightPositive,
			Title:       "Strong Employee Engagement",
			Description: fmt.Sprintf("%d%% of responses show high engagement levels (4-5 rating)", percent),
		}, false
	case fraction < r.Low:
		return &models.Insight{
			Type:        models.InsightConcern,
			Title:       "Low Employee Engagement",
			Description: fmt.Sprintf("Only %d%% of responses show high engagement levels", percent),
		}, false
	default:
		return nil, false
	}
}

// WellnessRule flags a high share of 1-2 ratings in wellness.
type WellnessRule struct {
	Threshold float64
}

func (r WellnessRule) Evaluate(sections []models.AggregatedSection, _ int) (*models.Insight, bool) {
	fraction, ok := averageShare(sections, models.SectionWellness, "1", "2")
	if !ok || fraction <= r.Threshold {
		return nil, false
	}
	return &models.Insight{
		Type:        models.InsightConcern,
		Title:       "Wellness Concerns",
		Description: fmt.Sprintf("%d%% of wellness responses indicate concerns", int(math.Round(fraction*100))),
	}, false
}

type DataSourceRule struct{}

func (DataSourceRule) Evaluate(_ []models.AggregatedSection, total int) (*models.Insight, bool) {
	return &models.Insight{
		Type:        models.InsightPositive,
		Title:       "Real-time Data",
		Description: fmt.Sprintf("Analytics are generated from %d actual survey responses", total),
	}, false
}

// averageShare averages, over the section's questions, the fraction of
// responses whose option is in options.
func averageShare(sections []models.AggregatedSection, key models.SectionKey, options ...string) (float64, bool) {
	var section *models.AggregatedSection
	for i := range sections {
		if sections[i].Key == key {
			section = &sections[i]
			break
		}
	}
	if section == nil {
		return 0, false
	}

	sum, n := 0.0, 0
	for _, q := range section.Questions {
		if q.TotalResponses == 0 {
			continue
		}
		matched := 0
		for _, b := range q.ResponseBuckets {
			for _, opt := range options {
				if b.Option == opt {
					matched += b.Count
				}
			}
		}
		sum += float64(matched) / float64(q.TotalResponses)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
