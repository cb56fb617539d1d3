package analytics

import (
	"strings"
	"time"

	apperrors "github.com/SAP-F-2025/survey-service/internal/errors"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
)

const dateLayout = "2006-01-02"

// FilterParams is the raw query form of a filter as received over HTTP or the CLI
type FilterParams struct {
	StartDate string `form:"startDate" json:"startDate"`
	EndDate   string `form:"endDate" json:"endDate"`
	Section   string `form:"section" json:"section"`
}

// ParseFilters validates the raw parameters. Dates may be RFC 3339 timestamps
// or YYYY-MM-DD; a date-only end date covers the whole day (UTC).
func ParseFilters(p FilterParams) (repositories.ResponseFilters, error) {
	var (
		filters repositories.ResponseFilters
		errs    apperrors.ValidationErrors
	)

	if raw := strings.TrimSpace(p.StartDate); raw != "" {
		start, _, err := parseDate(raw)
		if err != nil {
			errs = append(errs, *apperrors.NewValidationErrorWithRule("startDate", "must be a date (YYYY-MM-DD) or RFC 3339 timestamp", "date", raw))
		} else {
			filters.StartDate = &start
		}
	}

	if raw := strings.TrimSpace(p.EndDate); raw != "" {
		end, dateOnly, err := parseDate(raw)
		if err != nil {
			errs = append(errs, *apperrors.NewValidationErrorWithRule("endDate", "must be a date (YYYY-MM-DD) or RFC 3339 timestamp", "date", raw))
		} else {
			if dateOnly {
				end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
			}
			filters.EndDate = &end
		}
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("startDate", "must not be after endDate", "date_order", p.StartDate))
	}

	filters.Section = models.SectionKey(strings.TrimSpace(p.Section))

	if len(errs) > 0 {
		return repositories.ResponseFilters{}, errs
	}
	return filters, nil
}

func parseDate(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}

// FilterRows keeps rows whose created_at falls inside the filter's date bounds
func FilterRows(rows []*models.SurveyResponse, filters repositories.ResponseFilters) []*models.SurveyResponse {
	if !filters.HasDateRange() {
		return rows
	}
	out := make([]*models.SurveyResponse, 0, len(rows))
	for _, row := range rows {
		if row != nil && filters.Matches(row.CreatedAt) {
			out = append(out, row)
		}
	}
	return out
}

// FilterSections restricts aggregated output to one section. An empty key
// keeps everything; an unknown key yields no sections.
func FilterSections(sections []models.AggregatedSection, key models.SectionKey) []models.AggregatedSection {
	if key == "" {
		return sections
	}
	out := make([]models.AggregatedSection, 0, 1)
	for _, s := range sections {
		if s.Key == key {
			out = append(out, s)
		}
	}
	return out
}
