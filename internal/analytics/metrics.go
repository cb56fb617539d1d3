package analytics

import (
	"sort"
	"strconv"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

// TrendWindowDays is the length of the trailing response trend
const TrendWindowDays = 30

// CompletionRate is the share of complete rows, in percent with one decimal.
func CompletionRate(rows []*models.SurveyResponse) float64 {
	total, complete := 0, 0
	for _, row := range rows {
		if row == nil {
			continue
		}
		total++
		if row.IsComplete {
			complete++
		}
	}
	return Percentage(complete, total)
}

// AverageCompletionMinutes averages completed_at - created_at over complete
// rows, rounded to one decimal. Rows with a completion before their start are skipped.
func AverageCompletionMinutes(rows []*models.SurveyResponse) float64 {
	var (
		sum   time.Duration
		count int
	)
	for _, row := range rows {
		if row == nil || !row.IsComplete || row.CompletedAt == nil {
			continue
		}
		d := row.CompletedAt.Sub(row.CreatedAt)
		if d < 0 {
			continue
		}
		sum += d
		count++
	}
	if count == 0 {
		return 0
	}
	return Round1(sum.Minutes() / float64(count))
}

// FormatMinutes renders minutes as "<N> minutes", e.g. "6.3 minutes" or "0 minutes".
func FormatMinutes(minutes float64) string {
	return strconv.FormatFloat(minutes, 'f', -1, 64) + " minutes"
}

// ResponseTrend counts distinct sessions per UTC day over the trailing window
// that ends on end's date. Days without responses are not emitted.
func ResponseTrend(rows []*models.SurveyResponse, end time.Time) []models.TrendPoint {
	end = end.UTC()
	lastDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	firstDay := lastDay.AddDate(0, 0, -TrendWindowDays)
	windowEnd := lastDay.AddDate(0, 0, 1)

	sessions := make(map[string]map[string]struct{})
	for _, row := range rows {
		if row == nil {
			continue
		}
		created := row.CreatedAt.UTC()
		if created.Before(firstDay) || !created.Before(windowEnd) {
			continue
		}
		day := created.Format(dateLayout)
		if sessions[day] == nil {
			sessions[day] = make(map[string]struct{})
		}
		sessions[day][row.SessionID] = struct{}{}
	}

	days := make([]string, 0, len(sessions))
	for day := range sessions {
		days = append(days, day)
	}
	sort.Strings(days)

	trend := make([]models.TrendPoint, 0, len(days))
	for _, day := range days {
		trend = append(trend, models.TrendPoint{Date: day, Responses: len(sessions[day])})
	}
	return trend
}

// ResponseRate is total/invited in percent, capped at 100. It returns nil
// when no invited population is configured.
func ResponseRate(total, invited int) *float64 {
	if invited <= 0 {
		return nil
	}
	rate := Percentage(total, invited)
	if rate > 100 {
		rate = 100
	}
	return &rate
}
