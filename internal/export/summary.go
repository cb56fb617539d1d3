package export

import (
	"math"
	"sort"
	"strconv"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

var summaryHeaders = []string{
	"Section", "Question Key", "Question Text", "Response Value", "Response Count", "Percentage",
	"Section Unique Respondents", "Section Total Responses", "Section Average Rating",
}

type valueCount struct {
	value string
	count int
}

type sectionStats struct {
	respondents map[string]struct{}
	answers     int
	ratingSum   int
	ratings     int
}

func (s *sectionStats) averageRating() string {
	if s.ratings == 0 {
		return "N/A"
	}
	avg := float64(s.ratingSum) / float64(s.ratings)
	return formatFloat(math.Round(avg*100)/100, 2)
}

// SummaryCSV writes one record per (section, question, value) with the
// share of that value within its question, joined with per-section totals.
// A non-empty section restricts the output to that section.
func SummaryCSV(rows []*models.SurveyResponse, section models.SectionKey) ([]byte, error) {
	stats := make(map[models.SectionKey]*sectionStats)
	perQuestion := make(map[string][]valueCount)

	for _, q := range models.Questions() {
		if !inSection(q, section) {
			continue
		}
		for _, row := range rows {
			if row == nil {
				continue
			}
			a, ok := row.Answer(q.Key)
			if !ok {
				continue
			}

			st, ok := stats[q.Section]
			if !ok {
				st = &sectionStats{respondents: make(map[string]struct{})}
				stats[q.Section] = st
			}
			st.respondents[row.SessionID] = struct{}{}
			st.answers++
			if scale, isScale := a.(models.ScaleAnswer); isScale {
				st.ratingSum += scale.Int()
				st.ratings++
			}

			perQuestion[q.Key] = addValue(perQuestion[q.Key], a.String())
		}
	}

	var records [][]string
	for _, q := range models.Questions() {
		values := perQuestion[q.Key]
		if len(values) == 0 {
			continue
		}
		if q.Type == models.QuestionTypeScale {
			sortScaleValues(values)
		}

		total := 0
		for _, v := range values {
			total += v.count
		}
		st := stats[q.Section]

		for _, v := range values {
			pct := math.Round(float64(v.count)/float64(total)*100*100) / 100
			records = append(records, []string{
				string(q.Section),
				q.Key,
				q.Text,
				v.value,
				strconv.Itoa(v.count),
				formatFloat(pct, 2),
				strconv.Itoa(len(st.respondents)),
				strconv.Itoa(st.answers),
				st.averageRating(),
			})
		}
	}

	return writeCSV(summaryHeaders, records)
}

// addValue counts value, keeping first-seen order
func addValue(values []valueCount, value string) []valueCount {
	for i := range values {
		if values[i].value == value {
			values[i].count++
			return values
		}
	}
	return append(values, valueCount{value: value, count: 1})
}

func sortScaleValues(values []valueCount) {
	sort.SliceStable(values, func(i, j int) bool {
		return scaleRank(values[i].value) < scaleRank(values[j].value)
	})
}

func scaleRank(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return math.MaxInt
	}
	return n
}
