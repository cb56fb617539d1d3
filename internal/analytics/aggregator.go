// Package analytics turns stored survey responses into the dashboard snapshot.
// Everything here is a pure function of its inputs.
package analytics

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

// Aggregate groups per-question response distributions into sections in
// catalog order. Unanswered questions and empty sections are omitted.
func Aggregate(rows []*models.SurveyResponse) []models.AggregatedSection {
	sections := make([]models.AggregatedSection, 0, len(models.Sections()))

	for _, section := range models.Sections() {
		var questions []models.AggregatedQuestion
		for _, q := range models.QuestionsInSection(section.Key) {
			if aq, ok := AggregateQuestion(q, rows); ok {
				questions = append(questions, aq)
			}
		}
		if len(questions) == 0 {
			continue
		}
		sections = append(sections, models.AggregatedSection{
			Key:       section.Key,
			Title:     section.Title,
			Questions: questions,
		})
	}

	return sections
}

// AggregateQuestion builds the bucket distribution for one question. It
// reports false when no row answered it.
func AggregateQuestion(q models.QuestionDescriptor, rows []*models.SurveyResponse) (models.AggregatedQuestion, bool) {
	var buckets []models.ResponseBucket
	switch q.Type {
	case models.QuestionTypeText:
		buckets = textBuckets(q, rows)
	default:
		buckets = countedBuckets(q, rows)
	}
	if len(buckets) == 0 {
		return models.AggregatedQuestion{}, false
	}

	total := 0
	for _, b := range buckets {
		total += b.Count
	}

	return models.AggregatedQuestion{
		Key:             q.Key,
		QuestionText:    q.Text,
		Type:            q.Type,
		TotalResponses:  total,
		ResponseBuckets: buckets,
	}, true
}

func countedBuckets(q models.QuestionDescriptor, rows []*models.SurveyResponse) []models.ResponseBucket {
	counts := make(map[string]int)
	total := 0
	for _, row := range rows {
		if row == nil {
			continue
		}
		if a, ok := row.Answer(q.Key); ok {
			counts[a.String()]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	var buckets []models.ResponseBucket
	for _, option := range bucketOrder(q.Type) {
		count, ok := counts[option]
		if !ok {
			continue
		}
		buckets = append(buckets, models.ResponseBucket{
			Option:     option,
			Count:      count,
			Percentage: Percentage(count, total),
		})
	}
	return buckets
}

func textBuckets(q models.QuestionDescriptor, rows []*models.SurveyResponse) []models.ResponseBucket {
	type entry struct {
		text      string
		createdAt time.Time
	}

	var answers []entry
	for _, row := range rows {
		if row == nil {
			continue
		}
		if a, ok := row.Answer(q.Key); ok {
			answers = append(answers, entry{text: a.String(), createdAt: row.CreatedAt})
		}
	}
	if len(answers) == 0 {
		return nil
	}

	share := 100 / float64(len(answers))
	buckets := make([]models.ResponseBucket, 0, len(answers))
	for i, a := range answers {
		buckets = append(buckets, models.ResponseBucket{
			Option:     fmt.Sprintf("Response %d", i+1),
			Count:      1,
			Percentage: share,
			Text:       a.text,
			Timestamp:  a.createdAt.UTC().Format(time.RFC3339),
		})
	}
	return buckets
}

func bucketOrder(t models.QuestionType) []string {
	switch t {
	case models.QuestionTypeYesNo:
		return []string{models.YesNoAnswer(true).String(), models.YesNoAnswer(false).String()}
	default:
		order := make([]string, 0, models.ScaleMax-models.ScaleMin+1)
		for v := models.ScaleMin; v <= models.ScaleMax; v++ {
			order = append(order, strconv.Itoa(v))
		}
		return order
	}
}

// Percentage is count/total*100 rounded half up to one decimal; 0 when total is 0.
func Percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(float64(count) / float64(total) * 100)
}

func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}
