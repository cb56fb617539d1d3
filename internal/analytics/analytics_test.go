package analytics

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/SAP-F-2025/survey-service/internal/errors"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type rowOption func(r *models.SurveyResponse)

func withScale(key string, v int) rowOption {
	return func(r *models.SurveyResponse) {
		_ = r.SetAnswer(key, models.ScaleAnswer(v))
	}
}

func withText(key, v string) rowOption {
	return func(r *models.SurveyResponse) {
		_ = r.SetAnswer(key, models.TextAnswer(v))
	}
}

func completedAfter(d time.Duration) rowOption {
	return func(r *models.SurveyResponse) {
		done := r.CreatedAt.Add(d)
		r.IsComplete = true
		r.CompletedAt = &done
	}
}

func newRow(i int, createdAt time.Time, opts ...rowOption) *models.SurveyResponse {
	r := &models.SurveyResponse{
		ID:        uint(i + 1),
		SurveyID:  1,
		SessionID: fmt.Sprintf("session-%d", i),
		CreatedAt: createdAt,
	}
	_ = r.SetAnswer(models.QuestionConsent, models.YesNoAnswer(true))
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// happinessRows builds ten rows with roleHappiness 5,5,5,5,4,4,3,2,1,1.
func happinessRows() []*models.SurveyResponse {
	values := []int{5, 5, 5, 5, 4, 4, 3, 2, 1, 1}
	rows := make([]*models.SurveyResponse, 0, len(values))
	for i, v := range values {
		rows = append(rows, newRow(i, testNow.Add(-time.Duration(i)*time.Hour), withScale("roleHappiness", v)))
	}
	return rows
}

func findQuestion(t *testing.T, sections []models.AggregatedSection, key string) models.AggregatedQuestion {
	t.Helper()
	for _, s := range sections {
		for _, q := range s.Questions {
			if q.Key == key {
				return q
			}
		}
	}
	t.Fatalf("question %s not found", key)
	return models.AggregatedQuestion{}
}

func TestAggregate_RoleHappinessDistribution(t *testing.T) {
	sections := Aggregate(happinessRows())

	q := findQuestion(t, sections, "roleHappiness")
	assert.Equal(t, 10, q.TotalResponses)
	assert.Equal(t, models.QuestionTypeScale, q.Type)
	require.Len(t, q.ResponseBuckets, 5)

	options := make([]string, 0, 5)
	for _, b := range q.ResponseBuckets {
		options = append(options, b.Option)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, options)

	four := q.ResponseBuckets[3]
	assert.Equal(t, 2, four.Count)
	assert.Equal(t, 20.0, four.Percentage)

	// Engagement share is exactly 0.6, so no engagement insight is produced.
	insights := GenerateInsights(sections, 10, DefaultInsightRules)
	for _, in := range insights {
		assert.NotEqual(t, "Strong Employee Engagement", in.Title)
		assert.NotEqual(t, "Low Employee Engagement", in.Title)
	}
}

func TestAggregate_PercentagesSumTo100(t *testing.T) {
	var rows []*models.SurveyResponse
	for i := 0; i < 8; i++ {
		rows = append(rows, newRow(i, testNow,
			withScale("stressLevel", i%3+1),
			withScale("motivated", i%5+1),
		))
	}

	for _, s := range Aggregate(rows) {
		for _, q := range s.Questions {
			sum := 0.0
			for _, b := range q.ResponseBuckets {
				sum += b.Percentage
			}
			assert.InDelta(t, 100.0, sum, 0.1, "question %s", q.Key)
		}
	}
}

func TestAggregate_IgnoresOutOfRangeStoredScale(t *testing.T) {
	seven, zero := 7, 0
	rows := []*models.SurveyResponse{
		newRow(0, testNow, withScale("roleHappiness", 5)),
		newRow(1, testNow),
		newRow(2, testNow),
	}
	rows[1].RoleHappiness = &seven
	rows[2].RoleHappiness = &zero

	q := findQuestion(t, Aggregate(rows), "roleHappiness")
	assert.Equal(t, 1, q.TotalResponses)
	require.Len(t, q.ResponseBuckets, 1)
	assert.Equal(t, "5", q.ResponseBuckets[0].Option)
	assert.Equal(t, 100.0, q.ResponseBuckets[0].Percentage)
}

func TestAggregate_OmitsUnansweredAndOrdersSections(t *testing.T) {
	rows := []*models.SurveyResponse{
		newRow(0, testNow, withScale("trustLeadership", 4), withScale("wellBeing", 2)),
	}
	sections := Aggregate(rows)

	keys := make([]models.SectionKey, 0, len(sections))
	for _, s := range sections {
		keys = append(keys, s.Key)
		for _, q := range s.Questions {
			assert.Positive(t, q.TotalResponses)
		}
	}
	assert.Equal(t, []models.SectionKey{models.SectionConsent, models.SectionWellness, models.SectionLeadership}, keys)

	consent := findQuestion(t, sections, models.QuestionConsent)
	require.Len(t, consent.ResponseBuckets, 1)
	assert.Equal(t, "Yes", consent.ResponseBuckets[0].Option)
	assert.Equal(t, 100.0, consent.ResponseBuckets[0].Percentage)
}

func TestAggregate_YesNoOrder(t *testing.T) {
	declined := newRow(1, testNow)
	require.NoError(t, declined.SetAnswer(models.QuestionConsent, models.YesNoAnswer(false)))
	rows := []*models.SurveyResponse{declined, newRow(0, testNow), newRow(2, testNow)}

	q := findQuestion(t, Aggregate(rows), models.QuestionConsent)
	require.Len(t, q.ResponseBuckets, 2)
	assert.Equal(t, "Yes", q.ResponseBuckets[0].Option)
	assert.Equal(t, 2, q.ResponseBuckets[0].Count)
	assert.Equal(t, 66.7, q.ResponseBuckets[0].Percentage)
	assert.Equal(t, "No", q.ResponseBuckets[1].Option)
	assert.Equal(t, 33.3, q.ResponseBuckets[1].Percentage)
}

func TestAggregate_TextBuckets(t *testing.T) {
	rows := []*models.SurveyResponse{
		newRow(0, testNow.Add(-2*time.Hour), withText(models.QuestionSuggestions, "More remote days")),
		newRow(1, testNow.Add(-time.Hour), withText(models.QuestionSuggestions, "   ")),
		newRow(2, testNow, withText(models.QuestionSuggestions, `He said "hi"`)),
	}

	q := findQuestion(t, Aggregate(rows), models.QuestionSuggestions)
	assert.Equal(t, 2, q.TotalResponses)
	require.Len(t, q.ResponseBuckets, 2)

	first := q.ResponseBuckets[0]
	assert.Equal(t, "Response 1", first.Option)
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, 50.0, first.Percentage)
	assert.Equal(t, "More remote days", first.Text)
	assert.Equal(t, testNow.Add(-2*time.Hour).Format(time.RFC3339), first.Timestamp)

	assert.Equal(t, "Response 2", q.ResponseBuckets[1].Option)
	assert.Equal(t, `He said "hi"`, q.ResponseBuckets[1].Text)
}

func TestCompletionRateAndAverageTime(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, 0.0, CompletionRate(nil))
		assert.Equal(t, 0.0, AverageCompletionMinutes(nil))
		assert.Equal(t, "0 minutes", FormatMinutes(AverageCompletionMinutes(nil)))
	})

	t.Run("Mixed", func(t *testing.T) {
		rows := []*models.SurveyResponse{
			newRow(0, testNow, completedAfter(5*time.Minute)),
			newRow(1, testNow, completedAfter(7*time.Minute+36*time.Second)),
			newRow(2, testNow),
		}
		rate := CompletionRate(rows)
		assert.Equal(t, 66.7, rate)
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 100.0)

		assert.Equal(t, 6.3, AverageCompletionMinutes(rows))
		assert.Equal(t, "6.3 minutes", FormatMinutes(6.3))
	})

	t.Run("Complete_Without_CompletedAt_Is_Skipped", func(t *testing.T) {
		row := newRow(0, testNow)
		row.IsComplete = true
		assert.Equal(t, 100.0, CompletionRate([]*models.SurveyResponse{row}))
		assert.Equal(t, 0.0, AverageCompletionMinutes([]*models.SurveyResponse{row}))
	})
}

func TestResponseTrend(t *testing.T) {
	rows := []*models.SurveyResponse{
		newRow(0, testNow.AddDate(0, 0, -45)),
		newRow(1, testNow.AddDate(0, 0, -2)),
		newRow(2, testNow.AddDate(0, 0, -2).Add(time.Hour)),
		newRow(3, testNow),
	}
	// A repeated session on the same day counts once.
	dup := newRow(4, testNow.Add(-time.Hour))
	dup.SessionID = rows[3].SessionID
	rows = append(rows, dup)

	trend := ResponseTrend(rows, testNow)
	assert.Equal(t, []models.TrendPoint{
		{Date: "2025-06-13", Responses: 2},
		{Date: "2025-06-15", Responses: 1},
	}, trend)

	t.Run("Anchored_To_End_Date", func(t *testing.T) {
		trend := ResponseTrend(rows, testNow.AddDate(0, 0, -40))
		assert.Equal(t, []models.TrendPoint{{Date: "2025-05-01", Responses: 1}}, trend)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, ResponseTrend(nil, testNow))
	})
}

func TestResponseRate(t *testing.T) {
	assert.Nil(t, ResponseRate(10, 0))

	rate := ResponseRate(37, 200)
	require.NotNil(t, rate)
	assert.Equal(t, 18.5, *rate)

	capped := ResponseRate(250, 200)
	require.NotNil(t, capped)
	assert.Equal(t, 100.0, *capped)
}

func TestGenerateInsights(t *testing.T) {
	t.Run("No_Data", func(t *testing.T) {
		insights := GenerateInsights(nil, 0, DefaultInsightRules)
		require.Len(t, insights, 1)
		assert.Equal(t, models.InsightConcern, insights[0].Type)
		assert.Equal(t, "No Responses Yet", insights[0].Title)
	})

	t.Run("Strong_Engagement_And_Wellness_Concern", func(t *testing.T) {
		var rows []*models.SurveyResponse
		for i := 0; i < 4; i++ {
			rows = append(rows, newRow(i, testNow, withScale("roleHappiness", 5), withScale("stressLevel", 1)))
		}
		rows = append(rows, newRow(4, testNow, withScale("roleHappiness", 2), withScale("stressLevel", 4)))

		insights := GenerateInsights(Aggregate(rows), len(rows), DefaultInsightRules)
		require.Len(t, insights, 3)
		assert.Equal(t, "Strong Employee Engagement", insights[0].Title)
		assert.Equal(t, "80% of responses show high engagement levels (4-5 rating)", insights[0].Description)
		assert.Equal(t, "Wellness Concerns", insights[1].Title)
		assert.Equal(t, "80% of wellness responses indicate concerns", insights[1].Description)
		assert.Equal(t, "Real-time Data", insights[2].Title)
		assert.Equal(t, "Analytics are generated from 5 actual survey responses", insights[2].Description)
	})

	t.Run("Low_Engagement", func(t *testing.T) {
		rows := []*models.SurveyResponse{
			newRow(0, testNow, withScale("motivated", 1)),
			newRow(1, testNow, withScale("motivated", 4)),
			newRow(2, testNow, withScale("motivated", 2)),
		}
		insights := GenerateInsights(Aggregate(rows), len(rows), DefaultInsightRules)
		require.Len(t, insights, 2)
		assert.Equal(t, models.InsightConcern, insights[0].Type)
		assert.Equal(t, "Low Employee Engagement", insights[0].Title)
		assert.Equal(t, "Only 33% of responses show high engagement levels", insights[0].Description)
	})

	t.Run("Engagement_At_Lower_Bound_Is_Neutral", func(t *testing.T) {
		values := []int{5, 4, 3, 2, 1}
		var rows []*models.SurveyResponse
		for i, v := range values {
			rows = append(rows, newRow(i, testNow, withScale("roleHappiness", v)))
		}

		insights := GenerateInsights(Aggregate(rows), len(rows), DefaultInsightRules)
		require.Len(t, insights, 1)
		assert.Equal(t, "Real-time Data", insights[0].Title)
	})

	t.Run("Wellness_At_Threshold_Is_Not_A_Concern", func(t *testing.T) {
		values := []int{1, 2, 1, 3, 3, 4, 4, 5, 5, 5}
		var rows []*models.SurveyResponse
		for i, v := range values {
			rows = append(rows, newRow(i, testNow, withScale("stressLevel", v)))
		}

		insights := GenerateInsights(Aggregate(rows), len(rows), DefaultInsightRules)
		require.Len(t, insights, 1)
		assert.Equal(t, "Real-time Data", insights[0].Title)
	})
}

func TestParseFilters(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		f, err := ParseFilters(FilterParams{})
		require.NoError(t, err)
		assert.Nil(t, f.StartDate)
		assert.Nil(t, f.EndDate)
		assert.Empty(t, f.Section)
	})

	t.Run("Date_Only_End_Covers_Whole_Day", func(t *testing.T) {
		f, err := ParseFilters(FilterParams{StartDate: "2025-06-01", EndDate: "2025-06-10", Section: "wellness"})
		require.NoError(t, err)
		assert.True(t, f.StartDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, f.Matches(time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC)))
		assert.False(t, f.Matches(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, models.SectionWellness, f.Section)
	})

	t.Run("RFC3339", func(t *testing.T) {
		f, err := ParseFilters(FilterParams{EndDate: "2025-06-10T08:00:00+02:00"})
		require.NoError(t, err)
		assert.True(t, f.EndDate.Equal(time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)))
	})

	t.Run("Invalid_Date", func(t *testing.T) {
		_, err := ParseFilters(FilterParams{StartDate: "yesterday"})
		var verrs apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "startDate", verrs[0].Field)
	})

	t.Run("Start_After_End", func(t *testing.T) {
		_, err := ParseFilters(FilterParams{StartDate: "2025-06-10", EndDate: "2025-06-01"})
		var verrs apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "date_order", verrs[0].Rule)
	})
}

func TestBuildSnapshot(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		s := BuildSnapshot(nil, repositories.ResponseFilters{}, SnapshotOptions{Now: testNow})
		assert.Equal(t, 0, s.TotalResponses)
		assert.Equal(t, 0.0, s.CompletionRate)
		assert.Equal(t, "0 minutes", s.AverageCompletionTime)
		assert.Nil(t, s.ResponseRate)
		assert.NotNil(t, s.Sections)
		assert.Empty(t, s.Sections)
		assert.NotNil(t, s.Trends)
		require.Len(t, s.KeyInsights, 1)
		assert.Equal(t, "No Responses Yet", s.KeyInsights[0].Title)

		b, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{"totalResponses":0,"completionRate":0,"averageCompletionTime":"0 minutes","sections":[],"keyInsights":[{"type":"concern","title":"No Responses Yet","description":"No survey responses have been collected yet."}],"trends":[]}`, string(b))
	})

	t.Run("Section_Filter", func(t *testing.T) {
		rows := happinessRows()
		rows[0].WellBeing = new(int)
		*rows[0].WellBeing = 3

		s := BuildSnapshot(rows, repositories.ResponseFilters{Section: models.SectionWellness}, SnapshotOptions{Now: testNow})
		require.Len(t, s.Sections, 1)
		assert.Equal(t, models.SectionWellness, s.Sections[0].Key)
		assert.Equal(t, 10, s.TotalResponses)

		s = BuildSnapshot(rows, repositories.ResponseFilters{Section: "unknown"}, SnapshotOptions{Now: testNow})
		assert.Empty(t, s.Sections)
	})

	t.Run("Date_Filter_Reapplied", func(t *testing.T) {
		start := testNow.Add(-150 * time.Minute)
		s := BuildSnapshot(happinessRows(), repositories.ResponseFilters{StartDate: &start}, SnapshotOptions{Now: testNow})
		assert.Equal(t, 3, s.TotalResponses)
	})

	t.Run("Response_Rate", func(t *testing.T) {
		s := BuildSnapshot(happinessRows(), repositories.ResponseFilters{}, SnapshotOptions{Now: testNow, InvitedPopulation: 40})
		require.NotNil(t, s.ResponseRate)
		assert.Equal(t, 25.0, *s.ResponseRate)
	})

	t.Run("Idempotent", func(t *testing.T) {
		rows := happinessRows()
		first, err := json.Marshal(BuildSnapshot(rows, repositories.ResponseFilters{}, SnapshotOptions{Now: testNow}))
		require.NoError(t, err)
		second, err := json.Marshal(BuildSnapshot(rows, repositories.ResponseFilters{}, SnapshotOptions{Now: testNow}))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestFailureSnapshot(t *testing.T) {
	s := FailureSnapshot()
	assert.Equal(t, 0, s.TotalResponses)
	assert.Empty(t, s.Sections)
	require.Len(t, s.KeyInsights, 1)
	assert.Equal(t, models.InsightConcern, s.KeyInsights[0].Type)
	assert.Equal(t, "Database Connection Issue", s.KeyInsights[0].Title)
}
