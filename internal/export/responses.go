package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

var responseHeaders = []string{
	"Session ID", "Question Key", "Question Text", "Response", "Section", "Submitted At", "Survey Title",
}

// ResponseRecord is one answered question of one session
type ResponseRecord struct {
	SessionID    string `json:"sessionId"`
	QuestionKey  string `json:"questionKey"`
	QuestionText string `json:"questionText"`
	Response     string `json:"response"`
	Section      string `json:"section"`
	SubmittedAt  string `json:"submittedAt"`
	SurveyTitle  string `json:"surveyTitle"`
}

// ResponseRecords flattens rows into per-answer records, newest session first
// and questions in catalog order within a session. A non-empty section keeps
// only that section's answers.
func ResponseRecords(rows []*models.SurveyResponse, surveyTitle string, section models.SectionKey) []ResponseRecord {
	sorted := make([]*models.SurveyResponse, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			sorted = append(sorted, row)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	questions := models.Questions()
	records := make([]ResponseRecord, 0, len(sorted))
	for _, row := range sorted {
		submittedAt := row.CreatedAt.UTC().Format(time.RFC3339)
		for _, q := range questions {
			if !inSection(q, section) {
				continue
			}
			a, ok := row.Answer(q.Key)
			if !ok {
				continue
			}
			records = append(records, ResponseRecord{
				SessionID:    row.SessionID,
				QuestionKey:  q.Key,
				QuestionText: q.Text,
				Response:     a.String(),
				Section:      string(q.Section),
				SubmittedAt:  submittedAt,
				SurveyTitle:  surveyTitle,
			})
		}
	}
	return records
}

func ResponsesCSV(rows []*models.SurveyResponse, surveyTitle string, section models.SectionKey) ([]byte, error) {
	records := ResponseRecords(rows, surveyTitle, section)
	out := make([][]string, 0, len(records))
	for _, r := range records {
		out = append(out, []string{
			r.SessionID, r.QuestionKey, r.QuestionText, r.Response, r.Section, r.SubmittedAt, r.SurveyTitle,
		})
	}
	return writeCSV(responseHeaders, out)
}

func ResponsesJSON(rows []*models.SurveyResponse, surveyTitle string, section models.SectionKey) ([]byte, error) {
	data, err := json.MarshalIndent(ResponseRecords(rows, surveyTitle, section), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal responses: %w", err)
	}
	return data, nil
}

func inSection(q models.QuestionDescriptor, section models.SectionKey) bool {
	return section == "" || q.Section == section
}
