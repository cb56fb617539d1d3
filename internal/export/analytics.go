package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	analyticsSheet = "Analytics"
	overviewSheet  = "Overview"
)

var analyticsHeaders = []string{
	"Section", "Question", "ResponseType", "Option", "Count", "Percentage", "TextResponse", "Timestamp",
}

// analyticsRows flattens a snapshot into one record per bucket. Missing
// sections or questions contribute nothing.
func analyticsRows(snapshot *models.AnalyticsSnapshot) [][]string {
	if snapshot == nil {
		return nil
	}

	var rows [][]string
	for _, section := range snapshot.Sections {
		for _, question := range section.Questions {
			for _, bucket := range question.ResponseBuckets {
				rows = append(rows, []string{
					section.Title,
					question.QuestionText,
					string(question.Type),
					bucket.Option,
					strconv.Itoa(bucket.Count),
					formatFloat(bucket.Percentage, 1),
					bucket.Text,
					bucket.Timestamp,
				})
			}
		}
	}
	return rows
}

// AnalyticsCSV writes the bucket table with RFC 4180 quoting
func AnalyticsCSV(snapshot *models.AnalyticsSnapshot) ([]byte, error) {
	return writeCSV(analyticsHeaders, analyticsRows(snapshot))
}

// AnalyticsJSON serializes the snapshot. A nil snapshot is rendered as the
// empty snapshot, and nil lists of a partial one as empty arrays.
func AnalyticsJSON(snapshot *models.AnalyticsSnapshot) ([]byte, error) {
	data, err := json.MarshalIndent(normalizeSnapshot(snapshot), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// normalizeSnapshot returns a copy of snapshot with every nil list replaced
// by an empty one and a blank completion time defaulted.
func normalizeSnapshot(snapshot *models.AnalyticsSnapshot) *models.AnalyticsSnapshot {
	out := models.NewEmptySnapshot()
	if snapshot == nil {
		return out
	}

	defaults := *out
	*out = *snapshot
	if out.AverageCompletionTime == "" {
		out.AverageCompletionTime = defaults.AverageCompletionTime
	}
	if out.KeyInsights == nil {
		out.KeyInsights = defaults.KeyInsights
	}
	if out.Trends == nil {
		out.Trends = defaults.Trends
	}

	out.Sections = make([]models.AggregatedSection, len(snapshot.Sections))
	for i, section := range snapshot.Sections {
		questions := make([]models.AggregatedQuestion, len(section.Questions))
		for j, q := range section.Questions {
			if q.ResponseBuckets == nil {
				q.ResponseBuckets = []models.ResponseBucket{}
			}
			questions[j] = q
		}
		section.Questions = questions
		out.Sections[i] = section
	}
	return out
}

// AnalyticsXLSX writes the bucket table to an "Analytics" sheet and the
// headline metrics to an "Overview" sheet.
func AnalyticsXLSX(snapshot *models.AnalyticsSnapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", analyticsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeSheet(f, analyticsSheet, analyticsHeaders, analyticsRows(snapshot)); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(overviewSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeSheet(f, overviewSheet, []string{"Metric", "Value"}, overviewRows(snapshot)); err != nil {
		return nil, err
	}

	index, err := f.GetSheetIndex(analyticsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to activate Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func overviewRows(snapshot *models.AnalyticsSnapshot) [][]string {
	if snapshot == nil {
		snapshot = models.NewEmptySnapshot()
	}

	rows := [][]string{
		{"Total Responses", strconv.Itoa(snapshot.TotalResponses)},
		{"Completion Rate (%)", formatFloat(snapshot.CompletionRate, 1)},
		{"Average Completion Time", snapshot.AverageCompletionTime},
	}
	if snapshot.ResponseRate != nil {
		rows = append(rows, []string{"Response Rate (%)", formatFloat(*snapshot.ResponseRate, 1)})
	}
	rows = append(rows, []string{"Sections", strconv.Itoa(len(snapshot.Sections))})
	for _, insight := range snapshot.KeyInsights {
		rows = append(rows, []string{"Insight (" + string(insight.Type) + ")", insight.Title})
	}
	return rows
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write Excel row %d: %w", rowNum, err)
	}
	return nil
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return buf.Bytes(), nil
}
