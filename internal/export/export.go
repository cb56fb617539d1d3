// Package export renders analytics snapshots and stored responses as
// downloadable files.
package export

import (
	"fmt"
	"strconv"
	"time"
)

// Supported formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	analyticsPrefix = "survey-analytics"
	summaryPrefix   = "survey-analytics-summary"
	responsesPrefix = "survey-responses"
)

// Result is what every export operation hands back to the caller. Data is
// written to the response body, never serialized with the rest.
type Result struct {
	Success     bool   `json:"success"`
	Data        []byte `json:"-"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Failed builds an unsuccessful result carrying err's message
func Failed(err error) *Result {
	return &Result{Success: false, Error: err.Error()}
}

// ContentType returns the MIME type for a format, defaulting to CSV
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return ContentTypeJSON
	case FormatXLSX:
		return ContentTypeXLSX
	default:
		return ContentTypeCSV
	}
}

// Filename builds "<prefix>-YYYY-MM-DD.<ext>" for the UTC date of now
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.UTC().Format("2006-01-02"), ext)
}

func AnalyticsFilename(format string, now time.Time) string {
	return Filename(analyticsPrefix, format, now)
}

func SummaryFilename(now time.Time) string {
	return Filename(summaryPrefix, FormatCSV, now)
}

func ResponsesFilename(format string, now time.Time) string {
	return Filename(responsesPrefix, format, now)
}

func formatFloat(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
