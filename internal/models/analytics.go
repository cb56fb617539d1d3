package models

import "time"

type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightConcern  InsightType = "concern"
)

type ResponseBucket struct {
	Option     string  `json:"option"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Text       string  `json:"text,omitempty"`
	Timestamp  string  `json:"timestamp,omitempty"`
}

type AggregatedQuestion struct {
	Key             string           `json:"key"`
	QuestionText    string           `json:"questionText"`
	Type            QuestionType     `json:"type"`
	TotalResponses  int              `json:"totalResponses"`
	ResponseBuckets []ResponseBucket `json:"responseBuckets"`
}

type AggregatedSection struct {
	Key       SectionKey           `json:"key"`
	Title     string               `json:"title"`
	Questions []AggregatedQuestion `json:"questions"`
}

type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

type TrendPoint struct {
	Date      string `json:"date"`
	Responses int    `json:"responses"`
}

// AnalyticsSnapshot is recomputed per request and never cached
type AnalyticsSnapshot struct {
	TotalResponses        int                 `json:"totalResponses"`
	CompletionRate        float64             `json:"completionRate"`
	AverageCompletionTime string              `json:"averageCompletionTime"`
	ResponseRate          *float64            `json:"responseRate,omitempty"`
	Sections              []AggregatedSection `json:"sections"`
	KeyInsights           []Insight           `json:"keyInsights"`
	Trends                []TrendPoint        `json:"trends"`
}

// NewEmptySnapshot returns a zero snapshot with non-nil slices so it always
// serializes to arrays.
func NewEmptySnapshot() *AnalyticsSnapshot {
	return &AnalyticsSnapshot{
		AverageCompletionTime: "0 minutes",
		Sections:              []AggregatedSection{},
		KeyInsights:           []Insight{},
		Trends:                []TrendPoint{},
	}
}

// Section returns the aggregated section with the given key, if present.
func (s *AnalyticsSnapshot) Section(key SectionKey) (*AggregatedSection, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Sections {
		if s.Sections[i].Key == key {
			return &s.Sections[i], true
		}
	}
	return nil, false
}

type DateRange struct {
	Earliest *time.Time `json:"earliest"`
	Latest   *time.Time `json:"latest"`
}
