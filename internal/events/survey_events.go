package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of survey events
type EventType string

const (
	EventResponseSubmitted EventType = "survey.response.submitted"
	EventResponseDeclined  EventType = "survey.response.declined"
)

const (
	eventSource  = "survey-service"
	eventVersion = "1.0"
)

// SurveyEvent is the envelope published for every survey event
type SurveyEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// ResponseSubmittedEvent carries no answer content, only identifiers and timing.
type ResponseSubmittedEvent struct {
	ResponseID  uint       `json:"response_id"`
	SurveyID    uint       `json:"survey_id"`
	SessionID   string     `json:"session_id"`
	Consented   bool       `json:"consented"`
	IsComplete  bool       `json:"is_complete"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewResponseSubmittedEvent builds the event for a stored response. Declined
// submissions are published under their own type.
func NewResponseSubmittedEvent(data ResponseSubmittedEvent) *SurveyEvent {
	eventType := EventResponseSubmitted
	if !data.Consented {
		eventType = EventResponseDeclined
	}
	return &SurveyEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a random UUID
func GenerateEventID() string {
	return uuid.NewString()
}
