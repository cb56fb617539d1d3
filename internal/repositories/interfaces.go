package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// ResponseFilters narrows a response query. Nil bounds impose no constraint;
// both bounds are inclusive on created_at. Section is applied after
// aggregation and is ignored by the stores.
type ResponseFilters struct {
	StartDate *time.Time        `json:"startDate,omitempty"`
	EndDate   *time.Time        `json:"endDate,omitempty"`
	Section   models.SectionKey `json:"section,omitempty"`
}

// Matches reports whether a row created at t falls inside the date bounds
func (f ResponseFilters) Matches(t time.Time) bool {
	if f.StartDate != nil && t.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.After(*f.EndDate) {
		return false
	}
	return true
}

// HasDateRange reports whether either bound is set.
func (f ResponseFilters) HasDateRange() bool {
	return f.StartDate != nil || f.EndDate != nil
}

// ===== REPOSITORY INTERFACES =====

// Repository is the response store handle injected into services
type Repository interface {
	Responses() ResponseRepository
	Surveys() SurveyRepository

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
}

// ResponseRepository is insert-only: rows are immutable once written
type ResponseRepository interface {
	Insert(ctx context.Context, row *models.SurveyResponse) error

	// Query returns rows ordered by created_at, id.
	Query(ctx context.Context, surveyID uint, filters ResponseFilters) ([]*models.SurveyResponse, error)

	// Sections lists catalog sections that have at least one answer, in catalog order.
	Sections(ctx context.Context, surveyID uint) ([]models.SectionKey, error)
	DateRange(ctx context.Context, surveyID uint) (*models.DateRange, error)
}

type SurveyRepository interface {
	// GetOrCreate is idempotent on title.
	GetOrCreate(ctx context.Context, title, description string) (*models.Survey, error)
	GetByTitle(ctx context.Context, title string) (*models.Survey, error)
}
