package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"gorm.io/gorm"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

// Insert writes the row in a single statement.
func (r *ResponsePostgreSQL) Insert(ctx context.Context, row *models.SurveyResponse) error {
	if err := repositories.ValidateRow(row); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert survey response: %w", translateError(err))
	}
	return nil
}

func (r *ResponsePostgreSQL) Query(ctx context.Context, surveyID uint, filters repositories.ResponseFilters) ([]*models.SurveyResponse, error) {
	var rows []*models.SurveyResponse

	query := r.db.WithContext(ctx).
		Model(&models.SurveyResponse{}).
		Where("survey_id = ?", surveyID)
	query = applyResponseFilters(query, filters)

	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query survey responses: %w", translateError(err))
	}
	return rows, nil
}

// Sections counts non-empty answers per column in one round trip.
func (r *ResponsePostgreSQL) Sections(ctx context.Context, surveyID uint) ([]models.SectionKey, error) {
	questions := models.Questions()
	selects := make([]string, 0, len(questions))
	for _, q := range questions {
		if q.Type == models.QuestionTypeScale {
			selects = append(selects, fmt.Sprintf("COUNT(%[1]s) AS %[1]s", q.Column))
		} else {
			selects = append(selects, fmt.Sprintf("COUNT(NULLIF(TRIM(%[1]s), '')) AS %[1]s", q.Column))
		}
	}

	counts := map[string]interface{}{}
	err := r.db.WithContext(ctx).
		Model(&models.SurveyResponse{}).
		Select(strings.Join(selects, ", ")).
		Where("survey_id = ?", surveyID).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load answered sections: %w", translateError(err))
	}

	answered := make(map[models.SectionKey]bool)
	for _, q := range questions {
		if toInt64(counts[q.Column]) > 0 {
			answered[q.Section] = true
		}
	}

	sections := make([]models.SectionKey, 0, len(answered))
	for _, s := range models.Sections() {
		if answered[s.Key] {
			sections = append(sections, s.Key)
		}
	}
	return sections, nil
}

func (r *ResponsePostgreSQL) DateRange(ctx context.Context, surveyID uint) (*models.DateRange, error) {
	result := &models.DateRange{}

	var first, last []models.SurveyResponse
	base := r.db.WithContext(ctx).
		Model(&models.SurveyResponse{}).
		Select("created_at").
		Where("survey_id = ?", surveyID).
		Session(&gorm.Session{})

	if err := base.Order("created_at ASC").Limit(1).Find(&first).Error; err != nil {
		return nil, fmt.Errorf("failed to load earliest response: %w", translateError(err))
	}
	if len(first) == 0 {
		return result, nil
	}
	if err := base.Order("created_at DESC").Limit(1).Find(&last).Error; err != nil {
		return nil, fmt.Errorf("failed to load latest response: %w", translateError(err))
	}

	earliest := first[0].CreatedAt
	result.Earliest = &earliest
	if len(last) > 0 {
		latest := last[0].CreatedAt
		result.Latest = &latest
	}
	return result, nil
}

// ===== HELPERS =====

func applyResponseFilters(query *gorm.DB, filters repositories.ResponseFilters) *gorm.DB {
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at <= ?", *filters.EndDate)
	}
	return query
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	case []byte:
		parsed, _ := strconv.ParseInt(string(n), 10, 64)
		return parsed
	case string:
		parsed, _ := strconv.ParseInt(n, 10, 64)
		return parsed
	default:
		return 0
	}
}
