package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"gorm.io/gorm"
)

type SurveyPostgreSQL struct {
	db *gorm.DB
}

func NewSurveyPostgreSQL(db *gorm.DB) repositories.SurveyRepository {
	return &SurveyPostgreSQL{db: db}
}

func (s *SurveyPostgreSQL) GetOrCreate(ctx context.Context, title, description string) (*models.Survey, error) {
	var survey models.Survey

	attrs := models.Survey{}
	if description != "" {
		attrs.Description = &description
	}

	err := s.db.WithContext(ctx).
		Where(models.Survey{Title: title}).
		Attrs(attrs).
		FirstOrCreate(&survey).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create survey %q: %w", title, translateError(err))
	}
	return &survey, nil
}

func (s *SurveyPostgreSQL) GetByTitle(ctx context.Context, title string) (*models.Survey, error) {
	var survey models.Survey
	if err := s.db.WithContext(ctx).Where("title = ?", title).First(&survey).Error; err != nil {
		return nil, translateError(err)
	}
	return &survey, nil
}
