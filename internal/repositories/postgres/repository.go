package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db        *gorm.DB
	responses repositories.ResponseRepository
	surveys   repositories.SurveyRepository
}

// NewRepository wires the GORM-backed stores. The db should be opened with
// TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:        db,
		responses: NewResponsePostgreSQL(db),
		surveys:   NewSurveyPostgreSQL(db),
	}
}

func (r *Repository) Responses() repositories.ResponseRepository {
	return r.responses
}

func (r *Repository) Surveys() repositories.SurveyRepository {
	return r.surveys
}

func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.Survey{}, &models.SurveyResponse{}); err != nil {
		return fmt.Errorf("failed to migrate survey tables: %w", translateError(err))
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", repositories.ErrStoreUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", repositories.ErrStoreUnavailable, err)
	}
	return nil
}

// translateError maps driver errors onto the repository sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", repositories.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", repositories.ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%w: %w", repositories.ErrStoreUnavailable, err)
	}
}
