package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRepository runs the GORM repository against an in-memory SQLite database.
func setupTestRepository(t *testing.T) repositories.Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestResponsePostgreSQL(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	survey, err := repo.Surveys().GetOrCreate(ctx, "AGAHF Employee Pulse Survey", "Employee satisfaction and engagement survey for AGAHF")
	require.NoError(t, err)
	require.NotZero(t, survey.ID)

	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	insert := func(session string, createdAt time.Time, happiness int, suggestion string) {
		row := &models.SurveyResponse{
			SurveyID:  survey.ID,
			SessionID: session,
			CreatedAt: createdAt,
			Metadata:  datatypes.JSONMap{"source": "test"},
		}
		require.NoError(t, row.SetAnswer(models.QuestionConsent, models.YesNoAnswer(true)))
		require.NoError(t, row.SetAnswer("roleHappiness", models.ScaleAnswer(happiness)))
		if suggestion != "" {
			require.NoError(t, row.SetAnswer(models.QuestionSuggestions, models.TextAnswer(suggestion)))
		}
		require.NoError(t, repo.Responses().Insert(ctx, row))
		assert.NotZero(t, row.ID)
	}

	insert("a", base.Add(time.Hour), 5, "")
	insert("b", base, 3, "more training")
	insert("c", base.AddDate(0, 0, 3), 1, "")

	t.Run("Query_All_Ordered", func(t *testing.T) {
		rows, err := repo.Responses().Query(ctx, survey.ID, repositories.ResponseFilters{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "b", rows[0].SessionID)
		assert.Equal(t, "a", rows[1].SessionID)
		assert.Equal(t, "c", rows[2].SessionID)

		require.NotNil(t, rows[0].RoleHappiness)
		assert.Equal(t, 3, *rows[0].RoleHappiness)
		require.NotNil(t, rows[0].Suggestions)
		assert.Equal(t, "more training", *rows[0].Suggestions)
		assert.Equal(t, "test", rows[0].Metadata["source"])
	})

	t.Run("Query_Date_Filter", func(t *testing.T) {
		start := base.AddDate(0, 0, 1)
		rows, err := repo.Responses().Query(ctx, survey.ID, repositories.ResponseFilters{StartDate: &start})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "c", rows[0].SessionID)

		end := base.Add(30 * time.Minute)
		rows, err = repo.Responses().Query(ctx, survey.ID, repositories.ResponseFilters{EndDate: &end})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "b", rows[0].SessionID)
	})

	t.Run("Sections", func(t *testing.T) {
		sections, err := repo.Responses().Sections(ctx, survey.ID)
		require.NoError(t, err)
		assert.Equal(t, []models.SectionKey{
			models.SectionConsent,
			models.SectionOverallEngagement,
			models.SectionSuggestions,
		}, sections)
	})

	t.Run("DateRange", func(t *testing.T) {
		dr, err := repo.Responses().DateRange(ctx, survey.ID)
		require.NoError(t, err)
		require.NotNil(t, dr.Earliest)
		require.NotNil(t, dr.Latest)
		assert.True(t, dr.Earliest.Equal(base))
		assert.True(t, dr.Latest.Equal(base.AddDate(0, 0, 3)))
	})

	t.Run("DateRange_Empty", func(t *testing.T) {
		dr, err := repo.Responses().DateRange(ctx, survey.ID+100)
		require.NoError(t, err)
		assert.Nil(t, dr.Earliest)
		assert.Nil(t, dr.Latest)
	})

	t.Run("Insert_Rejects_Invalid_Rows", func(t *testing.T) {
		err := repo.Responses().Insert(ctx, &models.SurveyResponse{SessionID: "x"})
		assert.True(t, repositories.IsConstraintViolation(err))

		bad := 0
		err = repo.Responses().Insert(ctx, &models.SurveyResponse{SurveyID: survey.ID, SessionID: "y", Motivated: &bad})
		assert.True(t, repositories.IsConstraintViolation(err))
	})

	t.Run("Insert_Rejects_Duplicate_Session", func(t *testing.T) {
		err := repo.Responses().Insert(ctx, &models.SurveyResponse{SurveyID: survey.ID, SessionID: "a", CreatedAt: base})
		assert.Error(t, err)
	})
}

func TestSurveyPostgreSQL_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	first, err := repo.Surveys().GetOrCreate(ctx, "Pulse", "first")
	require.NoError(t, err)
	second, err := repo.Surveys().GetOrCreate(ctx, "Pulse", "second")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Description)
	assert.Equal(t, "first", *second.Description)

	found, err := repo.Surveys().GetByTitle(ctx, "Pulse")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.Surveys().GetByTitle(ctx, "Missing")
	assert.True(t, repositories.IsNotFound(err))
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil))
	assert.True(t, repositories.IsNotFound(translateError(gorm.ErrRecordNotFound)))
	assert.True(t, repositories.IsConstraintViolation(translateError(gorm.ErrDuplicatedKey)))
	assert.True(t, repositories.IsStoreUnavailable(translateError(context.DeadlineExceeded)))
}
