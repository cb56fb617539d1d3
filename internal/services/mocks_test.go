package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockRepository is a mock implementation of repositories.Repository
type MockRepository struct {
	mock.Mock
	responses *MockResponseRepository
	surveys   *MockSurveyRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		responses: &MockResponseRepository{},
		surveys:   &MockSurveyRepository{},
	}
}

func (m *MockRepository) Responses() repositories.ResponseRepository { return m.responses }
func (m *MockRepository) Surveys() repositories.SurveyRepository     { return m.surveys }

func (m *MockRepository) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Insert(ctx context.Context, row *models.SurveyResponse) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockResponseRepository) Query(ctx context.Context, surveyID uint, filters repositories.ResponseFilters) ([]*models.SurveyResponse, error) {
	args := m.Called(ctx, surveyID, filters)
	rows, _ := args.Get(0).([]*models.SurveyResponse)
	return rows, args.Error(1)
}

func (m *MockResponseRepository) Sections(ctx context.Context, surveyID uint) ([]models.SectionKey, error) {
	args := m.Called(ctx, surveyID)
	keys, _ := args.Get(0).([]models.SectionKey)
	return keys, args.Error(1)
}

func (m *MockResponseRepository) DateRange(ctx context.Context, surveyID uint) (*models.DateRange, error) {
	args := m.Called(ctx, surveyID)
	dateRange, _ := args.Get(0).(*models.DateRange)
	return dateRange, args.Error(1)
}

// MockSurveyRepository is a mock implementation of SurveyRepository
type MockSurveyRepository struct {
	mock.Mock
}

func (m *MockSurveyRepository) GetOrCreate(ctx context.Context, title, description string) (*models.Survey, error) {
	args := m.Called(ctx, title, description)
	survey, _ := args.Get(0).(*models.Survey)
	return survey, args.Error(1)
}

func (m *MockSurveyRepository) GetByTitle(ctx context.Context, title string) (*models.Survey, error) {
	args := m.Called(ctx, title)
	survey, _ := args.Get(0).(*models.Survey)
	return survey, args.Error(1)
}

// MockSessionGuard is a mock implementation of cache.SessionGuard
type MockSessionGuard struct {
	mock.Mock
}

func (m *MockSessionGuard) Acquire(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionGuard) Release(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
