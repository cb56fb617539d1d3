// Package memory is an in-process response store used when no database is
// reachable and by tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
)

type Store struct {
	mu        sync.RWMutex
	surveys   []*models.Survey
	responses []*models.SurveyResponse
	sessions  map[string]struct{}
	nextID    uint
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]struct{}),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func NewRepository() repositories.Repository {
	return NewStore()
}

func (s *Store) Responses() repositories.ResponseRepository { return s }
func (s *Store) Surveys() repositories.SurveyRepository     { return &surveyStore{s} }

func (s *Store) Migrate(ctx context.Context) error { return ctx.Err() }
func (s *Store) Ping(ctx context.Context) error    { return ctx.Err() }

// ===== RESPONSES =====

func (s *Store) Insert(ctx context.Context, row *models.SurveyResponse) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", repositories.ErrStoreUnavailable, err)
	}
	if err := repositories.ValidateRow(row); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[row.SessionID]; exists {
		return fmt.Errorf("%w: duplicate session %s", repositories.ErrConstraintViolation, row.SessionID)
	}

	s.nextID++
	row.ID = s.nextID
	if row.CreatedAt.IsZero() {
		row.CreatedAt = s.now()
	}

	stored := *row
	s.responses = append(s.responses, &stored)
	s.sessions[row.SessionID] = struct{}{}
	return nil
}

func (s *Store) Query(ctx context.Context, surveyID uint, filters repositories.ResponseFilters) ([]*models.SurveyResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", repositories.ErrStoreUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*models.SurveyResponse, 0, len(s.responses))
	for _, r := range s.responses {
		if r.SurveyID != surveyID || !filters.Matches(r.CreatedAt) {
			continue
		}
		row := *r
		rows = append(rows, &row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	return rows, nil
}

func (s *Store) Sections(ctx context.Context, surveyID uint) ([]models.SectionKey, error) {
	rows, err := s.Query(ctx, surveyID, repositories.ResponseFilters{})
	if err != nil {
		return nil, err
	}
	return repositories.AnsweredSections(rows), nil
}

func (s *Store) DateRange(ctx context.Context, surveyID uint) (*models.DateRange, error) {
	rows, err := s.Query(ctx, surveyID, repositories.ResponseFilters{})
	if err != nil {
		return nil, err
	}

	result := &models.DateRange{}
	if len(rows) == 0 {
		return result, nil
	}
	earliest := rows[0].CreatedAt
	latest := rows[len(rows)-1].CreatedAt
	result.Earliest = &earliest
	result.Latest = &latest
	return result, nil
}

// ===== SURVEYS =====

type surveyStore struct {
	s *Store
}

func (ss *surveyStore) GetOrCreate(ctx context.Context, title, description string) (*models.Survey, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", repositories.ErrStoreUnavailable, err)
	}

	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	for _, survey := range ss.s.surveys {
		if survey.Title == title {
			found := *survey
			return &found, nil
		}
	}

	now := ss.s.now()
	survey := &models.Survey{
		ID:        uint(len(ss.s.surveys) + 1),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if description != "" {
		survey.Description = &description
	}
	ss.s.surveys = append(ss.s.surveys, survey)

	created := *survey
	return &created, nil
}

func (ss *surveyStore) GetByTitle(ctx context.Context, title string) (*models.Survey, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", repositories.ErrStoreUnavailable, err)
	}

	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()

	for _, survey := range ss.s.surveys {
		if survey.Title == title {
			found := *survey
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: survey %q", repositories.ErrNotFound, title)
}
