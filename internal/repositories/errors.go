package repositories

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

var (
	ErrStoreUnavailable    = errors.New("response store unavailable")
	ErrConstraintViolation = errors.New("response store constraint violation")
	ErrNotFound            = errors.New("record not found")
)

func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

func IsConstraintViolation(err error) bool {
	return errors.Is(err, ErrConstraintViolation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ValidateRow enforces the store-level constraints every implementation shares.
func ValidateRow(row *models.SurveyResponse) error {
	if row == nil {
		return fmt.Errorf("%w: nil row", ErrConstraintViolation)
	}
	if row.SurveyID == 0 {
		return fmt.Errorf("%w: survey_id is required", ErrConstraintViolation)
	}
	if row.SessionID == "" {
		return fmt.Errorf("%w: session_id is required", ErrConstraintViolation)
	}

	for _, q := range models.ScaleQuestions() {
		a, ok := row.Answer(q.Key)
		if !ok {
			continue
		}
		if _, err := models.NewScaleAnswer(a.(models.ScaleAnswer).Int()); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConstraintViolation, q.Column, err)
		}
	}

	if row.Consent != nil {
		if _, err := models.ParseYesNo(*row.Consent); err != nil {
			return fmt.Errorf("%w: consent: %v", ErrConstraintViolation, err)
		}
	}

	return nil
}

// AnsweredSections returns the catalog sections with at least one answer in rows.
func AnsweredSections(rows []*models.SurveyResponse) []models.SectionKey {
	answered := make(map[models.SectionKey]bool)
	for _, row := range rows {
		for _, q := range models.Questions() {
			if answered[q.Section] {
				continue
			}
			if _, ok := row.Answer(q.Key); ok {
				answered[q.Section] = true
			}
		}
	}

	out := make([]models.SectionKey, 0, len(answered))
	for _, s := range models.Sections() {
		if answered[s.Key] {
			out = append(out, s.Key)
		}
	}
	return out
}
