package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Survey struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200;uniqueIndex"`
	Description *string   `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SurveyResponse is one session's submission, stored horizontally with one
// nullable column per catalog question. Rows are never updated after insert.
type SurveyResponse struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	SurveyID  uint   `json:"surveyId" gorm:"not null;index"`
	SessionID string `json:"sessionId" gorm:"not null;size:64;uniqueIndex"`

	// Consent
	Consent       *string `json:"consent,omitempty" gorm:"size:8"`
	DeclineReason *string `json:"declineReason,omitempty" gorm:"type:text"`

	// Overall engagement
	RoleHappiness       *int `json:"roleHappiness,omitempty" gorm:"type:smallint"`
	RecommendCompany    *int `json:"recommendCompany,omitempty" gorm:"type:smallint"`
	Motivated           *int `json:"motivated,omitempty" gorm:"type:smallint"`
	ContributionsValued *int `json:"contributionsValued,omitempty" gorm:"type:smallint"`

	// Work experience
	LearningOpportunities  *int `json:"learningOpportunities,omitempty" gorm:"type:smallint"`
	ComfortableWithManager *int `json:"comfortableWithManager,omitempty" gorm:"type:smallint"`
	BelongsWithPeers       *int `json:"belongsWithPeers,omitempty" gorm:"type:smallint"`
	HasResources           *int `json:"hasResources,omitempty" gorm:"type:smallint"`

	// Wellness
	WellBeing         *int `json:"wellBeing,omitempty" gorm:"type:smallint"`
	WellnessResources *int `json:"wellnessResources,omitempty" gorm:"type:smallint"`
	StressLevel       *int `json:"stressLevel,omitempty" gorm:"type:smallint"`

	// Team dynamics
	TeamCommunication *int `json:"teamCommunication,omitempty" gorm:"type:smallint"`
	TeamWorksWell     *int `json:"teamWorksWell,omitempty" gorm:"type:smallint"`
	TeamSupport       *int `json:"teamSupport,omitempty" gorm:"type:smallint"`

	// Career development
	CareerOpportunities        *int `json:"careerOpportunities,omitempty" gorm:"type:smallint"`
	TrainingEffectiveness      *int `json:"trainingEffectiveness,omitempty" gorm:"type:smallint"`
	RecognitionForAchievements *int `json:"recognitionForAchievements,omitempty" gorm:"type:smallint"`

	// Culture
	CompanyCulture   *int `json:"companyCulture,omitempty" gorm:"type:smallint"`
	SenseOfBelonging *int `json:"senseOfBelonging,omitempty" gorm:"type:smallint"`
	ValuesReflected  *int `json:"valuesReflected,omitempty" gorm:"type:smallint"`

	// Leadership
	LeadershipCommunication *int `json:"leadershipCommunication,omitempty" gorm:"type:smallint"`
	LeadershipApproachable  *int `json:"leadershipApproachable,omitempty" gorm:"type:smallint"`
	TrustLeadership         *int `json:"trustLeadership,omitempty" gorm:"type:smallint"`

	// Initiatives
	InitiativesSatisfaction   *int `json:"initiativesSatisfaction,omitempty" gorm:"type:smallint"`
	KnowWhereToGoForQuestions *int `json:"knowWhereToGoForQuestions,omitempty" gorm:"type:smallint"`

	// Previous survey
	KnowSurveyConsultation *int `json:"knowSurveyConsultation,omitempty" gorm:"type:smallint"`
	PreviousSurveyChanges  *int `json:"previousSurveyChanges,omitempty" gorm:"type:smallint"`

	// Suggestions
	Suggestions *string `json:"suggestions,omitempty" gorm:"type:text"`

	IsComplete  bool              `json:"isComplete" gorm:"not null;default:false;index"`
	CreatedAt   time.Time         `json:"createdAt" gorm:"not null;index"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}

func (Survey) TableName() string {
	return "surveys"
}

var scaleFields = map[string]func(r *SurveyResponse) **int{
	"roleHappiness":              func(r *SurveyResponse) **int { return &r.RoleHappiness },
	"recommendCompany":           func(r *SurveyResponse) **int { return &r.RecommendCompany },
	"motivated":                  func(r *SurveyResponse) **int { return &r.Motivated },
	"contributionsValued":        func(r *SurveyResponse) **int { return &r.ContributionsValued },
	"learningOpportunities":      func(r *SurveyResponse) **int { return &r.LearningOpportunities },
	"comfortableWithManager":     func(r *SurveyResponse) **int { return &r.ComfortableWithManager },
	"belongsWithPeers":           func(r *SurveyResponse) **int { return &r.BelongsWithPeers },
	"hasResources":               func(r *SurveyResponse) **int { return &r.HasResources },
	"wellBeing":                  func(r *SurveyResponse) **int { return &r.WellBeing },
	"wellnessResources":          func(r *SurveyResponse) **int { return &r.WellnessResources },
	"stressLevel":                func(r *SurveyResponse) **int { return &r.StressLevel },
	"teamCommunication":          func(r *SurveyResponse) **int { return &r.TeamCommunication },
	"teamWorksWell":              func(r *SurveyResponse) **int { return &r.TeamWorksWell },
	"teamSupport":                func(r *SurveyResponse) **int { return &r.TeamSupport },
	"careerOpportunities":        func(r *SurveyResponse) **int { return &r.CareerOpportunities },
	"trainingEffectiveness":      func(r *SurveyResponse) **int { return &r.TrainingEffectiveness },
	"recognitionForAchievements": func(r *SurveyResponse) **int { return &r.RecognitionForAchievements },
	"companyCulture":             func(r *SurveyResponse) **int { return &r.CompanyCulture },
	"senseOfBelonging":           func(r *SurveyResponse) **int { return &r.SenseOfBelonging },
	"valuesReflected":            func(r *SurveyResponse) **int { return &r.ValuesReflected },
	"leadershipCommunication":    func(r *SurveyResponse) **int { return &r.LeadershipCommunication },
	"leadershipApproachable":     func(r *SurveyResponse) **int { return &r.LeadershipApproachable },
	"trustLeadership":            func(r *SurveyResponse) **int { return &r.TrustLeadership },
	"initiativesSatisfaction":    func(r *SurveyResponse) **int { return &r.InitiativesSatisfaction },
	"knowWhereToGoForQuestions":  func(r *SurveyResponse) **int { return &r.KnowWhereToGoForQuestions },
	"knowSurveyConsultation":     func(r *SurveyResponse) **int { return &r.KnowSurveyConsultation },
	"previousSurveyChanges":      func(r *SurveyResponse) **int { return &r.PreviousSurveyChanges },
}

var textFields = map[string]func(r *SurveyResponse) **string{
	QuestionConsent:       func(r *SurveyResponse) **string { return &r.Consent },
	QuestionDeclineReason: func(r *SurveyResponse) **string { return &r.DeclineReason },
	QuestionSuggestions:   func(r *SurveyResponse) **string { return &r.Suggestions },
}

// Answer returns the stored answer for a catalog key. Absent values, blank
// text and unparseable stored values report false.
func (r *SurveyResponse) Answer(key string) (Answer, bool) {
	q, ok := LookupQuestion(key)
	if !ok {
		return nil, false
	}

	switch q.Type {
	case QuestionTypeScale:
		field, ok := scaleFields[key]
		if !ok {
			return nil, false
		}
		v := *field(r)
		if v == nil {
			return nil, false
		}
		a, err := NewScaleAnswer(*v)
		if err != nil {
			return nil, false
		}
		return a, true
	case QuestionTypeYesNo, QuestionTypeText:
		field, ok := textFields[key]
		if !ok {
			return nil, false
		}
		v := *field(r)
		if v == nil || strings.TrimSpace(*v) == "" {
			return nil, false
		}
		if q.Type == QuestionTypeYesNo {
			yn, err := ParseYesNo(*v)
			if err != nil {
				return nil, false
			}
			return yn, true
		}
		return TextAnswer(*v), true
	}
	return nil, false
}

// SetAnswer stores a into the column for key. A nil answer clears the column.
func (r *SurveyResponse) SetAnswer(key string, a Answer) error {
	q, ok := LookupQuestion(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, key)
	}
	if a != nil && a.Type() != q.Type {
		return fmt.Errorf("%w: %s expects %s, got %s", ErrAnswerTypeMismatch, key, q.Type, a.Type())
	}

	switch q.Type {
	case QuestionTypeScale:
		field := scaleFields[key](r)
		if a == nil {
			*field = nil
			return nil
		}
		v, err := NewScaleAnswer(a.(ScaleAnswer).Int())
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		n := v.Int()
		*field = &n
	case QuestionTypeYesNo:
		field := textFields[key](r)
		if a == nil {
			*field = nil
			return nil
		}
		token := a.(YesNoAnswer).Token()
		*field = &token
	case QuestionTypeText:
		field := textFields[key](r)
		if a == nil {
			*field = nil
			return nil
		}
		text := a.String()
		*field = &text
	}
	return nil
}

// Answers returns every present answer keyed by question key
func (r *SurveyResponse) Answers() map[string]Answer {
	out := make(map[string]Answer)
	for _, q := range catalog {
		if a, ok := r.Answer(q.Key); ok {
			out[q.Key] = a
		}
	}
	return out
}

// Consented reports whether the respondent agreed to take the survey.
func (r *SurveyResponse) Consented() bool {
	a, ok := r.Answer(QuestionConsent)
	if !ok {
		return false
	}
	return bool(a.(YesNoAnswer))
}
