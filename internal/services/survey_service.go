package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/cache"
	"github.com/SAP-F-2025/survey-service/internal/events"
	"github.com/SAP-F-2025/survey-service/internal/metrics"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/validator"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// maxSessionDuration bounds a client-reported start time; older or future
// values fall back to the submission time.
const maxSessionDuration = 24 * time.Hour

// SurveyService accepts submissions and describes the survey
type SurveyService interface {
	Submit(ctx context.Context, req *SubmitResponseRequest) (*SubmitResult, error)
	GetDefinition(ctx context.Context) *SurveyDefinition
}

// SurveyInfo identifies the survey all responses are stored under
type SurveyInfo struct {
	Title       string
	Description string
}

type surveyService struct {
	repo      repositories.Repository
	guard     cache.SessionGuard
	publisher events.EventPublisher
	metrics   *metrics.Metrics
	log       *ServiceLogger
	validator *validator.Validator
	survey    SurveyInfo
	now       func() time.Time
}

func NewSurveyService(
	repo repositories.Repository,
	guard cache.SessionGuard,
	publisher events.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	validator *validator.Validator,
	survey SurveyInfo,
) SurveyService {
	if guard == nil {
		guard = cache.NewNoopSessionGuard()
	}
	return &surveyService{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
		metrics:   m,
		log:       NewServiceLogger(logger, "survey"),
		validator: validator,
		survey:    survey,
		now:       time.Now,
	}
}

// ===== DATA STRUCTURES =====

// SubmitResponseRequest is the full answer set as posted by the survey form.
// Scale answers arrive as strings "1".."5".
type SubmitResponseRequest struct {
	SessionID string                 `json:"sessionId" validate:"omitempty,uuid"`
	StartedAt *time.Time             `json:"startedAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`

	Consent       string `json:"consent" validate:"required,yes_no"`
	DeclineReason string `json:"declineReason" validate:"omitempty,max=2000"`

	RoleHappiness       string `json:"roleHappiness" validate:"required,likert"`
	RecommendCompany    string `json:"recommendCompany" validate:"required,likert"`
	Motivated           string `json:"motivated" validate:"required,likert"`
	ContributionsValued string `json:"contributionsValued" validate:"required,likert"`

	LearningOpportunities  string `json:"learningOpportunities" validate:"required,likert"`
	ComfortableWithManager string `json:"comfortableWithManager" validate:"required,likert"`
	BelongsWithPeers       string `json:"belongsWithPeers" validate:"required,likert"`
	HasResources           string `json:"hasResources" validate:"required,likert"`

	WellBeing         string `json:"wellBeing" validate:"required,likert"`
	WellnessResources string `json:"wellnessResources" validate:"required,likert"`
	StressLevel       string `json:"stressLevel" validate:"required,likert"`

	TeamCommunication string `json:"teamCommunication" validate:"required,likert"`
	TeamWorksWell     string `json:"teamWorksWell" validate:"required,likert"`
	TeamSupport       string `json:"teamSupport" validate:"required,likert"`

	CareerOpportunities        string `json:"careerOpportunities" validate:"required,likert"`
	TrainingEffectiveness      string `json:"trainingEffectiveness" validate:"required,likert"`
	RecognitionForAchievements string `json:"recognitionForAchievements" validate:"required,likert"`

	CompanyCulture   string `json:"companyCulture" validate:"required,likert"`
	SenseOfBelonging string `json:"senseOfBelonging" validate:"required,likert"`
	ValuesReflected  string `json:"valuesReflected" validate:"required,likert"`

	LeadershipCommunication string `json:"leadershipCommunication" validate:"required,likert"`
	LeadershipApproachable  string `json:"leadershipApproachable" validate:"required,likert"`
	TrustLeadership         string `json:"trustLeadership" validate:"required,likert"`

	InitiativesSatisfaction   string `json:"initiativesSatisfaction" validate:"required,likert"`
	KnowWhereToGoForQuestions string `json:"knowWhereToGoForQuestions" validate:"required,likert"`

	KnowSurveyConsultation string `json:"knowSurveyConsultation" validate:"required,likert"`
	PreviousSurveyChanges  string `json:"previousSurveyChanges" validate:"required,likert"`

	Suggestions string `json:"suggestions" validate:"omitempty,max=5000"`
}

// declineSubmission is what a declining respondent must provide
type declineSubmission struct {
	SessionID     string `json:"sessionId" validate:"omitempty,uuid"`
	Consent       string `json:"consent" validate:"required,yes_no"`
	DeclineReason string `json:"declineReason" validate:"required,max=2000"`
}

// answerValues maps catalog keys to the raw submitted values
func (r *SubmitResponseRequest) answerValues() map[string]string {
	return map[string]string{
		models.QuestionConsent:       r.Consent,
		models.QuestionDeclineReason: r.DeclineReason,
		"roleHappiness":              r.RoleHappiness,
		"recommendCompany":           r.RecommendCompany,
		"motivated":                  r.Motivated,
		"contributionsValued":        r.ContributionsValued,
		"learningOpportunities":      r.LearningOpportunities,
		"comfortableWithManager":     r.ComfortableWithManager,
		"belongsWithPeers":           r.BelongsWithPeers,
		"hasResources":               r.HasResources,
		"wellBeing":                  r.WellBeing,
		"wellnessResources":          r.WellnessResources,
		"stressLevel":                r.StressLevel,
		"teamCommunication":          r.TeamCommunication,
		"teamWorksWell":              r.TeamWorksWell,
		"teamSupport":                r.TeamSupport,
		"careerOpportunities":        r.CareerOpportunities,
		"trainingEffectiveness":      r.TrainingEffectiveness,
		"recognitionForAchievements": r.RecognitionForAchievements,
		"companyCulture":             r.CompanyCulture,
		"senseOfBelonging":           r.SenseOfBelonging,
		"valuesReflected":            r.ValuesReflected,
		"leadershipCommunication":    r.LeadershipCommunication,
		"leadershipApproachable":     r.LeadershipApproachable,
		"trustLeadership":            r.TrustLeadership,
		"initiativesSatisfaction":    r.InitiativesSatisfaction,
		"knowWhereToGoForQuestions":  r.KnowWhereToGoForQuestions,
		"knowSurveyConsultation":     r.KnowSurveyConsultation,
		"previousSurveyChanges":      r.PreviousSurveyChanges,
		models.QuestionSuggestions:   r.Suggestions,
	}
}

type SubmitResult struct {
	ResponseID uint   `json:"responseId"`
	SessionID  string `json:"sessionId"`
	Consented  bool   `json:"consented"`
}

// SurveyDefinition is the survey and its question catalog grouped by section
type SurveyDefinition struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Sections    []SectionDefinition `json:"sections"`
}

type SectionDefinition struct {
	models.Section
	Questions []models.QuestionDescriptor `json:"questions"`
}

// ===== SUBMISSION =====

func (s *surveyService) Submit(ctx context.Context, req *SubmitResponseRequest) (*SubmitResult, error) {
	op := s.log.WithOperation(ctx, "submit_response")

	result, err := s.submit(ctx, req)

	attrs := []slog.Attr{}
	if result != nil {
		attrs = append(attrs, slog.String("session_id", result.SessionID), slog.Uint64("response_id", uint64(result.ResponseID)))
	}
	op.LogResult(err, attrs...)
	s.metrics.ObserveSubmission(submissionOutcome(result, err))

	return result, err
}

func (s *surveyService) submit(ctx context.Context, req *SubmitResponseRequest) (*SubmitResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty submission", ErrValidationFailed)
	}

	if err := s.validator.ValidateVar("consent", req.Consent, "required,yes_no"); err != nil {
		return nil, err
	}
	consent, _ := models.ParseYesNo(req.Consent)
	consented := bool(consent)

	values := req.answerValues()
	if consented {
		if err := s.validator.ValidateStruct(req); err != nil {
			return nil, err
		}
	} else {
		decline := declineSubmission{SessionID: req.SessionID, Consent: req.Consent, DeclineReason: req.DeclineReason}
		if err := s.validator.ValidateStruct(decline); err != nil {
			return nil, err
		}
		values = map[string]string{
			models.QuestionConsent:       req.Consent,
			models.QuestionDeclineReason: req.DeclineReason,
		}
	}

	survey, err := s.repo.Surveys().GetOrCreate(ctx, s.survey.Title, s.survey.Description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	now := s.now().UTC()
	row, err := buildResponse(values, survey.ID, req, now)
	if err != nil {
		return nil, err
	}
	if consented {
		row.IsComplete = true
		row.CompletedAt = &now
	}

	guarded := true
	claimed, err := s.guard.Acquire(ctx, row.SessionID)
	if err != nil {
		guarded = false
		s.log.Logger().WarnContext(ctx, "Session guard unavailable, relying on store constraint",
			"session_id", row.SessionID, "error", err)
	} else if !claimed {
		return nil, ErrDuplicateSession
	}

	if err := s.repo.Responses().Insert(ctx, row); err != nil {
		if guarded {
			if releaseErr := s.guard.Release(context.WithoutCancel(ctx), row.SessionID); releaseErr != nil {
				s.log.Logger().WarnContext(ctx, "Failed to release session guard",
					"session_id", row.SessionID, "error", releaseErr)
			}
		}
		if repositories.IsConstraintViolation(err) {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateSession, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.publishSubmitted(ctx, row)

	return &SubmitResult{
		ResponseID: row.ID,
		SessionID:  row.SessionID,
		Consented:  consented,
	}, nil
}

// buildResponse parses the raw values in catalog order into a new row
func buildResponse(values map[string]string, surveyID uint, req *SubmitResponseRequest, now time.Time) (*models.SurveyResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	row := &models.SurveyResponse{
		SurveyID:  surveyID,
		SessionID: sessionID,
		CreatedAt: sessionStart(req.StartedAt, now),
	}
	if len(req.Metadata) > 0 {
		row.Metadata = datatypes.JSONMap(req.Metadata)
	}

	var errs ValidationErrors
	for _, q := range models.Questions() {
		raw, ok := values[q.Key]
		if !ok {
			continue
		}
		answer, err := models.ParseAnswer(q, raw)
		if err != nil {
			errs = append(errs, *NewValidationError(q.Key, err.Error(), raw))
			continue
		}
		if answer == nil {
			continue
		}
		if err := row.SetAnswer(q.Key, answer); err != nil {
			errs = append(errs, *NewValidationError(q.Key, err.Error(), raw))
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return row, nil
}

func sessionStart(startedAt *time.Time, now time.Time) time.Time {
	if startedAt == nil || startedAt.IsZero() {
		return now
	}
	start := startedAt.UTC()
	if start.After(now) || now.Sub(start) > maxSessionDuration {
		return now
	}
	return start
}

func (s *surveyService) publishSubmitted(ctx context.Context, row *models.SurveyResponse) {
	if s.publisher == nil {
		return
	}
	event := events.NewResponseSubmittedEvent(events.ResponseSubmittedEvent{
		ResponseID:  row.ID,
		SurveyID:    row.SurveyID,
		SessionID:   row.SessionID,
		Consented:   row.Consented(),
		IsComplete:  row.IsComplete,
		CreatedAt:   row.CreatedAt,
		CompletedAt: row.CompletedAt,
	})
	if err := s.publisher.PublishSurveyEvent(ctx, event); err != nil {
		s.log.Logger().WarnContext(ctx, "Failed to publish survey event",
			"session_id", row.SessionID, "error", err)
	}
}

func submissionOutcome(result *SubmitResult, err error) string {
	switch {
	case err == nil && result != nil && !result.Consented:
		return metrics.ResultDeclined
	case err == nil:
		return metrics.ResultAccepted
	case IsValidation(err):
		return metrics.ResultInvalid
	case IsConflict(err):
		return metrics.ResultDuplicate
	default:
		return metrics.ResultFailed
	}
}

// ===== DEFINITION =====

func (s *surveyService) GetDefinition(ctx context.Context) *SurveyDefinition {
	sections := models.Sections()
	def := &SurveyDefinition{
		Title:       s.survey.Title,
		Description: s.survey.Description,
		Sections:    make([]SectionDefinition, 0, len(sections)),
	}
	for _, section := range sections {
		def.Sections = append(def.Sections, SectionDefinition{
			Section:   section,
			Questions: models.QuestionsInSection(section.Key),
		})
	}
	return def
}
