package models

type QuestionType string

const (
	QuestionTypeScale QuestionType = "scale"
	QuestionTypeYesNo QuestionType = "yesno"
	QuestionTypeText  QuestionType = "text"
)

type SectionKey string

const (
	SectionConsent           SectionKey = "consent"
	SectionOverallEngagement SectionKey = "overall_engagement"
	SectionWorkExperience    SectionKey = "work_experience"
	SectionWellness          SectionKey = "wellness"
	SectionTeamDynamics      SectionKey = "team_dynamics"
	SectionCareerDevelopment SectionKey = "career_development"
	SectionCulture           SectionKey = "culture"
	SectionLeadership        SectionKey = "leadership"
	SectionInitiatives       SectionKey = "initiatives"
	SectionPreviousSurvey    SectionKey = "previous_survey"
	SectionSuggestions       SectionKey = "suggestions"
)

// Question keys that carry special meaning in the submission flow.
const (
	QuestionConsent       = "consent"
	QuestionDeclineReason = "declineReason"
	QuestionSuggestions   = "suggestions"
)

type Section struct {
	Key   SectionKey `json:"key"`
	Title string     `json:"title"`
}

// QuestionDescriptor describes one fixed survey question
type QuestionDescriptor struct {
	Key     string       `json:"key"`
	Column  string       `json:"column"`
	Text    string       `json:"text"`
	Section SectionKey   `json:"section"`
	Type    QuestionType `json:"type"`
}

var sections = []Section{
	{SectionConsent, "Consent"},
	{SectionOverallEngagement, "Overall Engagement"},
	{SectionWorkExperience, "Work Experience"},
	{SectionWellness, "Wellness"},
	{SectionTeamDynamics, "Team Dynamics"},
	{SectionCareerDevelopment, "Career Development"},
	{SectionCulture, "Culture"},
	{SectionLeadership, "Leadership"},
	{SectionInitiatives, "Initiatives/Projects"},
	{SectionPreviousSurvey, "Previous Survey"},
	{SectionSuggestions, "Suggestions"},
}

// catalog is declared in form order; aggregation and exports follow it.
var catalog = []QuestionDescriptor{
	// ===== CONSENT =====
	{QuestionConsent, "consent", "Do you want to continue with the survey?", SectionConsent, QuestionTypeYesNo},
	{QuestionDeclineReason, "decline_reason", "Reasons you can't complete the survey", SectionConsent, QuestionTypeText},

	// ===== OVERALL ENGAGEMENT =====
	{"roleHappiness", "role_happiness", "On a scale of 1 to 5, how happy are you with your current role?", SectionOverallEngagement, QuestionTypeScale},
	{"recommendCompany", "recommend_company", "On a scale of 1 to 5, how likely are you to recommend our company as a great place to work?", SectionOverallEngagement, QuestionTypeScale},
	{"motivated", "motivated", "Do you feel motivated to perform your best work?", SectionOverallEngagement, QuestionTypeScale},
	{"contributionsValued", "contributions_valued", "Do you believe your contributions are valued?", SectionOverallEngagement, QuestionTypeScale},

	// ===== WORK EXPERIENCE =====
	{"learningOpportunities", "learning_opportunities", "On a scale of 1 to 5, how satisfied are you with the opportunities to learn and grow in your role?", SectionWorkExperience, QuestionTypeScale},
	{"comfortableWithManager", "comfortable_with_manager", "I feel comfortable sharing my opinion with my manager, even if it differs from their opinion", SectionWorkExperience, QuestionTypeScale},
	{"belongsWithPeers", "belongs_with_peers", "I feel that I belong among my peers and colleagues", SectionWorkExperience, QuestionTypeScale},
	{"hasResources", "has_resources", "I have all the resources I need to perform well and be successful in my role", SectionWorkExperience, QuestionTypeScale},

	// ===== WELLNESS =====
	{"wellBeing", "well_being", "How would you rate your overall well-being?", SectionWellness, QuestionTypeScale},
	{"wellnessResources", "wellness_resources", "Do you feel the company provides adequate wellness resources?", SectionWellness, QuestionTypeScale},
	{"stressLevel", "stress_level", "How often do you feel stressed or overwhelmed at work?", SectionWellness, QuestionTypeScale},

	// ===== TEAM DYNAMICS =====
	{"teamCommunication", "team_communication", "How effective is communication within your team?", SectionTeamDynamics, QuestionTypeScale},
	{"teamWorksWell", "team_works_well", "Do you feel your team works well together?", SectionTeamDynamics, QuestionTypeScale},
	{"teamSupport", "team_support", "How supported do you feel by your team members?", SectionTeamDynamics, QuestionTypeScale},

	// ===== CAREER DEVELOPMENT =====
	{"careerOpportunities", "career_opportunities", "Do you feel you have opportunities to advance your career here?", SectionCareerDevelopment, QuestionTypeScale},
	{"trainingEffectiveness", "training_effectiveness", "How effective are the training programs provided?", SectionCareerDevelopment, QuestionTypeScale},
	{"recognitionForAchievements", "recognition_for_achievements", "Do you feel recognized for your achievements?", SectionCareerDevelopment, QuestionTypeScale},

	// ===== CULTURE =====
	{"companyCulture", "company_culture", "How would you describe the company's culture?", SectionCulture, QuestionTypeScale},
	{"senseOfBelonging", "sense_of_belonging", "Do you feel a sense of belonging at work?", SectionCulture, QuestionTypeScale},
	{"valuesReflected", "values_reflected", "Does the company's values reflect in your daily work experience?", SectionCulture, QuestionTypeScale},

	// ===== LEADERSHIP =====
	{"leadershipCommunication", "leadership_communication", "Do you feel leadership communicates effectively?", SectionLeadership, QuestionTypeScale},
	{"leadershipApproachable", "leadership_approachable", "How approachable is your manager or senior leadership?", SectionLeadership, QuestionTypeScale},
	{"trustLeadership", "trust_leadership", "Do you trust the decisions made by leadership?", SectionLeadership, QuestionTypeScale},

	// ===== INITIATIVES =====
	{"initiativesSatisfaction", "initiatives_satisfaction", "On a scale of 1 to 5, how satisfied are you with our QR code survey, AGAHF social media visibility, E-Ticketing, CT scan machine, ulcer clinic and CCTV cameras?", SectionInitiatives, QuestionTypeScale},
	{"knowWhereToGoForQuestions", "know_where_to_go_for_questions", "I know who or where to go with questions about our E-Ticketing, AGAHF social media visibility, CCTV footage, QR code survey?", SectionInitiatives, QuestionTypeScale},

	// ===== PREVIOUS SURVEY =====
	{"knowSurveyConsultation", "know_survey_consultation", "I know where I can consult for the employee pulse survey", SectionPreviousSurvey, QuestionTypeScale},
	{"previousSurveyChanges", "previous_survey_changes", "On a scale of 1 to 5, how satisfied are you with the changes that have been made based on the results from our previous or current employee pulse survey?", SectionPreviousSurvey, QuestionTypeScale},

	// ===== SUGGESTIONS =====
	{QuestionSuggestions, "suggestions", "What ideas or suggestions do you have for us to make our company an even better place to work?", SectionSuggestions, QuestionTypeText},
}

var (
	questionIndex = make(map[string]int, len(catalog))
	sectionIndex  = make(map[SectionKey]int, len(sections))
)

func init() {
	for i, q := range catalog {
		questionIndex[q.Key] = i
	}
	for i, s := range sections {
		sectionIndex[s.Key] = i
	}
}

// Questions returns the full catalog in declaration order
func Questions() []QuestionDescriptor {
	out := make([]QuestionDescriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Sections returns every section in display order
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

func LookupQuestion(key string) (QuestionDescriptor, bool) {
	i, ok := questionIndex[key]
	if !ok {
		return QuestionDescriptor{}, false
	}
	return catalog[i], true
}

func LookupSection(key SectionKey) (Section, bool) {
	i, ok := sectionIndex[key]
	if !ok {
		return Section{}, false
	}
	return sections[i], true
}

// SectionTitle falls back to the raw key for unknown sections.
func SectionTitle(key SectionKey) string {
	if s, ok := LookupSection(key); ok {
		return s.Title
	}
	return string(key)
}

// QuestionsInSection returns the section's questions in catalog order
func QuestionsInSection(key SectionKey) []QuestionDescriptor {
	var out []QuestionDescriptor
	for _, q := range catalog {
		if q.Section == key {
			out = append(out, q)
		}
	}
	return out
}

// ScaleQuestions returns every Likert question; a consenting submission must answer all of them.
func ScaleQuestions() []QuestionDescriptor {
	var out []QuestionDescriptor
	for _, q := range catalog {
		if q.Type == QuestionTypeScale {
			out = append(out, q)
		}
	}
	return out
}
