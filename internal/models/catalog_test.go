package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Run("Shape", func(t *testing.T) {
		questions := Questions()
		assert.Len(t, questions, 30)
		assert.Len(t, ScaleQuestions(), 27)
		assert.Len(t, Sections(), 11)

		assert.Equal(t, QuestionConsent, questions[0].Key)
		assert.Equal(t, QuestionSuggestions, questions[len(questions)-1].Key)
	})

	t.Run("Every_Question_Has_A_Known_Section", func(t *testing.T) {
		for _, q := range Questions() {
			_, ok := LookupSection(q.Section)
			assert.True(t, ok, "question %s has unknown section %s", q.Key, q.Section)
			assert.NotEmpty(t, q.Text)
			assert.NotEmpty(t, q.Column)
		}
	})

	t.Run("Every_Scale_Question_Has_A_Column", func(t *testing.T) {
		for _, q := range ScaleQuestions() {
			_, ok := scaleFields[q.Key]
			assert.True(t, ok, "no column accessor for %s", q.Key)
		}
	})

	t.Run("Sections_In_Catalog_Order", func(t *testing.T) {
		last := -1
		for _, q := range Questions() {
			idx := sectionIndex[q.Section]
			assert.GreaterOrEqual(t, idx, last)
			last = idx
		}
	})

	t.Run("Lookup", func(t *testing.T) {
		q, ok := LookupQuestion("stressLevel")
		require.True(t, ok)
		assert.Equal(t, SectionWellness, q.Section)
		assert.Equal(t, "stress_level", q.Column)

		_, ok = LookupQuestion("favouriteColour")
		assert.False(t, ok)

		assert.Equal(t, "Initiatives/Projects", SectionTitle(SectionInitiatives))
		assert.Equal(t, "mystery", SectionTitle("mystery"))
		assert.Len(t, QuestionsInSection(SectionOverallEngagement), 4)
	})

	t.Run("Questions_Returns_Copy", func(t *testing.T) {
		questions := Questions()
		questions[0].Text = "changed"
		q, _ := LookupQuestion(QuestionConsent)
		assert.NotEqual(t, "changed", q.Text)
	})
}

func TestParseAnswer(t *testing.T) {
	scale, _ := LookupQuestion("roleHappiness")
	consent, _ := LookupQuestion(QuestionConsent)
	suggestions, _ := LookupQuestion(QuestionSuggestions)

	tests := []struct {
		name    string
		q       QuestionDescriptor
		raw     string
		want    Answer
		wantErr error
	}{
		{"scale", scale, "4", ScaleAnswer(4), nil},
		{"scale_trimmed", scale, " 5 ", ScaleAnswer(5), nil},
		{"scale_out_of_range", scale, "6", nil, ErrScaleOutOfRange},
		{"scale_zero", scale, "0", nil, ErrScaleOutOfRange},
		{"scale_not_a_number", scale, "four", nil, ErrInvalidScale},
		{"yes", consent, "yes", YesNoAnswer(true), nil},
		{"no_label", consent, "No", YesNoAnswer(false), nil},
		{"yes_no_invalid", consent, "maybe", nil, ErrInvalidYesNo},
		{"text", suggestions, "  more coffee ", TextAnswer("more coffee"), nil},
		{"empty", scale, "   ", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswer(tt.q, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSurveyResponse_Answers(t *testing.T) {
	r := &SurveyResponse{}

	require.NoError(t, r.SetAnswer(QuestionConsent, YesNoAnswer(true)))
	require.NoError(t, r.SetAnswer("roleHappiness", ScaleAnswer(5)))
	require.NoError(t, r.SetAnswer(QuestionSuggestions, TextAnswer("  flexible hours ")))

	assert.Equal(t, "yes", *r.Consent)
	assert.Equal(t, 5, *r.RoleHappiness)
	assert.Equal(t, "flexible hours", *r.Suggestions)
	assert.True(t, r.Consented())

	a, ok := r.Answer("roleHappiness")
	require.True(t, ok)
	assert.Equal(t, "5", a.String())

	_, ok = r.Answer("stressLevel")
	assert.False(t, ok)

	assert.Len(t, r.Answers(), 3)

	t.Run("Rejects_Mismatched_Type", func(t *testing.T) {
		err := r.SetAnswer("roleHappiness", TextAnswer("5"))
		assert.ErrorIs(t, err, ErrAnswerTypeMismatch)
	})

	t.Run("Out_Of_Range_Stored_Scale_Reads_As_Absent", func(t *testing.T) {
		stored := &SurveyResponse{}
		seven := 7
		stored.WellBeing = &seven

		_, ok := stored.Answer("wellBeing")
		assert.False(t, ok)
		assert.Empty(t, stored.Answers())
	})

	t.Run("Rejects_Out_Of_Range_Scale", func(t *testing.T) {
		err := r.SetAnswer("motivated", ScaleAnswer(9))
		assert.ErrorIs(t, err, ErrScaleOutOfRange)
		assert.Nil(t, r.Motivated)
	})

	t.Run("Rejects_Unknown_Key", func(t *testing.T) {
		err := r.SetAnswer("favouriteColour", TextAnswer("blue"))
		assert.ErrorIs(t, err, ErrUnknownQuestion)
	})

	t.Run("Blank_Text_Is_Absent", func(t *testing.T) {
		blank := "   "
		r.DeclineReason = &blank
		_, ok := r.Answer(QuestionDeclineReason)
		assert.False(t, ok)
	})

	t.Run("Nil_Clears", func(t *testing.T) {
		require.NoError(t, r.SetAnswer("roleHappiness", nil))
		assert.Nil(t, r.RoleHappiness)
	})
}
