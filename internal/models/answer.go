package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	ScaleMin = 1
	ScaleMax = 5

	YesToken = "yes"
	NoToken  = "no"
)

var (
	ErrUnknownQuestion    = errors.New("unknown question")
	ErrScaleOutOfRange    = errors.New("scale answer must be between 1 and 5")
	ErrInvalidScale       = errors.New("scale answer must be a whole number")
	ErrInvalidYesNo       = errors.New("answer must be yes or no")
	ErrAnswerTypeMismatch = errors.New("answer type does not match question")
)

// Answer is one of ScaleAnswer, YesNoAnswer or TextAnswer
type Answer interface {
	Type() QuestionType
	// String is the bucket label used by aggregation.
	String() string
	isAnswer()
}

type ScaleAnswer int

func NewScaleAnswer(v int) (ScaleAnswer, error) {
	if v < ScaleMin || v > ScaleMax {
		return 0, fmt.Errorf("%w: got %d", ErrScaleOutOfRange, v)
	}
	return ScaleAnswer(v), nil
}

func (a ScaleAnswer) Type() QuestionType { return QuestionTypeScale }
func (a ScaleAnswer) String() string     { return strconv.Itoa(int(a)) }
func (a ScaleAnswer) Int() int           { return int(a) }
func (ScaleAnswer) isAnswer()            {}

type YesNoAnswer bool

func (a YesNoAnswer) Type() QuestionType { return QuestionTypeYesNo }

func (a YesNoAnswer) String() string {
	if a {
		return "Yes"
	}
	return "No"
}

// Token is the stored form of the answer.
func (a YesNoAnswer) Token() string {
	if a {
		return YesToken
	}
	return NoToken
}

func (YesNoAnswer) isAnswer() {}

type TextAnswer string

func (a TextAnswer) Type() QuestionType { return QuestionTypeText }
func (a TextAnswer) String() string     { return strings.TrimSpace(string(a)) }
func (TextAnswer) isAnswer()            {}

// ParseYesNo accepts the stored tokens and their display labels, case-insensitively.
func ParseYesNo(raw string) (YesNoAnswer, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case YesToken, "true":
		return true, nil
	case NoToken, "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: got %q", ErrInvalidYesNo, raw)
	}
}

// ParseAnswer converts a raw form value into the answer variant of the question.
// An empty value yields a nil answer and no error.
func ParseAnswer(q QuestionDescriptor, raw string) (Answer, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	switch q.Type {
	case QuestionTypeScale:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidScale, raw)
		}
		a, err := NewScaleAnswer(v)
		if err != nil {
			return nil, err
		}
		return a, nil
	case QuestionTypeYesNo:
		a, err := ParseYesNo(raw)
		if err != nil {
			return nil, err
		}
		return a, nil
	case QuestionTypeText:
		return TextAnswer(raw), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, q.Key)
	}
}
