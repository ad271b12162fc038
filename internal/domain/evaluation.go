package domain

import (
	"errors"
	"strings"
	"time"
)

// ReviewOutcome represents one of Anki's four difficulty ratings.
type ReviewOutcome string

// Possible review outcome values
const (
	ReviewOutcomeAgain ReviewOutcome = "again"
	ReviewOutcomeHard  ReviewOutcome = "hard"
	ReviewOutcomeGood  ReviewOutcome = "good"
	ReviewOutcomeEasy  ReviewOutcome = "easy"
)

// Evaluation-specific errors
var (
	// ErrInvalidReviewOutcome is returned when a review outcome is not valid.
	ErrInvalidReviewOutcome = errors.New("invalid review outcome")

	// ErrEvaluationEmpty is returned when an evaluation has no assessment text.
	ErrEvaluationEmpty = errors.New("evaluation text cannot be empty")
)

// ParseReviewOutcome converts a string into a ReviewOutcome. It accepts the
// Anki-facing spellings ("Again", "Hard", "Good", "Easy") as well as the
// lowercase wire form, ignoring surrounding whitespace.
func ParseReviewOutcome(s string) (ReviewOutcome, error) {
	switch ReviewOutcome(strings.ToLower(strings.TrimSpace(s))) {
	case ReviewOutcomeAgain:
		return ReviewOutcomeAgain, nil
	case ReviewOutcomeHard:
		return ReviewOutcomeHard, nil
	case ReviewOutcomeGood:
		return ReviewOutcomeGood, nil
	case ReviewOutcomeEasy:
		return ReviewOutcomeEasy, nil
	default:
		return "", ErrInvalidReviewOutcome
	}
}

// Label returns the Anki-facing spelling of the outcome ("Again", "Hard",
// "Good", "Easy").
func (o ReviewOutcome) Label() string {
	if o == "" {
		return ""
	}
	return strings.ToUpper(string(o[:1])) + string(o[1:])
}

// Validate checks that the outcome is one of the four defined values.
func (o ReviewOutcome) Validate() error {
	switch o {
	case ReviewOutcomeAgain, ReviewOutcomeHard, ReviewOutcomeGood, ReviewOutcomeEasy:
		return nil
	default:
		return ErrInvalidReviewOutcome
	}
}

// Evaluation is the structured verdict the LLM returns for a user's answer.
// Recommendation is the difficulty rating the user is advised to press;
// Answer restates the correct answer(s) and Reference carries supporting
// explanation.
type Evaluation struct {
	Evaluation     string        `json:"evaluation"`
	Recommendation ReviewOutcome `json:"recommendation"`
	Answer         string        `json:"answer"`
	Reference      string        `json:"reference"`
	ModelName      string        `json:"model_name,omitempty"`
	Elapsed        time.Duration `json:"elapsed,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewEvaluation creates an Evaluation with the given verdict fields.
// Returns an error if validation fails.
func NewEvaluation(text string, recommendation ReviewOutcome, answer, reference string) (*Evaluation, error) {
	eval := &Evaluation{
		Evaluation:     text,
		Recommendation: recommendation,
		Answer:         answer,
		Reference:      reference,
		CreatedAt:      time.Now().UTC(),
	}

	if err := eval.Validate(); err != nil {
		return nil, err
	}

	return eval, nil
}

// Validate checks if the Evaluation has valid data.
func (e *Evaluation) Validate() error {
	if e.Evaluation == "" {
		return ErrEvaluationEmpty
	}

	return e.Recommendation.Validate()
}
