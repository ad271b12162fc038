package evaluation

import (
	"testing"

	"github.com/answercheck/answercheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVerdict(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name               string
		reply              string
		wantEvaluation     string
		wantRecommendation domain.ReviewOutcome
		wantAnswer         string
	}{
		{
			name:               "bare object",
			reply:              `{"evaluation": "Correct.", "recommendation": "Good", "answer": "Paris", "reference": "Capital since 987."}`,
			wantEvaluation:     "Correct.",
			wantRecommendation: domain.ReviewOutcomeGood,
			wantAnswer:         "Paris",
		},
		{
			name: "code fenced",
			reply: "Here is my assessment:\n```json\n" +
				`{"evaluation": "Close enough.", "recommendation": "Hard", "answer": "Paris", "reference": ""}` +
				"\n```",
			wantEvaluation:     "Close enough.",
			wantRecommendation: domain.ReviewOutcomeHard,
			wantAnswer:         "Paris",
		},
		{
			name: "last valid object wins",
			reply: `{"evaluation": "draft", "recommendation": "Good", "answer": "x", "reference": ""}` +
				" revised: " +
				`{"evaluation": "final", "recommendation": "Easy", "answer": "Paris", "reference": ""}`,
			wantEvaluation:     "final",
			wantRecommendation: domain.ReviewOutcomeEasy,
			wantAnswer:         "Paris",
		},
		{
			name: "example object with invalid recommendation skipped",
			reply: `{"evaluation": "...", "recommendation": "Again, Hard, Good, Easy", "answer": "...", "reference": "..."}` +
				"\n" +
				`{"evaluation": "Wrong answer.", "recommendation": "Again", "answer": "Paris", "reference": ""}`,
			wantEvaluation:     "Wrong answer.",
			wantRecommendation: domain.ReviewOutcomeAgain,
			wantAnswer:         "Paris",
		},
		{
			name:               "lowercase recommendation accepted",
			reply:              `{"evaluation": "Fine.", "recommendation": "good", "answer": "Paris", "reference": ""}`,
			wantEvaluation:     "Fine.",
			wantRecommendation: domain.ReviewOutcomeGood,
			wantAnswer:         "Paris",
		},
		{
			name: "bulleted answer normalized",
			reply: `{"evaluation": "Right.", "recommendation": "Good", "answer": "• Paris\n- City of Light", "reference": ""}`,
			wantEvaluation:     "Right.",
			wantRecommendation: domain.ReviewOutcomeGood,
			wantAnswer:         "Paris, City of Light",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			eval, err := extractVerdict(tc.reply)
			require.NoError(t, err)
			assert.Equal(t, tc.wantEvaluation, eval.Evaluation)
			assert.Equal(t, tc.wantRecommendation, eval.Recommendation)
			assert.Equal(t, tc.wantAnswer, eval.Answer)
		})
	}
}

func TestExtractVerdictNoMatch(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		reply string
	}{
		{
			name:  "plain prose",
			reply: "Your answer was good, press Good.",
		},
		{
			name:  "missing field",
			reply: `{"evaluation": "Correct.", "recommendation": "Good", "answer": "Paris"}`,
		},
		{
			name:  "invalid recommendation only",
			reply: `{"evaluation": "Correct.", "recommendation": "Maybe", "answer": "Paris", "reference": ""}`,
		},
		{
			name:  "truncated object",
			reply: `{"evaluation": "Correct.", "recommendation": "Good", "answer`,
		},
		{
			name:  "empty evaluation text",
			reply: `{"evaluation": "  ", "recommendation": "Good", "answer": "Paris", "reference": ""}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := extractVerdict(tc.reply)
			assert.ErrorIs(t, err, ErrNoVerdict)
		})
	}
}

func TestNormalizeAnswerList(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"single answer", "Paris", "Paris"},
		{"comma separated", "Paris, France's capital", "Paris, France's capital"},
		{"newline separated", "Paris\nCity of Light", "Paris, City of Light"},
		{"bullets stripped", "• Paris\n* Lutetia", "Paris, Lutetia"},
		{"blank entries dropped", "Paris,,\n,Lutetia", "Paris, Lutetia"},
		{"empty input", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, normalizeAnswerList(tc.input))
		})
	}
}
