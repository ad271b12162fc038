package domain

import (
	"errors"
	"testing"
)

func TestParseReviewOutcome(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected ReviewOutcome
		wantErr  bool
	}{
		{"Again", ReviewOutcomeAgain, false},
		{"Hard", ReviewOutcomeHard, false},
		{"Good", ReviewOutcomeGood, false},
		{"Easy", ReviewOutcomeEasy, false},
		{"easy", ReviewOutcomeEasy, false},
		{"  Good  ", ReviewOutcomeGood, false},
		{"GOOD", ReviewOutcomeGood, false},
		{"Medium", "", true},
		{"", "", true},
		{"None", "", true},
	}

	for _, tc := range testCases {
		outcome, err := ParseReviewOutcome(tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidReviewOutcome) {
				t.Errorf("ParseReviewOutcome(%q): expected ErrInvalidReviewOutcome, got %v", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseReviewOutcome(%q): unexpected error %v", tc.input, err)
		}
		if outcome != tc.expected {
			t.Errorf("ParseReviewOutcome(%q): expected %q, got %q", tc.input, tc.expected, outcome)
		}
	}
}

func TestReviewOutcomeLabel(t *testing.T) {
	t.Parallel()

	if got := ReviewOutcomeAgain.Label(); got != "Again" {
		t.Errorf("Expected label Again, got %q", got)
	}
	if got := ReviewOutcomeEasy.Label(); got != "Easy" {
		t.Errorf("Expected label Easy, got %q", got)
	}
}

func TestNewEvaluation(t *testing.T) {
	t.Parallel()

	eval, err := NewEvaluation("Correct, same meaning.", ReviewOutcomeGood, "going to", "informal variant accepted")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if eval.Recommendation != ReviewOutcomeGood {
		t.Errorf("Expected recommendation good, got %q", eval.Recommendation)
	}
	if eval.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Missing assessment text
	_, err = NewEvaluation("", ReviewOutcomeGood, "", "")
	if err != ErrEvaluationEmpty {
		t.Errorf("Expected error %v, got %v", ErrEvaluationEmpty, err)
	}

	// Invalid recommendation
	_, err = NewEvaluation("ok", ReviewOutcome("medium"), "", "")
	if err != ErrInvalidReviewOutcome {
		t.Errorf("Expected error %v, got %v", ErrInvalidReviewOutcome, err)
	}
}

func TestNewMessage(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MessageRoleUser, "what does this mean?")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if msg.Role != MessageRoleUser {
		t.Errorf("Expected role user, got %q", msg.Role)
	}

	_, err = NewMessage(MessageRole("bot"), "hello")
	if err != ErrInvalidMessageRole {
		t.Errorf("Expected error %v, got %v", ErrInvalidMessageRole, err)
	}

	_, err = NewMessage(MessageRoleUser, "")
	if err != ErrMessageContentEmpty {
		t.Errorf("Expected error %v, got %v", ErrMessageContentEmpty, err)
	}

	errMsg, err := NewErrorMessage("Failed to connect to the AI server", "Please verify your internet connection.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if errMsg.HelpText == "" {
		t.Error("Expected help text on error message")
	}
}
