package evaluation

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/answercheck/answercheck/internal/domain"
)

// ErrNoVerdict is returned when no valid verdict object can be extracted
// from the model's reply.
var ErrNoVerdict = errors.New("no valid verdict found in response")

var (
	codeFencePattern = regexp.MustCompile("```(?:json)?")
	bulletPattern    = regexp.MustCompile(`^[•\-\*]\s*`)
)

// requiredVerdictFields must all be present for a JSON object to count as
// a verdict.
var requiredVerdictFields = []string{"evaluation", "recommendation", "answer", "reference"}

// rawVerdict mirrors the JSON shape the prompt instructs the model to emit.
type rawVerdict struct {
	Evaluation     string `json:"evaluation"`
	Recommendation string `json:"recommendation"`
	Answer         string `json:"answer"`
	Reference      string `json:"reference"`
}

// extractVerdict finds the last valid verdict object in a noisy model reply.
// Replies often wrap the JSON in code fences, prefix it with prose, or echo
// the example object from the prompt; objects with missing fields or an
// unrecognized recommendation are skipped.
func extractVerdict(reply string) (*domain.Evaluation, error) {
	cleaned := codeFencePattern.ReplaceAllString(reply, "")

	var found *domain.Evaluation
	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] != '{' {
			continue
		}

		verdict, end, ok := decodeVerdictAt(cleaned, i)
		if !ok {
			continue
		}
		found = verdict
		i = end - 1
	}

	if found == nil {
		return nil, ErrNoVerdict
	}
	return found, nil
}

// decodeVerdictAt attempts to decode a verdict object starting at offset.
// It returns the decoded verdict, the offset just past the object, and
// whether a valid verdict was found.
func decodeVerdictAt(text string, offset int) (*domain.Evaluation, int, bool) {
	dec := json.NewDecoder(strings.NewReader(text[offset:]))

	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return nil, 0, false
	}
	end := offset + int(dec.InputOffset())

	for _, field := range requiredVerdictFields {
		if _, ok := fields[field]; !ok {
			return nil, end, false
		}
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(text[offset:end]), &raw); err != nil {
		return nil, end, false
	}

	recommendation, err := domain.ParseReviewOutcome(raw.Recommendation)
	if err != nil {
		return nil, end, false
	}
	if strings.TrimSpace(raw.Evaluation) == "" {
		return nil, end, false
	}

	eval, err := domain.NewEvaluation(
		raw.Evaluation,
		recommendation,
		normalizeAnswerList(raw.Answer),
		raw.Reference,
	)
	if err != nil {
		return nil, end, false
	}
	return eval, end, true
}

// normalizeAnswerList flattens a possibly bulleted, newline-separated answer
// field into a single comma-separated list.
func normalizeAnswerList(answer string) string {
	var parts []string
	for _, part := range strings.FieldsFunc(answer, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		part = bulletPattern.ReplaceAllString(strings.TrimSpace(part), "")
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
