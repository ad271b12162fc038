package srs

import (
	"time"

	"github.com/answercheck/answercheck/internal/domain"
)

// Weights and cutoffs for the fallback scorer. The score is a weighted
// linear combination of keyword overlap and the elapsed-time band.
const (
	overlapWeight = 0.7
	timeWeight    = 0.3

	easyCutoff = 0.95
	goodCutoff = 0.85
	hardCutoff = 0.45
)

// timeScore maps a difficulty band to its contribution to the fallback score.
var timeScore = map[domain.ReviewOutcome]float64{
	domain.ReviewOutcomeEasy:  1.0,
	domain.ReviewOutcomeGood:  0.75,
	domain.ReviewOutcomeHard:  0.4,
	domain.ReviewOutcomeAgain: 0.0,
}

// Service decides the difficulty rating to recommend for a review.
type Service interface {
	// Recommend reconciles the LLM's extracted recommendation with the
	// local signals. llmOutcome is empty when extraction failed.
	Recommend(llmOutcome domain.ReviewOutcome, overlap float64, elapsed time.Duration) domain.ReviewOutcome

	// Thresholds returns the time bands the service classifies against.
	Thresholds() Thresholds
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	thresholds Thresholds
}

// Verify interface compliance at compile time
var _ Service = (*defaultService)(nil)

// NewDefaultService creates an SRS service with the default thresholds.
func NewDefaultService() Service {
	return &defaultService{thresholds: DefaultThresholds()}
}

// NewServiceWithThresholds creates an SRS service with custom thresholds.
// Invalid thresholds fall back to the defaults.
func NewServiceWithThresholds(t Thresholds) Service {
	if err := t.Validate(); err != nil {
		return NewDefaultService()
	}
	return &defaultService{thresholds: t}
}

func (s *defaultService) Thresholds() Thresholds {
	return s.thresholds
}

// Recommend implements the Service interface.
//
// Decision order:
//  1. Elapsed time strictly beyond the Hard threshold forces again, no
//     matter how the answer was judged.
//  2. A valid LLM recommendation wins.
//  3. Otherwise the fallback scorer combines keyword overlap with the time
//     band and maps the score onto a rating.
func (s *defaultService) Recommend(
	llmOutcome domain.ReviewOutcome,
	overlap float64,
	elapsed time.Duration,
) domain.ReviewOutcome {
	band := s.thresholds.ClassifyElapsed(elapsed)
	if band == domain.ReviewOutcomeAgain {
		return domain.ReviewOutcomeAgain
	}

	if llmOutcome.Validate() == nil {
		return llmOutcome
	}

	score := overlapWeight*clamp01(overlap) + timeWeight*timeScore[band]
	switch {
	case score >= easyCutoff:
		return domain.ReviewOutcomeEasy
	case score >= goodCutoff:
		return domain.ReviewOutcomeGood
	case score >= hardCutoff:
		return domain.ReviewOutcomeHard
	default:
		return domain.ReviewOutcomeAgain
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
