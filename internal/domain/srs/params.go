// Package srs maps a review's observable signals (elapsed answer time and
// answer/reference keyword overlap) onto one of the four difficulty ratings,
// and reconciles that local estimate with the recommendation extracted from
// the LLM's reply.
package srs

import (
	"errors"
	"time"

	"github.com/answercheck/answercheck/internal/domain"
)

// Threshold validation errors
var (
	ErrThresholdOrder    = errors.New("thresholds must satisfy easy < good <= hard")
	ErrThresholdNegative = errors.New("thresholds must be positive")
)

// Thresholds partitions response time (in seconds) into the four difficulty
// bands:
//
//	elapsed <  Easy            → easy
//	Easy <= elapsed < Good     → good
//	Good <= elapsed <= Hard    → hard
//	elapsed >  Hard            → again (auto-Again, regardless of correctness)
type Thresholds struct {
	Easy int
	Good int
	Hard int
}

// DefaultThresholds returns the standard time bands: easy under 5 seconds,
// good under 40, hard up to 60, again beyond that.
func DefaultThresholds() Thresholds {
	return Thresholds{Easy: 5, Good: 40, Hard: 60}
}

// Validate checks the thresholds are positive and ordered.
func (t Thresholds) Validate() error {
	if t.Easy <= 0 || t.Good <= 0 || t.Hard <= 0 {
		return ErrThresholdNegative
	}
	if t.Easy >= t.Good || t.Good > t.Hard {
		return ErrThresholdOrder
	}
	return nil
}

// ClassifyElapsed maps an elapsed response time onto a difficulty band.
// Boundary values fall into the slower band: exactly Easy seconds is good,
// exactly Good seconds is hard, exactly Hard seconds is still hard, and only
// strictly beyond Hard does the outcome become again.
func (t Thresholds) ClassifyElapsed(elapsed time.Duration) domain.ReviewOutcome {
	secs := int(elapsed / time.Second)
	switch {
	case secs < t.Easy:
		return domain.ReviewOutcomeEasy
	case secs < t.Good:
		return domain.ReviewOutcomeGood
	case secs <= t.Hard:
		return domain.ReviewOutcomeHard
	default:
		return domain.ReviewOutcomeAgain
	}
}
