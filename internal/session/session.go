// Package session holds the per-card review state: the extracted card
// content, a bounded chat transcript, and the answer timer.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/answercheck/answercheck/internal/domain"
	"github.com/google/uuid"
)

// maxTranscript caps the number of retained chat messages; the oldest
// message is evicted when the cap is reached.
const maxTranscript = 10

// ErrSessionNotFound is returned when a session has expired or never existed.
var ErrSessionNotFound = errors.New("session not found")

// Session is the review state for one card. A new session is created when a
// card is shown and discarded when the review moves on.
type Session struct {
	mu sync.Mutex

	id      uuid.UUID
	card    *domain.Card
	content domain.CardContent

	transcript []domain.Message

	lastAnswer     string
	lastElapsed    time.Duration
	lastEvaluation *domain.Evaluation
}

// New creates a session for a card with its extracted content.
func New(card *domain.Card, content domain.CardContent) *Session {
	return &Session{
		id:      uuid.New(),
		card:    card,
		content: content,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Card returns the card under review.
func (s *Session) Card() *domain.Card {
	return s.card
}

// Content returns the extracted card content.
func (s *Session) Content() domain.CardContent {
	return s.content
}

// Append adds a message to the transcript, evicting the oldest message
// when the transcript is full.
func (s *Session) Append(msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = append(s.transcript, msg)
	if len(s.transcript) > maxTranscript {
		s.transcript = s.transcript[len(s.transcript)-maxTranscript:]
	}
}

// Transcript returns a copy of the retained messages, oldest first.
func (s *Session) Transcript() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// RecordResult stores the latest answer, elapsed time and evaluation for
// use as context in follow-up requests.
func (s *Session) RecordResult(answer string, elapsed time.Duration, eval *domain.Evaluation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAnswer = answer
	s.lastElapsed = elapsed
	s.lastEvaluation = eval
}

// LastAnswer returns the most recent user answer, or "" when none.
func (s *Session) LastAnswer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAnswer
}

// LastElapsed returns the most recent answer time, zero when none.
func (s *Session) LastElapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastElapsed
}

// LastEvaluation returns the most recent evaluation, nil when none.
func (s *Session) LastEvaluation() *domain.Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEvaluation
}
