package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card has no question side.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardOrdNegative is returned when a cloze ordinal is negative.
	ErrCardOrdNegative = errors.New("card ordinal cannot be negative")
)

// Card represents a single flashcard under review. Front and Back carry the
// raw HTML as rendered by the host; ClozeOrd is the zero-based ordinal of the
// active cloze deletion for cloze cards, and -1 for basic cards.
type Card struct {
	ID        uuid.UUID `json:"id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	ClozeOrd  int       `json:"cloze_ord"`
	CreatedAt time.Time `json:"created_at"`
}

// CardContent is the extracted, LLM-facing view of a card: plain question
// text and the list of acceptable answers pulled out of the card's markup.
type CardContent struct {
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

// NewCard creates a basic (non-cloze) Card from front and back HTML.
// Returns an error if validation fails.
func NewCard(front, back string) (*Card, error) {
	card := &Card{
		ID:        uuid.New(),
		Front:     front,
		Back:      back,
		ClozeOrd:  -1,
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// NewClozeCard creates a cloze Card. The content carries the full note text
// with {{cN::...}} markers; ord selects which deletion this card tests.
func NewClozeCard(content string, ord int) (*Card, error) {
	if ord < 0 {
		return nil, ErrCardOrdNegative
	}

	card := &Card{
		ID:        uuid.New(),
		Front:     content,
		ClozeOrd:  ord,
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// IsCloze reports whether the card tests a cloze deletion.
func (c *Card) IsCloze() bool {
	return c.ClozeOrd >= 0
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.Front == "" {
		return ErrCardFrontEmpty
	}

	if c.ClozeOrd < -1 {
		return ErrCardOrdNegative
	}

	return nil
}
