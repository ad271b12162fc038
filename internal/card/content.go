package card

import (
	"github.com/answercheck/answercheck/internal/domain"
)

// ExtractContent builds the LLM-facing view of a card. Basic cards use the
// front text as the question and the back side's marked answer text; cloze
// cards use the blanked note text and the active deletion's answers.
func ExtractContent(c *domain.Card) (domain.CardContent, error) {
	if c.IsCloze() {
		prompt, answers, err := ExtractCloze(c.Front, c.ClozeOrd+1)
		if err != nil {
			return domain.CardContent{}, err
		}
		return domain.CardContent{Text: prompt, Answers: answers}, nil
	}

	text, err := ExtractText(c.Front)
	if err != nil {
		return domain.CardContent{}, err
	}
	answers, err := ExtractAnswers(c.Back)
	if err != nil {
		return domain.CardContent{}, err
	}
	return domain.CardContent{Text: text, Answers: answers}, nil
}
