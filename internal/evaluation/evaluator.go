// Package evaluation turns a user's typed answer into a difficulty
// recommendation by prompting an LLM provider and parsing its verdict.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/answercheck/answercheck/internal/domain"
	"github.com/answercheck/answercheck/internal/domain/srs"
	"github.com/answercheck/answercheck/internal/llm"
	"github.com/answercheck/answercheck/internal/session"
)

// ErrEmptyAnswer is returned when the user submits a blank answer.
var ErrEmptyAnswer = errors.New("answer cannot be empty")

// Evaluator runs the four review-time requests against an LLM provider:
// answer evaluation, follow-up questions, jokes, and card editing advice.
type Evaluator struct {
	provider llm.Provider
	srs      srs.Service
	language string
	logger   *slog.Logger
}

// NewEvaluator creates an Evaluator.
// Panics if provider or srsService is nil, as these are required dependencies.
func NewEvaluator(provider llm.Provider, srsService srs.Service, language string, logger *slog.Logger) *Evaluator {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if language == "" {
		language = "English"
	}

	return &Evaluator{
		provider: provider,
		srs:      srsService,
		language: language,
		logger:   logger.With(slog.String("component", "evaluator")),
	}
}

// EvaluateAnswer judges the user's answer to the session's card and returns
// an evaluation with a difficulty recommendation. When the model's reply
// carries no parsable verdict the recommendation falls back to the local
// overlap-and-time heuristic; the reply text is still surfaced.
func (e *Evaluator) EvaluateAnswer(
	ctx context.Context,
	sess *session.Session,
	userAnswer string,
	elapsed time.Duration,
) (*domain.Evaluation, error) {
	if strings.TrimSpace(userAnswer) == "" {
		return nil, ErrEmptyAnswer
	}

	thresholds := e.srs.Thresholds()
	content := sess.Content()
	card := sess.Card()

	data := answerPromptData{
		CardContent:    content.Text,
		Answers:        strings.Join(content.Answers, ", "),
		UserAnswer:     userAnswer,
		ElapsedSeconds: int(elapsed / time.Second),
		EasyThreshold:  thresholds.Easy,
		GoodThreshold:  thresholds.Good,
		HardThreshold:  thresholds.Hard,
		IsCloze:        card.IsCloze(),
		ClozeOrdinal:   card.ClozeOrd + 1,
	}

	prompt, err := renderPrompt("answer.tmpl", data)
	if err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "evaluating answer",
		slog.String("card_id", card.ID.String()),
		slog.Int("elapsed_seconds", data.ElapsedSeconds))

	reply, err := e.provider.Generate(ctx, llm.Request{
		System: systemPrompt("a helpful assistant", e.language),
		User:   prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("answer evaluation failed: %w", err)
	}

	overlap := srs.KeywordOverlap(userAnswer, content.Answers)

	eval, parseErr := extractVerdict(reply)
	if parseErr != nil {
		e.logger.WarnContext(ctx, "falling back to heuristic recommendation",
			slog.String("card_id", card.ID.String()),
			slog.String("error", parseErr.Error()))

		recommendation := e.srs.Recommend("", overlap, elapsed)
		eval = &domain.Evaluation{
			Evaluation:     strings.TrimSpace(reply),
			Recommendation: recommendation,
			Answer:         strings.Join(content.Answers, ", "),
			CreatedAt:      time.Now().UTC(),
		}
	} else {
		// The local time rule still applies: answers past the Hard
		// threshold are rated again regardless of the model's verdict.
		eval.Recommendation = e.srs.Recommend(eval.Recommendation, overlap, elapsed)
	}

	eval.ModelName = e.provider.ModelName()
	eval.Elapsed = elapsed
	sess.RecordResult(userAnswer, elapsed, eval)

	return eval, nil
}

// AskFollowUp answers a free-form question about the session's card, using
// the previous evaluation as context.
func (e *Evaluator) AskFollowUp(ctx context.Context, sess *session.Session, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyAnswer
	}

	data := followUpData(sess)
	data.Question = question

	return e.followUp(ctx, "question.tmpl", "a helpful assistant", data)
}

// TellJoke asks the model for an encouraging joke about the card, informed
// by how the user performed.
func (e *Evaluator) TellJoke(ctx context.Context, sess *session.Session) (string, error) {
	return e.followUp(ctx, "joke.tmpl", "a comedian", followUpData(sess))
}

// AdviseEdit asks the model for concrete suggestions to improve the card.
func (e *Evaluator) AdviseEdit(ctx context.Context, sess *session.Session) (string, error) {
	return e.followUp(ctx, "edit_advice.tmpl", "an Anki card editing expert", followUpData(sess))
}

func (e *Evaluator) followUp(ctx context.Context, tmpl, role string, data followUpPromptData) (string, error) {
	prompt, err := renderPrompt(tmpl, data)
	if err != nil {
		return "", err
	}

	reply, err := e.provider.Generate(ctx, llm.Request{
		System: systemPrompt(role, e.language),
		User:   prompt,
	})
	if err != nil {
		return "", fmt.Errorf("follow-up request failed: %w", err)
	}

	return strings.TrimSpace(reply), nil
}
