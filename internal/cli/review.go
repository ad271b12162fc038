package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/answercheck/answercheck/internal/card"
	"github.com/answercheck/answercheck/internal/domain"
	"github.com/answercheck/answercheck/internal/llm"
	"github.com/answercheck/answercheck/internal/session"
	"github.com/spf13/cobra"
)

// errRequestInFlight is returned when a second LLM request is submitted
// while one is still outstanding.
var errRequestInFlight = errors.New("a request is already in progress")

func newReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review cards interactively",
		Long: `Review runs an interactive loop: paste a card's front and back, type
your answer, and receive an evaluation with a difficulty recommendation.
After the evaluation the following commands are available:

  /ask <question>   ask a follow-up question about the card
  /joke             request a joke about the card
  /advice           request editing advice for the card
  /next             move on to the next card
  /quit             exit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			return a.runReview(cmd, bufio.NewScanner(cmd.InOrStdin()))
		},
	}
}

func (a *app) runReview(cmd *cobra.Command, in *bufio.Scanner) error {
	a.printer.Info("Paste a card front to begin, or /quit to exit.")
	out := cmd.OutOrStdout()

	for {
		front, ok := readLine(in, out, "Front: ")
		if !ok || front == "/quit" {
			return nil
		}
		if front == "" {
			continue
		}

		c, err := buildCard(in, out, front)
		if err != nil {
			a.printer.Error(err)
			continue
		}

		content, err := card.ExtractContent(c)
		if err != nil {
			a.printer.Error(err)
			continue
		}

		sess := session.New(c, content)
		a.store.Put(sess)

		if quit := a.reviewCard(cmd, in, sess); quit {
			return nil
		}

		a.store.Delete(sess.ID().String())
	}
}

// buildCard turns the pasted front (and back, for basic cards) into a Card.
// Fronts containing cloze markers become cloze cards.
func buildCard(in *bufio.Scanner, out io.Writer, front string) (*domain.Card, error) {
	if strings.Contains(front, "{{c") {
		ordText, ok := readLine(in, out, "Cloze ordinal [1]: ")
		if !ok {
			return nil, io.ErrUnexpectedEOF
		}
		ord := 1
		if ordText != "" {
			n, err := strconv.Atoi(ordText)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid cloze ordinal %q", ordText)
			}
			ord = n
		}
		return domain.NewClozeCard(front, ord-1)
	}

	back, ok := readLine(in, out, "Back: ")
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return domain.NewCard(front, back)
}

// reviewCard runs one card: timed answer, evaluation, then the follow-up
// command loop. Returns true when the user asked to quit.
func (a *app) reviewCard(cmd *cobra.Command, in *bufio.Scanner, sess *session.Session) bool {
	a.printer.Prompt(sess.Content().Text)

	timer := session.NewTimer()
	timer.Start(a.printer.Elapsed)

	answer, ok := readLine(in, cmd.OutOrStdout(), "Your answer: ")
	elapsed := timer.Stop()
	fmt.Fprintln(cmd.OutOrStdout())
	if !ok || answer == "/quit" {
		return true
	}

	userMsg, err := domain.NewMessage(domain.MessageRoleUser, answer)
	if err != nil {
		a.printer.Error(err)
		return false
	}
	sess.Append(*userMsg)

	eval, err := a.evaluateGuarded(cmd, sess, answer, elapsed)
	if err != nil {
		a.reportError(sess, err)
		return false
	}

	a.printer.Evaluation(eval)
	if msg, err := domain.NewAssistantMessage(eval.Evaluation, eval.ModelName); err == nil {
		sess.Append(*msg)
	}

	return a.followUpLoop(cmd, in, sess)
}

// evaluateGuarded runs the evaluation under the single-flight guard.
func (a *app) evaluateGuarded(
	cmd *cobra.Command,
	sess *session.Session,
	answer string,
	elapsed time.Duration,
) (*domain.Evaluation, error) {
	if !a.guard.TryAcquire() {
		return nil, errRequestInFlight
	}
	defer a.guard.Release()

	a.printer.Info("Evaluating...")
	return a.evaluator.EvaluateAnswer(cmd.Context(), sess, answer, elapsed)
}

// followUpLoop handles /ask, /joke, /advice until /next or /quit.
// Returns true when the user asked to quit.
func (a *app) followUpLoop(cmd *cobra.Command, in *bufio.Scanner, sess *session.Session) bool {
	for {
		line, ok := readLine(in, cmd.OutOrStdout(), "> ")
		if !ok {
			return true
		}

		switch {
		case line == "/quit":
			return true
		case line == "/next" || line == "":
			return false
		case strings.HasPrefix(line, "/ask "):
			a.followUp(cmd, sess, func() (string, error) {
				return a.evaluator.AskFollowUp(cmd.Context(), sess, strings.TrimPrefix(line, "/ask "))
			})
		case line == "/joke":
			a.followUp(cmd, sess, func() (string, error) {
				return a.evaluator.TellJoke(cmd.Context(), sess)
			})
		case line == "/advice":
			a.followUp(cmd, sess, func() (string, error) {
				return a.evaluator.AdviseEdit(cmd.Context(), sess)
			})
		default:
			a.printer.Info("Commands: /ask <question>, /joke, /advice, /next, /quit")
		}
	}
}

func (a *app) followUp(cmd *cobra.Command, sess *session.Session, call func() (string, error)) {
	if !a.guard.TryAcquire() {
		a.reportError(sess, errRequestInFlight)
		return
	}
	defer a.guard.Release()

	reply, err := call()
	if err != nil {
		a.reportError(sess, err)
		return
	}

	msg, err := domain.NewAssistantMessage(reply, a.provider.ModelName())
	if err != nil {
		a.reportError(sess, err)
		return
	}
	sess.Append(*msg)
	a.printer.Message(*msg)
}

// reportError records the failure in the transcript and prints it; errors
// reach the user, never just the log.
func (a *app) reportError(sess *session.Session, err error) {
	a.logger.Error("request failed", "error", err)
	a.printer.Error(err)

	if msg, msgErr := domain.NewErrorMessage(err.Error(), llm.Remediation(err)); msgErr == nil {
		sess.Append(*msg)
	}
}

// readLine prompts and reads one trimmed line. ok is false at EOF.
func readLine(in *bufio.Scanner, out io.Writer, prompt string) (line string, ok bool) {
	fmt.Fprint(out, prompt)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
