package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/answercheck/answercheck/internal/domain"
	"github.com/answercheck/answercheck/internal/llm"
	"github.com/fatih/color"
)

// printer renders the chat transcript with role-colored tags.
type printer struct {
	out io.Writer

	system    *color.Color
	user      *color.Color
	assistant *color.Color
	errColor  *color.Color
	info      *color.Color
	rating    map[domain.ReviewOutcome]*color.Color
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:       out,
		system:    color.New(color.FgCyan),
		user:      color.New(color.FgWhite, color.Bold),
		assistant: color.New(color.FgGreen),
		errColor:  color.New(color.FgRed, color.Bold),
		info:      color.New(color.FgYellow),
		rating: map[domain.ReviewOutcome]*color.Color{
			domain.ReviewOutcomeAgain: color.New(color.FgRed, color.Bold),
			domain.ReviewOutcomeHard:  color.New(color.FgYellow, color.Bold),
			domain.ReviewOutcomeGood:  color.New(color.FgGreen, color.Bold),
			domain.ReviewOutcomeEasy:  color.New(color.FgCyan, color.Bold),
		},
	}
}

// Message prints one transcript message with its role tag.
func (p *printer) Message(msg domain.Message) {
	tag := p.tagColor(msg.Role).Sprintf("[%s]", msg.Role)
	if msg.ModelName != "" {
		tag += fmt.Sprintf(" (%s)", msg.ModelName)
	}
	fmt.Fprintf(p.out, "%s %s\n", tag, msg.Content)
	if msg.HelpText != "" {
		p.info.Fprintf(p.out, "        %s\n", msg.HelpText)
	}
}

// Evaluation prints a full verdict: assessment, recommendation, correct
// answer and reference material.
func (p *printer) Evaluation(eval *domain.Evaluation) {
	fmt.Fprintln(p.out)
	p.assistant.Fprintf(p.out, "Evaluation: ")
	fmt.Fprintln(p.out, eval.Evaluation)

	p.assistant.Fprintf(p.out, "Recommendation: ")
	ratingColor, ok := p.rating[eval.Recommendation]
	if !ok {
		ratingColor = p.assistant
	}
	ratingColor.Fprintln(p.out, eval.Recommendation.Label())

	if eval.Answer != "" {
		p.assistant.Fprintf(p.out, "Answer: ")
		fmt.Fprintln(p.out, eval.Answer)
	}
	if eval.Reference != "" {
		p.assistant.Fprintf(p.out, "Reference: ")
		fmt.Fprintln(p.out, eval.Reference)
	}
	if eval.Elapsed > 0 {
		p.info.Fprintf(p.out, "Answered in %.1fs\n", eval.Elapsed.Seconds())
	}
	fmt.Fprintln(p.out)
}

// Error prints a failure with its remediation hint when one exists.
func (p *printer) Error(err error) {
	p.errColor.Fprintf(p.out, "[error] ")
	fmt.Fprintln(p.out, redactedError(err))
	if hint := llm.Remediation(err); hint != "" {
		p.info.Fprintf(p.out, "        %s\n", hint)
	}
}

// Info prints an informational line.
func (p *printer) Info(format string, args ...any) {
	p.info.Fprintf(p.out, format+"\n", args...)
}

// Prompt prints the question side of a card.
func (p *printer) Prompt(text string) {
	fmt.Fprintln(p.out)
	p.system.Fprintln(p.out, "Question:")
	fmt.Fprintln(p.out, text)
	fmt.Fprintln(p.out)
}

// Elapsed rewrites the live elapsed-time line while the timer runs.
func (p *printer) Elapsed(d time.Duration) {
	p.info.Fprintf(p.out, "\r%.1fs ", d.Seconds())
}

func (p *printer) tagColor(role domain.MessageRole) *color.Color {
	switch role {
	case domain.MessageRoleSystem:
		return p.system
	case domain.MessageRoleUser:
		return p.user
	case domain.MessageRoleAssistant:
		return p.assistant
	case domain.MessageRoleError:
		return p.errColor
	default:
		return p.info
	}
}

func redactedError(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
