package evaluation

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/answercheck/answercheck/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var promptTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// answerPromptData feeds the answer-evaluation template.
type answerPromptData struct {
	CardContent    string
	Answers        string
	UserAnswer     string
	ElapsedSeconds int
	EasyThreshold  int
	GoodThreshold  int
	HardThreshold  int
	IsCloze        bool
	ClozeOrdinal   int
}

// followUpPromptData feeds the question/joke/edit-advice templates with the
// session's prior exchange as context.
type followUpPromptData struct {
	CardContent            string
	Answers                string
	PreviousAnswer         string
	PreviousElapsed        string
	PreviousEvaluation     string
	PreviousRecommendation string
	Question               string
}

const notAvailable = "Not available"

func systemPrompt(role, language string) string {
	return fmt.Sprintf("You are %s. Always answer in %s.", role, language)
}

func renderPrompt(name string, data any) (string, error) {
	var b strings.Builder
	if err := promptTemplates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", name, err)
	}
	return b.String(), nil
}

// followUpData snapshots the session state for follow-up prompts.
func followUpData(sess *session.Session) followUpPromptData {
	data := followUpPromptData{
		CardContent:            sess.Content().Text,
		Answers:                strings.Join(sess.Content().Answers, ", "),
		PreviousAnswer:         notAvailable,
		PreviousElapsed:        notAvailable,
		PreviousEvaluation:     notAvailable,
		PreviousRecommendation: notAvailable,
	}

	if answer := sess.LastAnswer(); answer != "" {
		data.PreviousAnswer = answer
	}
	if elapsed := sess.LastElapsed(); elapsed > 0 {
		data.PreviousElapsed = fmt.Sprintf("%d", int(elapsed/time.Second))
	}
	if eval := sess.LastEvaluation(); eval != nil {
		data.PreviousEvaluation = eval.Evaluation
		data.PreviousRecommendation = eval.Recommendation.Label()
	}

	return data
}
