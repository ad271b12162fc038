package cli

import (
	"time"

	"github.com/answercheck/answercheck/internal/card"
	"github.com/answercheck/answercheck/internal/domain"
	"github.com/answercheck/answercheck/internal/session"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var (
		front    string
		back     string
		answer   string
		elapsed  int
		clozeOrd int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a single answer non-interactively",
		Long: `Check evaluates one answer and prints the verdict. For cloze cards
pass the note text as --front and the 1-based deletion number as --cloze;
--back is not used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			return a.runCheck(cmd, front, back, answer, clozeOrd,
				time.Duration(elapsed)*time.Second)
		},
	}

	cmd.Flags().StringVar(&front, "front", "", "card front HTML (or cloze note text)")
	cmd.Flags().StringVar(&back, "back", "", "card back HTML")
	cmd.Flags().StringVar(&answer, "answer", "", "the user's typed answer")
	cmd.Flags().IntVar(&elapsed, "elapsed", 0, "seconds taken to answer")
	cmd.Flags().IntVar(&clozeOrd, "cloze", 0, "1-based cloze deletion number (0 for basic cards)")

	_ = cmd.MarkFlagRequired("front")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

func (a *app) runCheck(
	cmd *cobra.Command,
	front, back, answer string,
	clozeOrd int,
	elapsed time.Duration,
) error {
	var (
		c   *domain.Card
		err error
	)
	if clozeOrd > 0 {
		c, err = domain.NewClozeCard(front, clozeOrd-1)
	} else {
		c, err = domain.NewCard(front, back)
	}
	if err != nil {
		a.printer.Error(err)
		return err
	}

	content, err := card.ExtractContent(c)
	if err != nil {
		a.printer.Error(err)
		return err
	}

	sess := session.New(c, content)
	a.store.Put(sess)
	defer a.store.Delete(sess.ID().String())

	eval, err := a.evaluator.EvaluateAnswer(cmd.Context(), sess, answer, elapsed)
	if err != nil {
		a.printer.Error(err)
		return err
	}

	a.printer.Evaluation(eval)
	return nil
}
