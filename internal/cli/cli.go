// Package cli implements the answercheck command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/answercheck/answercheck/internal/config"
	"github.com/answercheck/answercheck/internal/domain/srs"
	"github.com/answercheck/answercheck/internal/evaluation"
	"github.com/answercheck/answercheck/internal/llm"
	"github.com/answercheck/answercheck/internal/platform"
	"github.com/answercheck/answercheck/internal/platform/logger"
	"github.com/answercheck/answercheck/internal/session"
	"github.com/spf13/cobra"
)

// app carries the wired dependencies shared by the commands.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	provider  llm.Provider
	srs       srs.Service
	evaluator *evaluation.Evaluator
	store     *session.Store
	guard     session.Guard
	printer   *printer
}

// initApp loads configuration and builds the dependency graph.
func initApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.App.LogLevel, os.Stderr)

	provider, err := platform.NewProvider(cfg.Provider, log)
	if err != nil {
		return nil, err
	}

	srsService := srs.NewServiceWithThresholds(srs.Thresholds{
		Easy: cfg.Difficulty.EasyThreshold,
		Good: cfg.Difficulty.GoodThreshold,
		Hard: cfg.Difficulty.HardThreshold,
	})

	log.Info("answercheck initialized",
		slog.String("provider", cfg.Provider.Type),
		slog.String("log_level", cfg.App.LogLevel))

	return &app{
		cfg:       cfg,
		logger:    log,
		provider:  provider,
		srs:       srsService,
		evaluator: evaluation.NewEvaluator(provider, srsService, cfg.App.Language, log),
		store:     session.NewStore(),
		printer:   newPrinter(os.Stdout),
	}, nil
}

// NewRootCmd builds the answercheck command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "answercheck",
		Short: "Evaluate flashcard answers with an LLM",
		Long: `answercheck judges a free-text answer to a flashcard using a hosted
LLM provider (OpenAI-compatible or Gemini) and recommends one of the four
review ratings: Again, Hard, Good or Easy.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newReviewCmd())
	root.AddCommand(newCheckCmd())
	return root
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
