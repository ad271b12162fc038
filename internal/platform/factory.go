// Package platform wires concrete provider implementations to the llm
// abstractions based on configuration.
package platform

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/answercheck/answercheck/internal/config"
	"github.com/answercheck/answercheck/internal/llm"
	"github.com/answercheck/answercheck/internal/platform/gemini"
	"github.com/answercheck/answercheck/internal/platform/openai"
)

// NewProvider builds the configured LLM provider wrapped with retry.
// Returns llm.ErrUnknownProvider for an unrecognized provider type.
func NewProvider(cfg config.ProviderConfig, logger *slog.Logger) (llm.Provider, error) {
	var (
		provider llm.Provider
		err      error
	)

	switch cfg.Type {
	case "openai":
		provider, err = openai.New(openai.Config{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		}, logger)
	case "gemini":
		provider, err = gemini.New(gemini.Config{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		}, logger)
	default:
		return nil, fmt.Errorf("%w: %q", llm.ErrUnknownProvider, cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	retryCfg := llm.DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.MaxRetries

	return llm.NewRetryProvider(provider, retryCfg, logger), nil
}
