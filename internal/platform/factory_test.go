package platform

import (
	"testing"

	"github.com/answercheck/answercheck/internal/config"
	"github.com/answercheck/answercheck/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProviderConfig() config.ProviderConfig {
	return config.ProviderConfig{
		Type:           "openai",
		OpenAIAPIKey:   "sk-test",
		BaseURL:        "https://api.openai.com",
		Model:          "gpt-4o-mini",
		GeminiAPIKey:   "AIzaTest",
		GeminiModel:    "gemini-2.0-flash-exp",
		Temperature:    0.7,
		TimeoutSeconds: 10,
		MaxRetries:     3,
	}
}

func TestNewProviderOpenAI(t *testing.T) {
	t.Parallel()

	cfg := baseProviderConfig()
	provider, err := NewProvider(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", provider.ModelName())
}

func TestNewProviderGemini(t *testing.T) {
	t.Parallel()

	cfg := baseProviderConfig()
	cfg.Type = "gemini"
	provider, err := NewProvider(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash-exp", provider.ModelName())
}

func TestNewProviderUnknownType(t *testing.T) {
	t.Parallel()

	cfg := baseProviderConfig()
	cfg.Type = "anthropic"
	_, err := NewProvider(cfg, nil)
	assert.ErrorIs(t, err, llm.ErrUnknownProvider)
}

func TestNewProviderMissingKey(t *testing.T) {
	t.Parallel()

	cfg := baseProviderConfig()
	cfg.OpenAIAPIKey = ""
	_, err := NewProvider(cfg, nil)
	assert.ErrorIs(t, err, llm.ErrAPIKeyMissing)

	cfg = baseProviderConfig()
	cfg.Type = "gemini"
	cfg.GeminiAPIKey = ""
	_, err = NewProvider(cfg, nil)
	assert.ErrorIs(t, err, llm.ErrAPIKeyMissing)
}
