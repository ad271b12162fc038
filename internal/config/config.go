// Package config defines the application configuration and its loader.
// Settings come from a config file, environment variables, and defaults, in
// that order of increasing precedence for the environment.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	App        AppConfig        `mapstructure:"app"        validate:"required"`
	Provider   ProviderConfig   `mapstructure:"provider"   validate:"required"`
	Difficulty DifficultyConfig `mapstructure:"difficulty" validate:"required"`
}

// AppConfig contains application-wide settings.
type AppConfig struct {
	// LogLevel controls slog verbosity.
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Language is the language the LLM is asked to answer in.
	Language string `mapstructure:"language" validate:"required"`

	// SystemPrompt is the baseline system message for follow-up chat.
	SystemPrompt string `mapstructure:"system_prompt" validate:"required"`
}

// ProviderConfig contains all LLM provider related settings.
type ProviderConfig struct {
	// Type selects the provider implementation: "openai" or "gemini".
	Type string `mapstructure:"type" validate:"required,oneof=openai gemini"`

	// OpenAIAPIKey authenticates against the OpenAI-compatible endpoint.
	OpenAIAPIKey string `mapstructure:"openai_api_key"`

	// BaseURL is the OpenAI-compatible endpoint root, without the
	// /v1/chat/completions suffix. Configurable for compatible proxies.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Model is the OpenAI-compatible model name.
	Model string `mapstructure:"model" validate:"required"`

	// GeminiAPIKey authenticates against the Gemini API. Several keys may
	// be given comma-separated; calls rotate through them.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// GeminiModel is the Gemini model name.
	GeminiModel string `mapstructure:"gemini_model" validate:"required"`

	// Temperature is the sampling temperature passed to the provider.
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`

	// TimeoutSeconds bounds a single request attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`

	// MaxRetries is the total number of attempts for transient failures.
	MaxRetries int `mapstructure:"max_retries" validate:"required,gt=0"`
}

// DifficultyConfig holds the second-thresholds partitioning response time
// into the Easy/Good/Hard/Again bands.
type DifficultyConfig struct {
	EasyThreshold int `mapstructure:"easy_threshold" validate:"required,gt=0"`
	GoodThreshold int `mapstructure:"good_threshold" validate:"required,gt=0,gtfield=EasyThreshold"`
	HardThreshold int `mapstructure:"hard_threshold" validate:"required,gt=0,gtefield=GoodThreshold"`
}
