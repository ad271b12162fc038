package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// ANSWERCHECK_PROVIDER_OPENAI_API_KEY.
const envPrefix = "ANSWERCHECK"

// Load reads configuration from an optional answercheck.yaml (in the working
// directory or $HOME), environment variables, and built-in defaults.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A local .env is a convenience for development; absence is not an error.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("answercheck")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults plus env carry the day.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks a Config against its struct tags and the cross-field rules
// the tags cannot express.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// The key for the selected provider must be present; the other
	// provider's key may stay empty.
	switch cfg.Provider.Type {
	case "openai":
		if cfg.Provider.OpenAIAPIKey == "" {
			return errors.New("config validation failed: provider.openai_api_key is required when provider.type is openai")
		}
	case "gemini":
		if cfg.Provider.GeminiAPIKey == "" {
			return errors.New("config validation failed: provider.gemini_api_key is required when provider.type is gemini")
		}
	}

	return nil
}

// setDefaults mirrors the add-on's stock settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.language", "English")
	v.SetDefault("app.system_prompt", "You are a helpful assistant.")

	v.SetDefault("provider.type", "openai")
	// Empty-string defaults register the key names so AutomaticEnv can
	// resolve them during Unmarshal.
	v.SetDefault("provider.openai_api_key", "")
	v.SetDefault("provider.gemini_api_key", "")
	v.SetDefault("provider.base_url", "https://api.openai.com")
	v.SetDefault("provider.model", "gpt-4o-mini")
	v.SetDefault("provider.gemini_model", "gemini-2.0-flash-exp")
	v.SetDefault("provider.temperature", 0.7)
	v.SetDefault("provider.timeout_seconds", 10)
	v.SetDefault("provider.max_retries", 3)

	v.SetDefault("difficulty.easy_threshold", 5)
	v.SetDefault("difficulty.good_threshold", 40)
	v.SetDefault("difficulty.hard_threshold", 60)
}
