// Package openai implements the llm.Provider interface against any
// OpenAI-compatible chat-completions endpoint. The base URL is configurable
// so self-hosted proxies and compatible vendors work unchanged.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/answercheck/answercheck/internal/llm"
	"github.com/answercheck/answercheck/internal/redact"
)

// completionsPath is appended to the configured base URL.
const completionsPath = "/v1/chat/completions"

// maxBodySnippet bounds how much of an error body reaches the logs.
const maxBodySnippet = 500

// Provider is an OpenAI-compatible chat-completions client.
type Provider struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
	logger      *slog.Logger
}

// Verify interface compliance at compile time
var _ llm.Provider = (*Provider)(nil)

// Config holds the settings for the OpenAI-compatible provider.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// New creates an OpenAI-compatible provider.
// Returns llm.ErrAPIKeyMissing if no key is configured.
func New(cfg Config, logger *slog.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key is not set", llm.ErrAPIKeyMissing)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	logger = logger.With(slog.String("component", "openai_provider"))
	logger.Info("OpenAI provider initialized",
		slog.String("model", cfg.Model),
		slog.String("base_url", cfg.BaseURL),
		slog.String("api_key", redact.Key(cfg.APIKey)))

	return &Provider{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}, nil
}

// ModelName implements llm.Provider.
func (p *Provider) ModelName() string {
	return p.model
}

// chatMessage is one entry of the messages array on the wire.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the subset of the chat-completions response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate implements llm.Provider.
func (p *Provider) Generate(ctx context.Context, req llm.Request) (string, error) {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.temperature
	}
	// The gpt-5 family rejects temperature adjustment; it is fixed at 1.
	if strings.HasPrefix(strings.ToLower(p.model), "gpt-5") {
		temperature = 1
	}

	body := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := p.baseURL + completionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	p.logger.DebugContext(ctx, "calling chat completions",
		slog.String("endpoint", endpoint),
		slog.String("model", p.model),
		slog.Float64("temperature", temperature))

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", p.classifyStatus(ctx, resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", llm.ErrConnection, redact.String(parsed.Error.Message))
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", llm.ErrMalformedResponse)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", llm.ErrEmptyResponse
	}

	p.logger.DebugContext(ctx, "chat completion received",
		slog.Int("reply_length", len(content)))

	return content, nil
}

// classifyStatus maps a non-200 response onto the error taxonomy, logging a
// bounded snippet of the body for diagnosis.
func (p *Provider) classifyStatus(ctx context.Context, resp *http.Response) error {
	snippet := readSnippet(resp.Body)
	p.logger.ErrorContext(ctx, "chat completions returned non-200 status",
		slog.Int("status", resp.StatusCode),
		slog.String("body", snippet))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return llm.ErrInvalidAPIKey
	case resp.StatusCode == http.StatusTooManyRequests:
		return llm.ErrRateLimited
	default:
		return fmt.Errorf("%w: HTTP %d: %s", llm.ErrConnection, resp.StatusCode, snippet)
	}
}

// classifyTransportError maps a client-side failure onto the error taxonomy.
func classifyTransportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %s", llm.ErrTimeout, redact.String(err.Error()))
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", llm.ErrTimeout, redact.String(err.Error()))
	}
	return fmt.Errorf("%w: %s", llm.ErrConnection, redact.String(err.Error()))
}

// readSnippet reads at most maxBodySnippet bytes of a response body, with
// credentials scrubbed.
func readSnippet(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxBodySnippet+1))
	if err != nil {
		return ""
	}
	s := string(data)
	if len(s) > maxBodySnippet {
		s = s[:maxBodySnippet] + "..."
	}
	return redact.String(s)
}
