// Package gemini implements the llm.Provider interface using Google's
// Gemini API through the google.golang.org/genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/answercheck/answercheck/internal/llm"
	"github.com/answercheck/answercheck/internal/redact"
	"google.golang.org/genai"
)

// Generation settings carried over from the add-on's request payload.
const (
	defaultTopK            = 40
	defaultTopP            = 0.95
	defaultMaxOutputTokens = 8192
)

// Provider is a Gemini chat client. Several API keys may be configured
// comma-separated; each call draws the next key from a shuffled rotation.
type Provider struct {
	model       string
	temperature float64
	timeout     time.Duration
	keys        *keyring
	logger      *slog.Logger

	mu      sync.Mutex
	clients map[string]*genai.Client
}

// Verify interface compliance at compile time
var _ llm.Provider = (*Provider)(nil)

// Config holds the settings for the Gemini provider.
type Config struct {
	// APIKey is one key or a comma-separated list of keys to rotate through.
	APIKey      string
	Model       string
	Temperature float64

	// Timeout bounds a single request attempt. Zero means no deadline.
	Timeout time.Duration
}

// New creates a Gemini provider.
// Returns llm.ErrAPIKeyMissing if no usable key is configured.
func New(cfg Config, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	keys := newKeyring(cfg.APIKey, rand.New(rand.NewSource(time.Now().UnixNano())))
	if keys == nil {
		return nil, fmt.Errorf("%w: gemini API key is not set", llm.ErrAPIKeyMissing)
	}

	logger = logger.With(slog.String("component", "gemini_provider"))
	logger.Info("Gemini provider initialized",
		slog.String("model", cfg.Model),
		slog.Int("api_key_count", keys.Size()))

	return &Provider{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		keys:        keys,
		logger:      logger,
		clients:     make(map[string]*genai.Client),
	}, nil
}

// ModelName implements llm.Provider.
func (p *Provider) ModelName() string {
	return p.model
}

// clientFor returns the cached client for a key, creating it on first use.
func (p *Provider) clientFor(ctx context.Context, key string) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[key]; ok {
		return client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", llm.ErrConnection, err)
	}

	p.clients[key] = client
	return client, nil
}

// Generate implements llm.Provider.
func (p *Provider) Generate(ctx context.Context, req llm.Request) (string, error) {
	key := p.keys.Next()
	p.logger.DebugContext(ctx, "calling Gemini API",
		slog.String("model", p.model),
		slog.String("api_key", redact.Key(key)))

	client, err := p.clientFor(ctx, key)
	if err != nil {
		return "", err
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.temperature
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(temperature)),
		TopK:             genai.Ptr(float32(defaultTopK)),
		TopP:             genai.Ptr(float32(defaultTopP)),
		MaxOutputTokens:  defaultMaxOutputTokens,
		ResponseMIMEType: "text/plain",
		SafetySettings:   permissiveSafetySettings(),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: req.User}}},
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", classifyAPIError(err)
	}

	return parseResponse(resp)
}

// parseResponse extracts the reply text from a Gemini response, appending
// reference links when the search tool grounded the answer.
func parseResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", llm.ErrMalformedResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", llm.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", llm.ErrMalformedResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	reply := strings.TrimSpace(text.String())
	if reply == "" {
		return "", llm.ErrEmptyResponse
	}

	if links := groundingLinks(candidate); len(links) > 0 {
		reply += "\n\n---" + strings.Join(links, "")
	}

	return reply, nil
}

// groundingLinks renders the web sources the search tool grounded the
// answer on as markdown reference links.
func groundingLinks(candidate *genai.Candidate) []string {
	if candidate.GroundingMetadata == nil {
		return nil
	}

	var links []string
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = chunk.Web.URI
		}
		links = append(links, fmt.Sprintf("\n\nReference link: [%s](%s)", title, chunk.Web.URI))
	}
	return links
}

// classifyAPIError maps a genai error onto the llm error taxonomy.
func classifyAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return fmt.Errorf("%w: %s", llm.ErrInvalidAPIKey, apiErr.Status)
		case apiErr.Code == 429:
			return fmt.Errorf("%w: %s", llm.ErrRateLimited, apiErr.Status)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", llm.ErrTimeout, redact.String(err.Error()))
	}
	return fmt.Errorf("%w: %s", llm.ErrConnection, redact.String(err.Error()))
}

// permissiveSafetySettings disables blocking for the categories the add-on
// turned off; flashcard material routinely trips the default filters.
func permissiveSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
		genai.HarmCategoryCivicIntegrity,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return settings
}
