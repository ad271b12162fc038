package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/answercheck/answercheck/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestProvider points a provider at a stub server.
func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := New(Config{
		APIKey:      "sk-test",
		BaseURL:     server.URL,
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		Timeout:     2 * time.Second,
	}, nil)
	require.NoError(t, err)
	return p
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(Config{BaseURL: "https://api.openai.com", Model: "gpt-4o-mini"}, nil)
	assert.ErrorIs(t, err, llm.ErrAPIKeyMissing)
}

func TestGenerateSuccess(t *testing.T) {
	t.Parallel()

	var gotReq map[string]any
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  The answer is correct.  "}}]}`))
	})

	reply, err := p.Generate(context.Background(), llm.Request{
		System:      "You are a helpful assistant.",
		User:        "Evaluate this answer.",
		Temperature: 0.2,
	})
	require.NoError(t, err)
	assert.Equal(t, "The answer is correct.", reply)

	assert.Equal(t, "gpt-4o-mini", gotReq["model"])
	assert.Equal(t, 0.2, gotReq["temperature"])
	messages := gotReq["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestGenerateForcesTemperatureForGPT5(t *testing.T) {
	t.Parallel()

	var gotReq map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	t.Cleanup(server.Close)

	p, err := New(Config{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-5-nano", Temperature: 0.7}, nil)
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), llm.Request{User: "q", Temperature: 0.2})
	require.NoError(t, err)
	assert.Equal(t, float64(1), gotReq["temperature"])
}

func TestGenerateErrorMapping(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{"unauthorized maps to invalid key", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, llm.ErrInvalidAPIKey},
		{"too many requests maps to rate limited", http.StatusTooManyRequests, `{}`, llm.ErrRateLimited},
		{"server error maps to connection error", http.StatusInternalServerError, `oops`, llm.ErrConnection},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := p.Generate(context.Background(), llm.Request{User: "q"})
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestGenerateMalformedAndEmptyResponses(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	_, err := p.Generate(context.Background(), llm.Request{User: "q"})
	assert.ErrorIs(t, err, llm.ErrMalformedResponse)

	p = newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	_, err = p.Generate(context.Background(), llm.Request{User: "q"})
	assert.ErrorIs(t, err, llm.ErrMalformedResponse)

	p = newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
	})
	_, err = p.Generate(context.Background(), llm.Request{User: "q"})
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestGenerateTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"late"}}]}`))
	}))
	t.Cleanup(server.Close)

	p, err := New(Config{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-4o-mini", Timeout: 50 * time.Millisecond}, nil)
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), llm.Request{User: "q"})
	assert.ErrorIs(t, err, llm.ErrTimeout)
}
