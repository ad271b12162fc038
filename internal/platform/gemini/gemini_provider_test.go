package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/answercheck/answercheck/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Model: "gemini-2.0-flash-exp"}, nil)
	assert.ErrorIs(t, err, llm.ErrAPIKeyMissing)
}

func TestNewCountsRotatedKeys(t *testing.T) {
	t.Parallel()

	provider, err := New(Config{
		APIKey: "key-a,key-b,key-c",
		Model:  "gemini-2.0-flash-exp",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, provider.keys.Size())
	assert.Equal(t, "gemini-2.0-flash-exp", provider.ModelName())
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		expected string
		wantErr  error
	}{
		{
			name:    "nil response",
			resp:    nil,
			wantErr: llm.ErrMalformedResponse,
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: llm.ErrMalformedResponse,
		},
		{
			name: "safety blocked",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{FinishReason: genai.FinishReasonSafety},
				},
			},
			wantErr: llm.ErrContentBlocked,
		},
		{
			name: "nil content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			},
			wantErr: llm.ErrMalformedResponse,
		},
		{
			name: "blank text",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "  \n "}}}},
				},
			},
			wantErr: llm.ErrEmptyResponse,
		},
		{
			name: "joins parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{
						{Text: "Hello, "},
						{Text: "world."},
					}}},
				},
			},
			expected: "Hello, world.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseResponse(tc.resp)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseResponseAppendsGroundingLinks(t *testing.T) {
	t.Parallel()

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "The answer."}}},
				GroundingMetadata: &genai.GroundingMetadata{
					GroundingChunks: []*genai.GroundingChunk{
						{Web: &genai.GroundingChunkWeb{URI: "https://example.com/a", Title: "Example A"}},
						{Web: &genai.GroundingChunkWeb{URI: "https://example.com/b"}},
						{Web: nil},
					},
				},
			},
		},
	}

	got, err := parseResponse(resp)
	require.NoError(t, err)
	assert.Contains(t, got, "The answer.")
	assert.Contains(t, got, "[Example A](https://example.com/a)")
	assert.Contains(t, got, "[https://example.com/b](https://example.com/b)")
}

func TestClassifyAPIError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "unauthorized",
			err:     genai.APIError{Code: 401, Status: "UNAUTHENTICATED"},
			wantErr: llm.ErrInvalidAPIKey,
		},
		{
			name:    "forbidden",
			err:     genai.APIError{Code: 403, Status: "PERMISSION_DENIED"},
			wantErr: llm.ErrInvalidAPIKey,
		},
		{
			name:    "rate limited",
			err:     genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"},
			wantErr: llm.ErrRateLimited,
		},
		{
			name:    "server error",
			err:     genai.APIError{Code: 500, Status: "INTERNAL"},
			wantErr: llm.ErrConnection,
		},
		{
			name:    "plain transport error",
			err:     errors.New("dial tcp: connection refused"),
			wantErr: llm.ErrConnection,
		},
		{
			name:    "wrapped api error",
			err:     fmt.Errorf("call failed: %w", genai.APIError{Code: 429}),
			wantErr: llm.ErrRateLimited,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, classifyAPIError(tc.err), tc.wantErr)
		})
	}
}
