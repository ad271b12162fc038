package gemini

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeys(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single key",
			input:    "AIzaKey1",
			expected: []string{"AIzaKey1"},
		},
		{
			name:     "multiple keys",
			input:    "AIzaKey1,AIzaKey2,AIzaKey3",
			expected: []string{"AIzaKey1", "AIzaKey2", "AIzaKey3"},
		},
		{
			name:     "whitespace around keys",
			input:    " AIzaKey1 , AIzaKey2 ",
			expected: []string{"AIzaKey1", "AIzaKey2"},
		},
		{
			name:     "empty entries dropped",
			input:    "AIzaKey1,,AIzaKey2,",
			expected: []string{"AIzaKey1", "AIzaKey2"},
		},
		{
			name:     "blank input",
			input:    "   ",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, parseKeys(tc.input))
		})
	}
}

func TestNewKeyringEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, newKeyring("", rand.New(rand.NewSource(1))))
	assert.Nil(t, newKeyring(" , , ", rand.New(rand.NewSource(1))))
}

func TestKeyringRotation(t *testing.T) {
	t.Parallel()

	ring := newKeyring("a,b,c", rand.New(rand.NewSource(42)))
	require.NotNil(t, ring)
	assert.Equal(t, 3, ring.Size())

	// Each full cycle must hand out every key exactly once.
	for cycle := 0; cycle < 4; cycle++ {
		seen := make(map[string]bool)
		for i := 0; i < 3; i++ {
			seen[ring.Next()] = true
		}
		assert.Len(t, seen, 3, "cycle %d did not cover all keys", cycle)
	}
}

func TestKeyringSingleKey(t *testing.T) {
	t.Parallel()

	ring := newKeyring("only-key", rand.New(rand.NewSource(7)))
	require.NotNil(t, ring)

	for i := 0; i < 5; i++ {
		assert.Equal(t, "only-key", ring.Next())
	}
}
