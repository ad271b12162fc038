package gemini

import (
	"math/rand"
	"strings"
	"sync"
)

// keyring rotates through a set of API keys. Keys are drawn from a shuffled
// queue; when the queue empties it is rebuilt and reshuffled, so usage
// spreads evenly across keys without a fixed order.
type keyring struct {
	mu    sync.Mutex
	keys  []string
	queue []string
	rng   *rand.Rand
}

// parseKeys splits a comma-separated key list, dropping empty entries.
func parseKeys(raw string) []string {
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// newKeyring builds a keyring from a comma-separated key list.
// Returns nil when no usable key is present.
func newKeyring(raw string, rng *rand.Rand) *keyring {
	keys := parseKeys(raw)
	if len(keys) == 0 {
		return nil
	}
	return &keyring{keys: keys, rng: rng}
}

// Next returns the next key to use.
func (r *keyring) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) == 0 {
		r.queue = append(r.queue[:0], r.keys...)
		r.rng.Shuffle(len(r.queue), func(i, j int) {
			r.queue[i], r.queue[j] = r.queue[j], r.queue[i]
		})
	}

	key := r.queue[len(r.queue)-1]
	r.queue = r.queue[:len(r.queue)-1]
	return key
}

// Size reports how many keys the ring rotates through.
func (r *keyring) Size() int {
	return len(r.keys)
}
