package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Expiry settings for stored sessions. The janitor sweep replaces the
// original periodic cleanup of stale review containers.
const (
	defaultTTL      = 5 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// Store keeps live sessions keyed by session ID, expiring them after a
// period of inactivity.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a session store with the default 5-minute expiry.
func NewStore() *Store {
	return &Store{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Put stores a session, resetting its expiry.
func (s *Store) Put(sess *Session) {
	s.cache.Set(sess.ID().String(), sess, gocache.DefaultExpiration)
}

// Get returns the session with the given ID, refreshing its expiry.
// Returns ErrSessionNotFound when the session expired or never existed.
func (s *Store) Get(id string) (*Session, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess := v.(*Session)
	s.cache.Set(id, sess, gocache.DefaultExpiration)
	return sess, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
