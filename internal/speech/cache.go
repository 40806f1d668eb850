package speech

import (
	"context"
	"strings"
	"sync"
)

// WordState is the synthesis state of one normalized word.
type WordState int

const (
	StateAbsent WordState = iota
	StatePending
	StateCached
)

// Cache stores encoded pronunciation audio per normalized word and
// guarantees at most one in-flight provider call per word at a time.
// Entries never expire within a session; Reset clears everything.
type Cache struct {
	provider Provider

	mu      sync.Mutex
	audio   map[string][]byte // normalized word -> WAV blob
	pending map[string]bool   // words with an in-flight provider call
}

// NewCache creates a cache dispatching to the given provider.
func NewCache(provider Provider) *Cache {
	return &Cache{
		provider: provider,
		audio:    make(map[string][]byte),
		pending:  make(map[string]bool),
	}
}

// NormalizeWord returns the cache key for a word.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Synthesize returns cached audio for word, or issues exactly one provider
// call and caches the WAV-encoded result. Concurrent calls for a word that
// is already being synthesized return ErrBusy without a second provider
// call. Failures clear the pending marker so a later call can retry.
func (c *Cache) Synthesize(ctx context.Context, word string) ([]byte, error) {
	key := NormalizeWord(word)

	c.mu.Lock()
	if wav, ok := c.audio[key]; ok {
		c.mu.Unlock()
		return wav, nil
	}
	if c.pending[key] {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.pending[key] = true
	c.mu.Unlock()

	pcm, err := c.provider.Synthesize(ctx, word)
	if err != nil {
		c.mu.Lock()
		delete(c.pending, key)
		c.mu.Unlock()
		return nil, err
	}
	if len(pcm) == 0 {
		c.mu.Lock()
		delete(c.pending, key)
		c.mu.Unlock()
		return nil, ErrNoAudio
	}

	wav := EncodeWAV(pcm, SampleRate, Channels, BitDepth)

	// A success is stored even if ResetWord cleared the pending marker
	// while the call was in flight: the word still ends up cached, and
	// the caller that forced the reset simply finds it there.
	c.mu.Lock()
	c.audio[key] = wav
	delete(c.pending, key)
	c.mu.Unlock()

	return wav, nil
}

// Get returns the cached WAV blob for word, if present.
func (c *Cache) Get(word string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	wav, ok := c.audio[NormalizeWord(word)]
	return wav, ok
}

// State reports the synthesis state of word.
func (c *Cache) State(word string) WordState {
	key := NormalizeWord(word)

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.audio[key] != nil:
		return StateCached
	case c.pending[key]:
		return StatePending
	default:
		return StateAbsent
	}
}

// Cached reports whether audio for word is cached.
func (c *Cache) Cached(word string) bool {
	return c.State(word) == StateCached
}

// Generating reports whether a synthesis call for word is in flight.
func (c *Cache) Generating(word string) bool {
	return c.State(word) == StatePending
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.audio)
}

// ResetWord force-clears a stuck pending marker so the next Synthesize
// call may retry. It does not cancel the in-flight request; if that
// request later succeeds, its result is still accepted into the cache.
func (c *Cache) ResetWord(word string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, NormalizeWord(word))
}

// Reset clears all cached audio and pending markers.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.audio = make(map[string][]byte)
	c.pending = make(map[string]bool)
}
