package markup

import "sync"

// ParseCache memoizes Parse results by message ID. Chat message text never
// changes after creation, so a cached result is always valid for its ID.
type ParseCache struct {
	mu      sync.RWMutex
	results map[string]ParsedText
}

// NewParseCache creates an empty parse cache.
func NewParseCache() *ParseCache {
	return &ParseCache{
		results: make(map[string]ParsedText),
	}
}

// Parse returns the cached result for id if present, otherwise parses text
// and stores the result. An empty id disables memoization for that call.
func (c *ParseCache) Parse(text, id string) ParsedText {
	if id != "" {
		c.mu.RLock()
		result, ok := c.results[id]
		c.mu.RUnlock()
		if ok {
			return result
		}
	}

	result := Parse(text, id)

	if id != "" {
		c.mu.Lock()
		c.results[id] = result
		c.mu.Unlock()
	}

	return result
}

// Len returns the number of cached results.
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// Reset drops all cached results.
func (c *ParseCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]ParsedText)
}
