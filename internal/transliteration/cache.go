package transliteration

import (
	"context"
	"sync"
)

// Cache memoizes the results of another Service. Vocabulary logs repeat
// words and sentences, so within one run each input is sent only once.
// Only successful results are stored.
type Cache struct {
	next Service

	mu          sync.Mutex
	simplified  map[string]string
	transcribed map[string][]string
}

// NewCache creates a memoizing wrapper around next
func NewCache(next Service) *Cache {
	return &Cache{
		next:        next,
		simplified:  make(map[string]string),
		transcribed: make(map[string][]string),
	}
}

// Name returns the wrapped backend name
func (c *Cache) Name() string {
	return c.next.Name()
}

// Simplify returns the cached simplification or asks the backend
func (c *Cache) Simplify(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	simplified, ok := c.simplified[text]
	c.mu.Unlock()
	if ok {
		return simplified, nil
	}

	simplified, err := c.next.Simplify(ctx, text)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.simplified[text] = simplified
	c.mu.Unlock()

	return simplified, nil
}

// Transcribe returns a copy of the cached segments or asks the backend.
// Callers may modify the returned slice.
func (c *Cache) Transcribe(ctx context.Context, text string) ([]string, error) {
	c.mu.Lock()
	segments, ok := c.transcribed[text]
	c.mu.Unlock()
	if ok {
		return copySegments(segments), nil
	}

	segments, err := c.next.Transcribe(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.transcribed[text] = copySegments(segments)
	c.mu.Unlock()

	return segments, nil
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.simplified) + len(c.transcribed)
}

func copySegments(segments []string) []string {
	if segments == nil {
		return nil
	}
	out := make([]string, len(segments))
	copy(out, segments)
	return out
}
