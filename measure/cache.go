package measure

import (
	"sync"

	"github.com/iw2rmb/doxx/document"
)

// DefaultCacheSize bounds a Cache created with a non-positive size.
const DefaultCacheSize = 4096

type cacheKey struct {
	text  string
	start float64
}

// Cache memoizes a Measurer. When full it starts over empty. Widths from a
// PositionalMeasurer are keyed by start column too.
type Cache struct {
	m     document.Measurer
	limit int

	mu      sync.Mutex
	entries map[cacheKey]float64
	hits    int
	misses  int
}

// NewCache wraps m with a cache of at most size entries.
func NewCache(m document.Measurer, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{m: m, limit: size, entries: make(map[cacheKey]float64)}
}

func (c *Cache) Measure(text string) float64 {
	return c.MeasureAt(text, 0)
}

// MeasureAt forwards start to a positional wrapped Measurer and ignores it
// otherwise.
func (c *Cache) MeasureAt(text string, start float64) float64 {
	p, positional := c.m.(document.PositionalMeasurer)
	if !positional {
		start = 0
	}
	k := cacheKey{text: text, start: start}

	c.mu.Lock()
	if w, ok := c.entries[k]; ok {
		c.hits++
		c.mu.Unlock()
		return w
	}
	c.misses++
	c.mu.Unlock()

	var w float64
	if positional {
		w = p.MeasureAt(text, start)
	} else {
		w = c.m.Measure(text)
	}

	c.mu.Lock()
	if len(c.entries) >= c.limit {
		clear(c.entries)
	}
	c.entries[k] = w
	c.mu.Unlock()
	return w
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
