package texture

import (
	"image"
	"sync"
)

// DebugName selects the built-in UV test pattern instead of a file.
const DebugName = "debug"

// Resolver resolves a texture name to a decoded image.
type Resolver interface {
	Resolve(name string) (*image.NRGBA, error)
}

// Cache is a concurrency-safe texture cache shared by render workers.
// Failed loads are cached too, so a bad path is only read once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates an empty texture cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// Resolve returns the image for name: "" yields nil, DebugName the test
// pattern, anything else is loaded from disk once.
func (c *Cache) Resolve(name string) (*image.NRGBA, error) {
	if name == "" {
		return nil, nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, ok := c.items[name]; ok {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	var entry cacheEntry
	if name == DebugName {
		entry.img = DebugTexture()
	} else {
		entry.img, entry.err = Load(name)
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[name]; ok {
		return existing.img, existing.err
	}
	c.items[name] = &entry
	return entry.img, entry.err
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
