// Package imagecache remembers resolved recipe image URLs for the life of the
// process. Entries are never evicted; the key space is bounded by the recipes
// users actually look at.
package imagecache

import (
	"context"
	"strings"
	"sync"
)

// FetchFunc looks up a recipe's image at the provider.
type FetchFunc func(ctx context.Context, recipeID int64) (string, error)

// FallbackFunc builds a last-resort URL from the recipe id alone.
type FallbackFunc func(recipeID int64) string

type Cache struct {
	mu      sync.RWMutex
	entries map[int64]string
}

func New() *Cache {
	return &Cache{entries: make(map[int64]string)}
}

func (c *Cache) Get(recipeID int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.entries[recipeID]
	return url, ok
}

// Set ignores empty URLs.
func (c *Cache) Set(recipeID int64, url string) {
	if strings.TrimSpace(url) == "" {
		return
	}
	c.mu.Lock()
	c.entries[recipeID] = url
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Resolve returns the image for a recipe, trying in order: the candidate the
// caller already has, the cache, fetch, and fallback. Anything found before
// the fallback is cached. fetch and fallback may be nil.
func (c *Cache) Resolve(ctx context.Context, recipeID int64, candidate string, fetch FetchFunc, fallback FallbackFunc) string {
	if candidate = strings.TrimSpace(candidate); candidate != "" {
		c.Set(recipeID, candidate)
		return candidate
	}
	if url, ok := c.Get(recipeID); ok {
		return url
	}
	if fetch != nil {
		if url, err := fetch(ctx, recipeID); err == nil && strings.TrimSpace(url) != "" {
			c.Set(recipeID, url)
			return url
		}
	}
	if fallback != nil {
		return fallback(recipeID)
	}
	return ""
}
