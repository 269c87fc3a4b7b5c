// Package assets holds caches that outlive a single model import.
package assets

import (
	"path/filepath"
	"sync"
)

// Handle identifies a texture path registered in a TextureCache.
// The zero Handle means "no texture".
type Handle uint32

// TextureCache maps resolved texture paths to stable handles, so that
// meshes from different imports referencing the same file share a handle.
// The caller decides its lifetime (one import, one scene, the process);
// it is safe to share between concurrent imports.
type TextureCache struct {
	handles map[string]Handle
	paths   []string
	mu      sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewTextureCache creates an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{
		handles: make(map[string]Handle),
	}
}

// Acquire returns the handle for path, registering it on first use.
// Paths are cleaned first, so "a/./b.png" and "a/b.png" share a handle.
func (c *TextureCache) Acquire(path string) Handle {
	if path == "" {
		return 0
	}
	path = filepath.Clean(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.handles[path]; ok {
		c.hits++
		return h
	}
	c.misses++
	c.paths = append(c.paths, path)
	h := Handle(len(c.paths))
	c.handles[path] = h
	return h
}

// Lookup returns the handle for path without registering it.
func (c *TextureCache) Lookup(path string) (Handle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h, ok := c.handles[filepath.Clean(path)]
	return h, ok
}

// Path returns the path registered for h.
func (c *TextureCache) Path(h Handle) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if h == 0 || int(h) > len(c.paths) {
		return "", false
	}
	return c.paths[h-1], true
}

// Paths returns all registered paths in handle order (handle = index + 1).
func (c *TextureCache) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.paths))
	copy(out, c.paths)
	return out
}

// Len returns the number of registered paths.
func (c *TextureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}

// Clear forgets all paths. Handles issued before Clear must not be reused.
func (c *TextureCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handles = make(map[string]Handle)
	c.paths = nil
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *TextureCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
