package imaging

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// LoadFunc decodes the grid stored at path.
type LoadFunc func(path string) (*Grid, error)

// GridCache provides thread-safe caching of decoded grids and of derived
// grids produced by operations.
//
// Grids read from disk are keyed by the exact path string given to Load.
// Derived grids are stored with Put and addressed by the random handle Put
// returns, so a caller can chain operations without writing intermediate
// files.
//
// Cached grids are never handed out for mutation: Load and Get return the
// stored value, and all grid operations return new grids, so stored values
// stay unchanged.
//
// # Memory Management
//
// Cached grids remain in memory until explicitly removed via Evict() or
// Clear().
type GridCache struct {
	mu      sync.RWMutex
	load    LoadFunc
	paths   map[string]*Grid
	handles map[string]*Grid
}

// NewGridCache creates an empty cache that reads files with load.
func NewGridCache(load LoadFunc) *GridCache {
	return &GridCache{
		load:    load,
		paths:   make(map[string]*Grid),
		handles: make(map[string]*Grid),
	}
}

// Load returns the grid for path, decoding it on first use.
func (c *GridCache) Load(path string) (*Grid, error) {
	c.mu.RLock()
	if g, ok := c.paths[path]; ok {
		c.mu.RUnlock()
		return g, nil
	}
	c.mu.RUnlock()

	g, err := c.load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.paths[path] = g
	c.mu.Unlock()

	return g, nil
}

// Put stores g under a new handle and returns the handle.
func (c *GridCache) Put(g *Grid) string {
	h := uuid.NewString()
	c.mu.Lock()
	c.handles[h] = g
	c.mu.Unlock()
	return h
}

// Get returns the grid stored under handle.
func (c *GridCache) Get(handle string) (*Grid, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.handles[handle]
	if !ok {
		return nil, fmt.Errorf("unknown grid handle %q: %w", handle, ErrInvalidParameter)
	}
	return g, nil
}

// Resolve returns the grid for a handle when one is given, otherwise the
// grid loaded from path.
func (c *GridCache) Resolve(handle, path string) (*Grid, error) {
	switch {
	case handle != "":
		return c.Get(handle)
	case path != "":
		return c.Load(path)
	default:
		return nil, fmt.Errorf("either handle or path is required: %w", ErrInvalidParameter)
	}
}

// Evict removes a path or handle from the cache. Unknown keys are ignored.
func (c *GridCache) Evict(key string) {
	c.mu.Lock()
	delete(c.paths, key)
	delete(c.handles, key)
	c.mu.Unlock()
}

// Clear removes every cached grid.
func (c *GridCache) Clear() {
	c.mu.Lock()
	c.paths = make(map[string]*Grid)
	c.handles = make(map[string]*Grid)
	c.mu.Unlock()
}

// Len returns the number of cached grids.
func (c *GridCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths) + len(c.handles)
}
