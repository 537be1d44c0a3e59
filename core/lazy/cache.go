package lazy

import (
	"sort"
	"sync"

	"github.com/YuminosukeSato/lazyml/pkg/log"
)

// Cache owns the deferred handles of one namespace and the ledger of
// names that have resolved successfully at least once. Both are
// append-only and live as long as the cache: a handle, once created, is
// returned with stable identity for every later lookup of its name, and
// ledger entries are never evicted.
//
// Cache is safe for concurrent use.
type Cache struct {
	registry *Registry
	resolver Resolver
	logger   log.Logger

	mu      sync.RWMutex
	handles map[string]*Handle
	loaded  map[string]struct{}
}

// NewCache creates an empty cache over the given registry and resolver.
func NewCache(registry *Registry, resolver Resolver, logger log.Logger) *Cache {
	return &Cache{
		registry: registry,
		resolver: resolver,
		logger:   logger,
		handles:  make(map[string]*Handle),
		loaded:   make(map[string]struct{}),
	}
}

// Registry returns the registry the cache was built over.
func (c *Cache) Registry() *Registry {
	return c.registry
}

// Handle returns the deferred handle for a registered logical name,
// creating one on first lookup. Repeated calls with the same name return
// the same handle instance. The second return value is false if the name
// is not registered.
func (c *Cache) Handle(name string) (*Handle, bool) {
	c.mu.RLock()
	h, ok := c.handles[name]
	c.mu.RUnlock()
	if ok {
		return h, true
	}

	spec, ok := c.registry.Lookup(name)
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Re-check under the write lock; another goroutine may have created
	// the handle between the two lock acquisitions.
	if h, ok := c.handles[name]; ok {
		return h, true
	}
	h = newHandle(spec, c.resolver, c.logger, c.markLoaded)
	c.handles[name] = h
	return h, true
}

func (c *Cache) markLoaded(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded[name] = struct{}{}
}

// Loaded returns the names that have resolved successfully at least
// once, sorted. Failed attempts never appear here.
func (c *Cache) Loaded() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.loaded))
	for name := range c.loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops all handles and ledger entries. It exists for tests;
// production namespaces never reset their cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handles = make(map[string]*Handle)
	c.loaded = make(map[string]struct{})
}
