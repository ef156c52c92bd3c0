package osm

import (
	"container/list"
	"sync"
)

// DocumentCache is a bounded LRU cache from file path to a previously
// read Osm container. It bounds by entry count rather than an estimated
// byte footprint: an Osm container's dominant cost is its three id-keyed
// maps, not a predictable byte size, so a simple capacity limit is the
// more honest contract.
//
// DocumentCache never participates in the codec's round-trip contract —
// Read and Write always operate on the file given to them directly. It
// exists purely for callers (a tile server, a long-running CLI) that
// re-open the same path repeatedly.
type DocumentCache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*list.Element
	lru        *list.List // most recently used at the front
}

type cacheEntry struct {
	path string
	osm  *Osm
}

// NewDocumentCache creates a cache holding at most maxEntries documents.
func NewDocumentCache(maxEntries int) *DocumentCache {
	return &DocumentCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
	}
}

// Get returns the cached container for path, reading and inserting it on
// a miss. Reads use the same format dispatch as the package-level Read.
func (c *DocumentCache) Get(path string) (*Osm, error) {
	c.mu.Lock()
	if elem, ok := c.entries[path]; ok {
		c.lru.MoveToFront(elem)
		osm := elem.Value.(*cacheEntry).osm
		c.mu.Unlock()
		return osm, nil
	}
	c.mu.Unlock()

	osm, err := Read(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLocked(path, osm)
	return osm, nil
}

func (c *DocumentCache) insertLocked(path string, osm *Osm) {
	if elem, ok := c.entries[path]; ok {
		elem.Value.(*cacheEntry).osm = osm
		c.lru.MoveToFront(elem)
		return
	}

	for c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLRULocked()
	}

	elem := c.lru.PushFront(&cacheEntry{path: path, osm: osm})
	c.entries[path] = elem
}

func (c *DocumentCache) evictLRULocked() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	c.lru.Remove(elem)
	delete(c.entries, elem.Value.(*cacheEntry).path)
}

// Remove evicts path from the cache, if present.
func (c *DocumentCache) Remove(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[path]; ok {
		c.lru.Remove(elem)
		delete(c.entries, path)
	}
}

// Clear empties the cache.
func (c *DocumentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.lru.Init()
}

// Len returns the number of currently cached documents.
func (c *DocumentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
