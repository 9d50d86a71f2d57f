package cache

import (
	"container/list"
	"sync"

	"github.com/atharv3903/roadtrip/internal/model"
)

// DefaultNeighborCapacity is the number of neighbor lists kept when no
// capacity is configured.
const DefaultNeighborCapacity = 2048

type neighborEntry struct {
	key model.City
	val []model.City
}

// NeighborCache is a bounded LRU of sorted neighbor lists, keyed by departure
// city. It's safe for concurrent use.
type NeighborCache struct {
	mu       sync.Mutex
	m        map[model.City]*list.Element
	ll       *list.List
	capacity int
	// stats
	puts      int
	gets      int
	hits      int
	evictions int
}

// NewNeighborCache returns a cache with the provided capacity, or the default
// capacity when capacity <= 0.
func NewNeighborCache(capacity int) *NeighborCache {
	if capacity <= 0 {
		capacity = DefaultNeighborCapacity
	}
	return &NeighborCache{
		m:        make(map[model.City]*list.Element, capacity),
		ll:       list.New(),
		capacity: capacity,
	}
}

// Get returns the neighbor list for key and true if it was cached.
// It updates LRU position on hit.
func (c *NeighborCache) Get(key model.City) ([]model.City, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	if el, ok := c.m[key]; ok {
		c.hits++
		c.ll.MoveToFront(el)
		return el.Value.(neighborEntry).val, true
	}
	return nil, false
}

// Put stores v under key, evicting the least-recently-used entry when the
// cache grows past capacity.
func (c *NeighborCache) Put(key model.City, v []model.City) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.puts++
	if el, ok := c.m[key]; ok {
		el.Value = neighborEntry{key: key, val: v}
		c.ll.MoveToFront(el)
		return
	}

	c.m[key] = c.ll.PushFront(neighborEntry{key: key, val: v})

	if c.ll.Len() > c.capacity {
		if tail := c.ll.Back(); tail != nil {
			delete(c.m, tail.Value.(neighborEntry).key)
			c.ll.Remove(tail)
			c.evictions++
		}
	}
}

// Invalidate drops the entry for key, if present. Evictions only count
// capacity-driven removals.
func (c *NeighborCache) Invalidate(key model.City) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.m[key]; ok {
		delete(c.m, key)
		c.ll.Remove(el)
	}
}

// Clear drops every entry and resets the stats.
func (c *NeighborCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[model.City]*list.Element, c.capacity)
	c.ll.Init()
	c.puts, c.gets, c.hits, c.evictions = 0, 0, 0, 0
}

// Len returns the number of cached lists.
func (c *NeighborCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

type Stats struct {
	Gets      int `json:"gets"`
	Hits      int `json:"hits"`
	Puts      int `json:"puts"`
	Evictions int `json:"evictions"`
	Entries   int `json:"entries,omitempty"`
}

// HitRate is Hits/Gets, or 0 before the first Get.
func (s Stats) HitRate() float64 {
	if s.Gets == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Gets)
}

// Stats returns a snapshot of the counters. Entries is left for the caller to
// fill from Len.
func (c *NeighborCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Gets: c.gets, Hits: c.hits, Puts: c.puts, Evictions: c.evictions}
}
