// Package graph is the in-memory store of one-way road segments between
// cities.
//
// The store maps each departure city to its outgoing segments. A city that
// only ever appears as a destination has no entry of its own, and a departure
// city keeps its entry after its last segment is removed. At most one segment
// exists per ordered (from, to) pair; adding an existing pair overwrites its
// distance.
//
// A Graph is not safe for concurrent use. Callers serialize mutations and
// queries.
package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/atharv3903/roadtrip/internal/cache"
	"github.com/atharv3903/roadtrip/internal/model"
)

var (
	// ErrUnknownCity indicates the city is not a departure city of any segment.
	ErrUnknownCity = errors.New("graph: unknown city")

	// ErrMissingEdge indicates there is no segment between the two cities.
	ErrMissingEdge = errors.New("graph: missing road segment")

	// ErrNegativeDistance indicates an attempt to store a negative distance.
	ErrNegativeDistance = errors.New("graph: negative distance")
)

// Graph is the adjacency store. The zero value is not usable; call New.
type Graph struct {
	adj       map[model.City]map[model.City]model.Distance
	neighbors *cache.NeighborCache
}

// Option configures a Graph at construction.
type Option func(*Graph)

// WithNeighborCache makes the Graph memoize sorted neighbor lists in c.
func WithNeighborCache(c *cache.NeighborCache) Option {
	return func(g *Graph) { g.neighbors = c }
}

// New returns an empty Graph.
func New(opts ...Option) *Graph {
	g := &Graph{adj: make(map[model.City]map[model.City]model.Distance)}
	for _, opt := range opts {
		opt(g)
	}
	if g.neighbors == nil {
		g.neighbors = cache.NewNeighborCache(cache.DefaultNeighborCapacity)
	}
	return g
}

// FromEdges builds a Graph holding every edge. Later duplicates of the same
// (from, to) pair overwrite earlier ones. Any invalid edge fails the whole
// build and no Graph is returned.
func FromEdges(edges []model.Edge, opts ...Option) (*Graph, error) {
	g := New(opts...)
	for i, e := range edges {
		if err := g.AddEdge(e.From, e.To, e.Distance); err != nil {
			return nil, fmt.Errorf("edge %d (%s -> %s): %w", i+1, e.From, e.To, err)
		}
	}
	return g, nil
}

// Neighbors returns the destinations of every segment leaving city, sorted.
// Unknown cities and cities without outgoing segments yield an empty list.
// The returned slice is shared with the cache and must not be modified.
func (g *Graph) Neighbors(city model.City) []model.City {
	if v, ok := g.neighbors.Get(city); ok {
		return v
	}

	out := g.adj[city]
	if len(out) == 0 {
		return nil
	}
	cities := make([]model.City, 0, len(out))
	for to := range out {
		cities = append(cities, to)
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i] < cities[j] })

	g.neighbors.Put(city, cities)
	return cities
}

// Weight returns the distance of the direct segment from -> to, if any.
func (g *Graph) Weight(from, to model.City) (model.Distance, bool) {
	d, ok := g.adj[from][to]
	return d, ok
}

// AddEdge inserts the segment from -> to, or overwrites its distance.
func (g *Graph) AddEdge(from, to model.City, d model.Distance) error {
	if d < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDistance, d)
	}
	out, ok := g.adj[from]
	if !ok {
		out = make(map[model.City]model.Distance)
		g.adj[from] = out
	}
	out[to] = d
	g.neighbors.Invalidate(from)
	return nil
}

// RemoveEdge deletes the segment from -> to. It returns ErrUnknownCity when
// from is not a departure city and ErrMissingEdge when the segment does not
// exist; the Graph is unchanged in both cases.
func (g *Graph) RemoveEdge(from, to model.City) error {
	out, ok := g.adj[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCity, from)
	}
	if _, ok := out[to]; !ok {
		return fmt.Errorf("%w: %q -> %q", ErrMissingEdge, from, to)
	}
	delete(out, to)
	g.neighbors.Invalidate(from)
	return nil
}

// IsDeparture reports whether city has ever been the departure of a segment.
func (g *Graph) IsDeparture(city model.City) bool {
	_, ok := g.adj[city]
	return ok
}

// HasCity reports whether city is a departure city or the destination of a
// current segment.
func (g *Graph) HasCity(city model.City) bool {
	if g.IsDeparture(city) {
		return true
	}
	for _, out := range g.adj {
		if _, ok := out[city]; ok {
			return true
		}
	}
	return false
}

// Departures returns the departure cities, sorted.
func (g *Graph) Departures() []model.City {
	out := make([]model.City, 0, len(g.adj))
	for c := range g.adj {
		out = append(out, c)
	}
	sortCities(out)
	return out
}

// Cities returns every known city, sorted.
func (g *Graph) Cities() []model.City {
	seen := make(map[model.City]struct{}, len(g.adj))
	for from, out := range g.adj {
		seen[from] = struct{}{}
		for to := range out {
			seen[to] = struct{}{}
		}
	}
	cities := make([]model.City, 0, len(seen))
	for c := range seen {
		cities = append(cities, c)
	}
	sortCities(cities)
	return cities
}

// Edges returns every segment sorted by (from, to).
func (g *Graph) Edges() []model.Edge {
	var edges []model.Edge
	for _, from := range g.Departures() {
		edges = append(edges, g.EdgesFrom(from)...)
	}
	return edges
}

// EdgesFrom returns the segments leaving city, sorted by destination.
func (g *Graph) EdgesFrom(city model.City) []model.Edge {
	to := g.Neighbors(city)
	edges := make([]model.Edge, 0, len(to))
	for _, c := range to {
		edges = append(edges, model.Edge{From: city, To: c, Distance: g.adj[city][c]})
	}
	return edges
}

// EdgeCount returns the number of segments.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, out := range g.adj {
		n += len(out)
	}
	return n
}

// NeighborCacheStats exposes the neighbor cache counters and its size.
func (g *Graph) NeighborCacheStats() cache.Stats {
	st := g.neighbors.Stats()
	st.Entries = g.neighbors.Len()
	return st
}

// ClearNeighborCache empties the neighbor cache and resets its counters.
func (g *Graph) ClearNeighborCache() {
	g.neighbors.Clear()
}

func sortCities(cs []model.City) {
	sort.Slice(cs, func(i, j int) bool { return cs[i] < cs[j] })
}

// Source produces the full set of segments a Graph is built from.
type Source interface {
	Edges(ctx context.Context) ([]model.Edge, error)
}

// Load builds a Graph from src. Either every segment is loaded or no Graph is
// returned.
func Load(ctx context.Context, src Source, opts ...Option) (*Graph, error) {
	edges, err := src.Edges(ctx)
	if err != nil {
		return nil, err
	}
	return FromEdges(edges, opts...)
}
