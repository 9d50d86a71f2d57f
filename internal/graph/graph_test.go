package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharv3903/roadtrip/internal/cache"
	"github.com/atharv3903/roadtrip/internal/graph"
	"github.com/atharv3903/roadtrip/internal/model"
)

func triangle(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.FromEdges([]model.Edge{
		{From: "A", To: "B", Distance: 5},
		{From: "B", To: "C", Distance: 3},
		{From: "A", To: "C", Distance: 10},
	})
	require.NoError(t, err)
	return g
}

func TestNeighbors(t *testing.T) {
	g := triangle(t)

	assert.Equal(t, []model.City{"B", "C"}, g.Neighbors("A"))
	assert.Equal(t, []model.City{"C"}, g.Neighbors("B"))
	assert.Empty(t, g.Neighbors("C"), "destination-only city has no outgoing segments")
	assert.Empty(t, g.Neighbors("Nowhere"))
}

func TestWeight(t *testing.T) {
	g := triangle(t)

	d, ok := g.Weight("A", "B")
	require.True(t, ok)
	assert.Equal(t, model.Distance(5), d)

	_, ok = g.Weight("B", "A")
	assert.False(t, ok, "segments are one-way")

	_, ok = g.Weight("Nowhere", "A")
	assert.False(t, ok)
}

func TestAddEdge_RoundTrip(t *testing.T) {
	g := graph.New()

	require.NoError(t, g.AddEdge("Oulu", "Kemi", 107))
	d, ok := g.Weight("Oulu", "Kemi")
	require.True(t, ok)
	assert.Equal(t, model.Distance(107), d)
	assert.True(t, g.IsDeparture("Oulu"))
	assert.False(t, g.IsDeparture("Kemi"))
	assert.True(t, g.HasCity("Kemi"))

	// Overwrite keeps a single segment.
	require.NoError(t, g.AddEdge("Oulu", "Kemi", 110))
	d, _ = g.Weight("Oulu", "Kemi")
	assert.Equal(t, model.Distance(110), d)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestAddEdge_NegativeDistance(t *testing.T) {
	g := graph.New()
	err := g.AddEdge("A", "B", -1)
	require.ErrorIs(t, err, graph.ErrNegativeDistance)
	assert.False(t, g.IsDeparture("A"), "failed add must not create the city")
}

func TestRemoveEdge(t *testing.T) {
	g := triangle(t)

	require.NoError(t, g.RemoveEdge("A", "B"))
	_, ok := g.Weight("A", "B")
	assert.False(t, ok)
	assert.Equal(t, []model.City{"C"}, g.Neighbors("A"))
	assert.Equal(t, 2, g.EdgeCount())
}

func TestRemoveEdge_Errors(t *testing.T) {
	g := triangle(t)

	err := g.RemoveEdge("C", "A")
	assert.ErrorIs(t, err, graph.ErrUnknownCity, "C is only a destination")

	err = g.RemoveEdge("B", "A")
	assert.ErrorIs(t, err, graph.ErrMissingEdge)

	assert.Equal(t, 3, g.EdgeCount(), "failed removals leave the graph unchanged")
	assert.False(t, g.IsDeparture("C"), "removal must not create cities")
}

func TestRemoveEdge_DepartureStaysKnown(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.RemoveEdge("A", "B"))

	assert.True(t, g.IsDeparture("A"))
	assert.True(t, g.HasCity("A"))
	assert.False(t, g.HasCity("B"))
	assert.Empty(t, g.Neighbors("A"))
	assert.Equal(t, []model.City{"A"}, g.Departures())
}

func TestCitiesAndEdges(t *testing.T) {
	g := triangle(t)

	assert.Equal(t, []model.City{"A", "B", "C"}, g.Cities())
	assert.Equal(t, []model.City{"A", "B"}, g.Departures())
	assert.Equal(t, []model.Edge{
		{From: "A", To: "B", Distance: 5},
		{From: "A", To: "C", Distance: 10},
		{From: "B", To: "C", Distance: 3},
	}, g.Edges())
	assert.Equal(t, []model.Edge{{From: "B", To: "C", Distance: 3}}, g.EdgesFrom("B"))
	assert.Empty(t, g.EdgesFrom("C"))
}

func TestFromEdges_Duplicates(t *testing.T) {
	g, err := graph.FromEdges([]model.Edge{
		{From: "A", To: "B", Distance: 1},
		{From: "A", To: "B", Distance: 7},
	})
	require.NoError(t, err)
	d, _ := g.Weight("A", "B")
	assert.Equal(t, model.Distance(7), d)
}

func TestFromEdges_FailsAsAWhole(t *testing.T) {
	g, err := graph.FromEdges([]model.Edge{
		{From: "A", To: "B", Distance: 1},
		{From: "B", To: "C", Distance: -4},
	})
	require.ErrorIs(t, err, graph.ErrNegativeDistance)
	assert.Nil(t, g)
}

func TestNeighbors_CacheInvalidatedOnMutation(t *testing.T) {
	c := cache.NewNeighborCache(8)
	g := graph.New(graph.WithNeighborCache(c))
	require.NoError(t, g.AddEdge("A", "B", 1))

	assert.Equal(t, []model.City{"B"}, g.Neighbors("A"))
	assert.Equal(t, []model.City{"B"}, g.Neighbors("A"))
	assert.Equal(t, 1, g.NeighborCacheStats().Hits)

	require.NoError(t, g.AddEdge("A", "0", 2))
	assert.Equal(t, []model.City{"0", "B"}, g.Neighbors("A"))

	require.NoError(t, g.RemoveEdge("A", "B"))
	assert.Equal(t, []model.City{"0"}, g.Neighbors("A"))
}

func TestClearNeighborCache(t *testing.T) {
	g := graph.New(graph.WithNeighborCache(cache.NewNeighborCache(8)))
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("B", "C", 1))
	g.Neighbors("A")
	g.Neighbors("A")
	g.Neighbors("B")

	st := g.NeighborCacheStats()
	assert.Equal(t, 2, st.Entries)
	assert.InDelta(t, 1.0/3, st.HitRate(), 1e-9)

	g.ClearNeighborCache()
	assert.Equal(t, cache.Stats{}, g.NeighborCacheStats())
	assert.Equal(t, []model.City{"B"}, g.Neighbors("A"))
}
