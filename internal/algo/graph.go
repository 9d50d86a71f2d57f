package algo

import "github.com/atharv3903/roadtrip/internal/model"

// Graph is what the search needs from a road network. *graph.Graph
// satisfies it.
type Graph interface {
	// Neighbors lists the destinations of segments leaving city; empty for
	// unknown cities.
	Neighbors(city model.City) []model.City
	// Weight returns the direct segment distance, if the segment exists.
	Weight(from, to model.City) (model.Distance, bool)
}
