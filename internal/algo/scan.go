package algo

import "github.com/atharv3903/roadtrip/internal/model"

type candidate struct {
	from, to model.City
	dist     model.Distance
}

// scan grows the finalized set one city per round. Each round looks at every
// segment from a finalized city to a non-finalized one and finalizes the
// endpoint with the smallest total distance. The first minimum found wins,
// visiting finalized cities in the order they were finalized and their
// neighbors in sorted order.
func scan(g Graph, departure, destination model.City) *search {
	s := newSearch(departure)
	s.explored = 1
	order := []model.City{departure}

	for {
		if _, done := s.dist[destination]; done {
			return s
		}

		var best candidate
		found := false
		for _, u := range order {
			du := s.dist[u]
			for _, v := range g.Neighbors(u) {
				if _, done := s.dist[v]; done {
					continue
				}
				w, ok := g.Weight(u, v)
				if !ok {
					continue
				}
				d, ok := du.Add(w)
				if !ok {
					continue
				}
				if !found || d < best.dist {
					best = candidate{from: u, to: v, dist: d}
					found = true
				}
			}
		}
		if !found {
			return s
		}

		s.finalize(best.to, best.from, best.dist)
		order = append(order, best.to)
	}
}
