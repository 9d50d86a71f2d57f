package algo

import (
	"container/heap"

	"github.com/atharv3903/roadtrip/internal/model"
)

// Result is the outcome of one route search.
type Result struct {
	Route    model.Route
	Total    model.Distance
	Explored int // cities finalized before the search stopped
	Found    bool
}

// FindRoute returns the shortest route from departure to destination, or
// false when no route exists. A departure without outgoing segments never
// has a route, unless departure == destination: that query always yields
// [departure, departure].
func FindRoute(g Graph, departure, destination model.City, opts ...Option) (model.Route, bool) {
	res := Search(g, departure, destination, opts...)
	return res.Route, res.Found
}

// Search runs a uniform-cost search from departure that stops as soon as
// destination is finalized. Paths longer than model.MaxDistance are never
// extended.
func Search(g Graph, departure, destination model.City, opts ...Option) Result {
	if departure == destination {
		return Result{Route: model.Route{departure, destination}, Found: true}
	}

	o := options{strategy: Heap}
	for _, opt := range opts {
		opt(&o)
	}

	var s *search
	switch o.strategy {
	case Scan:
		s = scan(g, departure, destination)
	default:
		s = dijkstra(g, departure, destination)
	}

	total, ok := s.dist[destination]
	if !ok {
		return Result{Explored: s.explored}
	}
	return Result{
		Route:    s.route(departure, destination),
		Total:    total,
		Explored: s.explored,
		Found:    true,
	}
}

// search holds the finalized distances and predecessor links of one query.
// Only finalized cities have an entry in dist.
type search struct {
	dist     map[model.City]model.Distance
	prev     map[model.City]model.City
	explored int
}

func newSearch(departure model.City) *search {
	return &search{
		dist: map[model.City]model.Distance{departure: 0},
		prev: map[model.City]model.City{},
	}
}

func (s *search) finalize(city, from model.City, d model.Distance) {
	s.dist[city] = d
	s.prev[city] = from
	s.explored++
}

// route walks predecessor links back from destination. The departure has no
// predecessor entry, which ends the walk.
func (s *search) route(departure, destination model.City) model.Route {
	r := model.Route{destination}
	for cur := destination; cur != departure; {
		cur = s.prev[cur]
		r = append(r, cur)
	}
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return r
}

type pqItem struct {
	city model.City
	from model.City
	dist model.Distance
}

type pq []pqItem

func (p pq) Len() int { return len(p) }
func (p pq) Less(i, j int) bool {
	if p[i].dist != p[j].dist {
		return p[i].dist < p[j].dist
	}
	return p[i].city < p[j].city
}
func (p pq) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p *pq) Push(x any) {
	*p = append(*p, x.(pqItem))
}

func (p *pq) Pop() any {
	old := *p
	n := len(old)
	item := old[n-1]
	*p = old[:n-1]
	return item
}

// dijkstra keeps tentative distances in a heap. Stale entries for already
// finalized cities are skipped when popped.
func dijkstra(g Graph, departure, destination model.City) *search {
	s := newSearch(departure)
	s.explored = 1
	tentative := map[model.City]model.Distance{}
	q := &pq{}

	relax := func(u model.City) {
		du := s.dist[u]
		for _, v := range g.Neighbors(u) {
			if _, done := s.dist[v]; done {
				continue
			}
			w, ok := g.Weight(u, v)
			if !ok {
				continue
			}
			nd, ok := du.Add(w)
			if !ok {
				continue
			}
			if old, seen := tentative[v]; seen && nd >= old {
				continue
			}
			tentative[v] = nd
			heap.Push(q, pqItem{city: v, from: u, dist: nd})
		}
	}

	relax(departure)
	for q.Len() > 0 {
		cur := heap.Pop(q).(pqItem)
		if _, done := s.dist[cur.city]; done {
			continue
		}
		s.finalize(cur.city, cur.from, cur.dist)
		if cur.city == destination {
			break
		}
		relax(cur.city)
	}
	return s
}
