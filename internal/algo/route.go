package algo

import (
	"errors"
	"fmt"

	"github.com/atharv3903/roadtrip/internal/model"
)

// ErrBrokenRoute is returned by Total when two consecutive cities of a route
// are not joined by a segment.
var ErrBrokenRoute = errors.New("algo: route uses a missing segment")

// ErrDistanceOverflow is returned by Total when the route is longer than
// model.MaxDistance.
var ErrDistanceOverflow = errors.New("algo: route distance overflows")

// Total sums the segment distances along r. The self-route [c, c] is 0 km
// without looking up any segment.
func Total(g Graph, r model.Route) (model.Distance, error) {
	if r.SelfRoute() {
		return 0, nil
	}
	var total model.Distance
	for i := 0; i+1 < len(r); i++ {
		w, ok := g.Weight(r[i], r[i+1])
		if !ok {
			return 0, fmt.Errorf("%w: %q -> %q", ErrBrokenRoute, r[i], r[i+1])
		}
		if total, ok = total.Add(w); !ok {
			return 0, fmt.Errorf("%w: at %q -> %q", ErrDistanceOverflow, r[i], r[i+1])
		}
	}
	return total, nil
}
