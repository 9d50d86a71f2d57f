package model

import (
	"errors"
	"fmt"
)

// ErrNotInteger is returned by ParseDistance for text that is not a
// non-negative base-10 integer.
var ErrNotInteger = errors.New("model: distance is not an integer")

// City is an opaque label. Two cities are the same iff their labels are
// byte-for-byte equal.
type City string

// Distance is a road length in kilometers.
type Distance int

// Edge is a one-way road segment.
type Edge struct {
	From     City     `json:"from"`
	To       City     `json:"to"`
	Distance Distance `json:"distance"`
}

// Route is the ordered list of cities a trip passes through. A trip from a
// city to itself is the two element route [c, c].
type Route []City

// SelfRoute reports whether r is the degenerate departure == destination route.
func (r Route) SelfRoute() bool {
	return len(r) == 2 && r[0] == r[1]
}

// MaxDistance is the largest representable distance.
const MaxDistance = Distance(int(^uint(0) >> 1))

// Add returns d+w for non-negative distances, or false when the sum exceeds
// MaxDistance.
func (d Distance) Add(w Distance) (Distance, bool) {
	if w > MaxDistance-d {
		return 0, false
	}
	return d + w, true
}

// ParseDistance accepts only ASCII digits: no sign, no spaces, no decimals.
func ParseDistance(s string) (Distance, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	var d int
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
		}
		digit := int(c - '0')
		if d > (int(MaxDistance)-digit)/10 {
			return 0, fmt.Errorf("%w: %q overflows", ErrNotInteger, s)
		}
		d = d*10 + digit
	}
	return Distance(d), nil
}

type RouteResponse struct {
	Path          []City   `json:"path"`
	Total         Distance `json:"total"`
	ExploredNodes int      `json:"explored_nodes"`
}
