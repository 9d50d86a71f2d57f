package algo

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("algo: unknown strategy")

// Strategy selects how the frontier is searched for its closest city.
type Strategy int

const (
	// Heap keeps the frontier in a binary heap (lazy decrease-key).
	Heap Strategy = iota
	// Scan rescans every finalized city's segments each round.
	Scan
)

func (s Strategy) String() string {
	switch s {
	case Heap:
		return "heap"
	case Scan:
		return "scan"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "heap" or "scan" to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "heap":
		return Heap, nil
	case "scan":
		return Scan, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

type options struct {
	strategy Strategy
}

// Option configures a single search.
type Option func(*options)

// WithStrategy picks the frontier strategy. The default is Heap.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}
