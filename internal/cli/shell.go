// Package cli is the interactive command loop over a road graph.
//
// Actions are chosen by typing any prefix of their name; ties resolve in the
// order display, add, remove, neighbours, route. An empty action ends the
// session.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/atharv3903/roadtrip/internal/algo"
	"github.com/atharv3903/roadtrip/internal/graph"
	"github.com/atharv3903/roadtrip/internal/model"
)

const rowFormat = "%-14s%-14s%5d\n"

// Shell reads answers from in and writes prompts and results to out.
type Shell struct {
	in       *bufio.Scanner
	out      io.Writer
	log      *slog.Logger
	strategy algo.Strategy
	g        *graph.Graph
}

type Option func(*Shell)

// WithLogger sets the logger used for debug traces of each action.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) { s.log = l }
}

// WithStrategy sets the route search strategy.
func WithStrategy(st algo.Strategy) Option {
	return func(s *Shell) { s.strategy = st }
}

func New(in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		in:  bufio.NewScanner(in),
		out: out,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prompt writes label and returns the next input line. It returns io.EOF
// once input is exhausted.
func (s *Shell) Prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// Printf writes to the shell's output.
func (s *Shell) Printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

type action struct {
	name string
	run  func(*Shell) error
}

var actions = []action{
	{"display", (*Shell).display},
	{"add", (*Shell).add},
	{"remove", (*Shell).remove},
	{"neighbours", (*Shell).neighbours},
	{"route", (*Shell).route},
}

// Run executes actions against g until an empty action or end of input.
func (s *Shell) Run(g *graph.Graph) error {
	s.g = g
	for {
		in, err := s.Prompt("Enter action> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if in == "" {
			s.Printf("Done and done!\n")
			return nil
		}

		a, ok := lookup(in)
		if !ok {
			s.Printf("Error: unknown action '%s'.\n", in)
			continue
		}
		s.log.Debug("action", slog.String("input", in), slog.String("action", a.name))
		if err := a.run(s); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func lookup(in string) (action, bool) {
	for _, a := range actions {
		if strings.HasPrefix(a.name, in) {
			return a, true
		}
	}
	return action{}, false
}

func (s *Shell) printEdges(edges []model.Edge) {
	for _, e := range edges {
		s.Printf(rowFormat, e.From, e.To, e.Distance)
	}
}

func (s *Shell) display() error {
	s.printEdges(s.g.Edges())
	return nil
}

func (s *Shell) add() error {
	from, err := s.Prompt("Enter departure city: ")
	if err != nil {
		return err
	}
	to, err := s.Prompt("Enter destination city: ")
	if err != nil {
		return err
	}
	text, err := s.Prompt("Distance: ")
	if err != nil {
		return err
	}

	d, err := model.ParseDistance(text)
	if err != nil {
		s.Printf("Error: '%s' is not an integer.\n", text)
		return nil
	}
	if err := s.g.AddEdge(model.City(from), model.City(to), d); err != nil {
		s.Printf("Error: %v.\n", err)
		return nil
	}
	s.log.Debug("segment added", slog.String("from", from), slog.String("to", to), slog.Int("km", int(d)))
	return nil
}

func (s *Shell) remove() error {
	from, err := s.Prompt("Enter departure city: ")
	if err != nil {
		return err
	}
	if !s.g.IsDeparture(model.City(from)) {
		s.Printf("Error: '%s' is unknown.\n", from)
		return nil
	}
	to, err := s.Prompt("Enter destination city: ")
	if err != nil {
		return err
	}

	err = s.g.RemoveEdge(model.City(from), model.City(to))
	switch {
	case errors.Is(err, graph.ErrMissingEdge):
		s.Printf("Error: missing road segment between '%s' and '%s'.\n", from, to)
	case err != nil:
		s.Printf("Error: %v.\n", err)
	default:
		s.log.Debug("segment removed", slog.String("from", from), slog.String("to", to))
	}
	return nil
}

func (s *Shell) neighbours() error {
	in, err := s.Prompt("Enter departure city: ")
	if err != nil {
		return err
	}
	city := model.City(in)
	switch {
	case s.g.IsDeparture(city):
		s.printEdges(s.g.EdgesFrom(city))
	case !s.g.HasCity(city):
		s.Printf("Error: '%s' is unknown.\n", in)
	}
	return nil
}

func (s *Shell) route() error {
	from, err := s.Prompt("Enter departure city: ")
	if err != nil {
		return err
	}
	if !s.g.HasCity(model.City(from)) {
		s.Printf("Error: '%s' is unknown.\n", from)
		return nil
	}
	to, err := s.Prompt("Enter destination city: ")
	if err != nil {
		return err
	}

	res := algo.Search(s.g, model.City(from), model.City(to), algo.WithStrategy(s.strategy))
	s.log.Debug("route search", slog.String("from", from), slog.String("to", to),
		slog.Bool("found", res.Found), slog.Int("explored", res.Explored))
	if !res.Found {
		s.Printf("No route found between '%s' and '%s'.\n", from, to)
		return nil
	}

	total, err := algo.Total(s.g, res.Route)
	if err != nil {
		return err
	}
	if res.Route.SelfRoute() {
		s.Printf("%s (%d km)\n", join(res.Route), total)
		return nil
	}
	s.Printf("%s (%d km)\n\n", join(res.Route), total)
	return nil
}

func join(r model.Route) string {
	parts := make([]string, len(r))
	for i, c := range r {
		parts[i] = string(c)
	}
	return strings.Join(parts, "-")
}
