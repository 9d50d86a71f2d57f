// Package records reads road segment files. Each line is
//
//	departure;destination;distance
//
// with distance a non-negative integer number of kilometers. Trailing
// whitespace is ignored; a blank line is malformed.
package records

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/atharv3903/roadtrip/internal/model"
)

// ErrMalformedInput is wrapped by every parse failure.
var ErrMalformedInput = errors.New("records: malformed input")

const separator = ";"

// LineError reports the first offending line of a record file.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() []error {
	return []error{ErrMalformedInput, e.Err}
}

// Read parses every record in r. It returns no edges at all if any line is
// malformed.
func Read(r io.Reader) ([]model.Edge, error) {
	var edges []model.Edge
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRightFunc(sc.Text(), unicode.IsSpace)
		e, err := ParseLine(text)
		if err != nil {
			return nil, &LineError{Line: line, Text: text, Err: err}
		}
		edges = append(edges, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("records: read: %w", err)
	}
	return edges, nil
}

// ParseLine parses a single departure;destination;distance record.
func ParseLine(text string) (model.Edge, error) {
	fields := strings.Split(text, separator)
	if len(fields) != 3 {
		return model.Edge{}, fmt.Errorf("want 3 fields, got %d", len(fields))
	}
	d, err := model.ParseDistance(fields[2])
	if err != nil {
		return model.Edge{}, err
	}
	return model.Edge{From: model.City(fields[0]), To: model.City(fields[1]), Distance: d}, nil
}

// ReadFile opens and parses the record file at path.
func ReadFile(path string) ([]model.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("records: %w", err)
	}
	defer f.Close()

	edges, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return edges, nil
}

// Write renders edges in the record format, one per line.
func Write(w io.Writer, edges []model.Edge) error {
	bw := bufio.NewWriter(w)
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%s;%s;%d\n", e.From, e.To, e.Distance); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// File is a record file usable as a graph.Source.
type File string

// Edges reads the whole file.
func (f File) Edges(ctx context.Context) ([]model.Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(string(f))
}
