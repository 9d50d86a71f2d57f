package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atharv3903/roadtrip/internal/model"
)

// ErrInvalidRow is returned when a road_segments row cannot become a segment.
var ErrInvalidRow = errors.New("db: invalid road segment row")

// Store reads road segments from a MySQL table:
//
//	CREATE TABLE road_segments (
//	    departure   VARCHAR(255) NOT NULL,
//	    destination VARCHAR(255) NOT NULL,
//	    distance_km INT NOT NULL,
//	    PRIMARY KEY (departure, destination)
//	);
type Store struct {
	DB *sql.DB
}

// Edges returns every row of road_segments. A negative distance fails the
// whole read.
func (s Store) Edges(ctx context.Context) ([]model.Edge, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT departure, destination, distance_km
        FROM road_segments
        ORDER BY departure, destination
    `)
	if err != nil {
		return nil, fmt.Errorf("db: query road_segments: %w", err)
	}
	defer rows.Close()

	edges := make([]model.Edge, 0, 64)
	row := 0
	for rows.Next() {
		row++
		var from, to string
		var dist int64

		if err := rows.Scan(&from, &to, &dist); err != nil {
			return nil, fmt.Errorf("db: scan row %d: %w", row, err)
		}
		if dist < 0 {
			return nil, fmt.Errorf("db: row %d (%s -> %s): %w: negative distance %d",
				row, from, to, ErrInvalidRow, dist)
		}

		edges = append(edges, model.Edge{
			From:     model.City(from),
			To:       model.City(to),
			Distance: model.Distance(dist),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db: iterate road_segments: %w", err)
	}

	return edges, nil
}
