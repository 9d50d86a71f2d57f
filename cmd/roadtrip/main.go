package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/go-sql-driver/mysql"

	"github.com/atharv3903/roadtrip/internal/cache"
	"github.com/atharv3903/roadtrip/internal/cli"
	"github.com/atharv3903/roadtrip/internal/config"
	"github.com/atharv3903/roadtrip/internal/db"
	"github.com/atharv3903/roadtrip/internal/graph"
	"github.com/atharv3903/roadtrip/internal/records"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	cfg, err := config.FromFlags("roadtrip", args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log := cfg.Logger(stderr)

	sh := cli.New(stdin, stdout, cli.WithLogger(log), cli.WithStrategy(cfg.Strategy))

	var src graph.Source
	name := cfg.File
	switch {
	case cfg.File != "":
		src = records.File(cfg.File)
	case cfg.MySQLDSN != "":
		conn, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Error("open database", slog.Any("err", err))
			return 1
		}
		defer conn.Close()
		src = db.Store{DB: conn}
		name = "road_segments"
	default:
		name, err = sh.Prompt("Enter input file name: ")
		if errors.Is(err, io.EOF) {
			return 1
		}
		if err != nil {
			log.Error("read input", slog.Any("err", err))
			return 1
		}
		src = records.File(name)
	}

	g, err := graph.Load(context.Background(), src,
		graph.WithNeighborCache(cache.NewNeighborCache(cfg.NeighborCache)))
	if err != nil {
		log.Debug("load failed", slog.Any("err", err))
		sh.Printf("Error: '%s' can not be read.\n", name)
		return 1
	}
	log.Debug("graph loaded", slog.String("source", name), slog.Int("segments", g.EdgeCount()))

	if cfg.Dump {
		if err := records.Write(stdout, g.Edges()); err != nil {
			log.Error("dump", slog.Any("err", err))
			return 1
		}
		return 0
	}

	if err := sh.Run(g); err != nil {
		log.Error("session", slog.Any("err", err))
		return 1
	}
	return 0
}
