package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"

	_ "github.com/go-sql-driver/mysql"

	"github.com/atharv3903/roadtrip/internal/api"
	"github.com/atharv3903/roadtrip/internal/cache"
	"github.com/atharv3903/roadtrip/internal/config"
	"github.com/atharv3903/roadtrip/internal/db"
	"github.com/atharv3903/roadtrip/internal/graph"
	"github.com/atharv3903/roadtrip/internal/records"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := config.LoadEnv(); err != nil {
		log.Error("env", slog.Any("err", err))
		os.Exit(2)
	}
	cfg, err := config.FromFlags("server", os.Args[1:])
	if err != nil {
		log.Error("config", slog.Any("err", err))
		os.Exit(2)
	}
	log = cfg.Logger(os.Stderr)

	var src graph.Source
	switch {
	case cfg.File != "":
		src = records.File(cfg.File)
	case cfg.MySQLDSN != "":
		conn, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Error("open database", slog.Any("err", err))
			os.Exit(1)
		}
		defer conn.Close()
		src = db.Store{DB: conn}
	default:
		log.Error("no road source: set -file or -dsn")
		os.Exit(2)
	}

	g, err := graph.Load(context.Background(), src,
		graph.WithNeighborCache(cache.NewNeighborCache(cfg.NeighborCache)))
	if err != nil {
		log.Error("load graph", slog.Any("err", err))
		os.Exit(1)
	}

	srv := api.New(g, cfg.Strategy, log)

	log.Info("roadtrip listening",
		slog.String("addr", cfg.Addr),
		slog.Int("segments", g.EdgeCount()),
		slog.String("strategy", cfg.Strategy.String()))
	if err := http.ListenAndServe(cfg.Addr, srv); err != nil {
		log.Error("serve", slog.Any("err", err))
		os.Exit(1)
	}
}
