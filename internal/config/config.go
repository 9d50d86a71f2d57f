package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"github.com/atharv3903/roadtrip/internal/algo"
	"github.com/atharv3903/roadtrip/internal/cache"
)

type Config struct {
	File          string
	MySQLDSN      string
	Addr          string
	Strategy      algo.Strategy
	NeighborCache int
	LogLevel      slog.Level
	Dump          bool
}

// LoadEnv merges variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: %s: %w", f, err)
		}
	}
	return nil
}

// FromFlags parses args (without the program name). Flags default to the
// ROADTRIP_* and DB_DSN environment variables.
func FromFlags(name string, args []string) (Config, error) {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.SetOutput(io.Discard)

	cacheDefault := cache.DefaultNeighborCapacity
	if v := os.Getenv("ROADTRIP_NEIGHBOR_CACHE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: ROADTRIP_NEIGHBOR_CACHE: %w", err)
		}
		cacheDefault = n
	}

	var cfg Config
	var strategy, level string
	set.StringVar(&cfg.File, "file", os.Getenv("ROADTRIP_FILE"), "road segment file (departure;destination;distance)")
	set.StringVar(&cfg.MySQLDSN, "dsn", os.Getenv("DB_DSN"), "MySQL DSN, used when -file is empty")
	set.StringVar(&cfg.Addr, "addr", envOr("ROADTRIP_ADDR", ":8080"), "HTTP bind address")
	set.StringVar(&strategy, "strategy", envOr("ROADTRIP_STRATEGY", "heap"), "route search strategy: heap or scan")
	set.IntVar(&cfg.NeighborCache, "neighbor-cache", cacheDefault, "neighbor list LRU capacity")
	set.BoolVar(&cfg.Dump, "dump", false, "write the loaded segments to stdout as records and exit")
	set.StringVar(&level, "log-level", envOr("ROADTRIP_LOG_LEVEL", "info"), "debug, info, warn or error")

	if err := set.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	s, err := algo.ParseStrategy(strategy)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Strategy = s

	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return Config{}, fmt.Errorf("config: log level: %w", err)
	}

	if cfg.MySQLDSN != "" {
		if _, err := mysql.ParseDSN(cfg.MySQLDSN); err != nil {
			return Config{}, fmt.Errorf("config: dsn: %w", err)
		}
	}

	return cfg, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
