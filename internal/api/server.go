package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atharv3903/roadtrip/internal/algo"
	"github.com/atharv3903/roadtrip/internal/graph"
	"github.com/atharv3903/roadtrip/internal/metrics"
	"github.com/atharv3903/roadtrip/internal/model"
)

const requestIDHeader = "X-Request-ID"

// Server exposes a Graph over HTTP. Handlers take mu for their whole
// duration, so the graph only ever sees one operation at a time.
type Server struct {
	Router   *mux.Router
	mu       sync.Mutex
	g        *graph.Graph
	strategy algo.Strategy
	log      *slog.Logger
}

func New(g *graph.Graph, strategy algo.Strategy, log *slog.Logger) *Server {
	s := &Server{
		Router:   mux.NewRouter().UseEncodedPath(),
		g:        g,
		strategy: strategy,
		log:      log,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.Router.Use(s.requestLogger)

	s.Router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	s.Router.HandleFunc("/route", s.handleRoute).Methods(http.MethodGet)
	s.Router.HandleFunc("/cities", s.handleCities).Methods(http.MethodGet)
	s.Router.HandleFunc("/cities/{city}/neighbors", s.handleNeighbors).Methods(http.MethodGet)
	s.Router.HandleFunc("/segments", s.handleSegments).Methods(http.MethodGet)
	s.Router.HandleFunc("/segments", s.handleAddSegment).Methods(http.MethodPut)
	s.Router.HandleFunc("/segments/{from}/{to}", s.handleRemoveSegment).Methods(http.MethodDelete)

	s.Router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.Router.HandleFunc("/debug/neighborcache_stats", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		stats := s.g.NeighborCacheStats()
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, stats)
	}).Methods(http.MethodGet)
	s.Router.HandleFunc("/debug/clear_neighborcache", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		s.g.ClearNeighborCache()
		s.mu.Unlock()
		w.Write([]byte("cleared"))
	}).Methods(http.MethodGet, http.MethodPost)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			slog.String("id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("took", time.Since(start)))
	})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("from") || !q.Has("to") {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}
	from, to := model.City(q.Get("from")), model.City(q.Get("to"))

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	res := algo.Search(s.g, from, to, algo.WithStrategy(s.strategy))
	metrics.ObserveRoute(s.strategy, res, time.Since(start))

	if !res.Found {
		writeError(w, http.StatusNotFound, "no route")
		return
	}

	total, err := algo.Total(s.g, res.Route)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.RouteResponse{
		Path:          res.Route,
		Total:         total,
		ExploredNodes: res.Explored,
	})
}

func (s *Server) handleCities(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.g.Cities())
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	city, err := pathCity(r, "city")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.g.HasCity(city) {
		writeError(w, http.StatusNotFound, "unknown city")
		return
	}
	writeJSON(w, http.StatusOK, s.g.EdgesFrom(city))
}

func (s *Server) handleSegments(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	edges := s.g.Edges()
	if edges == nil {
		edges = []model.Edge{}
	}
	writeJSON(w, http.StatusOK, edges)
}

func (s *Server) handleAddSegment(w http.ResponseWriter, r *http.Request) {
	var req model.Edge
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.g.AddEdge(req.From, req.To, req.Distance)
	metrics.ObserveMutation("add", err)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleRemoveSegment(w http.ResponseWriter, r *http.Request) {
	from, err := pathCity(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := pathCity(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.g.RemoveEdge(from, to)
	metrics.ObserveMutation("remove", err)
	switch {
	case errors.Is(err, graph.ErrUnknownCity), errors.Is(err, graph.ErrMissingEdge):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// pathCity decodes a city path variable. The router matches on the escaped
// path, so a city containing "/" arrives as %2F.
func pathCity(r *http.Request, name string) (model.City, error) {
	v, err := url.PathUnescape(mux.Vars(r)[name])
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return model.City(v), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
