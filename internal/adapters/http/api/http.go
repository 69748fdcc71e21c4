// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/curvecast/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the app implementation.
type Dependencies interface {
	// BuildSnapshot advances the curve by one tick and returns the
	// assembled snapshot.
	BuildSnapshot(ctx context.Context) (model.Snapshot, error)

	// Stream publishes one snapshot per tick until ctx is cancelled.
	Stream(ctx context.Context, interval time.Duration) (<-chan model.Snapshot, <-chan error, error)

	// RecentSnapshots returns up to limit snapshots from the history
	// store, newest first.
	RecentSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error)
}

// Server wires HTTP routes for the curve API.
type Server struct {
	streamHandler    *StreamHandler
	latestHandler    *LatestHandler
	historyHandler   *HistoryHandler
	healthHandler    *HealthHandler
	metaHandler      *MetaHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := serverConfig{defaultInterval: time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		streamHandler:    NewStreamHandler(deps, cfg.defaultInterval),
		latestHandler:    NewLatestHandler(deps),
		historyHandler:   NewHistoryHandler(deps),
		healthHandler:    NewHealthHandler(),
		metaHandler:      NewMetaHandler(cfg.defaultInterval),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: newDashboardHandler(),
	}
}

// serverConfig carries route-level configuration.
type serverConfig struct {
	defaultInterval time.Duration
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverConfig)

// WithDefaultInterval sets the tick interval used when a stream consumer
// does not supply one.
func WithDefaultInterval(d time.Duration) ServerOption {
	return func(c *serverConfig) {
		if d > 0 {
			c.defaultInterval = d
		}
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/curves/stream", CORSMiddleware(MetricsMiddleware(s.streamHandler.HandleStream, "curves_stream")))
	mux.HandleFunc("/curves/latest", CORSMiddleware(MetricsMiddleware(s.latestHandler.HandleLatest, "curves_latest")))
	mux.HandleFunc("/curves/history", CORSMiddleware(MetricsMiddleware(s.historyHandler.HandleHistory, "curves_history")))
	mux.HandleFunc("/health", CORSMiddleware(MetricsMiddleware(s.healthHandler.HandleHealth, "health")))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/", CORSMiddleware(MetricsMiddleware(s.metaHandler.HandleMeta, "root")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
