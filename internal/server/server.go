// Package server exposes the dashboard pipeline over a read-only HTTP
// API. Every request rebuilds the model from the latest stored
// snapshot; there is no server-side filter state.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/freight-audit/internal/assistant"
	"github.com/sells-group/freight-audit/internal/dashboard"
	"github.com/sells-group/freight-audit/internal/model"
	"github.com/sells-group/freight-audit/internal/normalize"
	"github.com/sells-group/freight-audit/internal/store"
)

// Options configures the server.
type Options struct {
	AllowedOrigins []string
	Limits         dashboard.Limits
	AssistantTop   int
	Mapping        normalize.ColumnMapping
}

// Server serves dashboard builds from the snapshot store.
type Server struct {
	store store.Store
	opts  Options
}

// New creates a Server. A nil mapping falls back to the default column
// binding.
func New(st store.Store, opts Options) *Server {
	if opts.Mapping == nil {
		opts.Mapping = normalize.DefaultMapping()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{store: st, opts: opts}
}

// Router builds the chi handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/api/dashboard", s.handleDashboard)
	r.Get("/api/assistant/context", s.handleAssistantContext)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, _, err := s.build(r)
	if err != nil {
		zap.L().Error("server: dashboard build failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build dashboard"})
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleAssistantContext(w http.ResponseWriter, r *http.Request) {
	d, filters, err := s.build(r)
	if err != nil {
		zap.L().Error("server: assistant context build failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build assistant context"})
		return
	}
	writeJSON(w, http.StatusOK, assistant.Summarize(d, filters, s.opts.AssistantTop))
}

func (s *Server) build(r *http.Request) (*model.Dashboard, model.FilterState, error) {
	filters := filtersFromQuery(r)

	snap, err := s.store.LatestSnapshot(r.Context())
	if err != nil {
		return nil, filters, err
	}

	var rows []model.DiversionRow
	if snap != nil {
		rows = normalize.Batch(snap.Rows, s.opts.Mapping)
	}

	return dashboard.Build(rows, filters, s.opts.Limits), filters, nil
}

// filtersFromQuery decodes the filter state from query parameters.
// Unset parameters keep their defaults; malformed numeric or boolean
// values are ignored rather than rejected.
func filtersFromQuery(r *http.Request) model.FilterState {
	q := r.URL.Query()
	filters := model.DefaultFilters()

	filters.DateFrom = q.Get("date_from")
	filters.DateTo = q.Get("date_to")
	filters.Branch = q.Get("branch")
	filters.Consignee = q.Get("consignee")

	if v := q.Get("min_freight_impact"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinFreightImpact = f
		}
	}
	if v := q.Get("only_diversions"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filters.OnlyDiversions = b
		}
	}

	return filters
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}
