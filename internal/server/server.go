// Package server exposes the simulation engine over a stateless HTTP API.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bolide-group/impact-cli/internal/impact"
)

// Server wires the simulator and city index provider into HTTP handlers.
// It holds no per-request state; one Server serves all requests.
type Server struct {
	sim      *impact.Simulator
	provider impact.IndexProvider
	origins  []string
	log      *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins restricts browser origins. The default allows any origin.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// New creates a Server. The provider backs the city endpoints and the
// simulator's population aggregation; it may be nil for a physics-only API.
func New(sim *impact.Simulator, provider impact.IndexProvider, opts ...Option) *Server {
	s := &Server{
		sim:      sim,
		provider: provider,
		origins:  []string{"*"},
		log:      zap.L().With(zap.String("component", "server")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with CORS, request IDs and request logging.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/simulate", s.handleSimulate)
		r.Get("/simulate/geojson", s.handleSimulateGeoJSON)
		r.Get("/cities/nearest", s.handleNearest)
		r.Get("/cities/search", s.handleSearch)
		r.Get("/dataset/status", s.handleDatasetStatus)
	})

	return r
}

// requestLogger tags each request with an ID and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
