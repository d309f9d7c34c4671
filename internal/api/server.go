// internal/api/server.go

// Package api exposes the admission analysis pipeline over REST for clients
// that do not go through the Camunda workflow: synchronous analysis, analysis
// lookup, and college autocomplete. Handlers reuse the same validation,
// engine, store queries, and cache shapes as the workers, so both surfaces
// stay interchangeable.
package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"admission-workers/internal/common/config"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/engine"
	validateprofile "admission-workers/internal/workers/analysis/validate-profile"
)

type Server struct {
	config    *config.Config
	logger    logger.Logger
	db        *sql.DB
	redis     *redis.Client
	es        *elasticsearch.Client
	engine    *engine.Engine
	validator *validateprofile.Handler
	cacheTTL  time.Duration
}

// Dependencies carries the shared clients. DB, Redis, and ES may each be
// nil; the affected endpoints degrade instead of refusing to start.
type Dependencies struct {
	DB     *sql.DB
	Redis  *redis.Client
	ES     *elasticsearch.Client
	Logger logger.Logger
}

func NewServer(cfg *config.Config, deps Dependencies) *Server {
	log := deps.Logger.WithFields(map[string]interface{}{"component": "api"})

	cacheTTL := 60 * time.Minute
	if cfg.Analysis.CacheTTLMinutes > 0 {
		cacheTTL = time.Duration(cfg.Analysis.CacheTTLMinutes) * time.Minute
	}

	return &Server{
		config: cfg,
		logger: log,
		db:     deps.DB,
		redis:  deps.Redis,
		es:     deps.ES,
		engine: engine.New(engine.Options{
			CurrentYear: cfg.Analysis.CurrentYear,
			Logger:      log,
		}),
		validator: validateprofile.NewHandler(validateprofile.LoadConfig(), deps.Logger),
		cacheTTL:  cacheTTL,
	}
}

// Routes assembles the router. Auth wraps only the /v1 surface; health and
// metrics stay open for probes and scrapers.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.requestLogger)

	origins := s.config.HTTP.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		if s.config.HTTP.Auth.Enabled && s.config.HTTP.Auth.JWTSecret != "" {
			v1.Use(s.bearerAuth())
		}
		v1.Post("/analyses", s.handleCreateAnalysis)
		v1.Get("/analyses/{analysisID}", s.handleGetAnalysis)
		v1.Get("/colleges/search", s.handleSearchColleges)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
