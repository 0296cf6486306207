package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courtmetrics/echelon/internal/config"
	"github.com/courtmetrics/echelon/internal/pareto"
	"github.com/courtmetrics/echelon/internal/store"
)

// Runner is the slice of the engine the API needs; the concrete type lives
// in internal/engine.
type Runner interface {
	Run(ctx context.Context, mode string) (*store.AnalysisRun, error)
	RunAll(ctx context.Context) ([]*store.AnalysisRun, error)
	Modes() []pareto.DimensionSet
}

func NewRouter(s store.Store, runner Runner, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	runs := NewRunsHandler(s, runner)
	results := NewResultsHandler(s, cfg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/runs", runs.Trigger)
		r.Get("/runs", runs.List)
		r.Get("/runs/{id}", runs.Get)

		r.Get("/modes", results.Modes)
		r.Get("/results/{mode}", results.Get)
		r.Get("/results/{mode}/dag", results.GetDAG)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Get("/stats", runs.Stats)
			r.Post("/runs/all", runs.TriggerAll)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
