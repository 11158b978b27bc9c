package api

import (
	"metrics_demo_server/api/middleware"
	"metrics_demo_server/config"
	"metrics_demo_server/handling"
	"metrics_demo_server/lib"
	"metrics_demo_server/metrics"
	"metrics_demo_server/services"
	"metrics_demo_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App(cfg *structs.Config, registry *metrics.Registry, svc *services.ServiceManager) chi.Router {
	r := chi.NewRouter()

	// create loggers
	mwLogger := config.InitializeRequestLogger(cfg)
	standardLogger := config.InitializeLogger(cfg)

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, registry)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)

	// Observability. Metrics wraps everything below so it sees the status
	// written by recovered panics and short-circuiting middleware.
	r.Use(mw.Metrics())
	r.Use(mw.SetupLoggerMiddleware())
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(mw.SecurityHeaders())
	r.Use(mw.SetupCORS().Handler)

	// Register all routes
	NewRouterManager(standardLogger, cfg, registry, svc).RegisterRoutes(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = handling.HandleError(lib.NewHTTPError(http.StatusMethodNotAllowed, ""), "method not allowed", standardLogger, w)
	})

	return r
}
