package health

import (
	"metrics_demo_server/metrics"
	"metrics_demo_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type HealthRoutesManager struct {
	logger        *gecho.Logger
	healthService *services.HealthService
	metrics       *metrics.Registry
}

func NewHealthRoutesManager(logger *gecho.Logger, healthService *services.HealthService, registry *metrics.Registry) *HealthRoutesManager {
	return &HealthRoutesManager{
		logger:        logger,
		healthService: healthService,
		metrics:       registry,
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/health/server", hrm.GetServerHealth)
	r.Get("/health/database", hrm.GetDatabaseHealth)
	r.Get("/health/cache", hrm.GetCacheHealth)

	// Prometheus scrape endpoint
	r.Get("/metrics", hrm.GetMetrics)
}
