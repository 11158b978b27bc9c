package api

import (
	"metrics_demo_server/api/demo"
	"metrics_demo_server/api/health"
	"metrics_demo_server/metrics"
	"metrics_demo_server/services"
	"metrics_demo_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	demoRoutes   *demo.DemoRoutesManager
	healthRoutes *health.HealthRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	registry *metrics.Registry,
	svc *services.ServiceManager,
) *routerManager {
	return &routerManager{
		demoRoutes:   demo.NewDemoRoutesManager(logger, cfg.Demo.SlowDelay),
		healthRoutes: health.NewHealthRoutesManager(logger, svc.HealthService, registry),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.demoRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
