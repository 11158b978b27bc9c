package demo

import (
	"metrics_demo_server/handling"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type DemoRoutesManager struct {
	logger    *gecho.Logger
	slowDelay time.Duration
}

func NewDemoRoutesManager(logger *gecho.Logger, slowDelay time.Duration) *DemoRoutesManager {
	return &DemoRoutesManager{
		logger:    logger,
		slowDelay: slowDelay,
	}
}

func (drm *DemoRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/", handling.Handle(drm.logger, drm.Root))
	r.Get("/slow", handling.Handle(drm.logger, drm.Slow))
	r.Get("/error", handling.Handle(drm.logger, drm.Error))
}
