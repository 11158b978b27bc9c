package middleware

import (
	"metrics_demo_server/metrics"
	"metrics_demo_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	cfg     *structs.Config
	logger  *gecho.Logger
	metrics *metrics.Registry
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, registry *metrics.Registry) *Middleware {
	return &Middleware{
		cfg:     cfg,
		logger:  logger,
		metrics: registry,
	}
}
