package services

import (
	"metrics_demo_server/database"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CacheService  *CacheService
	HealthService *HealthService
}

// NewServiceManager wires the services. db and cache may be nil when the
// corresponding dependency is disabled.
func NewServiceManager(logger *gecho.Logger, db *database.DB, cache *CacheService) *ServiceManager {
	healthService := NewHealthService(logger)
	if db != nil {
		healthService.WithDatabase(db)
	}
	if cache != nil {
		healthService.WithCache(cache)
	}

	return &ServiceManager{
		CacheService:  cache,
		HealthService: healthService,
	}
}
