package health

import (
	"errors"
	"metrics_demo_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (hrm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	healthStatus := hrm.healthService.GetServerHealthStatus()
	gecho.Success(w,
		gecho.WithData(healthStatus),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	dbHealthStatus, err := hrm.healthService.GetDatabaseHealthStatus(r.Context())
	if err != nil {
		dependencyUnavailable(w, "Database", err)
		return
	}
	gecho.Success(w,
		gecho.WithData(dbHealthStatus),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetCacheHealth(w http.ResponseWriter, r *http.Request) {
	cacheHealthStatus, err := hrm.healthService.GetCacheHealthStatus(r.Context())
	if err != nil {
		dependencyUnavailable(w, "Cache", err)
		return
	}
	gecho.Success(w,
		gecho.WithData(cacheHealthStatus),
		gecho.Send(),
	)
}

func dependencyUnavailable(w http.ResponseWriter, name string, err error) {
	msg := name + " health check failed"
	if errors.Is(err, lib.ErrNotConfigured) {
		msg = name + " is not configured"
	}
	gecho.ServiceUnavailable(w,
		gecho.WithMessage(msg),
		gecho.Send(),
	)
}
