package health

import (
	"metrics_demo_server/handling"
	"metrics_demo_server/metrics"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// GetMetrics serves the current snapshot in the Prometheus text format.
func (hrm *HealthRoutesManager) GetMetrics(w http.ResponseWriter, r *http.Request) {
	snapshot, err := hrm.metrics.Snapshot()
	if err != nil {
		_ = handling.HandleError(err, "failed to render metrics", hrm.logger, w)
		return
	}

	w.Header().Set("Content-Type", metrics.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(snapshot); err != nil {
		hrm.logger.Debug("Failed to write metrics", gecho.Field("error", err))
	}
}
