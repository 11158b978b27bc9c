package middleware

import (
	"metrics_demo_server/metrics"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

// StatusClientClosedRequest is recorded when the client went away before any
// response was written.
const StatusClientClosedRequest = 499

// Metrics records one counter increment and one latency observation for
// every request, after the wrapped handler has produced its final status.
// It must be installed on the root router so the matched route pattern is
// readable once the handler returns.
func (mw *Middleware) Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chiware.NewWrapResponseWriter(w, r.ProtoMajor)
			completed := false

			// Runs even when a panic escapes the handler chain.
			defer func() {
				endpoint := routeEndpoint(r)
				mw.metrics.RecordRequest(r.Method, endpoint, responseStatus(ww, r, completed))
				mw.metrics.RecordDuration(endpoint, time.Since(start).Seconds())
			}()

			next.ServeHTTP(ww, r)
			completed = true
		})
	}
}

// routeEndpoint returns the chi route pattern that served r. For the
// service's static routes this equals the request path.
func routeEndpoint(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return metrics.UnmatchedEndpoint
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return metrics.UnmatchedEndpoint
}

func responseStatus(ww chiware.WrapResponseWriter, r *http.Request, completed bool) int {
	if status := ww.Status(); status != 0 {
		return status
	}
	if r.Context().Err() != nil {
		return StatusClientClosedRequest
	}
	if !completed {
		return http.StatusInternalServerError
	}
	// net/http sends 200 for handlers that write nothing.
	return http.StatusOK
}
