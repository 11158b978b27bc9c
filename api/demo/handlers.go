package demo

import (
	"metrics_demo_server/handling"
	"metrics_demo_server/lib"
	"net/http"
	"time"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (drm *DemoRoutesManager) Root(r *http.Request) (*handling.Response, error) {
	return handling.OK(messageResponse{Message: "Hello metrics"}), nil
}

// Slow answers after the configured delay. The wait only parks this
// request's goroutine and ends early if the client disconnects.
func (drm *DemoRoutesManager) Slow(r *http.Request) (*handling.Response, error) {
	timer := time.NewTimer(drm.slowDelay)
	defer timer.Stop()

	select {
	case <-r.Context().Done():
		return nil, r.Context().Err()
	case <-timer.C:
	}

	return handling.OK(messageResponse{Message: "Slow endpoint"}), nil
}

func (drm *DemoRoutesManager) Error(r *http.Request) (*handling.Response, error) {
	return nil, lib.ErrTestError
}
