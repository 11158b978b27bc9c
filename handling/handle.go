package handling

import (
	"context"
	"errors"
	"metrics_demo_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// Response is the success half of a handler result.
type Response struct {
	Status int
	Body   any
}

func OK(body any) *Response {
	return &Response{Status: http.StatusOK, Body: body}
}

// HandlerFunc returns either a response to send or an error describing why
// the request failed. Handlers never write to the ResponseWriter themselves.
type HandlerFunc func(r *http.Request) (*Response, error)

// Handle adapts a HandlerFunc to net/http. The response, success or error,
// is fully written before Handle returns, so middleware wrapping it always
// observes the final status code.
func Handle(logger *gecho.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := fn(r)
		if err != nil {
			_ = HandleError(err, "request failed", logger, w)
			return
		}
		if res == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := writeJSON(w, res.Status, res.Body); err != nil {
			logger.Warn("Failed to write response", gecho.Field("error", err), gecho.Field("path", r.URL.Path))
		}
	}
}

// HandleError turns err into an HTTP response. Cancelled requests get no
// response at all since nobody is listening.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Debug("Request abandoned by client", gecho.Field("error", err), gecho.Field("msg", msg))
		return nil
	}

	var httpErr *lib.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("Request failed", gecho.Field("error", err), gecho.Field("msg", msg), gecho.Field("status", httpErr.Status))
		}
		return respondError(w, httpErr.Status, httpErr.Message)
	}

	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.WithMessage("Internal server error")).Send()
}
