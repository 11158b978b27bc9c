package handling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"metrics_demo_server/lib"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	tests := []struct {
		name           string
		fn             HandlerFunc
		expectedStatus int
		expectedBody   string
		bodyContains   string
	}{
		{
			name: "success payload is written verbatim",
			fn: func(r *http.Request) (*Response, error) {
				return OK(messageBody{Message: "Hello metrics"}), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Hello metrics"}`,
		},
		{
			name: "custom success status",
			fn: func(r *http.Request) (*Response, error) {
				return &Response{Status: http.StatusAccepted, Body: map[string]int{"queued": 1}}, nil
			},
			expectedStatus: http.StatusAccepted,
			expectedBody:   `{"queued":1}`,
		},
		{
			name: "nil response",
			fn: func(r *http.Request) (*Response, error) {
				return nil, nil
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "http error keeps its status and message",
			fn: func(r *http.Request) (*Response, error) {
				return nil, lib.ErrTestError
			},
			expectedStatus: http.StatusInternalServerError,
			bodyContains:   "Test error",
		},
		{
			name: "wrapped http error",
			fn: func(r *http.Request) (*Response, error) {
				return nil, fmt.Errorf("lookup: %w", lib.NewHTTPError(http.StatusNotFound, "nothing here"))
			},
			expectedStatus: http.StatusNotFound,
			bodyContains:   "nothing here",
		},
		{
			name: "status without a gecho helper",
			fn: func(r *http.Request) (*Response, error) {
				return nil, lib.NewHTTPError(http.StatusTeapot, "short and stout")
			},
			expectedStatus: http.StatusTeapot,
			expectedBody:   `{"message":"short and stout"}`,
		},
		{
			name: "unknown error becomes 500 without leaking details",
			fn: func(r *http.Request) (*Response, error) {
				return nil, errors.New("secret connection string")
			},
			expectedStatus: http.StatusInternalServerError,
			bodyContains:   "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			Handle(logger, tt.fn).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
			if tt.bodyContains != "" {
				assert.Contains(t, rec.Body.String(), tt.bodyContains)
			}
			assert.NotContains(t, rec.Body.String(), "secret")
		})
	}
}

func TestHandleError_CanceledWritesNothing(t *testing.T) {
	logger := gecho.NewDefaultLogger()
	rec := httptest.NewRecorder()

	err := HandleError(fmt.Errorf("slow: %w", context.Canceled), "request failed", logger, rec)

	require.NoError(t, err)
	assert.False(t, rec.Flushed)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header())
}

func TestRespondError_GechoStatuses(t *testing.T) {
	statuses := []int{
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable,
	}

	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			rec := httptest.NewRecorder()

			err := respondError(rec, status, "went wrong")

			require.NoError(t, err)
			assert.Equal(t, status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body struct {
				Status  int    `json:"status"`
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, status, body.Status)
			assert.False(t, body.Success)
			assert.Equal(t, "went wrong", body.Message)
		})
	}
}

func TestHandleError_UnknownErrorWritesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	err := HandleError(errors.New("boom"), "request failed", gecho.NewDefaultLogger(), rec)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Internal server error"`)
}
