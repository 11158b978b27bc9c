package api

import (
	"context"
	"fmt"
	"io"
	"metrics_demo_server/metrics"
	"metrics_demo_server/metrics/metricstest"
	"metrics_demo_server/services"
	"metrics_demo_server/structs"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestConfig(slowDelay time.Duration) *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:      "metrics_demo_test",
			Environment:  "test",
			LogLevel:     "error",
			MaxBodyBytes: 1 << 20,
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept"},
		},
		Metrics:  &structs.MetricsConfig{},
		Demo:     &structs.DemoConfig{SlowDelay: slowDelay},
		Database: &structs.DatabaseConfig{},
		Cache:    &structs.CacheConfig{},
	}
}

type testApp struct {
	server   *httptest.Server
	registry *metrics.Registry
}

func newTestApp(t *testing.T, slowDelay time.Duration, svc *services.ServiceManager) *testApp {
	t.Helper()

	cfg := newTestConfig(slowDelay)
	registry := metrics.NewRegistry(metrics.Options{
		AppName:     cfg.Server.AppName,
		Environment: cfg.Server.Environment,
		InstanceID:  "test-instance",
	})
	if svc == nil {
		svc = services.NewServiceManager(gecho.NewDefaultLogger(), nil, nil)
	}

	server := httptest.NewServer(App(cfg, registry, svc))
	t.Cleanup(server.Close)

	return &testApp{server: server, registry: registry}
}

func (a *testApp) get(t *testing.T, path string) (int, string, http.Header) {
	t.Helper()

	res, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body), res.Header
}

func TestRoot(t *testing.T) {
	app := newTestApp(t, time.Second, nil)

	start := time.Now()
	status, body, header := app.get(t, "/")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message": "Hello metrics"}`, body)
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestSlow(t *testing.T) {
	app := newTestApp(t, time.Second, nil)

	start := time.Now()
	status, body, _ := app.get(t, "/slow")
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message": "Slow endpoint"}`, body)
	assert.GreaterOrEqual(t, elapsed, time.Second)
	assert.GreaterOrEqual(t, metricstest.SampleSum(t, app.registry.Gatherer(), "/slow"), 1.0)
}

func TestSlow_DoesNotBlockOtherRequests(t *testing.T) {
	const delay = 300 * time.Millisecond
	const concurrent = 8
	app := newTestApp(t, delay, nil)

	start := time.Now()
	var g errgroup.Group
	for range concurrent {
		g.Go(func() error {
			res, err := http.Get(app.server.URL + "/slow")
			if err != nil {
				return err
			}
			defer func() { _ = res.Body.Close() }()
			if res.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %d", res.StatusCode)
			}
			return nil
		})
	}

	status, _, _ := app.get(t, "/")
	fastElapsed := time.Since(start)

	require.NoError(t, g.Wait())
	totalElapsed := time.Since(start)

	assert.Equal(t, http.StatusOK, status)
	assert.Less(t, fastElapsed, delay)
	assert.Less(t, totalElapsed, time.Duration(concurrent)*delay)
}

func TestError(t *testing.T) {
	app := newTestApp(t, time.Second, nil)

	for range 3 {
		status, body, _ := app.get(t, "/error")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Contains(t, body, "Test error")
	}

	g := app.registry.Gatherer()
	assert.Equal(t, 3.0, metricstest.RequestCount(t, g, http.MethodGet, "/error", "500"))
	assert.Equal(t, 3.0, metricstest.EndpointRequestCount(t, g, "/error"))
	assert.Equal(t, uint64(3), metricstest.SampleCount(t, g, "/error"))
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, time.Second, nil)

	const calls = 4
	for range calls {
		status, _, _ := app.get(t, "/")
		require.Equal(t, http.StatusOK, status)
	}
	app.get(t, "/error")

	status, body, header := app.get(t, "/metrics")

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(header.Get("Content-Type"), "text/plain"))
	assert.Contains(t, body, "# TYPE http_requests_total counter")
	assert.Contains(t, body, "# TYPE request_duration_seconds histogram")
	assert.Contains(t, body, `http_requests_total{endpoint="/error",method="GET",status="500"} 1`)

	line := regexp.MustCompile(`(?m)^http_requests_total\{endpoint="/",method="GET",status="200"\} (\S+)$`).FindStringSubmatch(body)
	require.Len(t, line, 2, body)
	value, err := strconv.ParseFloat(line[1], 64)
	require.NoError(t, err)
	assert.Equal(t, float64(calls), value)

	// The scrape itself is recorded once it completes.
	assert.Equal(t, 1.0, metricstest.RequestCount(t, app.registry.Gatherer(), http.MethodGet, "/metrics", "200"))
}

func TestCounterMatchesRequests(t *testing.T) {
	app := newTestApp(t, time.Millisecond, nil)

	requests := map[string]int{"/": 5, "/error": 2, "/slow": 3, "/metrics": 1}
	for path, n := range requests {
		for range n {
			app.get(t, path)
		}
	}

	g := app.registry.Gatherer()
	assert.Equal(t, 5.0, metricstest.RequestCount(t, g, http.MethodGet, "/", "200"))
	assert.Equal(t, 2.0, metricstest.RequestCount(t, g, http.MethodGet, "/error", "500"))
	assert.Equal(t, 3.0, metricstest.RequestCount(t, g, http.MethodGet, "/slow", "200"))

	for path, n := range requests {
		assert.Equal(t, float64(n), metricstest.EndpointRequestCount(t, g, path), path)
		assert.Equal(t, uint64(n), metricstest.SampleCount(t, g, path), path)
	}
}

func TestConcurrentRequests(t *testing.T) {
	app := newTestApp(t, time.Second, nil)

	const k = 64
	g, ctx := errgroup.WithContext(context.Background())
	for range k {
		g.Go(func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, app.server.URL+"/", nil)
			if err != nil {
				return err
			}
			res, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			_, _ = io.Copy(io.Discard, res.Body)
			return res.Body.Close()
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, float64(k), metricstest.RequestCount(t, app.registry.Gatherer(), http.MethodGet, "/", "200"))
	assert.Equal(t, uint64(k), metricstest.SampleCount(t, app.registry.Gatherer(), "/"))
}

func TestUnmatchedRequests(t *testing.T) {
	app := newTestApp(t, time.Second, nil)

	status, _, _ := app.get(t, "/does-not-exist")
	assert.Equal(t, http.StatusNotFound, status)

	res, err := http.Post(app.server.URL+"/", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	g := app.registry.Gatherer()
	assert.Equal(t, 1.0, metricstest.RequestCount(t, g, http.MethodGet, metrics.UnmatchedEndpoint, "404"))
	assert.Equal(t, 1.0, metricstest.RequestCount(t, g, http.MethodPost, metrics.UnmatchedEndpoint, "405"))
	assert.Equal(t, 0.0, metricstest.EndpointRequestCount(t, g, "/does-not-exist"))
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("unconfigured dependencies", func(t *testing.T) {
		app := newTestApp(t, time.Second, nil)

		status, body, _ := app.get(t, "/health/server")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "service_alive")

		status, body, _ = app.get(t, "/health/database")
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Contains(t, body, "Database is not configured")

		status, body, _ = app.get(t, "/health/cache")
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Contains(t, body, "Cache is not configured")

		assert.Equal(t, 1.0, metricstest.RequestCount(t, app.registry.Gatherer(), http.MethodGet, "/health/cache", "503"))
	})

	t.Run("reachable cache", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		logger := gecho.NewDefaultLogger()
		cache := services.NewCacheService(logger, services.NewRedisClient(&structs.CacheConfig{Address: mr.Addr()}))
		defer func() { _ = cache.Close() }()

		app := newTestApp(t, time.Second, services.NewServiceManager(logger, nil, cache))

		status, body, _ := app.get(t, "/health/cache")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "connected")
	})
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t, time.Second, nil)

	req, err := http.NewRequest(http.MethodOptions, app.server.URL+"/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()

	assert.Equal(t, "http://localhost:3000", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 1.0, metricstest.EndpointRequestCount(t, app.registry.Gatherer(), metrics.UnmatchedEndpoint))
}
