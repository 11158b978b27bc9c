// Package metricstest reads recorded values back out of a gatherer in tests.
package metricstest

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// RequestCount returns the http_requests_total value for one label set, or 0
// when the series was never recorded.
func RequestCount(t testing.TB, g prometheus.Gatherer, method, endpoint, status string) float64 {
	t.Helper()

	m := find(t, g, "http_requests_total", map[string]string{
		"method":   method,
		"endpoint": endpoint,
		"status":   status,
	})
	if m == nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// EndpointRequestCount sums http_requests_total over every method and status
// of an endpoint.
func EndpointRequestCount(t testing.TB, g prometheus.Gatherer, endpoint string) float64 {
	t.Helper()

	var total float64
	for _, m := range family(t, g, "http_requests_total") {
		if labelValue(m, "endpoint") == endpoint {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

// SampleCount returns the number of request_duration_seconds observations
// for an endpoint.
func SampleCount(t testing.TB, g prometheus.Gatherer, endpoint string) uint64 {
	t.Helper()

	m := find(t, g, "request_duration_seconds", map[string]string{"endpoint": endpoint})
	if m == nil {
		return 0
	}
	return m.GetHistogram().GetSampleCount()
}

// SampleSum returns the sum of request_duration_seconds observations for an
// endpoint.
func SampleSum(t testing.TB, g prometheus.Gatherer, endpoint string) float64 {
	t.Helper()

	m := find(t, g, "request_duration_seconds", map[string]string{"endpoint": endpoint})
	if m == nil {
		return 0
	}
	return m.GetHistogram().GetSampleSum()
}

func family(t testing.TB, g prometheus.Gatherer, name string) []*dto.Metric {
	t.Helper()

	families, err := g.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()
		}
	}
	return nil
}

func find(t testing.TB, g prometheus.Gatherer, name string, labels map[string]string) *dto.Metric {
	t.Helper()

	for _, m := range family(t, g, name) {
		if matches(m, labels) {
			return m
		}
	}
	return nil
}

func matches(m *dto.Metric, labels map[string]string) bool {
	if len(m.GetLabel()) != len(labels) {
		return false
	}
	for name, value := range labels {
		if labelValue(m, name) != value {
			return false
		}
	}
	return true
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
