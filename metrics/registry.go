// Package metrics owns the Prometheus instruments recorded for every HTTP
// request and renders them in the text exposition format.
package metrics

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

// UnmatchedEndpoint is the endpoint label for requests no route matched.
const UnmatchedEndpoint = "unmatched"

// ContentType is the media type of Snapshot output.
var ContentType = string(expfmt.NewFormat(expfmt.TypeTextPlain))

type Options struct {
	AppName     string
	Environment string
	InstanceID  string

	// RuntimeCollectors adds the go_* and process_* families.
	RuntimeCollectors bool
}

// Registry holds the request counter and the duration histogram on a private
// prometheus.Registry, so tests can build an isolated instance per case.
type Registry struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewRegistry(opts Options) *Registry {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	appInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Static information about the running instance",
		},
		[]string{"app", "environment", "instance_id"},
	)
	appInfo.WithLabelValues(opts.AppName, opts.Environment, opts.InstanceID).Set(1)

	registry.MustRegister(requestsTotal, requestDuration, appInfo)

	if opts.RuntimeCollectors {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return &Registry{
		registry:        registry,
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}
}

// RecordRequest counts one completed request.
func (r *Registry) RecordRequest(method, endpoint string, status int) {
	r.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
}

// RecordDuration observes the latency of one completed request.
func (r *Registry) RecordDuration(endpoint string, seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	r.requestDuration.WithLabelValues(endpoint).Observe(seconds)
}

// Register attaches an additional collector, e.g. database pool stats.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Snapshot renders every registered family in the text exposition format.
// Families come back from Gather sorted by name and series sorted by label
// values, so the output is stable for a given state. Label pairs within a
// series are printed in name order, e.g.
//
//	http_requests_total{endpoint="/",method="GET",status="200"} 3
func (r *Registry) Snapshot() ([]byte, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return nil, fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return buf.Bytes(), nil
}
