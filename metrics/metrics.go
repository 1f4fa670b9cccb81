// Package metrics registers the Prometheus collectors shared by earnbase
// services: HTTP request instrumentation, database operation timings, and
// service identity/uptime gauges.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Options configures collector registration.
type Options struct {
	// Registerer defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// Buckets defaults to prometheus.DefBuckets.
	Buckets []float64
}

// Registry bundles the service-level collectors.
type Registry struct {
	RequestCount      *prometheus.CounterVec
	RequestLatency    *prometheus.HistogramVec
	RequestInProgress *prometheus.GaugeVec

	DBOperationCount   *prometheus.CounterVec
	DBOperationLatency *prometheus.HistogramVec
	DBConnections      prometheus.Gauge

	ServiceInfo   *prometheus.GaugeVec
	ServiceUptime prometheus.Gauge
}

// New constructs and registers the collector bundle. Registration is
// idempotent: collectors already registered with the same descriptors are
// reused rather than duplicated.
func New(opts Options) (*Registry, error) {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	requestCount := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests partitioned by method, endpoint, and status code.",
	}, []string{"method", "endpoint", "status"})
	if err := registerCounterVec(reg, &requestCount); err != nil {
		return nil, err
	}

	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Histogram of HTTP request latencies in seconds.",
		Buckets: buckets,
	}, []string{"method", "endpoint"})
	if err := registerHistogramVec(reg, &requestLatency); err != nil {
		return nil, err
	}

	requestInProgress := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "http_requests_in_progress",
		Help: "Current number of in-flight HTTP requests.",
	}, []string{"method", "endpoint"})
	if err := registerGaugeVec(reg, &requestInProgress); err != nil {
		return nil, err
	}

	dbOperationCount := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "db_operations_total",
		Help: "Total number of database operations partitioned by operation and collection.",
	}, []string{"operation", "collection"})
	if err := registerCounterVec(reg, &dbOperationCount); err != nil {
		return nil, err
	}

	dbOperationLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_operation_duration_seconds",
		Help:    "Histogram of database operation latencies in seconds.",
		Buckets: buckets,
	}, []string{"operation", "collection"})
	if err := registerHistogramVec(reg, &dbOperationLatency); err != nil {
		return nil, err
	}

	dbConnections := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections",
		Help: "Current number of open database connections.",
	})
	if err := registerGauge(reg, &dbConnections); err != nil {
		return nil, err
	}

	serviceInfo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "service_info",
		Help: "Service identity labels; the value is always 1.",
	}, []string{"version", "environment"})
	if err := registerGaugeVec(reg, &serviceInfo); err != nil {
		return nil, err
	}

	serviceUptime := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "service_uptime_seconds",
		Help: "Service uptime in seconds.",
	})
	if err := registerGauge(reg, &serviceUptime); err != nil {
		return nil, err
	}

	return &Registry{
		RequestCount:       requestCount,
		RequestLatency:     requestLatency,
		RequestInProgress:  requestInProgress,
		DBOperationCount:   dbOperationCount,
		DBOperationLatency: dbOperationLatency,
		DBConnections:      dbConnections,
		ServiceInfo:        serviceInfo,
		ServiceUptime:      serviceUptime,
	}, nil
}

func registerCounterVec(reg prometheus.Registerer, collector **prometheus.CounterVec) error {
	if err := reg.Register(*collector); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return fmt.Errorf("register counter: %w", err)
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return fmt.Errorf("existing counter collector has unexpected type %T", already.ExistingCollector)
		}
		*collector = existing
	}
	return nil
}

func registerHistogramVec(reg prometheus.Registerer, collector **prometheus.HistogramVec) error {
	if err := reg.Register(*collector); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return fmt.Errorf("register histogram: %w", err)
		}
		existing, ok := already.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return fmt.Errorf("existing histogram collector has unexpected type %T", already.ExistingCollector)
		}
		*collector = existing
	}
	return nil
}

func registerGaugeVec(reg prometheus.Registerer, collector **prometheus.GaugeVec) error {
	if err := reg.Register(*collector); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return fmt.Errorf("register gauge: %w", err)
		}
		existing, ok := already.ExistingCollector.(*prometheus.GaugeVec)
		if !ok {
			return fmt.Errorf("existing gauge collector has unexpected type %T", already.ExistingCollector)
		}
		*collector = existing
	}
	return nil
}

func registerGauge(reg prometheus.Registerer, collector *prometheus.Gauge) error {
	if err := reg.Register(*collector); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return fmt.Errorf("register gauge: %w", err)
		}
		existing, ok := already.ExistingCollector.(prometheus.Gauge)
		if !ok {
			return fmt.Errorf("existing gauge collector has unexpected type %T", already.ExistingCollector)
		}
		*collector = existing
	}
	return nil
}
