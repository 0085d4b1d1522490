package telemetry

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsNamespace prefixes every series exported by the users API.
const MetricsNamespace = "userapp"

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// AppMetrics holds the Prometheus collectors of the users API. Routes are
// labelled by their gin template ("/users/:id"), never by the raw path.
type AppMetrics struct {
	requestLatency *prometheus.HistogramVec
	requests       *prometheus.CounterVec
	inFlight       prometheus.Gauge
	heapAlloc      prometheus.Gauge
	goroutines     prometheus.Gauge
	userRecordOps  *prometheus.CounterVec
	storeQueries   *prometheus.HistogramVec
	throttled      *prometheus.CounterVec
	admitted       *prometheus.CounterVec
}

func NewAppMetrics(registry prometheus.Registerer) *AppMetrics {
	metrics := &AppMetrics{
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Time spent serving users API requests, by route template and status code.",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "route", "status"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Users API requests answered, by route template and status code.",
			},
			[]string{"method", "route", "status"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: MetricsNamespace,
				Subsystem: "http",
				Name:      "in_flight_requests",
				Help:      "Users API requests currently being handled.",
			},
		),
		heapAlloc: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: MetricsNamespace,
				Subsystem: "runtime",
				Name:      "heap_alloc_bytes",
				Help:      "Heap bytes held by the users API process, sampled every 10s.",
			},
		),
		goroutines: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: MetricsNamespace,
				Subsystem: "runtime",
				Name:      "goroutines",
				Help:      "Goroutines alive in the users API process, sampled every 10s.",
			},
		),
		userRecordOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: "users",
				Name:      "record_operations_total",
				Help:      "List, create, update and delete calls on user records, by outcome.",
			},
			[]string{"operation", "outcome"},
		),
		storeQueries: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Subsystem: "store",
				Name:      "query_duration_seconds",
				Help:      "Latency of statements issued against the users table, by outcome.",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .5},
			},
			[]string{"operation", "table", "outcome"},
		),
		throttled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: "ratelimit",
				Name:      "rejected_total",
				Help:      "Requests answered 429 because the client IP used up its budget for the route.",
			},
			[]string{"route", "key_type"},
		),
		admitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: "ratelimit",
				Name:      "admitted_total",
				Help:      "Requests let through by the per-IP route budget.",
			},
			[]string{"route", "key_type"},
		),
	}

	registry.MustRegister(
		metrics.requestLatency,
		metrics.requests,
		metrics.inFlight,
		metrics.heapAlloc,
		metrics.goroutines,
		metrics.userRecordOps,
		metrics.storeQueries,
		metrics.throttled,
		metrics.admitted,
	)

	return metrics
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}

	return outcomeOK
}

func (m *AppMetrics) RecordRequest(ctx context.Context, method, route, status string, duration time.Duration) {
	m.requestLatency.WithLabelValues(method, route, status).Observe(duration.Seconds())
	m.requests.WithLabelValues(method, route, status).Inc()
}

func (m *AppMetrics) IncrementActiveConnections(ctx context.Context) {
	m.inFlight.Inc()
}

func (m *AppMetrics) DecrementActiveConnections(ctx context.Context) {
	m.inFlight.Dec()
}

// RecordUserOperation counts one user service call. A failed call is
// labelled "error" whether it was rejected by validation or by the store.
func (m *AppMetrics) RecordUserOperation(ctx context.Context, operation string, err error) {
	m.userRecordOps.WithLabelValues(operation, outcome(err)).Inc()
}

func (m *AppMetrics) RecordStoreQuery(ctx context.Context, operation, table string, duration time.Duration, err error) {
	m.storeQueries.WithLabelValues(operation, table, outcome(err)).Observe(duration.Seconds())
}

func (m *AppMetrics) RecordRateLimitHit(ctx context.Context, route, keyType string) {
	m.throttled.WithLabelValues(route, keyType).Inc()
}

func (m *AppMetrics) RecordRateLimitAllowed(ctx context.Context, route, keyType string) {
	m.admitted.WithLabelValues(route, keyType).Inc()
}

// StartSystemMetrics samples heap and goroutine counts until ctx is done.
func (m *AppMetrics) StartSystemMetrics(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				var memStats runtime.MemStats
				runtime.ReadMemStats(&memStats)
				m.heapAlloc.Set(float64(memStats.HeapAlloc))
				m.goroutines.Set(float64(runtime.NumGoroutine()))

			case <-ctx.Done():
				return
			}
		}
	}()
}
