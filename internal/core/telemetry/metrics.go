package telemetry

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type AppMetrics struct {
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	activeConnections prometheus.Gauge
	memoryUsage       prometheus.Gauge
	goroutines        prometheus.Gauge
	todoOperations    *prometheus.CounterVec
	storeOperations   *prometheus.CounterVec
	storeDuration     *prometheus.HistogramVec
	storedTodos       prometheus.Gauge
	rateLimitHits     *prometheus.CounterVec
	rateLimitAllowed  *prometheus.CounterVec
}

func NewAppMetrics(registry prometheus.Registerer) *AppMetrics {
	metrics := &AppMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		activeConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Number of active HTTP connections",
			},
		),
		memoryUsage: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "memory_usage_bytes",
				Help: "Memory usage in bytes",
			},
		),
		goroutines: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "goroutines_total",
				Help: "Number of goroutines",
			},
		),
		todoOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_operations_total",
				Help: "Total number of todo operations",
			},
			[]string{"operation", "result"},
		),
		storeOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_operations_total",
				Help: "Total number of todo store reads and writes",
			},
			[]string{"operation", "result"},
		),
		storeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "store_operation_duration_seconds",
				Help:    "Duration of todo store operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		storedTodos: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "stored_todos",
				Help: "Number of todos in the store after the last read or write",
			},
		),
		rateLimitHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_hits_total",
				Help: "Total number of rate limit hits",
			},
			[]string{"path"},
		),
		rateLimitAllowed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_allowed_total",
				Help: "Total number of requests allowed by rate limiter",
			},
			[]string{"path"},
		),
	}

	registry.MustRegister(
		metrics.requestDuration,
		metrics.requestTotal,
		metrics.activeConnections,
		metrics.memoryUsage,
		metrics.goroutines,
		metrics.todoOperations,
		metrics.storeOperations,
		metrics.storeDuration,
		metrics.storedTodos,
		metrics.rateLimitHits,
		metrics.rateLimitAllowed,
	)

	return metrics
}

func (m *AppMetrics) RecordRequest(ctx context.Context, method, path, status string, duration time.Duration) {
	m.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, status).Inc()
}

func (m *AppMetrics) IncrementActiveConnections(ctx context.Context) {
	m.activeConnections.Inc()
}

func (m *AppMetrics) DecrementActiveConnections(ctx context.Context) {
	m.activeConnections.Dec()
}

func (m *AppMetrics) RecordTodoOperation(ctx context.Context, operation string, err error) {
	m.todoOperations.WithLabelValues(operation, result(err)).Inc()
}

// RecordStoreOperation also tracks the collection size; size < 0 means unknown.
func (m *AppMetrics) RecordStoreOperation(ctx context.Context, operation string, size int, duration time.Duration, err error) {
	m.storeOperations.WithLabelValues(operation, result(err)).Inc()
	m.storeDuration.WithLabelValues(operation).Observe(duration.Seconds())

	if err == nil && size >= 0 {
		m.storedTodos.Set(float64(size))
	}
}

func (m *AppMetrics) RecordRateLimitHit(ctx context.Context, path string) {
	m.rateLimitHits.WithLabelValues(path).Inc()
}

func (m *AppMetrics) RecordRateLimitAllowed(ctx context.Context, path string) {
	m.rateLimitAllowed.WithLabelValues(path).Inc()
}

func (m *AppMetrics) StartSystemMetrics(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				var memStats runtime.MemStats
				runtime.ReadMemStats(&memStats)
				m.memoryUsage.Set(float64(memStats.Alloc))

				m.goroutines.Set(float64(runtime.NumGoroutine()))

			case <-ctx.Done():
				return
			}
		}
	}()
}

func result(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
