// Package metrics holds the Prometheus collectors exported by the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "maintenance_api"

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route template and status code",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route template",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	maintenanceOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "maintenance_operations_total",
		Help:      "Maintenance lifecycle operations by operation and outcome",
	}, []string{"operation", "result"})

	detachedParts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "maintenance_parts_detached_total",
		Help:      "Parts unlinked from a maintenance by replace or delete",
	})
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveMaintenanceOp records the outcome of a lifecycle operation.
func ObserveMaintenanceOp(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	maintenanceOperations.WithLabelValues(operation, result).Inc()
}

// AddDetachedParts counts parts unlinked from a maintenance.
func AddDetachedParts(n int64) {
	if n > 0 {
		detachedParts.Add(float64(n))
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
