package obs

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outbound HTTP client metrics.
var (
	apiInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "api_in_flight_requests",
		Help: "In-flight outbound API requests.",
	})

	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of outbound API requests.",
		},
		[]string{"method", "path", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Outbound API request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

var initOnce sync.Once

// Init registers the client metrics with the default registry.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(apiInFlight, apiRequestsTotal, apiRequestDuration)
	})
}

// Handler exposes the Prometheus scrape endpoint for debug listeners.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RequestStarted marks an outbound request as in flight and returns a done
// callback that records its outcome. Status 0 means a transport failure.
func RequestStarted(method, path string) func(status int, d time.Duration) {
	apiInFlight.Inc()
	canonical := CanonicalPath(path)
	return func(status int, d time.Duration) {
		apiInFlight.Dec()
		label := "network_error"
		if status > 0 {
			label = strconv.Itoa(status)
		}
		apiRequestsTotal.WithLabelValues(method, canonical, label).Inc()
		apiRequestDuration.WithLabelValues(method, canonical, label).Observe(d.Seconds())
	}
}

// CanonicalPath collapses record ids so metric cardinality stays bounded:
// /api/vendor/abc -> /api/vendor/:id, /api/vendor/abc/deactivate keeps the verb.
func CanonicalPath(path string) string {
	if path == "" {
		return "/"
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	// /api/<resource>/<id>[/<verb>]
	if len(parts) >= 3 && parts[0] == "api" && parts[1] != "auth" && parts[2] != "" {
		parts[2] = ":id"
		if len(parts) > 4 {
			return path
		}
		return "/" + strings.Join(parts, "/")
	}
	return "/" + strings.TrimPrefix(path, "/")
}
