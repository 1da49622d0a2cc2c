package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics counts and times API requests by route pattern.
type HTTPMetrics struct {
	service  string
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	statuses *prometheus.CounterVec
}

func NewHTTPMetrics(reg prometheus.Registerer, service string) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{service: service}
	}
	labels := []string{"service", "method", "path", "status"}
	m := &HTTPMetrics{
		service: service,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, labels),
		statuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_status_category_total",
			Help:      "Responses by status category (2xx, 4xx, 5xx).",
		}, []string{"service", "category"}),
	}
	reg.MustRegister(m.requests, m.duration, m.statuses)
	return m
}

// Observe records one finished request. path should be the route pattern, not the raw URL.
func (m *HTTPMetrics) Observe(method, path string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	if path == "" {
		path = "unmatched"
	}
	code := strconv.Itoa(status)
	m.requests.WithLabelValues(m.service, method, path, code).Inc()
	m.duration.WithLabelValues(m.service, method, path, code).Observe(elapsed.Seconds())
	if category := statusCategory(status); category != "" {
		m.statuses.WithLabelValues(m.service, category).Inc()
	}
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}
