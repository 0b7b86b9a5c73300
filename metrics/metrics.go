package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	OrdersCreated prometheus.Counter
	OrdersDeleted prometheus.Counter
}

// NewServerMetrics registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cornerstore",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cornerstore",
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route", "method"})
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cornerstore",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Orders committed together with their line items.",
	})
	deleted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cornerstore",
		Subsystem: "orders",
		Name:      "deleted_total",
		Help:      "Orders removed together with their line items.",
	})

	reg.MustRegister(requests, latency, created, deleted)
	return &ServerMetrics{Requests: requests, LatencyMS: latency, OrdersCreated: created, OrdersDeleted: deleted}
}

// Observe records one finished request.
func (m *ServerMetrics) Observe(route, method string, status int, d time.Duration) {
	m.Requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(route, method).Observe(float64(d) / float64(time.Millisecond))
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
