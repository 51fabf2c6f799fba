package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics holds the Prometheus collectors of the pathways agent.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	FilterRuns        *prometheus.CounterVec
	FilterMatches     *prometheus.HistogramVec
	SessionsActive    prometheus.Gauge
	SessionsExpired   prometheus.Counter
	Inquiries         *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	DocumentsAdvanced prometheus.Counter
}

// New creates all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		FilterRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pathways_filter_runs_total",
			Help: "Total number of catalog filter evaluations",
		}, []string{"catalog"}),
		FilterMatches: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathways_filter_matches",
			Help:    "Number of catalog entries matched per filter evaluation",
			Buckets: prometheus.LinearBuckets(0, 2, 8),
		}, []string{"catalog"}),
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pathways_sessions_active",
			Help: "Number of live view sessions",
		}),
		SessionsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "pathways_sessions_expired_total",
			Help: "Total number of sessions dropped after idling",
		}),
		Inquiries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pathways_inquiries_total",
			Help: "Total number of consultation requests by outcome",
		}, []string{"outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathways_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern and status",
			Buckets: durationBuckets,
		}, []string{"method", "route", "status"}),
		DocumentsAdvanced: factory.NewCounter(prometheus.CounterOpts{
			Name: "pathways_documents_advanced_total",
			Help: "Total number of document status transitions",
		}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFilter records one filter evaluation over catalog and its match count.
func (m *Metrics) ObserveFilter(catalog string, matched int) {
	if m == nil {
		return
	}
	m.FilterRuns.WithLabelValues(catalog).Inc()
	m.FilterMatches.WithLabelValues(catalog).Observe(float64(matched))
}

// SetSessionsActive records the current number of sessions.
func (m *Metrics) SetSessionsActive(n int) {
	if m == nil {
		return
	}
	m.SessionsActive.Set(float64(n))
}

// IncrementSessionsExpired records sessions dropped by the idle sweeper.
func (m *Metrics) IncrementSessionsExpired(n int) {
	if m == nil {
		return
	}
	m.SessionsExpired.Add(float64(n))
}

// IncrementInquiries records one consultation request with its outcome
// ("accepted", "rejected", "failed" or "publish_failed").
func (m *Metrics) IncrementInquiries(outcome string) {
	if m == nil {
		return
	}
	m.Inquiries.WithLabelValues(outcome).Inc()
}

// IncrementDocumentsAdvanced records one document status transition.
func (m *Metrics) IncrementDocumentsAdvanced() {
	if m == nil {
		return
	}
	m.DocumentsAdvanced.Inc()
}

// ObserveRequest records the duration of an HTTP request.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
