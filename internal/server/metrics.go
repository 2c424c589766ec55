package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported on /metrics. Each server owns its own
// registry so tests can build servers side by side.
type Metrics struct {
	registry *prometheus.Registry

	openSessions  prometheus.Gauge
	reviewActions *prometheus.CounterVec
	saves         *prometheus.CounterVec
	fitmentScore  prometheus.Histogram
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewMetrics registers the review and HTTP collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		openSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "resume_enhancer",
			Name:      "open_sessions",
			Help:      "Review sessions currently held in memory.",
		}),
		reviewActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume_enhancer",
			Name:      "review_actions_total",
			Help:      "Review actions applied to suggestions, by action and outcome.",
		}, []string{"action", "outcome"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume_enhancer",
			Name:      "session_saves_total",
			Help:      "Session saves, by outcome.",
		}, []string{"outcome"}),
		fitmentScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "resume_enhancer",
			Name:      "saved_fitment_score",
			Help:      "Fitment score of saved sessions.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume_enhancer",
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "resume_enhancer",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.openSessions, m.reviewActions, m.saves, m.fitmentScore, m.requests, m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) sessionOpened() { m.openSessions.Inc() }
func (m *Metrics) sessionClosed() { m.openSessions.Dec() }

func (m *Metrics) action(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = strconv.Itoa(HTTPStatus(err))
	}
	m.reviewActions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) saved(score int) {
	m.saves.WithLabelValues("ok").Inc()
	m.fitmentScore.Observe(float64(score))
}

func (m *Metrics) saveFailed() {
	m.saves.WithLabelValues("error").Inc()
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withMetrics records request counts and latency under the matched route
// pattern, so session ids do not become label values.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
