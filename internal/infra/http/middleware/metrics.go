package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	plansGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_plans_generated_total",
			Help: "Total number of outreach plans generated, by source (ai or fallback)",
		},
		[]string{"source"},
	)

	stepsPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outreach_steps_persisted_total",
			Help: "Total number of outreach steps persisted",
		},
	)

	stepStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_step_status_updates_total",
			Help: "Total number of step status transitions",
		},
		[]string{"status"},
	)

	remindersDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_reminders_dispatched_total",
			Help: "Total number of step reminders dispatched",
		},
		[]string{"channel"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordPlanGenerated(source string, steps int) {
	plansGenerated.WithLabelValues(source).Inc()
	stepsPersisted.Add(float64(steps))
}

func RecordStepStatusUpdate(status string) {
	stepStatusUpdates.WithLabelValues(status).Inc()
}

func RecordReminderDispatched(channel string) {
	remindersDispatched.WithLabelValues(channel).Inc()
}
