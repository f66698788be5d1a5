package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry for HTTP, document store and exam-day counters.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	attendance      *prometheus.CounterVec
	malpractice     *prometheus.CounterVec
	hallTickets     prometheus.Counter
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of document store statements",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	attendance := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_marked_total",
		Help: "Attendance marks recorded by invigilators",
	}, []string{"status"})

	malpractice := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "malpractice_reports_total",
		Help: "Malpractice reports filed",
	}, []string{"severity", "evidence"})

	hallTickets := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hall_tickets_rendered_total",
		Help: "Hall ticket PDFs rendered for download",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, dbQueryDuration, attendance, malpractice, hallTickets, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		dbQueryDuration: dbQueryDuration,
		attendance:      attendance,
		malpractice:     malpractice,
		hallTickets:     hallTickets,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveDBQuery records document store timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// AttendanceMarked counts one attendance mark.
func (m *MetricsService) AttendanceMarked(status string) {
	if m == nil {
		return
	}
	m.attendance.WithLabelValues(status).Inc()
}

// MalpracticeReported counts one filed report.
func (m *MetricsService) MalpracticeReported(severity string, withEvidence bool) {
	if m == nil {
		return
	}
	evidence := "false"
	if withEvidence {
		evidence = "true"
	}
	m.malpractice.WithLabelValues(severity, evidence).Inc()
}

// HallTicketRendered counts one rendered PDF.
func (m *MetricsService) HallTicketRendered() {
	if m == nil {
		return
	}
	m.hallTickets.Inc()
}
