package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onerilhan/go-student-records/internal/middleware/errors"
)

const metricsNamespace = "studentrecords"

// Metrics HTTP ve audit metrikleri (Prometheus)
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec
	AuditEventsTotal *prometheus.CounterVec
}

// NewMetrics collector'ları oluşturur ve reg'e kaydeder
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		AuditEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "audit",
				Name:      "events_total",
				Help:      "Audit log writes by action and result.",
			},
			[]string{"action", "result"}, // result=success|error|skipped
		),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestsDuration, m.InFlight, m.AuditEventsTotal)

	return m
}

// Middleware istek sayısı, süre ve eşzamanlı istek metriklerini toplar.
// Route etiketi mux path template'idir; router.Use ile bağlanmalıdır.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := routeTemplate(r)
		method := r.Method

		m.InFlight.WithLabelValues(method, route).Inc()
		defer m.InFlight.WithLabelValues(method, route).Dec()

		wrapped := newResponseWriter(w)
		defer func() {
			// auth/RBAC panic'leri dıştaki ErrorHandlingMiddleware'de yanıtlanır
			status := wrapped.statusCode
			if rec := recover(); rec != nil {
				status = http.StatusInternalServerError
				if apiErr, ok := rec.(errors.APIError); ok {
					status = apiErr.Status()
				}
				m.observe(method, route, status, start)
				panic(rec)
			}
			m.observe(method, route, status, start)
		}()

		next.ServeHTTP(wrapped, r)
	})
}

func (m *Metrics) observe(method, route string, status int, start time.Time) {
	code := strconv.Itoa(status)
	m.RequestsTotal.WithLabelValues(method, route, code).Inc()
	m.RequestsDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
}

// ObserveAudit audit servisinin yazım sonuçlarını sayar
func (m *Metrics) ObserveAudit(action, result string) {
	m.AuditEventsTotal.WithLabelValues(action, result).Inc()
}

// MetricsHandler /metrics endpoint'i
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
