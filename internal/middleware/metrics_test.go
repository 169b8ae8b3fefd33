package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/onerilhan/go-student-records/internal/middleware/errors"
)

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/api/v1/students/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	for _, id := range []string{"1", "2", "3"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/students/"+id, nil))
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/students/{id:[0-9]+}", "200"),
	))
}

func TestMetrics_RecordsAPIErrorPanicStatus(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/secure", func(w http.ResponseWriter, r *http.Request) {
		panic(errors.NewAuthError("token gerekli"))
	})

	rec := httptest.NewRecorder()
	withRecovery(router).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secure", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/secure", "401")))
}

func TestMetrics_ObserveAuditAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveAudit("CREATE", "success")
	m.ObserveAudit("CREATE", "success")
	m.ObserveAudit("UPDATE", "error")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.AuditEventsTotal.WithLabelValues("CREATE", "success")))

	rec := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `studentrecords_audit_events_total{action="UPDATE",result="error"} 1`))
}
