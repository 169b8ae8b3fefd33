package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/middleware"
	"github.com/onerilhan/go-student-records/internal/middleware/errors"
	"github.com/onerilhan/go-student-records/internal/middleware/validation"
)

const apiPrefix = "/api/v1"

// RouterConfig router ve middleware zinciri bağımlılıkları.
// Metrics, MetricsHandler, RateLimiter ve CORS nil olabilir.
type RouterConfig struct {
	Auth     *AuthHandler
	Students *StudentHandler
	Audit    *AuditHandler
	Health   *HealthHandler

	Tokens    middleware.TokenValidator
	Ownership middleware.OwnershipChecker

	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter
	CORS           *middleware.CORSConfig
	Security       *middleware.SecurityConfig
	Errors         *errors.ErrorConfig
	Validation     *validation.Config
	Logging        *middleware.LoggingConfig
}

// NewHandler router'ı global middleware zinciriyle sarar:
// request id → logging → security headers → CORS → rate limit → recovery → router.
func NewHandler(cfg RouterConfig) http.Handler {
	var h http.Handler = NewRouter(cfg)

	h = middleware.ErrorHandlingMiddleware(cfg.Errors)(h)
	if cfg.RateLimiter != nil {
		h = cfg.RateLimiter.Handler(h)
	}
	if cfg.CORS != nil {
		h = middleware.CORSMiddleware(cfg.CORS)(h)
	}
	h = middleware.SecurityHeadersMiddleware(cfg.Security)(h)
	h = middleware.RequestLoggingMiddleware(cfg.Logging)(h)
	h = middleware.RequestIDMiddleware(h)

	return h
}

// NewRouter Gorilla Mux router'ını ayarlar.
// Metrik ve validation middleware'leri route eşleştikten sonra çalışır (path template ve mux.Vars için).
func NewRouter(cfg RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = middleware.NotFoundJSONHandler()
	router.MethodNotAllowedHandler = middleware.MethodNotAllowedJSONHandler()

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware)
	}
	router.Use(validation.Middleware(cfg.Validation))

	if cfg.Health != nil {
		router.HandleFunc("/health", cfg.Health.Check).Methods(http.MethodGet)
	}
	if cfg.MetricsHandler != nil {
		router.Handle("/metrics", cfg.MetricsHandler).Methods(http.MethodGet)
	}

	// Route'lar kök router'a tam path ile eklenir. İç içe subrouter'larda
	// mux method uyuşmazlığını kaybedip 405 yerine 404 döner.
	authenticated := middleware.AuthMiddleware(cfg.Tokens)
	protected := func(permission middleware.Permission, fn http.HandlerFunc) http.Handler {
		return authenticated(guard(permission, fn))
	}

	// Public endpoints (Authentication)
	router.HandleFunc(apiPrefix+"/auth/register", cfg.Auth.Register).Methods(http.MethodPost)
	router.HandleFunc(apiPrefix+"/auth/login", cfg.Auth.Login).Methods(http.MethodPost)
	router.HandleFunc(apiPrefix+"/auth/refresh", cfg.Auth.Refresh).Methods(http.MethodPost)

	// Protected endpoints (Authentication required)
	router.Handle(apiPrefix+"/auth/me", authenticated(http.HandlerFunc(cfg.Auth.Me))).Methods(http.MethodGet)

	students := apiPrefix + "/students"
	studentByID := students + "/{id:[0-9]+}"
	router.Handle(students, protected(middleware.PermViewStudents, cfg.Students.GetAll)).Methods(http.MethodGet)
	router.Handle(students, protected(middleware.PermCreateStudent, cfg.Students.Create)).Methods(http.MethodPost)
	router.Handle(students+"/page", protected(middleware.PermViewStudents, cfg.Students.GetPage)).Methods(http.MethodGet)
	router.Handle(students+"/search", protected(middleware.PermViewStudents, cfg.Students.Search)).Methods(http.MethodGet)
	router.Handle(students+"/my-profile", protected(middleware.PermViewOwnStudentRecord, cfg.Students.GetMyProfile)).Methods(http.MethodGet)
	router.Handle(studentByID, authenticated(
		middleware.RequirePermissionOrOwnership(
			middleware.PermViewStudents,
			middleware.PermViewOwnStudentRecord,
			middleware.StudentOwnership(cfg.Ownership),
		)(http.HandlerFunc(cfg.Students.GetByID)),
	)).Methods(http.MethodGet)
	router.Handle(studentByID, protected(middleware.PermUpdateStudent, cfg.Students.Update)).Methods(http.MethodPut)
	router.Handle(studentByID, protected(middleware.PermDeleteStudent, cfg.Students.Delete)).Methods(http.MethodDelete)

	router.Handle(apiPrefix+"/audit/logs", protected(middleware.PermViewAuditLogs, cfg.Audit.GetAll)).Methods(http.MethodGet)
	router.Handle(apiPrefix+"/audit/student/{id:[0-9]+}", protected(middleware.PermViewAuditLogs, cfg.Audit.GetStudentLogs)).Methods(http.MethodGet)

	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			methods, _ := route.GetMethods()
			log.Debug().
				Str("path", pathTemplate).
				Strs("methods", methods).
				Msg("📍 Route registered")
		}
		return nil
	})

	return router
}

func guard(permission middleware.Permission, fn http.HandlerFunc) http.Handler {
	return middleware.RequirePermission(permission)(fn)
}
