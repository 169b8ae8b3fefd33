package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/auth"
	"github.com/onerilhan/go-student-records/internal/config"
	"github.com/onerilhan/go-student-records/internal/db"
	"github.com/onerilhan/go-student-records/internal/handlers"
	"github.com/onerilhan/go-student-records/internal/logger"
	"github.com/onerilhan/go-student-records/internal/middleware"
	mwerrors "github.com/onerilhan/go-student-records/internal/middleware/errors"
	"github.com/onerilhan/go-student-records/internal/middleware/validation"
	"github.com/onerilhan/go-student-records/internal/repository"
	"github.com/onerilhan/go-student-records/internal/services"
)

const (
	version          = "1.0.0"
	defaultJWTSecret = "change-me-in-production"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("environment", cfg.AppEnv).
		Str("port", cfg.Port).
		Msg("🚀 Öğrenci Kayıt Servisi başlatıldı")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// run dönene kadar defer'lar (DB bağlantısı) çalışmış olur
	if err := run(cfg, shutdown); err != nil {
		log.Fatal().Err(err).Msg("❌ Servis durdu")
	}

	log.Info().Msg("👋 Öğrenci Kayıt Servisi kapatıldı")
}

// checkConfig production'da zorunlu ayarları doğrular
func checkConfig(cfg *config.Config) error {
	if cfg.JWTSecret == defaultJWTSecret && !cfg.IsDevelopment() {
		return errors.New("JWT_SECRET production ortamında ayarlanmalı")
	}
	return nil
}

// run servisi ayağa kaldırır, shutdown sinyali gelene veya bir hata oluşana kadar bekler
func run(cfg *config.Config, shutdown <-chan os.Signal) error {
	if err := checkConfig(cfg); err != nil {
		return err
	}

	ctx := context.Background()

	if cfg.DBAutoMigrate {
		if err := db.MigrateUp(cfg.GetDSN()); err != nil {
			return fmt.Errorf("migration başarısız: %w", err)
		}
	}

	database, err := db.Connect(ctx, cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("veritabanı bağlantısı başarısız: %w", err)
	}
	defer database.Close()

	// Metrikler
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(database, "studentdb"),
	)
	metrics := middleware.NewMetrics(registry)

	// Repository, Service, Handler katmanları
	txManager := db.NewTxManager(database)
	studentRepo := repository.NewStudentRepository(database)
	userRepo := repository.NewUserRepository(database)
	auditRepo := repository.NewAuditRepository(database)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	auditService := services.NewAuditService(auditRepo, txManager).WithObserver(metrics)
	studentService := services.NewStudentService(studentRepo, auditService, txManager)
	userService := services.NewUserService(userRepo, jwtManager, cfg.AllowPrivilegedSignup)

	if err := userService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		return fmt.Errorf("admin hesabı oluşturulamadı: %w", err)
	}

	errorConfig := mwerrors.ProductionErrorConfig()
	securityConfig := middleware.DefaultSecurityConfig()
	if cfg.IsDevelopment() {
		errorConfig = mwerrors.DevelopmentErrorConfig()
		securityConfig = middleware.DevelopmentSecurityConfig()
	}

	handler := handlers.NewHandler(handlers.RouterConfig{
		Auth:     handlers.NewAuthHandler(userService),
		Students: handlers.NewStudentHandler(studentService),
		Audit:    handlers.NewAuditHandler(auditService),
		Health:   handlers.NewHealthHandler(database, version),

		Tokens:    jwtManager,
		Ownership: studentService,

		Metrics:        metrics,
		MetricsHandler: middleware.MetricsHandler(registry),
		RateLimiter:    middleware.NewRateLimiter(middleware.NewRateLimitConfig(cfg.RateLimitRPM, cfg.RateLimitBurst)),
		CORS:           middleware.NewCORSConfig(cfg.CORSAllowedOrigins),
		Security:       securityConfig,
		Errors:         errorConfig,
		Validation:     validation.DefaultConfig(),
		Logging:        middleware.DefaultLoggingConfig(),
	})

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", serverAddr).
			Msg("🌐 HTTP Server (Gorilla Mux) başlatıldı")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server başlatma hatası: %w", err)
	case <-shutdown:
		log.Info().Msg("🛑 Shutdown signal alındı, server kapatılıyor...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP Server kapatma hatası")
	} else {
		log.Info().Msg("✅ HTTP Server başarıyla kapatıldı")
	}
	return nil
}
