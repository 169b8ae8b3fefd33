package middleware

import (
	"fmt"
	"net/http"
)

// SecurityConfig security headers ayarları
type SecurityConfig struct {
	ContentSecurityPolicy string

	// HTTP Strict Transport Security (HSTS)
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool

	FrameOptions       string // DENY, SAMEORIGIN
	ContentTypeNosniff bool
	ReferrerPolicy     string

	// NoStore öğrenci verisi içeren yanıtların cache'lenmesini engeller
	NoStore bool

	CustomHeaders map[string]string
}

// DefaultSecurityConfig JSON API için varsayılan güvenlik ayarları
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		HSTSMaxAge:            31536000, // 1 yıl
		HSTSIncludeSubdomains: true,
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		NoStore:               true,
		CustomHeaders: map[string]string{
			"X-Permitted-Cross-Domain-Policies": "none",
		},
	}
}

// DevelopmentSecurityConfig development için HSTS kapalı ayarlar (HTTP kullanımı için)
func DevelopmentSecurityConfig() *SecurityConfig {
	config := DefaultSecurityConfig()
	config.HSTSMaxAge = 0
	config.HSTSIncludeSubdomains = false
	return config
}

// SecurityHeadersMiddleware güvenlik header'larını ekler
func SecurityHeadersMiddleware(config *SecurityConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultSecurityConfig()
	}
	hsts := ""
	if config.HSTSMaxAge > 0 {
		hsts = formatHSTSHeader(config.HSTSMaxAge, config.HSTSIncludeSubdomains, config.HSTSPreload)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			if config.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", config.ContentSecurityPolicy)
			}
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}
			if config.FrameOptions != "" {
				h.Set("X-Frame-Options", config.FrameOptions)
			}
			if config.ContentTypeNosniff {
				h.Set("X-Content-Type-Options", "nosniff")
			}
			if config.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", config.ReferrerPolicy)
			}
			if config.NoStore {
				h.Set("Cache-Control", "no-store")
			}
			for key, value := range config.CustomHeaders {
				h.Set(key, value)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// formatHSTSHeader HSTS header değerini formatlar
func formatHSTSHeader(maxAge int, includeSubdomains, preload bool) string {
	hsts := fmt.Sprintf("max-age=%d", maxAge)
	if includeSubdomains {
		hsts += "; includeSubDomains"
	}
	if preload {
		hsts += "; preload"
	}
	return hsts
}
