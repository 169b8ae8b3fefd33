// internal/middleware/validation/validation.go
package validation

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/middleware/errors"
)

// Config validation middleware ayarları
type Config struct {
	MaxBodySize         int64             // Maximum request body size (bytes)
	AllowedMethods      []string          // Allowed HTTP methods
	ContentTypes        []string          // Allowed content types
	JSONValidation      bool              // Enable JSON validation
	PathValidation      map[string]string // Path parameter validation rules
	RequireNonEmptyJSON bool              // Require non-empty JSON body for JSON requests
}

// DefaultConfig varsayılan validation ayarları
func DefaultConfig() *Config {
	return &Config{
		MaxBodySize: 1024 * 1024, // 1MB
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions, http.MethodHead,
		},
		ContentTypes:   []string{"application/json"},
		JSONValidation: true,
		PathValidation: map[string]string{
			"id": "positive_integer",
		},
		RequireNonEmptyJSON: true,
	}
}

// Middleware ana validation middleware'i.
// Path parametreleri mux.Vars üzerinden okunduğu için router.Use ile bağlanmalıdır.
func Middleware(config *Config) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS preflight
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if err := ValidateMethod(r, config.AllowedMethods); err != nil {
				panic(&errors.ValidationError{
					Message:    err.Error(),
					StatusCode: http.StatusMethodNotAllowed,
					Field:      "method",
					Value:      r.Method,
				})
			}

			if err := ValidateContent(r, config); err != nil {
				status := http.StatusBadRequest
				if isTooLarge(err) {
					status = http.StatusRequestEntityTooLarge
				}
				panic(&errors.ValidationError{
					Message:    err.Error(),
					StatusCode: status,
					Field:      "content",
					Value:      "content_validation_failed",
				})
			}

			if err := ValidatePathParameters(r, config.PathValidation); err != nil {
				panic(&errors.ValidationError{
					Message:    err.Error(),
					StatusCode: http.StatusBadRequest,
					Field:      "path_parameter",
					Value:      "invalid_path_parameter",
				})
			}

			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int64("content_length", r.ContentLength).
				Msg("Request validation passed")

			next.ServeHTTP(w, r)
		})
	}
}
