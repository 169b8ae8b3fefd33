package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/onerilhan/go-student-records/internal/middleware/errors"
	"github.com/onerilhan/go-student-records/internal/utils"
)

// ErrorHandlingMiddleware panic recovery ve merkezi hata yanıtı.
// Middleware'lerin panic ile fırlattığı APIError'lar zarf formatında yanıtlanır.
func ErrorHandlingMiddleware(config *errors.ErrorConfig) func(http.Handler) http.Handler {
	// Config nil ise default kullan
	if config == nil {
		config = errors.DefaultErrorConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				// Bağlantı kopması gibi durumlarda net/http'nin kendi davranışı korunur
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				statusCode := http.StatusInternalServerError
				var (
					message    string
					data       interface{}
					isAPIError bool
				)

				// Type switch ile esnek error yakalama
				switch err := recovered.(type) {
				case errors.APIError:
					statusCode = err.Status()
					message = err.Error()
					isAPIError = true
					if ve, ok := err.(*errors.ValidationError); ok && len(ve.Fields) > 0 {
						data = ve.Fields
					}
					logAPIError(err, r)

				case error:
					message = err.Error()

				default:
					message = getErrorMessage(http.StatusInternalServerError, config)
				}

				var stack string
				if !isAPIError {
					panicInfo := &errors.PanicInfo{
						Value:     recovered,
						Stack:     string(debug.Stack()),
						RequestID: w.Header().Get("X-Request-ID"),
						Method:    r.Method,
						Path:      r.URL.Path,
						UserAgent: r.Header.Get("User-Agent"),
						ClientIP:  utils.GetClientIP(r),
						Timestamp: time.Now(),
					}
					logPanic(r, panicInfo, config)
					stack = panicInfo.Stack

					if !config.ShowStackTrace {
						message = getErrorMessage(http.StatusInternalServerError, config)
					}
				}

				// Response header'ları temizle (panic sonrası)
				for key := range w.Header() {
					if !containsHeader(config.IncludeHeaders, key) {
						w.Header().Del(key)
					}
				}

				if config.ShowStackTrace && data == nil {
					data = &errors.DebugDetails{
						Code:      statusCode,
						RequestID: w.Header().Get("X-Request-ID"),
						Method:    r.Method,
						Path:      r.URL.Path,
						Timestamp: time.Now().Format(time.RFC3339),
						Stack:     stack,
					}
				}

				sendErrorResponse(w, r, statusCode, message, data, config)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// sendErrorResponse zarf formatında hata yanıtı gönderir
func sendErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string, data interface{}, config *errors.ErrorConfig) {
	response := errors.ErrorResponse{
		Success: false,
		Message: truncateString(message, config.MaxErrorLength),
		Data:    data,
	}

	utils.WriteJSON(w, statusCode, response)
}
