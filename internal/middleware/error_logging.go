package middleware

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/middleware/errors"
	"github.com/onerilhan/go-student-records/internal/utils"
)

// requestLogger RequestIDMiddleware'in context'e koyduğu logger, yoksa global logger
func requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

// logAPIError middleware'lerin fırlattığı hataları kategoriye göre loglar
func logAPIError(err errors.APIError, r *http.Request) {
	event := requestLogger(r).Warn().
		Int("status_code", err.Status()).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("client_ip", utils.GetClientIP(r))

	switch e := err.(type) {
	case *errors.AuthError:
		event.Str("category", "authentication").Msg(e.Message)

	case *errors.RBACError:
		// kullanıcı ve rol rbac.go'da loglanır; buradaki context'te identity yok
		event.Str("category", "authorization").
			Str("resource", e.Resource).
			Str("action", e.Action).
			Msg(e.Message)

	case *errors.ValidationError:
		event = event.Str("category", "validation").Str("field", e.Field)
		if len(e.Fields) > 0 {
			event = event.Interface("fields", e.Fields)
		}
		event.Msg(e.Message)

	default:
		event.Str("category", "api_error").Msg(err.Error())
	}
}

// logPanic beklenmeyen panic'i stack trace ile loglar
func logPanic(r *http.Request, info *errors.PanicInfo, config *errors.ErrorConfig) {
	event := requestLogger(r).Error().
		Str("method", info.Method).
		Str("path", info.Path).
		Str("client_ip", info.ClientIP).
		Str("user_agent", info.UserAgent).
		Interface("panic_value", info.Value)

	if config.EnablePanicLogs {
		event = event.Str("stack_trace", info.Stack)
	}

	event.Msg("Server panic recovered")
}
