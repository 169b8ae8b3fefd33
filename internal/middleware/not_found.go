package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/middleware/errors"
	"github.com/onerilhan/go-student-records/internal/utils"
)

// NotFoundJSONHandler zarf formatında 404 döner
func NotFoundJSONHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusNotFound, errors.ErrorResponse{
			Success: false,
			Message: "Endpoint bulunamadı: " + r.Method + " " + r.URL.Path,
		})

		log.Warn().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", utils.GetClientIP(r)).
			Msg("404 Not Found")
	}
}

// MethodNotAllowedJSONHandler zarf formatında 405 döner
func MethodNotAllowedJSONHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusMethodNotAllowed, errors.ErrorResponse{
			Success: false,
			Message: "HTTP metodu bu endpoint için desteklenmiyor: " + r.Method,
		})

		log.Warn().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", utils.GetClientIP(r)).
			Msg("405 Method Not Allowed")
	}
}
