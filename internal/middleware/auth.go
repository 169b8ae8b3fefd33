package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/auth"
	"github.com/onerilhan/go-student-records/internal/middleware/errors"
)

// TokenValidator JWT doğrulayıcı (auth.JWTManager)
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware Bearer token'ı doğrular ve kimliği context'e ekler.
// Hata durumunda AuthError panic'i ile 401 döner.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Warn().
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Authorization header eksik")
				panic(errors.NewAuthError("Authorization header gerekli"))
			}

			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
				log.Warn().
					Str("path", r.URL.Path).
					Msg("Geçersiz Authorization format")
				panic(errors.NewAuthError("Authorization format: 'Bearer <token>'"))
			}

			claims, err := validator.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				log.Warn().
					Err(err).
					Str("path", r.URL.Path).
					Msg("Token doğrulama başarısız")
				panic(errors.NewAuthError("Geçersiz veya süresi dolmuş token"))
			}

			identity := auth.Identity{
				Username: claims.Subject,
				Role:     claims.Role,
				Email:    claims.Email,
			}
			ctx := auth.WithIdentity(r.Context(), identity)

			log.Debug().
				Str("username", identity.Username).
				Str("role", identity.Role).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg("🔐 Authentication successful")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
