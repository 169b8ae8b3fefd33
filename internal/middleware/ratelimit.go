package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/onerilhan/go-student-records/internal/middleware/errors"
	"github.com/onerilhan/go-student-records/internal/utils"
)

// RateLimitConfig rate limiting ayarları
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	SkipPaths         []string
	CustomMessage     string
	// IdleTTL bu süre boyunca istek gelmeyen IP'lerin limiter'ı silinir
	IdleTTL time.Duration
}

// NewRateLimitConfig RATE_LIMIT_RPM ve RATE_LIMIT_BURST değerlerinden ayar üretir
func NewRateLimitConfig(rpm, burst int) *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerMinute: rpm,
		Burst:             burst,
		SkipPaths: []string{
			"/health",
			"/metrics",
		},
		CustomMessage: "Çok fazla istek. Lütfen daha sonra tekrar deneyin.",
		IdleTTL:       30 * time.Minute,
	}
}

// ipLimiter tek bir IP için rate limiter
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter IP bazlı token bucket rate limiter
type RateLimiter struct {
	config    *RateLimitConfig
	limiters  map[string]*ipLimiter
	mutex     sync.Mutex
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter yeni rate limiter oluşturur.
// Eski limiter'lar arka plan goroutine'i yerine istek sırasında temizlenir.
func NewRateLimiter(config *RateLimitConfig) *RateLimiter {
	if config.Burst < 1 {
		config.Burst = 1
	}
	return &RateLimiter{
		config:    config,
		limiters:  make(map[string]*ipLimiter),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Handler rate limiting middleware handler döner.
// Limit aşılırsa 429 ve Retry-After header'ı döner.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.config.RequestsPerMinute <= 0 || matchesPath(r.URL.Path, rl.config.SkipPaths) {
			next.ServeHTTP(w, r)
			return
		}

		clientIP := utils.GetClientIP(r)
		allowed, remaining, retryAfter := rl.allow(clientIP)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.config.RequestsPerMinute))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))

			log.Warn().
				Str("client_ip", clientIP).
				Str("path", r.URL.Path).
				Msg("Request blocked - rate limit exceeded")

			utils.WriteJSON(w, http.StatusTooManyRequests, errors.ErrorResponse{
				Success: false,
				Message: rl.config.CustomMessage,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow IP için bir token tüketmeyi dener
func (rl *RateLimiter) allow(ip string) (allowed bool, remaining int, retryAfter time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	rl.sweep(now)

	entry, exists := rl.limiters[ip]
	if !exists {
		perRequest := time.Minute / time.Duration(rl.config.RequestsPerMinute)
		entry = &ipLimiter{limiter: rate.NewLimiter(rate.Every(perRequest), rl.config.Burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, 0, delay
	}

	remaining = int(entry.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, 0
}

// sweep IdleTTL'i geçmiş limiter'ları siler, en fazla IdleTTL'de bir çalışır
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.config.IdleTTL {
		return
	}
	rl.lastSweep = now

	for ip, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > rl.config.IdleTTL {
			delete(rl.limiters, ip)
		}
	}
	log.Debug().Int("active_limiters", len(rl.limiters)).Msg("Rate limiter cleanup completed")
}
