package utils

import (
	"net"
	"net/http"
	"strings"
)

// GetClientIP gerçek client IP'sini alır (proxy, load balancer desteği ile)
func GetClientIP(r *http.Request) string {
	// X-Forwarded-For header'ını kontrol et (load balancer/proxy)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// İlk IP'yi al (chain'deki ilk IP gerçek client)
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	// X-Real-IP header'ını kontrol et
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	// RemoteAddr'yi kullan (son çare), IPv6 dahil port'u kaldır
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
