package middleware

import (
	"fmt"
	"net/http"

	"github.com/onerilhan/go-student-records/internal/middleware/errors"
)

// getErrorMessage status code'a göre custom error mesajı alır
func getErrorMessage(statusCode int, config *errors.ErrorConfig) string {
	if customMessage, exists := config.CustomErrorMap[statusCode]; exists {
		return customMessage
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP Error %d", statusCode)
}

// containsHeader header adı listede var mı (canonical karşılaştırma)
func containsHeader(headers []string, key string) bool {
	key = http.CanonicalHeaderKey(key)
	for _, h := range headers {
		if http.CanonicalHeaderKey(h) == key {
			return true
		}
	}
	return false
}

// truncateString string'i belirtilen uzunlukta keser
func truncateString(s string, maxLength int) string {
	if maxLength <= 3 || len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
