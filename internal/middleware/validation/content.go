// internal/middleware/validation/content.go
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// errBodyTooLarge 413 ile yanıtlanır
var errBodyTooLarge = errors.New("request body çok büyük")

func isTooLarge(err error) bool {
	return errors.Is(err, errBodyTooLarge)
}

// ValidateContent content validation (JSON, Content-Type, Content-Length)
func ValidateContent(r *http.Request, config *Config) error {
	if !hasBody(r.Method) {
		return nil
	}

	if r.ContentLength > config.MaxBodySize {
		return fmt.Errorf("%w. Maksimum boyut: %d bytes", errBodyTooLarge, config.MaxBodySize)
	}

	if err := validateContentType(r, config.ContentTypes); err != nil {
		return err
	}

	if config.JSONValidation && isJSONRequest(r) {
		if err := validateJSONBody(r, config.MaxBodySize, config.RequireNonEmptyJSON); err != nil {
			return err
		}
	}

	return nil
}

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// validateContentType content type'ı doğrular
func validateContentType(r *http.Request, allowedTypes []string) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("Content-Type header gerekli")
	}

	// charset parametresi olabilir
	for _, allowedType := range allowedTypes {
		if strings.HasPrefix(strings.ToLower(contentType), allowedType) {
			return nil
		}
	}

	return fmt.Errorf("desteklenmeyen Content-Type: %s. İzin verilen tipler: %s",
		contentType, strings.Join(allowedTypes, ", "))
}

// isJSONRequest JSON request mi kontrol eder
func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json")
}

// validateJSONBody body'yi okuyup JSON olarak doğrular ve handler'lar için geri koyar.
// Content-Length gönderilmeyen (chunked) isteklerde de boyut sınırı uygulanır.
func validateJSONBody(r *http.Request, maxSize int64, requireNonEmpty bool) error {
	if r.Body == nil || r.Body == http.NoBody {
		if requireNonEmpty {
			return fmt.Errorf("JSON body gerekli")
		}
		return nil
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, maxSize+1))
	if err != nil {
		return fmt.Errorf("request body okunamadı: %w", err)
	}
	_ = r.Body.Close()

	if int64(len(bodyBytes)) > maxSize {
		return fmt.Errorf("%w. Maksimum boyut: %d bytes", errBodyTooLarge, maxSize)
	}

	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		if requireNonEmpty {
			return fmt.Errorf("JSON body boş olamaz")
		}
		return nil
	}

	if !json.Valid(bodyBytes) {
		return fmt.Errorf("geçersiz JSON formatı")
	}

	return nil
}

// ValidateMethod HTTP methodunu doğrular
func ValidateMethod(r *http.Request, allowedMethods []string) error {
	for _, method := range allowedMethods {
		if r.Method == method {
			return nil
		}
	}
	return fmt.Errorf("HTTP method '%s' desteklenmiyor. İzin verilen metodlar: %s",
		r.Method, strings.Join(allowedMethods, ", "))
}
