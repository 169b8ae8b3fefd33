package errors

import "time"

// ErrorResponse hata yanıtı; başarılı yanıtlarla aynı zarf formatı
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// DebugDetails sadece development'ta data alanına yazılır
type DebugDetails struct {
	Code      int    `json:"code"`
	RequestID string `json:"requestId,omitempty"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
	Stack     string `json:"stack,omitempty"`
}

// PanicInfo panic durumu hakkında bilgi
type PanicInfo struct {
	Value     interface{}
	Stack     string
	RequestID string
	Method    string
	Path      string
	UserAgent string
	ClientIP  string
	Timestamp time.Time
}
