package errors

// ErrorConfig error handling middleware ayarları
type ErrorConfig struct {
	ShowStackTrace  bool           // Stack trace'i response'da göster mi (sadece development)
	CustomErrorMap  map[int]string // Status code'a göre custom mesajlar
	IncludeHeaders  []string       // Panic sonrası korunacak header'lar
	EnablePanicLogs bool           // Panic durumlarını ayrıca logla
	MaxErrorLength  int            // Error mesajının maksimum uzunluğu
}

// DefaultErrorConfig varsayılan error handling ayarları
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		ShowStackTrace: false, // Production'da false
		CustomErrorMap: map[int]string{
			400: "Geçersiz istek. Lütfen parametrelerinizi kontrol edin.",
			401: "Yetkilendirme gerekli. Lütfen giriş yapın.",
			403: "Bu işlem için yetkiniz bulunmuyor.",
			404: "Aradığınız kaynak bulunamadı.",
			405: "HTTP metodu bu endpoint için desteklenmiyor.",
			409: "Kayıt zaten mevcut.",
			413: "İstek gövdesi çok büyük.",
			429: "Çok fazla istek. Lütfen daha sonra tekrar deneyin.",
			500: "Sunucu hatası. Lütfen daha sonra tekrar deneyin.",
		},
		IncludeHeaders: []string{
			"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Limit", "Retry-After",
			// CORS ve güvenlik header'ları hata yanıtlarında da kalmalı
			"Access-Control-Allow-Origin", "Access-Control-Allow-Credentials", "Access-Control-Expose-Headers", "Vary",
			"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy",
			"Strict-Transport-Security", "Referrer-Policy", "Cache-Control",
		},
		EnablePanicLogs: true,
		MaxErrorLength:  500,
	}
}

// DevelopmentErrorConfig development ortamı için ayarlar
func DevelopmentErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = true
	config.MaxErrorLength = 2000
	return config
}

// ProductionErrorConfig production ortamı için güvenli ayarlar.
// Panic mesajları gizlenir, yerine CustomErrorMap[500] yazılır.
func ProductionErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = false
	config.MaxErrorLength = 200
	return config
}
