package models

// APIResponse tüm yanıtlar için ortak zarf
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success başarılı yanıt zarfı
func Success(message string, data interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// Failure hata yanıt zarfı
func Failure(message string, data interface{}) APIResponse {
	return APIResponse{Success: false, Message: message, Data: data}
}
