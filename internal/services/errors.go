package services

import "errors"

// Service katmanının döndüğü hatalar. Handler'lar errors.Is ile HTTP status'a çevirir.
var (
	ErrStudentNotFound    = errors.New("öğrenci bulunamadı")
	ErrStudentEmailTaken  = errors.New("bu email ile kayıtlı bir öğrenci zaten var")
	ErrInvalidCredentials = errors.New("kullanıcı adı veya şifre hatalı")
	ErrUsernameTaken      = errors.New("bu kullanıcı adı zaten alınmış")
	ErrInvalidRole        = errors.New("geçersiz rol")
	ErrPrivilegedRole     = errors.New("ADMIN ve STAFF hesapları kayıt ile oluşturulamaz")
	ErrUnauthenticated    = errors.New("kimlik doğrulaması gerekli")
	ErrInvalidToken       = errors.New("geçersiz veya yenilenemez token")
	ErrTokenStillValid    = errors.New("token hala geçerli, refresh gerekmiyor")
)
