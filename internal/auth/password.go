package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash bilinmeyen kullanıcılar için karşılaştırma yapılan sabit hash.
// Kullanıcı var/yok durumunun yanıt süresinden anlaşılmasını engeller.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// HashPassword şifreyi bcrypt ile hashler
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("şifre hashlenemedi: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword şifre hash ile eşleşiyor mu
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckDummyPassword bilinmeyen kullanıcı için aynı maliyette karşılaştırma yapar
func CheckDummyPassword(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
