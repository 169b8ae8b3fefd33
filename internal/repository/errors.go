package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrNotFound kayıt bulunamadı
	ErrNotFound = errors.New("kayıt bulunamadı")
	// ErrDuplicate unique constraint ihlali
	ErrDuplicate = errors.New("kayıt zaten mevcut")
)

// pgUniqueViolation PostgreSQL unique_violation kodu
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

// escapeLike LIKE joker karakterlerini kaçırır
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// containsPattern büyük/küçük harf duyarsız substring araması için desen
func containsPattern(s string) string {
	return "%" + escapeLike(strings.TrimSpace(s)) + "%"
}
