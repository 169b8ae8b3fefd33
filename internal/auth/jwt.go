package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidToken token imzası, formatı veya claim'leri geçersiz
	ErrInvalidToken = errors.New("geçersiz token")
	// ErrTokenStillValid süresi dolmamış token yenilenmek istendi
	ErrTokenStillValid = errors.New("token hala geçerli, refresh gerekmiyor")
)

// Claims JWT payload'ını temsil eder. Subject kullanıcı adıdır.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTManager token üretir ve doğrular
type JWTManager struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewJWTManager yeni JWT yöneticisi oluşturur
func NewJWTManager(secret string, expiration time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// Expiration token geçerlilik süresi
func (m *JWTManager) Expiration() time.Duration {
	return m.expiration
}

// GenerateToken kullanıcı için JWT token oluşturur, token ve bitiş zamanını döner
func (m *JWTManager) GenerateToken(username, role, email string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.expiration)

	claims := &Claims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token oluşturulamadı: %w", err)
	}

	return tokenString, expiresAt, nil
}

func (m *JWTManager) keyFunc(token *jwt.Token) (interface{}, error) {
	// Signing method kontrolü
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("beklenmeyen signing method: %v", token.Header["alg"])
	}
	return m.secret, nil
}

func (m *JWTManager) parse(tokenString string) (*jwt.Token, *Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	return token, claims, err
}

// ValidateToken JWT token'ını doğrular ve claims'i döner
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, claims, err := m.parse(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RefreshToken süresi dolmuş ama imzası geçerli token için yeni token üretir
func (m *JWTManager) RefreshToken(tokenString string) (string, time.Time, *Claims, error) {
	token, claims, err := m.parse(tokenString)

	// Token geçerliyse refresh gerekmiyor
	if err == nil && token.Valid {
		log.Warn().Str("username", claims.Subject).Msg("Token refresh denendi ama token hala geçerli")
		return "", time.Time{}, nil, ErrTokenStillValid
	}

	if !errors.Is(err, jwt.ErrTokenExpired) {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Warn().Msg("Malformed token ile refresh denendi")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Warn().Msg("Invalid signature ile refresh denendi")
		default:
			log.Warn().Err(err).Msg("Token refresh başarısız")
		}
		return "", time.Time{}, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", time.Time{}, nil, ErrInvalidToken
	}

	newToken, expiresAt, err := m.GenerateToken(claims.Subject, claims.Role, claims.Email)
	if err != nil {
		return "", time.Time{}, nil, err
	}

	log.Info().Str("username", claims.Subject).Msg("Token başarıyla refresh edildi")
	return newToken, expiresAt, claims, nil
}
