package models

import (
	"time"
)

// Role kullanıcı rolü
type Role string

const (
	RoleUser     Role = "USER"
	RoleStudent  Role = "STUDENT"
	RoleLecturer Role = "LECTURER"
	RoleHOD      Role = "HOD"
	RoleStaff    Role = "STAFF"
	RoleAdmin    Role = "ADMIN"
)

// AllRoles geçerli tüm roller
var AllRoles = []Role{RoleUser, RoleStudent, RoleLecturer, RoleHOD, RoleStaff, RoleAdmin}

// IsValid rol tanımlı mı
func (r Role) IsValid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsPrivileged kayıtla alınamayan yönetici rolleri
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User kullanıcı modelini temsil eder
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password_hash"` // JSON'da gösterilmez
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// RegisterRequest kayıt isteği
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Role     string `json:"role" validate:"omitempty,max=20"`
}

// LoginRequest giriş isteği
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse giriş yanıtı. ExpiresAt epoch milisaniye.
type AuthResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	ExpiresAt int64  `json:"expiresAt"`
}

// RefreshRequest token yenileme isteği
type RefreshRequest struct {
	Token string `json:"token" validate:"required"`
}

// UserDetailsResponse /auth/me yanıtı
type UserDetailsResponse struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
}
