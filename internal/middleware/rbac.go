package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/auth"
	"github.com/onerilhan/go-student-records/internal/middleware/errors"
	"github.com/onerilhan/go-student-records/internal/models"
)

// Permission represents a specific permission
type Permission string

// Define available permissions
const (
	PermViewOwnProfile       Permission = "view_own_profile"
	PermViewOwnStudentRecord Permission = "view_own_student_record"
	PermViewStudents         Permission = "view_students"
	PermCreateStudent        Permission = "create_student"
	PermUpdateStudent        Permission = "update_student"
	PermDeleteStudent        Permission = "delete_student"
	PermViewAuditLogs        Permission = "view_audit_logs"
)

var (
	basePermissions     = []Permission{PermViewOwnProfile}
	academicPermissions = append(append([]Permission{}, basePermissions...), PermViewStudents)
)

// RolePermissions defines permissions for each role
var RolePermissions = map[models.Role][]Permission{
	models.RoleUser:     basePermissions,
	models.RoleStudent:  {PermViewOwnProfile, PermViewOwnStudentRecord},
	models.RoleLecturer: academicPermissions,
	models.RoleHOD:      academicPermissions,
	models.RoleStaff: {
		PermViewOwnProfile,
		PermViewStudents,
		PermUpdateStudent,
		PermViewAuditLogs,
	},
	models.RoleAdmin: {
		PermViewOwnProfile,
		PermViewStudents,
		PermCreateStudent,
		PermUpdateStudent,
		PermDeleteStudent,
		PermViewAuditLogs,
	},
}

// ResourceOwnership checks if the caller owns the requested resource
type ResourceOwnership func(r *http.Request) bool

// RBACConfig RBAC middleware configuration
type RBACConfig struct {
	RequiredPermission Permission
	// OwnerPermission sahibi olduğu kayda erişebilen rollerin yetkisi
	OwnerPermission   Permission
	ResourceOwnership ResourceOwnership
}

// RequirePermission creates RBAC middleware for specific permission
func RequirePermission(permission Permission) func(http.Handler) http.Handler {
	return RequirePermissionWithConfig(&RBACConfig{RequiredPermission: permission})
}

// RequirePermissionOrOwnership izin yoksa ownerPermission sahibi rollere
// kayıt sahipliği kontrolüyle erişim verir
func RequirePermissionOrOwnership(permission, ownerPermission Permission, ownershipCheck ResourceOwnership) func(http.Handler) http.Handler {
	return RequirePermissionWithConfig(&RBACConfig{
		RequiredPermission: permission,
		OwnerPermission:    ownerPermission,
		ResourceOwnership:  ownershipCheck,
	})
}

// RequirePermissionWithConfig creates RBAC middleware with full config.
// AuthMiddleware'den sonra çalışmalıdır.
func RequirePermissionWithConfig(config *RBACConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFrom(r.Context())
			if !ok {
				log.Error().
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("RBAC: Identity not found - AuthMiddleware might be missing")
				panic(errors.NewAuthError("Kimlik doğrulama gerekli"))
			}

			role := models.Role(identity.Role)

			if HasPermission(role, config.RequiredPermission) {
				log.Debug().
					Str("username", identity.Username).
					Str("role", identity.Role).
					Str("permission", string(config.RequiredPermission)).
					Msg("RBAC: Access granted - Permission granted")
				next.ServeHTTP(w, r)
				return
			}

			if config.OwnerPermission != "" && config.ResourceOwnership != nil &&
				HasPermission(role, config.OwnerPermission) && config.ResourceOwnership(r) {
				log.Debug().
					Str("username", identity.Username).
					Str("role", identity.Role).
					Str("path", r.URL.Path).
					Msg("RBAC: Access granted - Resource owner")
				next.ServeHTTP(w, r)
				return
			}

			log.Warn().
				Str("username", identity.Username).
				Str("role", identity.Role).
				Str("required_permission", string(config.RequiredPermission)).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg("RBAC: Access denied - Insufficient permissions")

			panic(errors.NewForbiddenError("Bu işlem için yetkiniz bulunmuyor", r.URL.Path, r.Method))
		})
	}
}

// HasPermission checks if role has the required permission
func HasPermission(role models.Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// OwnershipChecker öğrenci kaydının sahipliğini doğrular (StudentService)
type OwnershipChecker interface {
	IsOwnProfile(ctx context.Context, studentID int64) (bool, error)
}

// StudentOwnership /students/{id} için sahiplik kontrolü.
// Hata veya geçersiz id durumunda erişim verilmez.
func StudentOwnership(checker OwnershipChecker) ResourceOwnership {
	return func(r *http.Request) bool {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			return false
		}

		owns, err := checker.IsOwnProfile(r.Context(), id)
		if err != nil {
			log.Error().Err(err).Int64("student_id", id).Msg("RBAC: Ownership check failed")
			return false
		}
		return owns
	}
}
