// internal/interfaces/service.go
package interfaces

import (
	"context"

	"github.com/onerilhan/go-student-records/internal/audit"
	"github.com/onerilhan/go-student-records/internal/models"
)

// StudentServiceInterface öğrenci business logic interface'i
type StudentServiceInterface interface {
	GetAllStudents(ctx context.Context) ([]*models.StudentResponse, error)
	GetStudentByID(ctx context.Context, id int64) (*models.StudentResponse, error)
	GetStudentByEmail(ctx context.Context, email string) (*models.StudentResponse, error)
	CreateStudent(ctx context.Context, req *models.StudentRequest) (*models.StudentResponse, error)
	UpdateStudent(ctx context.Context, id int64, req *models.StudentRequest) (*models.StudentResponse, error)
	DeleteStudent(ctx context.Context, id int64) error
	GetStudentsPage(ctx context.Context, page models.PageRequest) (*models.Page[*models.StudentResponse], error)
	SearchStudents(ctx context.Context, filter models.StudentSearch, page models.PageRequest) (*models.Page[*models.StudentResponse], error)

	// GetMyProfile giriş yapan kullanıcının email'ine ait öğrenci kaydı
	GetMyProfile(ctx context.Context) (*models.StudentResponse, error)

	// IsOwnProfile öğrenci kaydı giriş yapan kullanıcıya mı ait
	IsOwnProfile(ctx context.Context, studentID int64) (bool, error)
}

// AuditServiceInterface audit trail interface'i.
// Log* metodları hata dönmez, audit hatası asıl işlemi durdurmaz.
type AuditServiceInterface interface {
	LogCreate(ctx context.Context, entityName string, entityID int64, newState audit.Trackable)
	LogUpdate(ctx context.Context, entityName string, entityID int64, oldState, newState audit.Trackable)
	LogDelete(ctx context.Context, entityName string, entityID int64, oldState audit.Trackable)

	GetAllLogs(ctx context.Context) ([]*models.AuditLog, error)
	GetEntityLogs(ctx context.Context, entityName string, entityID int64) ([]*models.AuditLog, error)
	GetStudentLogs(ctx context.Context, studentID int64) ([]*models.AuditLog, error)
}

// UserServiceInterface kullanıcı ve kimlik doğrulama interface'i
type UserServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context) (*models.UserDetailsResponse, error)
	Refresh(ctx context.Context, token string) (*models.AuthResponse, error)

	// EnsureAdmin admin hesabı yoksa oluşturur
	EnsureAdmin(ctx context.Context, username, password, email string) error
}
