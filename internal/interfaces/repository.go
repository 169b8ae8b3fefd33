// internal/interfaces/repository.go
package interfaces

import (
	"context"

	"github.com/onerilhan/go-student-records/internal/models"
)

// StudentRepositoryInterface öğrenci database işlemleri için interface
type StudentRepositoryInterface interface {
	// Create yeni öğrenci oluşturur
	Create(ctx context.Context, student *models.Student) (*models.Student, error)

	// GetByID ID ile öğrenci bulur
	GetByID(ctx context.Context, id int64) (*models.Student, error)

	// GetByEmail email ile öğrenci bulur
	GetByEmail(ctx context.Context, email string) (*models.Student, error)

	// ExistsByEmail email başka bir öğrencide kayıtlı mı
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update tüm değiştirilebilir alanları günceller
	Update(ctx context.Context, student *models.Student) (*models.Student, error)

	// Delete öğrenciyi kalıcı olarak siler
	Delete(ctx context.Context, id int64) error

	// GetAll tüm öğrencileri id sırasıyla listeler
	GetAll(ctx context.Context) ([]*models.Student, error)

	// Search filtreli ve sayfalı liste, toplam kayıt sayısıyla birlikte
	Search(ctx context.Context, filter models.StudentSearch, page models.PageRequest) ([]*models.Student, int64, error)
}

// UserRepositoryInterface kullanıcı database işlemleri için interface
type UserRepositoryInterface interface {
	// Create yeni kullanıcı oluşturur
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername kullanıcı adı ile kullanıcı bulur
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// ExistsByUsername kullanıcı adı alınmış mı
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// AuditRepositoryInterface audit log database işlemleri için interface
type AuditRepositoryInterface interface {
	// Create audit kaydı ekler
	Create(ctx context.Context, entry *models.AuditLog) error

	// GetAll tüm kayıtlar, en yeni önce
	GetAll(ctx context.Context) ([]*models.AuditLog, error)

	// GetByEntity entity kayıtları, en yeni önce
	GetByEntity(ctx context.Context, entityName string, entityID int64) ([]*models.AuditLog, error)
}
