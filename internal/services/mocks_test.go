package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/go-student-records/internal/audit"
	"github.com/onerilhan/go-student-records/internal/db"
	"github.com/onerilhan/go-student-records/internal/interfaces"
	"github.com/onerilhan/go-student-records/internal/models"
)

// MockStudentRepository - test için mock repository
type MockStudentRepository struct {
	mock.Mock
}

var _ interfaces.StudentRepositoryInterface = (*MockStudentRepository)(nil)

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	args := m.Called(ctx, student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *models.Student) (*models.Student, error) {
	args := m.Called(ctx, student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, *models.Student) *models.Student); ok {
		return fn(ctx, student), args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockStudentRepository) Search(ctx context.Context, filter models.StudentSearch, page models.PageRequest) ([]*models.Student, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]*models.Student), args.Get(1).(int64), args.Error(2)
}

// MockUserRepository - test için mock repository
type MockUserRepository struct {
	mock.Mock
}

var _ interfaces.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockAuditRepository - test için mock repository
type MockAuditRepository struct {
	mock.Mock
}

var _ interfaces.AuditRepositoryInterface = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) GetAll(ctx context.Context) ([]*models.AuditLog, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) GetByEntity(ctx context.Context, entityName string, entityID int64) ([]*models.AuditLog, error) {
	args := m.Called(ctx, entityName, entityID)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

// MockAuditService - student service testleri için
type MockAuditService struct {
	mock.Mock
}

var _ interfaces.AuditServiceInterface = (*MockAuditService)(nil)

func (m *MockAuditService) LogCreate(ctx context.Context, entityName string, entityID int64, newState audit.Trackable) {
	m.Called(ctx, entityName, entityID, newState)
}

func (m *MockAuditService) LogUpdate(ctx context.Context, entityName string, entityID int64, oldState, newState audit.Trackable) {
	m.Called(ctx, entityName, entityID, oldState, newState)
}

func (m *MockAuditService) LogDelete(ctx context.Context, entityName string, entityID int64, oldState audit.Trackable) {
	m.Called(ctx, entityName, entityID, oldState)
}

func (m *MockAuditService) GetAllLogs(ctx context.Context) ([]*models.AuditLog, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

func (m *MockAuditService) GetEntityLogs(ctx context.Context, entityName string, entityID int64) ([]*models.AuditLog, error) {
	args := m.Called(ctx, entityName, entityID)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

func (m *MockAuditService) GetStudentLogs(ctx context.Context, studentID int64) ([]*models.AuditLog, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

// fakeTransactor fonksiyonları doğrudan çalıştırır, savepoint çağrılarını sayar
type fakeTransactor struct {
	transactions int
	savepoints   int
}

var _ db.Transactor = (*fakeTransactor)(nil)

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn db.TransactionFunc) error {
	f.transactions++
	return fn(ctx)
}

func (f *fakeTransactor) WithSavepoint(ctx context.Context, name string, fn db.TransactionFunc) error {
	f.savepoints++
	return fn(ctx)
}

// recordingObserver audit metrik çağrılarını kaydeder
type recordingObserver struct {
	events []string
}

func (r *recordingObserver) ObserveAudit(action, result string) {
	r.events = append(r.events, action+":"+result)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
