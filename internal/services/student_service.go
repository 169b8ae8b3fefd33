package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/auth"
	"github.com/onerilhan/go-student-records/internal/db"
	"github.com/onerilhan/go-student-records/internal/interfaces"
	"github.com/onerilhan/go-student-records/internal/models"
	"github.com/onerilhan/go-student-records/internal/repository"
)

// StudentService öğrenci business logic'i
type StudentService struct {
	studentRepo  interfaces.StudentRepositoryInterface
	auditService interfaces.AuditServiceInterface
	tx           db.Transactor
}

// NewStudentService yeni service oluşturur
func NewStudentService(
	studentRepo interfaces.StudentRepositoryInterface,
	auditService interfaces.AuditServiceInterface,
	tx db.Transactor,
) *StudentService {
	return &StudentService{
		studentRepo:  studentRepo,
		auditService: auditService,
		tx:           tx,
	}
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrStudentNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrStudentEmailTaken
	}
	return err
}

// GetAllStudents tüm öğrencileri listeler
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*models.StudentResponse, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.ToStudentResponses(students), nil
}

// GetStudentByID ID ile öğrenci getirir
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return student.ToResponse(), nil
}

// GetStudentByEmail email ile öğrenci getirir
func (s *StudentService) GetStudentByEmail(ctx context.Context, email string) (*models.StudentResponse, error) {
	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return student.ToResponse(), nil
}

// CreateStudent yeni öğrenci oluşturur ve CREATE audit kaydı yazar
func (s *StudentService) CreateStudent(ctx context.Context, req *models.StudentRequest) (*models.StudentResponse, error) {
	actor := auth.ActorFrom(ctx)

	var created *models.Student
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.studentRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if exists {
			return ErrStudentEmailTaken
		}

		student := req.ToEntity()
		student.CreatedBy = actor
		student.UpdatedBy = actor

		created, err = s.studentRepo.Create(ctx, student)
		if err != nil {
			return mapRepoError(err)
		}

		s.auditService.LogCreate(ctx, models.EntityStudent, created.ID, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("student_id", created.ID).Str("actor", actor).Msg("Öğrenci oluşturuldu")
	return created.ToResponse(), nil
}

// UpdateStudent tüm alanları koşulsuz olarak günceller.
// İzlenen alanlarda değişiklik yoksa audit kaydı yazılmaz.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *models.StudentRequest) (*models.StudentResponse, error) {
	actor := auth.ActorFrom(ctx)

	var updated *models.Student
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.studentRepo.GetByID(ctx, id)
		if err != nil {
			return mapRepoError(err)
		}

		if !strings.EqualFold(existing.Email, req.Email) {
			exists, err := s.studentRepo.ExistsByEmail(ctx, req.Email)
			if err != nil {
				return err
			}
			if exists {
				return ErrStudentEmailTaken
			}
		}

		before := existing.Clone()
		req.ApplyTo(existing)
		existing.UpdatedBy = actor

		updated, err = s.studentRepo.Update(ctx, existing)
		if err != nil {
			return mapRepoError(err)
		}

		s.auditService.LogUpdate(ctx, models.EntityStudent, id, before, updated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("student_id", id).Str("actor", actor).Msg("Öğrenci güncellendi")
	return updated.ToResponse(), nil
}

// DeleteStudent öğrenciyi siler ve DELETE audit kaydı yazar
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.studentRepo.GetByID(ctx, id)
		if err != nil {
			return mapRepoError(err)
		}

		if err := s.studentRepo.Delete(ctx, id); err != nil {
			return mapRepoError(err)
		}

		s.auditService.LogDelete(ctx, models.EntityStudent, id, existing)
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int64("student_id", id).Str("actor", auth.ActorFrom(ctx)).Msg("Öğrenci silindi")
	return nil
}

// GetStudentsPage filtresiz sayfalı liste
func (s *StudentService) GetStudentsPage(ctx context.Context, page models.PageRequest) (*models.Page[*models.StudentResponse], error) {
	return s.search(ctx, models.StudentSearch{}, page)
}

// SearchStudents name/email filtreleriyle arama, filtre yoksa düz sayfalama
func (s *StudentService) SearchStudents(ctx context.Context, filter models.StudentSearch, page models.PageRequest) (*models.Page[*models.StudentResponse], error) {
	if !filter.HasFilters() {
		return s.GetStudentsPage(ctx, page)
	}
	return s.search(ctx, filter, page)
}

func (s *StudentService) search(ctx context.Context, filter models.StudentSearch, page models.PageRequest) (*models.Page[*models.StudentResponse], error) {
	students, total, err := s.studentRepo.Search(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("öğrenci listesi alınamadı: %w", err)
	}
	return models.MapPage(models.NewPage(students, page, total), (*models.Student).ToResponse), nil
}

// GetMyProfile giriş yapan kullanıcının email'ine ait öğrenci kaydı
func (s *StudentService) GetMyProfile(ctx context.Context) (*models.StudentResponse, error) {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if identity.Email == "" {
		return nil, ErrStudentNotFound
	}
	return s.GetStudentByEmail(ctx, identity.Email)
}

// IsOwnProfile öğrenci kaydının email'i giriş yapan kullanıcının email'i ile aynı mı
func (s *StudentService) IsOwnProfile(ctx context.Context, studentID int64) (bool, error) {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok || identity.Email == "" {
		return false, nil
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(student.Email, identity.Email), nil
}
