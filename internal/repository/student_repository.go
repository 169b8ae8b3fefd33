package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/onerilhan/go-student-records/internal/db"
	"github.com/onerilhan/go-student-records/internal/models"
)

const studentColumns = `id, name, email, phone, department, year, address, cgpa,
	created_by, updated_by, created_at, updated_at`

// StudentRepository öğrenci database işlemleri
type StudentRepository struct {
	db db.DBTX
}

// NewStudentRepository yeni repository oluşturur
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{db: conn}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var (
		s    models.Student
		year sql.NullInt64
		cgpa sql.NullFloat64
	)
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.Department,
		&year,
		&s.Address,
		&cgpa,
		&s.CreatedBy,
		&s.UpdatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		s.Year = &y
	}
	if cgpa.Valid {
		g := cgpa.Float64
		s.Cgpa = &g
	}
	return &s, nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// Create yeni öğrenci oluşturur
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	query := `
		INSERT INTO students (name, email, phone, department, year, address, cgpa, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + studentColumns

	row := db.Executor(ctx, r.db).QueryRowContext(ctx, query,
		student.Name,
		student.Email,
		student.Phone,
		student.Department,
		nullableInt(student.Year),
		student.Address,
		nullableFloat(student.Cgpa),
		student.CreatedBy,
		student.UpdatedBy,
	)

	created, err := scanStudent(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("öğrenci oluşturulamadı: %w", err)
	}
	return created, nil
}

// GetByID ID ile öğrenci bulur
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(db.Executor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("öğrenci arama hatası: %w", err)
	}
	return student, nil
}

// GetByEmail email ile öğrenci bulur (büyük/küçük harf duyarsız)
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE LOWER(email) = LOWER($1)`

	student, err := scanStudent(db.Executor(ctx, r.db).QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("öğrenci arama hatası: %w", err)
	}
	return student, nil
}

// ExistsByEmail email kayıtlı mı
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.Executor(ctx, r.db).
		QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE LOWER(email) = LOWER($1))`, email).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("email kontrolü yapılamadı: %w", err)
	}
	return exists, nil
}

// Update tüm değiştirilebilir alanları günceller
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (*models.Student, error) {
	query := `
		UPDATE students
		SET name = $1, email = $2, phone = $3, department = $4, year = $5,
			address = $6, cgpa = $7, updated_by = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING ` + studentColumns

	row := db.Executor(ctx, r.db).QueryRowContext(ctx, query,
		student.Name,
		student.Email,
		student.Phone,
		student.Department,
		nullableInt(student.Year),
		student.Address,
		nullableFloat(student.Cgpa),
		student.UpdatedBy,
		student.ID,
	)

	updated, err := scanStudent(row)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case isUniqueViolation(err):
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("öğrenci güncellenemedi: %w", err)
	}
	return updated, nil
}

// Delete öğrenciyi kalıcı olarak siler
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.Executor(ctx, r.db).ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("öğrenci silinemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("silme sonucu okunamadı: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetAll tüm öğrencileri id sırasıyla listeler
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY id ASC`

	rows, err := db.Executor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("öğrenciler listelenemedi: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

// Search name/email filtreleriyle (AND, büyük/küçük harf duyarsız) sayfalı arama.
// Filtre yoksa tüm kayıtlar sayfalanır.
func (r *StudentRepository) Search(ctx context.Context, filter models.StudentSearch, page models.PageRequest) ([]*models.Student, int64, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if name := strings.TrimSpace(filter.Name); name != "" {
		args = append(args, containsPattern(name))
		conditions = append(conditions, fmt.Sprintf(`name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if email := strings.TrimSpace(filter.Email); email != "" {
		args = append(args, containsPattern(email))
		conditions = append(conditions, fmt.Sprintf(`email ILIKE $%d ESCAPE '\'`, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	exec := db.Executor(ctx, r.db)

	var total int64
	if err := exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("öğrenci sayısı alınamadı: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM students%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		studentColumns, where, page.OrderBy(), len(args)+1, len(args)+2)
	rows, err := exec.QueryContext(ctx, query, append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("öğrenci araması yapılamadı: %w", err)
	}
	defer rows.Close()

	students, err := collectStudents(rows)
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func collectStudents(rows *sql.Rows) ([]*models.Student, error) {
	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("öğrenci okunamadı: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("satır okuma hatası: %w", err)
	}
	return students, nil
}
