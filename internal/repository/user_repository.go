package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/go-student-records/internal/db"
	"github.com/onerilhan/go-student-records/internal/models"
)

// UserRepository kullanıcı database işlemleri
type UserRepository struct {
	db db.DBTX
}

// NewUserRepository yeni repository oluşturur
func NewUserRepository(conn db.DBTX) *UserRepository {
	return &UserRepository{db: conn}
}

// Create yeni kullanıcı oluşturur
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, email, role, created_at
	`

	var result models.User
	err := db.Executor(ctx, r.db).QueryRowContext(ctx, query,
		user.Username,
		user.Password,
		user.Email,
		string(user.Role),
	).Scan(
		&result.ID,
		&result.Username,
		&result.Password,
		&result.Email,
		&result.Role,
		&result.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	return &result, nil
}

// GetByUsername kullanıcı adı ile kullanıcı bulur
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, role, created_at
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := db.Executor(ctx, r.db).QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kullanıcı arama hatası: %w", err)
	}

	return &user, nil
}

// ExistsByUsername kullanıcı adı alınmış mı
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := db.Executor(ctx, r.db).
		QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("kullanıcı adı kontrolü yapılamadı: %w", err)
	}
	return exists, nil
}
