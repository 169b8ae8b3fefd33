package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-student-records/internal/db"
	"github.com/onerilhan/go-student-records/internal/models"
)

const auditColumns = `id, action, entity_name, entity_id, changed_by, changed_at, old_values, new_values, diff`

// AuditRepository audit log database işlemleri
type AuditRepository struct {
	db db.DBTX
}

// NewAuditRepository yeni repository oluşturur
func NewAuditRepository(conn db.DBTX) *AuditRepository {
	return &AuditRepository{db: conn}
}

// Create yeni audit log oluşturur
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (action, entity_name, entity_id, changed_by, changed_at, old_values, new_values, diff)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := db.Executor(ctx, r.db).QueryRowContext(ctx, query,
		string(entry.Action),
		entry.EntityName,
		entry.EntityID,
		entry.ChangedBy,
		entry.ChangedAt,
		entry.OldValues,
		entry.NewValues,
		entry.Diff,
	).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("audit log oluşturulamadı: %w", err)
	}

	return nil
}

// GetAll tüm audit kayıtlarını en yeni önce döner
func (r *AuditRepository) GetAll(ctx context.Context) ([]*models.AuditLog, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs ORDER BY changed_at DESC, id DESC`

	rows, err := db.Executor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("audit logları listelenemedi: %w", err)
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

// GetByEntity entity'ye ait audit kayıtlarını en yeni önce döner
func (r *AuditRepository) GetByEntity(ctx context.Context, entityName string, entityID int64) ([]*models.AuditLog, error) {
	query := `SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE entity_name = $1 AND entity_id = $2
		ORDER BY changed_at DESC, id DESC`

	rows, err := db.Executor(ctx, r.db).QueryContext(ctx, query, entityName, entityID)
	if err != nil {
		return nil, fmt.Errorf("entity audit logları alınamadı: %w", err)
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

func collectAuditLogs(rows *sql.Rows) ([]*models.AuditLog, error) {
	logs := []*models.AuditLog{}
	for rows.Next() {
		var (
			entry                      models.AuditLog
			oldValues, newValues, diff sql.NullString
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.EntityName,
			&entry.EntityID,
			&entry.ChangedBy,
			&entry.ChangedAt,
			&oldValues,
			&newValues,
			&diff,
		); err != nil {
			return nil, fmt.Errorf("audit log okunamadı: %w", err)
		}
		entry.OldValues = nullStringPtr(oldValues)
		entry.NewValues = nullStringPtr(newValues)
		entry.Diff = nullStringPtr(diff)
		logs = append(logs, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("satır okuma hatası: %w", err)
	}
	return logs, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
