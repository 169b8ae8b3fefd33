package models

import (
	"time"
)

// AuditAction audit işlem tipi
type AuditAction string

const (
	ActionCreate AuditAction = "CREATE"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
)

// AuditLog audit log modelini temsil eder.
// OldValues, NewValues ve Diff işleme göre boş olabilir.
type AuditLog struct {
	ID         int64       `json:"id" db:"id"`
	Action     AuditAction `json:"action" db:"action"`
	EntityName string      `json:"entityName" db:"entity_name"`
	EntityID   int64       `json:"entityId" db:"entity_id"`
	ChangedBy  string      `json:"changedBy" db:"changed_by"`
	ChangedAt  time.Time   `json:"changedAt" db:"changed_at"`
	OldValues  *string     `json:"oldValues" db:"old_values"`
	NewValues  *string     `json:"newValues" db:"new_values"`
	Diff       *string     `json:"diff" db:"diff"`
}
