package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/audit"
	"github.com/onerilhan/go-student-records/internal/auth"
	"github.com/onerilhan/go-student-records/internal/db"
	"github.com/onerilhan/go-student-records/internal/interfaces"
	"github.com/onerilhan/go-student-records/internal/models"
)

const (
	// serializationErrorPlaceholder state JSON'a çevrilemediğinde yazılan değer
	serializationErrorPlaceholder = "Error serializing"

	auditSavepoint = "audit_log"
)

// Audit sonuçları (metrik etiketi)
const (
	AuditResultSuccess = "success"
	AuditResultError   = "error"
	AuditResultSkipped = "skipped"
)

// AuditObserver audit sonuçlarını dışarıya (metrik) bildirir
type AuditObserver interface {
	ObserveAudit(action, result string)
}

// AuditService audit trail business logic'i
type AuditService struct {
	auditRepo interfaces.AuditRepositoryInterface
	tx        db.Transactor
	observer  AuditObserver
	now       func() time.Time
}

// NewAuditService yeni service oluşturur. tx nil ise kayıt savepoint'siz yazılır.
func NewAuditService(auditRepo interfaces.AuditRepositoryInterface, tx db.Transactor) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		tx:        tx,
		now:       time.Now,
	}
}

// WithObserver audit sonuçlarını metrik olarak raporlar
func (s *AuditService) WithObserver(observer AuditObserver) *AuditService {
	s.observer = observer
	return s
}

// LogCreate CREATE kaydı, sadece yeni durum
func (s *AuditService) LogCreate(ctx context.Context, entityName string, entityID int64, newState audit.Trackable) {
	newValues := serialize(newState)
	s.record(ctx, &models.AuditLog{
		Action:     models.ActionCreate,
		EntityName: entityName,
		EntityID:   entityID,
		NewValues:  &newValues,
	})
}

// LogUpdate izlenen alanlarda değişiklik varsa UPDATE kaydı yazar
func (s *AuditService) LogUpdate(ctx context.Context, entityName string, entityID int64, oldState, newState audit.Trackable) {
	diff := audit.Diff(oldState, newState)
	if diff == "" {
		log.Debug().
			Str("entity", entityName).
			Int64("entity_id", entityID).
			Msg("Değişiklik yok, audit kaydı yazılmadı")
		s.observe(models.ActionUpdate, AuditResultSkipped)
		return
	}

	oldValues := serialize(oldState)
	newValues := serialize(newState)
	s.record(ctx, &models.AuditLog{
		Action:     models.ActionUpdate,
		EntityName: entityName,
		EntityID:   entityID,
		OldValues:  &oldValues,
		NewValues:  &newValues,
		Diff:       &diff,
	})
}

// LogDelete DELETE kaydı, sadece eski durum
func (s *AuditService) LogDelete(ctx context.Context, entityName string, entityID int64, oldState audit.Trackable) {
	oldValues := serialize(oldState)
	s.record(ctx, &models.AuditLog{
		Action:     models.ActionDelete,
		EntityName: entityName,
		EntityID:   entityID,
		OldValues:  &oldValues,
	})
}

// GetAllLogs tüm audit kayıtları, en yeni önce
func (s *AuditService) GetAllLogs(ctx context.Context) ([]*models.AuditLog, error) {
	return s.auditRepo.GetAll(ctx)
}

// GetEntityLogs entity'ye ait audit kayıtları, en yeni önce
func (s *AuditService) GetEntityLogs(ctx context.Context, entityName string, entityID int64) ([]*models.AuditLog, error) {
	return s.auditRepo.GetByEntity(ctx, entityName, entityID)
}

// GetStudentLogs öğrenciye ait audit kayıtları
func (s *AuditService) GetStudentLogs(ctx context.Context, studentID int64) ([]*models.AuditLog, error) {
	return s.GetEntityLogs(ctx, models.EntityStudent, studentID)
}

// record kaydı yazar. Hata loglanır ve yutulur, asıl işlem etkilenmez.
func (s *AuditService) record(ctx context.Context, entry *models.AuditLog) {
	entry.ChangedBy = auth.ActorFrom(ctx)
	entry.ChangedAt = s.now()

	write := func(ctx context.Context) error {
		return s.auditRepo.Create(ctx, entry)
	}

	var err error
	if s.tx != nil {
		err = s.tx.WithSavepoint(ctx, auditSavepoint, write)
	} else {
		err = write(ctx)
	}

	if err != nil {
		log.Error().
			Err(err).
			Str("action", string(entry.Action)).
			Str("entity", entry.EntityName).
			Int64("entity_id", entry.EntityID).
			Str("changed_by", entry.ChangedBy).
			Msg("Audit kaydı yazılamadı")
		s.observe(entry.Action, AuditResultError)
		return
	}

	log.Info().
		Str("action", string(entry.Action)).
		Str("entity", entry.EntityName).
		Int64("entity_id", entry.EntityID).
		Str("changed_by", entry.ChangedBy).
		Msg("Audit kaydı oluşturuldu")
	s.observe(entry.Action, AuditResultSuccess)
}

func (s *AuditService) observe(action models.AuditAction, result string) {
	if s.observer != nil {
		s.observer.ObserveAudit(string(action), result)
	}
}

func serialize(state audit.Trackable) string {
	data, err := json.Marshal(state)
	if err != nil {
		log.Error().Err(err).Msg("Audit state serialize edilemedi")
		return serializationErrorPlaceholder
	}
	return string(data)
}
