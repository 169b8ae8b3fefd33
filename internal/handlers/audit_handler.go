package handlers

import (
	"net/http"

	"github.com/onerilhan/go-student-records/internal/interfaces"
)

// AuditHandler audit trail okuma endpoint'leri
type AuditHandler struct {
	auditService interfaces.AuditServiceInterface
}

// NewAuditHandler yeni handler oluşturur
func NewAuditHandler(auditService interfaces.AuditServiceInterface) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetAll tüm audit kayıtları, en yeni önce
func (h *AuditHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditService.GetAllLogs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Audit kayıtları getirildi", logs)
}

// GetStudentLogs bir öğrencinin audit geçmişi.
// Silinmiş öğrencinin geçmişi de döner; kayıt yoksa boş liste.
func (h *AuditHandler) GetStudentLogs(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logs, err := h.auditService.GetStudentLogs(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Öğrenci audit geçmişi getirildi", logs)
}
