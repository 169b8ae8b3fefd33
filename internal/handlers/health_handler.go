package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/onerilhan/go-student-records/internal/utils"
)

// Pinger veritabanı erişilebilirlik kontrolü (*sql.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler /health endpoint'i
type HealthHandler struct {
	db      Pinger
	version string
}

// NewHealthHandler yeni handler oluşturur
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version,omitempty"`
	Time     string `json:"time"`
}

// Check veritabanına ping atar, erişilemezse 503 döner
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:   "UP",
		Database: "UP",
		Version:  h.version,
		Time:     time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			resp.Status = "DOWN"
			resp.Database = "DOWN"
			status = http.StatusServiceUnavailable
		}
	}

	utils.WriteJSON(w, status, resp)
}
