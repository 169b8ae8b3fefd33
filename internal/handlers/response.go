package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/models"
	"github.com/onerilhan/go-student-records/internal/services"
	"github.com/onerilhan/go-student-records/internal/utils"
)

// errBadRequest handler seviyesindeki istek hataları
var errBadRequest = errors.New("geçersiz istek")

// writeSuccess başarılı zarf yanıtı yazar
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	utils.WriteJSON(w, status, models.Success(message, data))
}

// writeError servis hatasını HTTP status koduna çevirip zarf formatında yazar
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message, data := mapError(err)

	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("İstek başarısız")

	utils.WriteJSON(w, status, models.Failure(message, data))
}

func mapError(err error) (int, string, interface{}) {
	var validationErrs models.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, "Doğrulama hatası", map[string]string(validationErrs)
	case errors.Is(err, errBadRequest),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrTokenStillValid):
		return http.StatusBadRequest, err.Error(), nil
	case errors.Is(err, services.ErrStudentNotFound):
		return http.StatusNotFound, err.Error(), nil
	case errors.Is(err, services.ErrStudentEmailTaken),
		errors.Is(err, services.ErrUsernameTaken):
		return http.StatusConflict, err.Error(), nil
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error(), nil
	case errors.Is(err, services.ErrPrivilegedRole):
		return http.StatusForbidden, err.Error(), nil
	default:
		return http.StatusInternalServerError, err.Error(), nil
	}
}

// decodeAndValidate JSON body'yi dst'ye çözer ve struct tag kurallarını uygular
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: body boş olamaz", errBadRequest)
		}
		return fmt.Errorf("%w: geçersiz JSON formatı", errBadRequest)
	}
	return models.Validate(dst)
}

// pathID {id} path parametresini pozitif int64 olarak okur
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: geçersiz id: %s", errBadRequest, raw)
	}
	return id, nil
}

// parsePageRequest page, size ve sort query parametrelerini okur.
// page 0'dan başlar; MaxPageSize'dan büyük size MaxPageSize'a indirilir.
func parsePageRequest(r *http.Request) (models.PageRequest, error) {
	q := r.URL.Query()
	req := models.DefaultPageRequest()

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return req, fmt.Errorf("%w: page 0 veya daha büyük olmalı", errBadRequest)
		}
		req.Page = page
	}

	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return req, fmt.Errorf("%w: size 1 veya daha büyük olmalı", errBadRequest)
		}
		req.Size = min(size, models.MaxPageSize)
	}

	field, dir, err := models.ParseSort(q.Get("sort"))
	if err != nil {
		return req, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	req.SortField = field
	req.SortDir = dir

	return req, nil
}
