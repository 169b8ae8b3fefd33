package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/interfaces"
	"github.com/onerilhan/go-student-records/internal/models"
)

// StudentHandler öğrenci CRUD endpoint'leri
type StudentHandler struct {
	studentService interfaces.StudentServiceInterface
}

// NewStudentHandler yeni handler oluşturur
func NewStudentHandler(studentService interfaces.StudentServiceInterface) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// GetAll tüm öğrencileri listeler
func (h *StudentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.GetAllStudents(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Öğrenciler getirildi", students)
}

// GetByID tek öğrenci
func (h *StudentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	student, err := h.studentService.GetStudentByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Öğrenci getirildi", student)
}

// GetMyProfile STUDENT rolündeki kullanıcının kendi kaydı
func (h *StudentHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	student, err := h.studentService.GetMyProfile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Profil getirildi", student)
}

// Create yeni öğrenci (201)
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.StudentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	student, err := h.studentService.CreateStudent(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("student_id", student.ID).Str("created_by", student.CreatedBy).Msg("Öğrenci oluşturuldu")
	writeSuccess(w, http.StatusCreated, "Öğrenci oluşturuldu", student)
}

// Update öğrenciyi günceller
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.StudentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	student, err := h.studentService.UpdateStudent(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Öğrenci güncellendi", student)
}

// Delete öğrenciyi siler
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.studentService.DeleteStudent(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Öğrenci silindi", nil)
}

// GetPage sayfalı liste (?page=0&size=20&sort=name,desc)
func (h *StudentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.studentService.GetStudentsPage(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Öğrenciler getirildi", result)
}

// Search isim ve email ile arama (büyük/küçük harf duyarsız, parçalı eşleşme)
func (h *StudentHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := models.StudentSearch{
		Name:  r.URL.Query().Get("name"),
		Email: r.URL.Query().Get("email"),
	}

	result, err := h.studentService.SearchStudents(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Arama tamamlandı", result)
}
