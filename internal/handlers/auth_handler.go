package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/interfaces"
	"github.com/onerilhan/go-student-records/internal/models"
)

// AuthHandler kimlik doğrulama endpoint'leri
type AuthHandler struct {
	userService interfaces.UserServiceInterface
}

// NewAuthHandler yeni handler oluşturur
func NewAuthHandler(userService interfaces.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register kullanıcı kayıt endpoint'i
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.userService.Register(r.Context(), &req); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Kullanıcı başarıyla kaydedildi", nil)
}

// Login kullanıcı giriş endpoint'i
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", resp.Username).Str("role", string(resp.Role)).Msg("Kullanıcı giriş yaptı")
	writeSuccess(w, http.StatusOK, "Giriş başarılı", resp)
}

// Refresh süresi dolmuş token'ı yeniler ({"token": "..."})
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.userService.Refresh(r.Context(), req.Token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Token yenilendi", resp)
}

// Me giriş yapan kullanıcının bilgileri (protected endpoint)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetProfile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Kullanıcı bilgileri getirildi", profile)
}
