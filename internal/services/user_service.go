package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-student-records/internal/auth"
	"github.com/onerilhan/go-student-records/internal/interfaces"
	"github.com/onerilhan/go-student-records/internal/models"
	"github.com/onerilhan/go-student-records/internal/repository"
)

// UserService kullanıcı ve kimlik doğrulama business logic'i
type UserService struct {
	userRepo              interfaces.UserRepositoryInterface
	jwt                   *auth.JWTManager
	allowPrivilegedSignup bool
}

// NewUserService yeni service oluşturur
func NewUserService(userRepo interfaces.UserRepositoryInterface, jwt *auth.JWTManager, allowPrivilegedSignup bool) *UserService {
	return &UserService{
		userRepo:              userRepo,
		jwt:                   jwt,
		allowPrivilegedSignup: allowPrivilegedSignup,
	}
}

// Register yeni kullanıcı kaydeder
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) error {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUsernameTaken
	}

	// Rol boşsa USER
	role := models.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	if role == "" {
		role = models.RoleUser
	}
	if !role.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidRole, req.Role)
	}

	// GÜVENLIK: yönetici rolleri sadece açıkça izin verilirse
	if role.IsPrivileged() && !s.allowPrivilegedSignup {
		log.Warn().Str("username", req.Username).Str("role", string(role)).Msg("Yetkili rol ile kayıt denemesi engellendi")
		return ErrPrivilegedRole
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	_, err = s.userRepo.Create(ctx, &models.User{
		Username: req.Username,
		Password: hashed,
		Email:    req.Email,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	log.Info().Str("username", req.Username).Str("role", string(role)).Msg("Kullanıcı kaydedildi")
	return nil
}

// Login kullanıcı girişi yapar ve token döner.
// Bilinmeyen kullanıcı ve yanlış şifre aynı hatayı döner.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			auth.CheckDummyPassword(req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user.Username, user.Role, user.Email)
}

// GetProfile giriş yapan kullanıcının bilgileri
func (s *UserService) GetProfile(ctx context.Context) (*models.UserDetailsResponse, error) {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return &models.UserDetailsResponse{
		Username: identity.Username,
		Role:     models.Role(identity.Role),
		Email:    identity.Email,
	}, nil
}

// Refresh süresi dolmuş token'ı yeniler. Rol ve email güncel kullanıcı kaydından alınır.
func (s *UserService) Refresh(ctx context.Context, token string) (*models.AuthResponse, error) {
	_, _, claims, err := s.jwt.RefreshToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenStillValid) {
			return nil, ErrTokenStillValid
		}
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return s.issueToken(user.Username, user.Role, user.Email)
}

// EnsureAdmin admin hesabı yoksa oluşturur. Bilgiler boşsa hiçbir şey yapmaz.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		log.Debug().Msg("Admin bilgileri tanımlı değil, seed atlandı")
		return nil
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		log.Info().Str("username", username).Msg("Admin kullanıcı zaten mevcut")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = s.userRepo.Create(ctx, &models.User{
		Username: username,
		Password: hashed,
		Email:    email,
		Role:     models.RoleAdmin,
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("admin kullanıcı oluşturulamadı: %w", err)
	}

	log.Info().Str("username", username).Msg("👑 Admin kullanıcı oluşturuldu")
	return nil
}

func (s *UserService) issueToken(username string, role models.Role, email string) (*models.AuthResponse, error) {
	token, expiresAt, err := s.jwt.GenerateToken(username, string(role), email)
	if err != nil {
		return nil, fmt.Errorf("token oluşturulamadı: %w", err)
	}

	return &models.AuthResponse{
		Token:     token,
		Username:  username,
		Role:      role,
		ExpiresAt: expiresAt.UnixMilli(),
	}, nil
}
