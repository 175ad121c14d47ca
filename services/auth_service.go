package services

import (
	"context"
	"net/mail"
	"strings"

	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceError kimlik doğrulama işlemlerine özgü servis hataları.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrAuthInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrAuthUserInactive       AuthServiceError = "hesap pasif durumda"
	ErrAuthUserNotFound       AuthServiceError = "kullanıcı bulunamadı"
	ErrAuthPasswordTooShort   AuthServiceError = "şifre en az 8 karakter olmalıdır"
	ErrAuthCurrentPasswordBad AuthServiceError = "mevcut şifre hatalı"
	ErrAuthEmailInvalid       AuthServiceError = "geçerli bir e-posta adresi giriniz"
	ErrAuthNameRequired       AuthServiceError = "isim alanı zorunludur"
)

const minPasswordLength = 8

// IAuthService yönetim paneli kimlik doğrulama arayüzü.
type IAuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, name, email string) error
	ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error
	CreateUser(ctx context.Context, name, email, password string, isAdmin bool) (*models.User, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	repo repositories.IUserRepository
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return &AuthService{repo: repositories.NewUserRepository()}
}

// NewAuthServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewAuthServiceWith(repo repositories.IUserRepository) IAuthService {
	return &AuthService{repo: repo}
}

// Login e-posta ve şifreyi doğrular. Başarılı girişte son giriş zamanı
// damgalanır. Kullanıcının var olmaması ile şifrenin yanlış olması aynı
// hatayı döndürür.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAuthUserInactive
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		configslog.Log.Warn("Son giriş zamanı güncellenemedi", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	configslog.SLog.Infof("Kullanıcı giriş yaptı: %s (ID: %d)", user.Email, user.ID)
	return user, nil
}

// GetUserByID kullanıcıyı ID ile döndürür.
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrAuthUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile kullanıcının adını ve e-postasını günceller.
func (s *AuthService) UpdateProfile(ctx context.Context, id uint, name, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrAuthNameRequired
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrAuthEmailInvalid
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrAuthUserNotFound
		}
		return err
	}
	user.Name = name
	user.Email = email
	return s.repo.Update(ctx, user)
}

// ChangePassword mevcut şifreyi doğrulayıp yenisini kaydeder.
func (s *AuthService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrAuthPasswordTooShort
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrAuthUserNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrAuthCurrentPasswordBad
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.repo.Update(ctx, user)
}

// CreateUser yeni bir panel kullanıcısı oluşturur (seeder ve panel için).
func (s *AuthService) CreateUser(ctx context.Context, name, email, password string, isAdmin bool) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrAuthNameRequired
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrAuthEmailInvalid
	}
	if len(password) < minPasswordLength {
		return nil, ErrAuthPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

var _ IAuthService = (*AuthService)(nil)
