package services

import (
	"context"
	"strings"

	"psikolog.link/configs/configslog"
	"psikolog.link/repositories"

	"go.uber.org/zap"
)

// SettingServiceError site ayarlarına özgü servis hataları.
type SettingServiceError string

func (e SettingServiceError) Error() string { return string(e) }

const (
	ErrSettingKeyRequired SettingServiceError = "ayar anahtarı zorunludur"
)

// ISettingService anahtar/değer site ayarları için servis arayüzü.
type ISettingService interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
	SaveAll(ctx context.Context, settings map[string]string) error
}

// SettingService ISettingService arayüzünü uygular.
type SettingService struct {
	repo repositories.ISettingRepository
}

// NewSettingService yeni bir SettingService örneği oluşturur.
func NewSettingService() ISettingService {
	return &SettingService{repo: repositories.NewSettingRepository()}
}

// NewSettingServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewSettingServiceWith(repo repositories.ISettingRepository) ISettingService {
	return &SettingService{repo: repo}
}

// GetAll tüm ayarları anahtar/değer haritası olarak döndürür.
func (s *SettingService) GetAll(ctx context.Context) (map[string]string, error) {
	return s.repo.GetAll(ctx)
}

// Get tek bir ayarı döndürür. Tanımsız anahtar boş string döndürür.
func (s *SettingService) Get(ctx context.Context, key string) (string, error) {
	value, err := s.repo.Get(ctx, key)
	if err == repositories.ErrNotFound {
		return "", nil
	}
	return value, err
}

// Save tek bir ayarı upsert eder.
func (s *SettingService) Save(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrSettingKeyRequired
	}
	return s.repo.Upsert(ctx, key, value)
}

// SaveAll birden çok ayarı kaydeder. Tek anahtarın hatası kalanları durdurmaz;
// ilk hata dönüş değeri olarak saklanır.
func (s *SettingService) SaveAll(ctx context.Context, settings map[string]string) error {
	var firstErr error
	for key, value := range settings {
		if err := s.Save(ctx, key, value); err != nil {
			configslog.Log.Error("Ayar kaydedilemedi", zap.String("key", key), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

var _ ISettingService = (*SettingService)(nil)
