package repositories

import (
	"context"
	"errors"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ISettingRepository site ayarları için veritabanı işlemleri arayüzü.
type ISettingRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key, value string) error
}

// SettingRepository ISettingRepository arayüzünü uygular.
type SettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository yeni bir SettingRepository örneği oluşturur.
func NewSettingRepository() ISettingRepository {
	return &SettingRepository{db: configs.GetDB()}
}

func (r *SettingRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// GetAll tüm ayarları anahtar/değer map'i olarak döndürür.
func (r *SettingRepository) GetAll(ctx context.Context) (map[string]string, error) {
	var settings []models.SiteSetting
	if err := r.getDB(ctx).Find(&settings).Error; err != nil {
		configslog.Log.Error("SettingRepository.GetAll: DB error", zap.Error(err))
		return nil, err
	}
	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}

// Get tek bir ayarın değerini döndürür.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("geçersiz ayar anahtarı")
	}
	var setting models.SiteSetting
	err := r.getDB(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		configslog.Log.Error("SettingRepository.Get: DB error", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return setting.Value, nil
}

// Upsert ayarı anahtar çakışmasında değeri güncelleyerek yazar.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("geçersiz ayar anahtarı")
	}
	setting := models.SiteSetting{Key: key, Value: value}
	return r.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

var _ ISettingRepository = (*SettingRepository)(nil)
