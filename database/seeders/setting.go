package seeders

import (
	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedSiteSettings temel site ayarlarını boş değerlerle oluşturur; mevcut
// değerlere dokunulmaz.
func SeedSiteSettings(db *gorm.DB) error {
	defaults := []models.SiteSetting{
		{Key: models.SettingKeySiteTitle, Value: "Klinik Psikolog"},
		{Key: models.SettingKeySiteDescription, Value: ""},
		{Key: models.SettingKeyContactEmail, Value: ""},
		{Key: models.SettingKeyContactPhone, Value: ""},
		{Key: models.SettingKeyAddress, Value: ""},
		{Key: models.SettingKeyInstagramURL, Value: ""},
		{Key: models.SettingKeyTwitterURL, Value: ""},
		{Key: models.SettingKeyLinkedinURL, Value: ""},
		{Key: models.SettingKeyYoutubeURL, Value: ""},
		{Key: models.SettingKeySpotifyURL, Value: ""},
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&defaults).Error
	if err != nil {
		configslog.Log.Error("Site ayarları seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Site ayarları kontrol edildi.")
	return nil
}
