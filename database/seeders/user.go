package seeders

import (
	"errors"
	"os"

	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser yönetici hesabını oluşturur veya şifresini ortam değişkeninden
// günceller. ADMIN_EMAIL ve ADMIN_PASSWORD tanımsızsa geliştirme varsayılanları
// kullanılır.
func SeedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@psikolog.link"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "degistir-beni"
		configslog.SLog.Warn("ADMIN_PASSWORD tanımlı değil, geliştirme şifresi kullanılıyor!")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var existing models.User
	err = db.Where("email = ?", email).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin := models.User{
			Name:         "Yönetici",
			Email:        email,
			PasswordHash: string(hash),
			IsAdmin:      true,
			IsActive:     true,
		}
		if err := db.Create(&admin).Error; err != nil {
			configslog.Log.Error("Yönetici hesabı oluşturulamadı", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Yönetici hesabı oluşturuldu: %s", email)
		return nil
	case err != nil:
		return err
	default:
		existing.PasswordHash = string(hash)
		existing.IsAdmin = true
		existing.IsActive = true
		if err := db.Save(&existing).Error; err != nil {
			configslog.Log.Error("Yönetici hesabı güncellenemedi", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Yönetici hesabı güncellendi: %s", email)
		return nil
	}
}
