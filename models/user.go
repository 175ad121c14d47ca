package models

import "time"

// User yönetim paneline giriş yapabilen hesabı temsil eder.
// Sitede public kayıt yoktur; kullanıcılar seeder veya panel üzerinden oluşturulur.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(150);not null"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsAdmin      bool   `gorm:"default:false;index"`
	IsActive     bool   `gorm:"not null"`
	LastLoginAt  *time.Time
}
