package models

// ContactMessage iletişim formundan gelen mesajı temsil eder.
type ContactMessage struct {
	BaseModel
	Name    string `gorm:"type:varchar(150);not null"`
	Email   string `gorm:"type:varchar(150);not null"`
	Subject string `gorm:"type:varchar(255)"`
	Content string `gorm:"type:text;not null"`
	IsRead  bool   `gorm:"default:false;index"`
}
