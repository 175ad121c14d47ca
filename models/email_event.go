package models

import "time"

// EmailEvent e-posta sağlayıcısından webhook ile gelen teslimat olaylarının
// append-only kaydıdır. Audit sütunlarına ihtiyaç yoktur; satırlar hiç
// güncellenmez veya silinmez.
type EmailEvent struct {
	ID         uint      `gorm:"primaryKey"`
	EventType  string    `gorm:"type:varchar(100);not null;index"` // email.bounced, email.complained, email.clicked...
	EmailID    string    `gorm:"type:varchar(100);index"`          // Sağlayıcının e-posta ID'si
	Recipient  string    `gorm:"type:varchar(150);index"`
	Payload    string    `gorm:"type:text"` // Ham webhook gövdesi (JSON)
	ReceivedAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}
