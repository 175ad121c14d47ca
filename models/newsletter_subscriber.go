package models

import "time"

// NewsletterSubscriber bülten abonesini temsil eder. Email benzersizdir;
// abonelikten çıkan kayıt silinmez, IsSubscribed=false ve UnsubscribedAt ile
// işaretlenir. ResendContactID sağlayıcı tarafındaki contact kaydına işaret eder.
type NewsletterSubscriber struct {
	BaseModel
	Email           string `gorm:"type:varchar(150);uniqueIndex;not null"`
	FirstName       string `gorm:"type:varchar(100)"`
	LastName        string `gorm:"type:varchar(100)"`
	IsSubscribed    bool   `gorm:"not null;index"`
	UnsubscribedAt  *time.Time
	ResendContactID string `gorm:"type:varchar(100);index"`
	Source          string `gorm:"type:varchar(50)"` // Formun geldiği yer: footer, blog, randevu...
}
