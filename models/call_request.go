package models

import "time"

// CallRequestStatus geri arama talebinin durumunu tanımlar.
type CallRequestStatus string

const (
	CallRequestStatusPending CallRequestStatus = "pending"
	CallRequestStatusCalled  CallRequestStatus = "called"
)

// CallRequest "sizi arayalım" formundan gelen geri arama talebini temsil eder.
// CalledAt bildirim kutusunda "okundu" sayılmanın vekilidir: CalledAt dolu ise
// talep aranmış ve kapatılmıştır.
type CallRequest struct {
	BaseModel
	Name          string            `gorm:"type:varchar(150);not null"`
	Phone         string            `gorm:"type:varchar(30);not null"`
	PreferredTime string            `gorm:"type:varchar(100)"` // Serbest metin: "hafta içi 09-12" gibi
	Status        CallRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	CalledAt      *time.Time
}
