package models

// AvailabilitySlot haftalık tekrar eden randevu şablonundaki tek bir zaman
// dilimini temsil eder. Aylık uygunluk hesabı bu şablondan üretilir.
type AvailabilitySlot struct {
	BaseModel
	DayOfWeek       int    `gorm:"type:integer;not null;index"` // 0=Pazar .. 6=Cumartesi (time.Weekday ile uyumlu)
	StartTime       string `gorm:"type:varchar(5);not null"`    // HH:MM
	DurationMinutes int    `gorm:"type:integer;not null;default:50"`
	SessionType     string `gorm:"type:varchar(100)"`
	// GORM, default tag'li alanlarda sıfır değeri INSERT'ten düşürür;
	// false'un yazılabilmesi için default tag'i kullanılmaz.
	IsActive bool `gorm:"not null;index"`
}
