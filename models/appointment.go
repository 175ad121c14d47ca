package models

// AppointmentStatus randevunun yaşam döngüsündeki durumunu tanımlar.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"   // Yeni talep, onay bekliyor
	AppointmentStatusConfirmed AppointmentStatus = "confirmed" // Yönetici tarafından onaylandı
	AppointmentStatusCancelled AppointmentStatus = "cancelled" // İptal edildi (terminal)
	AppointmentStatusCompleted AppointmentStatus = "completed" // Görüşme yapıldı (terminal)
)

// AppointmentChannel görüşmenin yapılacağı kanalı tanımlar.
type AppointmentChannel string

const (
	ChannelOnline   AppointmentChannel = "online"
	ChannelInPerson AppointmentChannel = "yuz_yuze"
)

// Appointment public randevu formundan gelen bir randevu talebini temsil eder.
// Durum geçişleri yalnızca yönetici tarafından tetiklenir.
// (date, slot_id) ikilisi iptal edilmemiş kayıtlar için benzersizdir; çifte
// rezervasyon yarışı veritabanı kısıtı ile engellenir (bkz. migrations).
type Appointment struct {
	BaseModel
	Name        string             `gorm:"type:varchar(150);not null"`
	Email       string             `gorm:"type:varchar(150);not null;index"`
	Phone       string             `gorm:"type:varchar(30)"`
	SessionType string             `gorm:"type:varchar(100)"`
	Channel     AppointmentChannel `gorm:"type:varchar(20);not null;default:'online'"`
	Date        string             `gorm:"type:varchar(10);not null;index"` // YYYY-MM-DD
	Time        string             `gorm:"type:varchar(5);not null"`        // HH:MM
	SlotID      uint               `gorm:"not null;index"`
	Status      AppointmentStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsRead      bool               `gorm:"default:false;index"`
	Notes       string             `gorm:"type:text"`

	Slot AvailabilitySlot `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// IsTerminal randevunun artık durum değiştiremeyeceğini belirtir.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

// CanTransitionTo yönetici kaynaklı durum geçişinin geçerli olup olmadığını döndürür.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return target == AppointmentStatusConfirmed || target == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return target == AppointmentStatusCompleted || target == AppointmentStatusCancelled
	default:
		return false
	}
}
