package seeders

import (
	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedAvailabilitySlots hafta içi her gün için varsayılan görüşme saatlerini
// oluşturur. Tabloda kayıt varsa hiçbir şey yapılmaz; şablon yönetim
// ekranından düzenlenir.
func SeedAvailabilitySlots(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.AvailabilitySlot{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		configslog.SLog.Info("Slot şablonu zaten mevcut, seed atlanıyor.")
		return nil
	}

	startTimes := []string{"10:00", "11:00", "14:00", "15:00", "16:00"}
	var slots []models.AvailabilitySlot
	// Pazartesi (1) - Cuma (5)
	for day := 1; day <= 5; day++ {
		for _, start := range startTimes {
			slots = append(slots, models.AvailabilitySlot{
				DayOfWeek:       day,
				StartTime:       start,
				DurationMinutes: 50,
				SessionType:     "Bireysel Terapi",
				IsActive:        true,
			})
		}
	}

	if err := db.Create(&slots).Error; err != nil {
		configslog.Log.Error("Slot şablonu seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("%d varsayılan slot oluşturuldu.", len(slots))
	return nil
}
