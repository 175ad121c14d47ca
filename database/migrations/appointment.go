package migrations

import (
	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateAppointmentsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating availability_slots, blocked_dates & appointments tables...")
	err := db.AutoMigrate(&models.AvailabilitySlot{}, &models.BlockedDate{}, &models.Appointment{})
	if err != nil {
		configslog.Log.Error("Failed to migrate appointment tables", zap.Error(err))
		return err
	}

	// İptal edilmemiş kayıtlar için (date, slot_id) benzersizdir; çifte
	// rezervasyon yarışını uygulama kontrolünden bağımsız olarak engeller.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_appointments_active_date_slot
		ON appointments (date, slot_id)
		WHERE status <> 'cancelled' AND deleted_at IS NULL`).Error
	if err != nil {
		configslog.Log.Error("Failed to create appointments partial unique index", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Appointment tables migrated successfully")
	return nil
}
