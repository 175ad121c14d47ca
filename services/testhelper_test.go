package services

import (
	"context"
	"testing"

	"psikolog.link/configs/configsdatabase"
	"psikolog.link/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB testler için bellek içi bir SQLite veritabanı açar ve global
// bağlantıyı buna yönlendirir. Her test kendi izole veritabanını alır.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.AvailabilitySlot{},
		&models.BlockedDate{},
		&models.Appointment{},
		&models.BlogCategory{},
		&models.BlogPost{},
		&models.BlogComment{},
		&models.Publication{},
		&models.PodcastEpisode{},
		&models.NewsletterSubscriber{},
		&models.EmailEvent{},
		&models.CallRequest{},
		&models.ContactMessage{},
		&models.SiteSetting{},
	)
	require.NoError(t, err)

	// Çifte rezervasyonu engelleyen kısmi benzersiz indeks (bkz. migrations).
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_appointments_active_date_slot
		ON appointments (date, slot_id)
		WHERE status <> 'cancelled' AND deleted_at IS NULL`).Error
	require.NoError(t, err)

	configsdatabase.SetDB(db)
	t.Cleanup(func() { configsdatabase.SetDB(nil) })

	return db
}

func testCtx() context.Context {
	return context.Background()
}
