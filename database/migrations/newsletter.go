package migrations

import (
	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateNewsletterTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating newsletter_subscribers & email_events tables...")
	err := db.AutoMigrate(&models.NewsletterSubscriber{}, &models.EmailEvent{})
	if err != nil {
		configslog.Log.Error("Failed to migrate newsletter tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Newsletter tables migrated successfully")
	return nil
}
