package migrations

import (
	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateInboxTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating call_requests, contact_messages & site_settings tables...")
	err := db.AutoMigrate(&models.CallRequest{}, &models.ContactMessage{}, &models.SiteSetting{})
	if err != nil {
		configslog.Log.Error("Failed to migrate inbox tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Inbox tables migrated successfully")
	return nil
}
