package migrations

import (
	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateContentTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating publications & podcast_episodes tables...")
	err := db.AutoMigrate(&models.Publication{}, &models.PodcastEpisode{})
	if err != nil {
		configslog.Log.Error("Failed to migrate content tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Content tables migrated successfully")
	return nil
}
