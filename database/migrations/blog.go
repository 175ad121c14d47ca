package migrations

import (
	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateBlogTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating blog_categories, blog_posts & blog_comments tables...")
	err := db.AutoMigrate(&models.BlogCategory{}, &models.BlogPost{}, &models.BlogComment{})
	if err != nil {
		configslog.Log.Error("Failed to migrate blog tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Blog tables migrated successfully")
	return nil
}
