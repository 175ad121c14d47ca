package database

import (
	"testing"

	"psikolog.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db
}

func TestInitialize_MigrateAndSeed(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Initialize(db, true, true))

	var admin models.User
	require.NoError(t, db.Where("is_admin = ?", true).First(&admin).Error)
	assert.True(t, admin.IsActive)

	var slotCount int64
	require.NoError(t, db.Model(&models.AvailabilitySlot{}).Count(&slotCount).Error)
	assert.NotZero(t, slotCount)

	var settingCount int64
	require.NoError(t, db.Model(&models.SiteSetting{}).Count(&settingCount).Error)
	assert.NotZero(t, settingCount)
}

func TestInitialize_NoFlagsIsNoop(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Initialize(db, false, false))

	// Hiçbir tablo oluşturulmamış olmalı.
	assert.False(t, db.Migrator().HasTable(&models.User{}))
}

func TestInitialize_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Initialize(db, true, true))
	require.NoError(t, Initialize(db, true, true))

	var adminCount int64
	require.NoError(t, db.Model(&models.User{}).Where("is_admin = ?", true).Count(&adminCount).Error)
	assert.EqualValues(t, 1, adminCount)
}
