package models

import "time"

// PodcastEpisode harici RSS beslemesinden senkronize edilen bir podcast
// bölümünü temsil eder. Kayıtların sahibi bu sistem değildir; GUID üzerinden
// upsert edilir.
type PodcastEpisode struct {
	BaseModel
	GUID            string     `gorm:"type:varchar(500);uniqueIndex;not null"`
	Title           string     `gorm:"type:varchar(500);not null"`
	Description     string     `gorm:"type:text"` // CDATA/HTML temizlenmiş düz metin
	AudioURL        string     `gorm:"type:varchar(1000)"`
	EmbedURL        string     `gorm:"type:varchar(1000)"`
	DurationSeconds int        `gorm:"type:integer;default:0"`
	ImageURL        string     `gorm:"type:varchar(1000)"`
	PublishedAt     *time.Time `gorm:"index"`
}
