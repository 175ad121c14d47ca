package models

import "time"

// PublicationType yayının türünü tanımlar.
type PublicationType string

const (
	PublicationTypeBook    PublicationType = "kitap"
	PublicationTypeArticle PublicationType = "makale"
	PublicationTypePodcast PublicationType = "podcast"
)

// Publication psikoloğun kitap, makale ve podcast yayınlarını temsil eder.
type Publication struct {
	BaseModel
	Title       string          `gorm:"type:varchar(255);not null"`
	Type        PublicationType `gorm:"type:varchar(20);not null;index"`
	Description string          `gorm:"type:text"`
	Date        *time.Time
	URL         string `gorm:"type:varchar(500)"`
	CoverImage  string `gorm:"type:varchar(500)"`
	SortOrder   int    `gorm:"type:integer;default:0;index"`
}
