package models

import "time"

// PostStatus blog yazısının yayın durumunu tanımlar.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// BlogPost bir blog yazısını temsil eder. Content, FAQItems ve Bibliography
// yapılandırılmış JSON doküman olarak TEXT sütununda saklanır; şekil doğrulaması
// servis katmanında yapılır.
type BlogPost struct {
	BaseModel
	Title        string     `gorm:"type:varchar(255);not null"`
	Slug         string     `gorm:"type:varchar(280);uniqueIndex;not null"`
	Excerpt      string     `gorm:"type:text"`
	Content      string     `gorm:"type:text"` // Zengin içerik (JSON doküman)
	CoverImage   string     `gorm:"type:varchar(500)"`
	CategoryID   *uint      `gorm:"index"`
	Status       PostStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	IsFeatured   bool       `gorm:"default:false;index"`
	Author       string     `gorm:"type:varchar(150)"`
	ContentNotes string     `gorm:"type:text"`
	FAQItems     string     `gorm:"type:text"` // JSON: [{question, answer}]
	Bibliography string     `gorm:"type:text"` // JSON: [{title, source, url}]
	PublishedAt  *time.Time `gorm:"index"`

	Category *BlogCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Comments []BlogComment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
