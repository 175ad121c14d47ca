package models

// BlogCategory blog yazılarının bağlandığı kategoriyi temsil eder.
type BlogCategory struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null"`
	Slug string `gorm:"type:varchar(120);uniqueIndex;not null"`
}
