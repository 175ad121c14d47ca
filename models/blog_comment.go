package models

// CommentStatus yorumun moderasyon durumunu tanımlar.
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
)

// BlogComment bir blog yazısına yapılan ziyaretçi yorumunu temsil eder.
// Public listede yalnızca status = approved olan yorumlar görünür.
// IsRead bildirim kutusundaki "görüldü" bilgisidir; moderasyon durumundan
// bağımsız tutulur.
type BlogComment struct {
	BaseModel
	PostID      uint          `gorm:"not null;index"`
	AuthorName  string        `gorm:"type:varchar(150);not null"`
	AuthorEmail string        `gorm:"type:varchar(150);not null"`
	Content     string        `gorm:"type:text;not null"`
	Status      CommentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsRead      bool          `gorm:"default:false;index"`

	Post BlogPost `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
