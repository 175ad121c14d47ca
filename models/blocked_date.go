package models

// BlockedDate ilgili günün tamamen rezervasyona kapatıldığını belirtir
// (tatil, kongre vb.). Şablonda slot olsa bile o gün hiçbir slot sunulmaz.
type BlockedDate struct {
	BaseModel
	Date   string `gorm:"type:varchar(10);uniqueIndex;not null"` // YYYY-MM-DD
	Reason string `gorm:"type:varchar(255)"`
}
