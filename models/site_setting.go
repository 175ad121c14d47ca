package models

// SiteSetting anahtar/değer biçiminde site yapılandırmasını tutar
// (iletişim bilgileri, sosyal medya linkleri vb.).
type SiteSetting struct {
	BaseModel
	Key   string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// Sık kullanılan ayar anahtarları.
const (
	SettingKeyContactEmail    = "contact_email"
	SettingKeyContactPhone    = "contact_phone"
	SettingKeyAddress         = "address"
	SettingKeyInstagramURL    = "instagram_url"
	SettingKeyTwitterURL      = "twitter_url"
	SettingKeyLinkedinURL     = "linkedin_url"
	SettingKeyYoutubeURL      = "youtube_url"
	SettingKeySpotifyURL      = "spotify_url"
	SettingKeySiteTitle       = "site_title"
	SettingKeySiteDescription = "site_description"
)
