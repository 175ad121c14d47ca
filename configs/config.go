package configs

import (
	"os"
	"strconv"

	"psikolog.link/configs/configsdatabase"
	"psikolog.link/configs/configslog"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// AppConfig uygulamanın tüm ortam değişkenlerinden okunan yapılandırmasını tutar.
type AppConfig struct {
	Port          string
	Env           string
	SessionSecret string

	// Resend (e-posta sağlayıcısı)
	ResendAPIKey               string
	ResendAudienceID           string
	ResendFromEmail            string
	ResendWebhookSecret        string
	ResendWebhookAllowUnsigned bool

	// Zamanlanmış görevler
	CronSecret          string
	PodcastFeedURL      string
	PodcastSyncSchedule string
}

var appConfig *AppConfig

// LoadConfig .env dosyasını ve ortam değişkenlerini okuyup AppConfig'i doldurur.
// Zorunlu değişkenler eksikse uygulamayı durdurur.
func LoadConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, mevcut ortam değişkenleri kullanılacak.")
	}

	cfg := &AppConfig{
		Port:                       getEnv("APP_PORT", "3000"),
		Env:                        getEnv("APP_ENV", "development"),
		SessionSecret:              os.Getenv("SESSION_SECRET"),
		ResendAPIKey:               os.Getenv("RESEND_API_KEY"),
		ResendAudienceID:           os.Getenv("RESEND_AUDIENCE_ID"),
		ResendFromEmail:            getEnv("RESEND_FROM_EMAIL", "Psikolog <noreply@psikolog.link>"),
		ResendWebhookSecret:        os.Getenv("RESEND_WEBHOOK_SECRET"),
		ResendWebhookAllowUnsigned: getEnvBool("RESEND_WEBHOOK_ALLOW_UNSIGNED", false),
		CronSecret:                 os.Getenv("CRON_SECRET"),
		PodcastFeedURL:             os.Getenv("PODCAST_FEED_URL"),
		PodcastSyncSchedule:        getEnv("PODCAST_SYNC_SCHEDULE", "0 4 * * *"),
	}

	if cfg.SessionSecret == "" && cfg.Env == "production" {
		configslog.SLog.Fatal("SESSION_SECRET production ortamında zorunludur!")
	}
	if cfg.ResendWebhookSecret == "" && !cfg.ResendWebhookAllowUnsigned {
		configslog.SLog.Warn("RESEND_WEBHOOK_SECRET tanımlı değil; imzasız webhook istekleri reddedilecek. " +
			"İmzasız isteklere izin vermek için RESEND_WEBHOOK_ALLOW_UNSIGNED=true ayarlayın.")
	}

	appConfig = cfg
	return cfg
}

// GetConfig yüklenmiş uygulama yapılandırmasını döndürür.
func GetConfig() *AppConfig {
	if appConfig == nil {
		return LoadConfig()
	}
	return appConfig
}

// GetDB veritabanı bağlantısını döndürür (configsdatabase üzerinden).
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
