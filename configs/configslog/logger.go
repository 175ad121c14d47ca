package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) loglama için global zap logger.
var Log *zap.Logger

// SLog printf tarzı loglama için global sugared logger.
var SLog *zap.SugaredLogger

// InitLogger global loggerları başlatır. APP_ENV=production ise JSON,
// aksi halde konsol (development) encoder kullanılır.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger kurulamazsa uygulama devam edemez.
		panic("zap logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger buffer'daki log kayıtlarını flush eder. main'de defer ile çağrılır.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func init() {
	// Testlerde ve InitLogger çağrılmadan önce nil pointer'ı önlemek için
	// no-op logger ata.
	if Log == nil {
		Log = zap.NewNop()
		SLog = Log.Sugar()
	}
}
