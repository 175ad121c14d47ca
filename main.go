package main

import (
	"os"
	"os/signal"
	"syscall"

	"psikolog.link/configs"
	"psikolog.link/configs/configsdatabase"
	"psikolog.link/configs/configslog"
	"psikolog.link/database"
	"psikolog.link/realtime"
	"psikolog.link/routes"
	"psikolog.link/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.LoadConfig()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	if err := database.Initialize(configs.GetDB(), true, true); err != nil {
		configslog.Log.Fatal("Veritabanı hazırlanamadı", zap.Error(err))
	}

	hub := realtime.NewHub()
	realtime.SetDefault(hub)

	engine := html.New("./views", ".html")
	engine.AddFunc("add", func(a, b int) int { return a + b })
	engine.AddFunc("sub", func(a, b int) int { return a - b })
	engine.AddFunc("deref", func(p *uint) uint {
		if p == nil {
			return 0
		}
		return *p
	})

	app := fiber.New(fiber.Config{
		Views:       engine,
		AppName:     "psikolog.link",
		ProxyHeader: fiber.HeaderXForwardedFor,
	})

	app.Static("/assets", "./public/assets")

	routes.SetupRoutes(app, hub)

	sched := scheduler.New()
	sched.Start()

	// Graceful shutdown: SIGINT/SIGTERM ile bekleyen istekler tamamlanır.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, uygulama durduruluyor...")
		sched.Stop()
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Uygulama kapatılırken hata oluştu", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Uygulama %s portunda başlatılıyor (%s)", cfg.Port, cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
