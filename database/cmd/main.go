package main

import (
	"flag"

	"psikolog.link/configs"
	"psikolog.link/configs/configsdatabase"
	"psikolog.link/configs/configslog"
	"psikolog.link/database"

	"go.uber.org/zap"
)

// Migrasyon ve seed işlemlerini uygulamadan bağımsız çalıştırır:
//
//	go run ./database/cmd -migrate -seed
func main() {
	migrate := flag.Bool("migrate", false, "Tabloları oluştur/güncelle")
	seed := flag.Bool("seed", false, "Varsayılan kayıtları oluştur")
	flag.Parse()

	configslog.InitLogger()
	defer configslog.SyncLogger()

	configs.LoadConfig()
	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	if err := database.Initialize(configsdatabase.GetDB(), *migrate, *seed); err != nil {
		configslog.Log.Fatal("Veritabanı hazırlanamadı", zap.Error(err))
	}
}
