package scheduler

import (
	"context"
	"time"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler uygulama içi zamanlanmış görevleri yönetir. Şimdilik tek görev
// vardır: podcast beslemesinin periyodik senkronizasyonu.
type Scheduler struct {
	cron           *cron.Cron
	podcastService services.IPodcastService
}

// New yeni bir Scheduler örneği oluşturur.
func New() *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		podcastService: services.NewPodcastService(),
	}
}

// Start görevleri kaydeder ve cron döngüsünü başlatır. Besleme adresi
// yapılandırılmamışsa görev hiç kaydedilmez.
func (s *Scheduler) Start() {
	cfg := configs.GetConfig()
	if cfg.PodcastFeedURL == "" {
		configslog.SLog.Info("PODCAST_FEED_URL tanımlı değil, podcast senkron görevi atlanıyor.")
		return
	}

	_, err := s.cron.AddFunc(cfg.PodcastSyncSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		result, err := s.podcastService.Sync(ctx)
		if err != nil {
			configslog.Log.Error("Zamanlanmış podcast senkronu başarısız", zap.Error(err))
			return
		}
		configslog.SLog.Infof("Zamanlanmış podcast senkronu: %d yeni, %d güncellendi, %d hata",
			result.Added, result.Updated, result.Errors)
	})
	if err != nil {
		configslog.Log.Error("Podcast senkron görevi kaydedilemedi",
			zap.String("schedule", cfg.PodcastSyncSchedule), zap.Error(err))
		return
	}

	s.cron.Start()
	configslog.SLog.Infof("Zamanlayıcı başlatıldı (podcast senkronu: %s)", cfg.PodcastSyncSchedule)
}

// Stop çalışan görevlerin bitmesini bekleyerek zamanlayıcıyı durdurur.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	configslog.SLog.Info("Zamanlayıcı durduruldu.")
}
