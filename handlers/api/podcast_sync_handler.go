package handlers

import (
	"crypto/subtle"
	"errors"
	"strings"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PodcastSyncHandler podcast senkronizasyon API'si için handler. POST yönetici
// oturumu ile, GET zamanlanmış görev servisinin bearer token'ı ile tetiklenir.
type PodcastSyncHandler struct {
	service services.IPodcastService
}

// NewPodcastSyncHandler yeni bir PodcastSyncHandler örneği oluşturur.
func NewPodcastSyncHandler() *PodcastSyncHandler {
	return &PodcastSyncHandler{service: services.NewPodcastService()}
}

// Sync senkronizasyonu yönetici adına tetikler.
// POST /api/podcasts/sync
func (h *PodcastSyncHandler) Sync(c *fiber.Ctx) error {
	return h.runSync(c)
}

// CronSync senkronizasyonu cron çağrısı adına tetikler.
// GET /api/podcasts/sync (Authorization: Bearer <CRON_SECRET>)
func (h *PodcastSyncHandler) CronSync(c *fiber.Ctx) error {
	secret := configs.GetConfig().CronSecret
	if secret == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Cron tetikleyici yapılandırılmamış."})
	}
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Yetkisiz istek."})
	}
	return h.runSync(c)
}

func (h *PodcastSyncHandler) runSync(c *fiber.Ctx) error {
	result, err := h.service.Sync(c.UserContext())
	if err != nil {
		if errors.Is(err, services.ErrPodcastFeedURLMissing) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Podcast senkronizasyon hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"added":   result.Added,
		"updated": result.Updated,
		"errors":  result.Errors,
	})
}
