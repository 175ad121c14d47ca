package handlers

import (
	"net/http"

	"psikolog.link/configs/configslog"
	"psikolog.link/pkg/renderer"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ContentHandler public yayınlar ve podcast sayfaları için handler.
type ContentHandler struct {
	publicationService services.IPublicationService
	podcastService     services.IPodcastService
}

// NewContentHandler yeni bir ContentHandler örneği oluşturur.
func NewContentHandler() *ContentHandler {
	return &ContentHandler{
		publicationService: services.NewPublicationService(),
		podcastService:     services.NewPodcastService(),
	}
}

// Publications yayınlar sayfasını tür bazında gruplu gösterir.
func (h *ContentHandler) Publications(c *fiber.Ctx) error {
	grouped, err := h.publicationService.GetPublicationsGrouped(c.UserContext())
	if err != nil {
		configslog.Log.Error("Yayınlar alınamadı", zap.Error(err))
	}
	return renderer.Render(c, "public/publications", "layouts/public_layout", fiber.Map{
		"Title":        "Yayınlar",
		"Publications": grouped,
	}, http.StatusOK)
}

// Podcast bölüm listesini gösterir.
func (h *ContentHandler) Podcast(c *fiber.Ctx) error {
	episodes, err := h.podcastService.GetEpisodes(c.UserContext(), 0)
	if err != nil {
		configslog.Log.Error("Podcast bölümleri alınamadı", zap.Error(err))
	}
	return renderer.Render(c, "public/podcast", "layouts/public_layout", fiber.Map{
		"Title":    "Podcast",
		"Episodes": episodes,
	}, http.StatusOK)
}
