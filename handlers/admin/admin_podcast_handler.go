package handlers

import (
	"net/http"

	"psikolog.link/configs/configslog"
	"psikolog.link/pkg/flashmessages"
	"psikolog.link/pkg/renderer"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminPodcastHandler senkronize edilen podcast bölümlerinin yönetim ekranı.
// Bölümler bu ekrandan düzenlenmez; kaynak dışarıdaki RSS beslemesidir.
type AdminPodcastHandler struct {
	service services.IPodcastService
}

// NewAdminPodcastHandler yeni bir AdminPodcastHandler örneği oluşturur.
func NewAdminPodcastHandler() *AdminPodcastHandler {
	return &AdminPodcastHandler{service: services.NewPodcastService()}
}

// ListEpisodes bölümleri listeler. Manuel senkron butonu /api/podcasts/sync'e gider.
func (h *AdminPodcastHandler) ListEpisodes(c *fiber.Ctx) error {
	episodes, err := h.service.GetEpisodes(c.UserContext(), 0)
	renderData := fiber.Map{
		"Title":    "Podcast Bölümleri",
		"Episodes": episodes,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	if err != nil {
		configslog.Log.Error("Admin - ListEpisodes Error", zap.Error(err))
	}
	return renderer.Render(c, "admin/podcasts/list", "layouts/admin_layout", renderData, http.StatusOK)
}
