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

// HomeHandler public ana sayfa ve statik sayfalar için handler.
type HomeHandler struct {
	blogService        services.IBlogService
	publicationService services.IPublicationService
	settingService     services.ISettingService
}

// NewHomeHandler yeni bir HomeHandler örneği oluşturur.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{
		blogService:        services.NewBlogService(),
		publicationService: services.NewPublicationService(),
		settingService:     services.NewSettingService(),
	}
}

// Home ana sayfayı gösterir: öne çıkan yazılar ve yayın özeti.
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	featured, err := h.blogService.GetFeaturedPosts(c.UserContext(), 3)
	if err != nil {
		configslog.Log.Error("Ana sayfa - öne çıkan yazılar alınamadı", zap.Error(err))
	}
	publications, err := h.publicationService.GetPublications(c.UserContext())
	if err != nil {
		configslog.Log.Error("Ana sayfa - yayınlar alınamadı", zap.Error(err))
	}
	settings, _ := h.settingService.GetAll(c.UserContext())

	renderData := fiber.Map{
		"Title":         "Klinik Psikolog",
		"FeaturedPosts": featured,
		"Publications":  publications,
		"Settings":      settings,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "public/home", "layouts/public_layout", renderData, http.StatusOK)
}

// About hakkımda sayfasını gösterir.
func (h *HomeHandler) About(c *fiber.Ctx) error {
	settings, _ := h.settingService.GetAll(c.UserContext())
	return renderer.Render(c, "public/about", "layouts/public_layout", fiber.Map{
		"Title":    "Hakkımda",
		"Settings": settings,
	})
}
