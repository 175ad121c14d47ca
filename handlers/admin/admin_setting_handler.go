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

// AdminSettingHandler site ayarları formu için handler.
type AdminSettingHandler struct {
	service services.ISettingService
}

// NewAdminSettingHandler yeni bir AdminSettingHandler örneği oluşturur.
func NewAdminSettingHandler() *AdminSettingHandler {
	return &AdminSettingHandler{service: services.NewSettingService()}
}

// ShowSettings ayar formunu mevcut değerlerle gösterir.
func (h *AdminSettingHandler) ShowSettings(c *fiber.Ctx) error {
	settings, err := h.service.GetAll(c.UserContext())
	renderData := fiber.Map{
		"Title":    "Site Ayarları",
		"Settings": settings,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	if err != nil {
		configslog.Log.Error("Admin - ShowSettings Error", zap.Error(err))
	}
	return renderer.Render(c, "admin/settings/index", "layouts/admin_layout", renderData, http.StatusOK)
}

// SaveSettings formdaki tüm anahtarları upsert eder.
func (h *AdminSettingHandler) SaveSettings(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	values := map[string]string{}
	if err == nil && form != nil {
		for key, v := range form.Value {
			if len(v) > 0 {
				values[key] = v[0]
			}
		}
	} else {
		// application/x-www-form-urlencoded gövde
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			values[string(key)] = string(value)
		})
	}

	if err := h.service.SaveAll(c.UserContext(), values); err != nil {
		configslog.Log.Error("Admin - SaveSettings Error", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Ayarlar kaydedilirken bir hata oluştu.")
		return c.Redirect("/yonetim/ayarlar", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Ayarlar kaydedildi.")
	return c.Redirect("/yonetim/ayarlar", fiber.StatusFound)
}
