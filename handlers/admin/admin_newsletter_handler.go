package handlers

import (
	"net/http"

	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/flashmessages"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/pkg/renderer"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminNewsletterHandler abone listesi ve bülten hazırlama ekranları.
// Gönderimin kendisi JSON API üzerinden yapılır (POST /api/newsletter/send).
type AdminNewsletterHandler struct {
	service services.INewsletterService
}

// NewAdminNewsletterHandler yeni bir AdminNewsletterHandler örneği oluşturur.
func NewAdminNewsletterHandler() *AdminNewsletterHandler {
	return &AdminNewsletterHandler{service: services.NewNewsletterService()}
}

// ListSubscribers aboneleri durum filtresiyle listeler.
func (h *AdminNewsletterHandler) ListSubscribers(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetSubscribersPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Bülten Aboneleri",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Aboneler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.NewsletterSubscriber{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Admin - ListSubscribers Error", zap.Error(err))
	}
	return renderer.Render(c, "admin/newsletter/subscribers", "layouts/admin_layout", renderData, http.StatusOK)
}

// ShowCompose bülten hazırlama formunu gösterir.
func (h *AdminNewsletterHandler) ShowCompose(c *fiber.Ctx) error {
	subscriberCount, _ := h.service.CountSubscribed(c.UserContext())
	renderData := fiber.Map{
		"Title":           "Bülten Gönder",
		"SubscriberCount": subscriberCount,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "admin/newsletter/compose", "layouts/admin_layout", renderData, http.StatusOK)
}

// Unsubscribe aboneyi yönetim ekranından listeden çıkarır.
func (h *AdminNewsletterHandler) Unsubscribe(c *fiber.Ctx) error {
	email := c.FormValue("email")
	if err := h.service.Unsubscribe(c.UserContext(), email); err != nil {
		configslog.Log.Error("Admin - Unsubscribe Error", zap.String("email", email), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Abone listeden çıkarılamadı.")
		return c.Redirect("/yonetim/bulten/aboneler", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Abone listeden çıkarıldı.")
	return c.Redirect("/yonetim/bulten/aboneler", fiber.StatusFound)
}
