package handlers

import (
	"errors"
	"net/http"

	"psikolog.link/configs/configslog"
	"psikolog.link/pkg/flashmessages"
	"psikolog.link/pkg/renderer"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ContactHandler iletişim sayfası, mesaj formu ve geri arama formu için handler.
type ContactHandler struct {
	messageService     services.IContactMessageService
	callRequestService services.ICallRequestService
	settingService     services.ISettingService
}

// NewContactHandler yeni bir ContactHandler örneği oluşturur.
func NewContactHandler() *ContactHandler {
	return &ContactHandler{
		messageService:     services.NewContactMessageService(),
		callRequestService: services.NewCallRequestService(),
		settingService:     services.NewSettingService(),
	}
}

// ShowContact iletişim sayfasını gösterir.
func (h *ContactHandler) ShowContact(c *fiber.Ctx) error {
	settings, _ := h.settingService.GetAll(c.UserContext())
	renderData := fiber.Map{
		"Title":    "İletişim",
		"Settings": settings,
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "public/contact", "layouts/public_layout", renderData, http.StatusOK)
}

// SubmitContact iletişim formunu işler.
func (h *ContactHandler) SubmitContact(c *fiber.Ctx) error {
	var input services.ContactMessageInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/iletisim", fiber.StatusSeeOther)
	}

	if _, err := h.messageService.SubmitMessage(c.UserContext(), input); err != nil {
		var svcErr services.ContactMessageServiceError
		if errors.As(err, &svcErr) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		} else {
			configslog.Log.Error("İletişim formu hatası", zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Mesajınız gönderilirken bir hata oluştu.")
		}
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/iletisim", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Mesajınız alındı. En kısa sürede dönüş yapılacaktır.")
	return c.Redirect("/iletisim", fiber.StatusFound)
}

// SubmitCallRequest "sizi arayalım" formunu işler.
func (h *ContactHandler) SubmitCallRequest(c *fiber.Ctx) error {
	var input services.CallRequestInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/iletisim", fiber.StatusSeeOther)
	}

	if _, err := h.callRequestService.SubmitCallRequest(c.UserContext(), input); err != nil {
		var svcErr services.CallRequestServiceError
		if errors.As(err, &svcErr) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		} else {
			configslog.Log.Error("Geri arama formu hatası", zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Talebiniz gönderilirken bir hata oluştu.")
		}
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/iletisim", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Talebiniz alındı. Sizi en kısa sürede arayacağız.")
	return c.Redirect("/iletisim", fiber.StatusFound)
}
