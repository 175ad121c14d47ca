package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"psikolog.link/configs/configslog"
	"psikolog.link/pkg/flashmessages"
	"psikolog.link/pkg/renderer"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminPublicationHandler yayın yönetimi (kitap/makale/podcast) için handler.
type AdminPublicationHandler struct {
	service services.IPublicationService
}

// NewAdminPublicationHandler yeni bir AdminPublicationHandler örneği oluşturur.
func NewAdminPublicationHandler() *AdminPublicationHandler {
	return &AdminPublicationHandler{service: services.NewPublicationService()}
}

// ListPublications yayınları listeler.
func (h *AdminPublicationHandler) ListPublications(c *fiber.Ctx) error {
	publications, err := h.service.GetPublications(c.UserContext())
	renderData := fiber.Map{
		"Title":        "Yayınlar",
		"Publications": publications,
		"FormData":     flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	if err != nil {
		configslog.Log.Error("Admin - ListPublications Error", zap.Error(err))
	}
	return renderer.Render(c, "admin/publications/list", "layouts/admin_layout", renderData, http.StatusOK)
}

// CreatePublication yeni yayın ekler.
func (h *AdminPublicationHandler) CreatePublication(c *fiber.Ctx) error {
	var input services.PublicationInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/yonetim/yayinlar", fiber.StatusSeeOther)
	}

	if _, err := h.service.CreatePublication(c.UserContext(), input); err != nil {
		h.flashPublicationError(c, err, "Yayın oluşturulamadı.")
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/yonetim/yayinlar", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yayın eklendi.")
	return c.Redirect("/yonetim/yayinlar", fiber.StatusFound)
}

// ShowUpdatePublication yayın düzenleme formunu gösterir.
func (h *AdminPublicationHandler) ShowUpdatePublication(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/yayinlar")
	}

	publication, err := h.service.GetPublicationByID(c.UserContext(), uint(id))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yayın bulunamadı.")
		return c.Redirect("/yonetim/yayinlar")
	}

	return renderer.Render(c, "admin/publications/update", "layouts/admin_layout", fiber.Map{
		"Title":       "Yayını Düzenle",
		"Publication": publication,
		"FormData":    flashmessages.GetFlashFormData(c),
	})
}

// UpdatePublication yayını günceller.
func (h *AdminPublicationHandler) UpdatePublication(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/yayinlar")
	}
	redirectPathOnError := fmt.Sprintf("/yonetim/yayinlar/duzenle/%d", id)

	var input services.PublicationInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	if err := h.service.UpdatePublication(c.UserContext(), uint(id), input); err != nil {
		h.flashPublicationError(c, err, "Yayın güncellenemedi.")
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yayın güncellendi.")
	return c.Redirect("/yonetim/yayinlar", fiber.StatusFound)
}

// DeletePublication yayını siler.
func (h *AdminPublicationHandler) DeletePublication(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/yayinlar")
	}

	if err := h.service.DeletePublication(c.UserContext(), uint(id)); err != nil {
		h.flashPublicationError(c, err, "Yayın silinemedi.")
		return c.Redirect("/yonetim/yayinlar", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yayın silindi.")
	return c.Redirect("/yonetim/yayinlar", fiber.StatusFound)
}

func (h *AdminPublicationHandler) flashPublicationError(c *fiber.Ctx, err error, fallback string) {
	var svcErr services.PublicationServiceError
	if errors.As(err, &svcErr) {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		return
	}
	configslog.Log.Error("Admin - yayın işlemi hatası", zap.Error(err))
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, fallback)
}
