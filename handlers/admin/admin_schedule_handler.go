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

// AdminScheduleHandler haftalık slot şablonu ve bloke gün yönetimi için handler.
type AdminScheduleHandler struct {
	service services.IScheduleService
}

// NewAdminScheduleHandler yeni bir AdminScheduleHandler örneği oluşturur.
func NewAdminScheduleHandler() *AdminScheduleHandler {
	return &AdminScheduleHandler{service: services.NewScheduleService()}
}

// ShowSchedule slot şablonunu ve bloke günleri tek ekranda gösterir.
func (h *AdminScheduleHandler) ShowSchedule(c *fiber.Ctx) error {
	slots, err := h.service.GetSlots(c.UserContext())
	if err != nil {
		configslog.Log.Error("Admin - slotlar alınamadı", zap.Error(err))
	}
	blockedDates, err := h.service.GetBlockedDates(c.UserContext())
	if err != nil {
		configslog.Log.Error("Admin - bloke günler alınamadı", zap.Error(err))
	}

	renderData := fiber.Map{
		"Title":        "Randevu Takvimi",
		"Slots":        slots,
		"BlockedDates": blockedDates,
		"FormData":     flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "admin/schedule/index", "layouts/admin_layout", renderData, http.StatusOK)
}

// CreateSlot şablona yeni slot ekler.
func (h *AdminScheduleHandler) CreateSlot(c *fiber.Ctx) error {
	var input services.SlotInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/yonetim/takvim", fiber.StatusSeeOther)
	}

	if _, err := h.service.CreateSlot(c.UserContext(), input); err != nil {
		h.flashScheduleError(c, err, "Slot oluşturulamadı.")
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/yonetim/takvim", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Slot eklendi.")
	return c.Redirect("/yonetim/takvim", fiber.StatusFound)
}

// UpdateSlot mevcut slotu günceller.
func (h *AdminScheduleHandler) UpdateSlot(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/takvim")
	}

	var input services.SlotInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/yonetim/takvim", fiber.StatusSeeOther)
	}

	if err := h.service.UpdateSlot(c.UserContext(), uint(id), input); err != nil {
		h.flashScheduleError(c, err, "Slot güncellenemedi.")
		return c.Redirect("/yonetim/takvim", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Slot güncellendi.")
	return c.Redirect("/yonetim/takvim", fiber.StatusFound)
}

// DeleteSlot slotu siler.
func (h *AdminScheduleHandler) DeleteSlot(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/takvim")
	}

	if err := h.service.DeleteSlot(c.UserContext(), uint(id)); err != nil {
		h.flashScheduleError(c, err, "Slot silinemedi.")
		return c.Redirect("/yonetim/takvim", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Slot silindi.")
	return c.Redirect("/yonetim/takvim", fiber.StatusFound)
}

// BlockDate günü randevuya kapatır.
func (h *AdminScheduleHandler) BlockDate(c *fiber.Ctx) error {
	date := c.FormValue("date")
	reason := c.FormValue("reason")

	if _, err := h.service.BlockDate(c.UserContext(), date, reason); err != nil {
		h.flashScheduleError(c, err, "Gün bloke edilemedi.")
		return c.Redirect("/yonetim/takvim", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Gün randevuya kapatıldı.")
	return c.Redirect("/yonetim/takvim", fiber.StatusFound)
}

// UnblockDate bloke kaydını kaldırır.
func (h *AdminScheduleHandler) UnblockDate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/takvim")
	}

	if err := h.service.UnblockDate(c.UserContext(), uint(id)); err != nil {
		configslog.Log.Error("Admin - UnblockDate Error", zap.Int("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Bloke kaldırılamadı.")
		return c.Redirect("/yonetim/takvim", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Gün tekrar randevuya açıldı.")
	return c.Redirect("/yonetim/takvim", fiber.StatusFound)
}

func (h *AdminScheduleHandler) flashScheduleError(c *fiber.Ctx, err error, fallback string) {
	var svcErr services.ScheduleServiceError
	if errors.As(err, &svcErr) {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		return
	}
	configslog.Log.Error("Admin - takvim işlemi hatası", zap.Error(err))
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, fallback)
}
