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

// AdminInboxHandler geri arama talepleri, iletişim mesajları ve birleşik
// bildirim kutusu için handler.
type AdminInboxHandler struct {
	callRequestService  services.ICallRequestService
	messageService      services.IContactMessageService
	notificationService services.INotificationService
}

// NewAdminInboxHandler yeni bir AdminInboxHandler örneği oluşturur.
func NewAdminInboxHandler() *AdminInboxHandler {
	return &AdminInboxHandler{
		callRequestService:  services.NewCallRequestService(),
		messageService:      services.NewContactMessageService(),
		notificationService: services.NewNotificationService(),
	}
}

// ListCallRequests geri arama taleplerini listeler.
func (h *AdminInboxHandler) ListCallRequests(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.callRequestService.GetCallRequestsPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Geri Arama Talepleri",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	if err != nil {
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.CallRequest{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Admin - ListCallRequests Error", zap.Error(err))
	}
	return renderer.Render(c, "admin/inbox/call_requests", "layouts/admin_layout", renderData, http.StatusOK)
}

// MarkCallRequestCalled talebi aranmış olarak kapatır.
func (h *AdminInboxHandler) MarkCallRequestCalled(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/geri-arama")
	}
	if err := h.callRequestService.MarkCalled(c.UserContext(), uint(id)); err != nil {
		configslog.Log.Error("Admin - MarkCalled Error", zap.Int("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Talep güncellenemedi.")
		return c.Redirect("/yonetim/geri-arama", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Talep arandı olarak işaretlendi.")
	return c.Redirect("/yonetim/geri-arama", fiber.StatusFound)
}

// DeleteCallRequest talebi siler.
func (h *AdminInboxHandler) DeleteCallRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/geri-arama")
	}
	if err := h.callRequestService.DeleteCallRequest(c.UserContext(), uint(id)); err != nil {
		configslog.Log.Error("Admin - DeleteCallRequest Error", zap.Int("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Talep silinemedi.")
		return c.Redirect("/yonetim/geri-arama", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Talep silindi.")
	return c.Redirect("/yonetim/geri-arama", fiber.StatusFound)
}

// ListMessages iletişim mesajlarını listeler.
func (h *AdminInboxHandler) ListMessages(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.messageService.GetMessagesPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Mesajlar",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	if err != nil {
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.ContactMessage{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Admin - ListMessages Error", zap.Error(err))
	}
	return renderer.Render(c, "admin/inbox/messages", "layouts/admin_layout", renderData, http.StatusOK)
}

// ShowMessage mesaj detayını gösterir ve okundu işaretler.
func (h *AdminInboxHandler) ShowMessage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/mesajlar")
	}
	messageID := uint(id)

	message, err := h.messageService.GetMessageByID(c.UserContext(), messageID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Mesaj bulunamadı.")
		return c.Redirect("/yonetim/mesajlar")
	}
	if !message.IsRead {
		_ = h.messageService.MarkRead(c.UserContext(), messageID)
	}

	return renderer.Render(c, "admin/inbox/message_detail", "layouts/admin_layout", fiber.Map{
		"Title":   "Mesaj Detayı",
		"Message": message,
	}, http.StatusOK)
}

// DeleteMessage mesajı siler.
func (h *AdminInboxHandler) DeleteMessage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/mesajlar")
	}
	if err := h.messageService.DeleteMessage(c.UserContext(), uint(id)); err != nil {
		configslog.Log.Error("Admin - DeleteMessage Error", zap.Int("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Mesaj silinemedi.")
		return c.Redirect("/yonetim/mesajlar", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Mesaj silindi.")
	return c.Redirect("/yonetim/mesajlar", fiber.StatusFound)
}

// Notifications birleşik bildirim kutusunu JSON döndürür (panel üst çubuğu için).
func (h *AdminInboxHandler) Notifications(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	items, err := h.notificationService.GetUnread(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Bildirimler alınamadı."})
	}
	counts, err := h.notificationService.GetCounts(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Bildirim sayıları alınamadı."})
	}
	return c.JSON(fiber.Map{"items": items, "counts": counts})
}

// MarkNotificationRead bildirimi kaynağında okundu işaretler.
// POST /yonetim/bildirimler/okundu  {type, id}
func (h *AdminInboxHandler) MarkNotificationRead(c *fiber.Ctx) error {
	var body struct {
		Type string `json:"type" form:"type"`
		ID   uint   `json:"id" form:"id"`
	}
	if err := c.BodyParser(&body); err != nil || body.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek."})
	}

	if err := h.notificationService.MarkRead(c.UserContext(), body.Type, body.ID); err != nil {
		if err == services.ErrNotificationUnknownType {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Admin - MarkNotificationRead Error",
			zap.String("type", body.Type), zap.Uint("id", body.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Bildirim güncellenemedi."})
	}
	return c.JSON(fiber.Map{"success": true})
}
