package handlers

import (
	"errors"

	"psikolog.link/configs/configslog"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewsletterHandler bülten abonelik ve gönderim API'si için handler.
type NewsletterHandler struct {
	service services.INewsletterService
}

// NewNewsletterHandler yeni bir NewsletterHandler örneği oluşturur.
func NewNewsletterHandler() *NewsletterHandler {
	return &NewsletterHandler{service: services.NewNewsletterService()}
}

// Subscribe public abonelik isteğini işler.
// POST /api/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req services.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}

	message, err := h.service.Subscribe(c.UserContext(), req)
	if err != nil {
		var svcErr services.NewsletterServiceError
		if errors.As(err, &svcErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": svcErr.Error()})
		}
		configslog.Log.Error("Bülten aboneliği hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Abonelik işlemi tamamlanamadı."})
	}

	return c.JSON(fiber.Map{"success": true, "message": message})
}

// Send yöneticinin bülten gönderim isteğini işler.
// POST /api/newsletter/send (admin session gerekir)
func (h *NewsletterHandler) Send(c *fiber.Ctx) error {
	var req services.SendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}

	result, err := h.service.SendNewsletter(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNewsletterSendFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		default:
			var svcErr services.NewsletterServiceError
			if errors.As(err, &svcErr) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": svcErr.Error()})
			}
			configslog.Log.Error("Bülten gönderim hatası", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Bülten gönderilemedi."})
		}
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"broadcastId": result.BroadcastID,
		"sentCount":   result.SentCount,
	})
}
