package handlers

import (
	"psikolog.link/configs/configslog"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// İmzanın okunacağı istek başlığı.
const signatureHeader = "X-Webhook-Signature"

// WebhookHandler e-posta sağlayıcısından gelen webhook olayları için handler.
type WebhookHandler struct {
	service services.IWebhookService
}

// NewWebhookHandler yeni bir WebhookHandler örneği oluşturur.
func NewWebhookHandler() *WebhookHandler {
	return &WebhookHandler{service: services.NewWebhookService()}
}

// HandleResend imzası doğrulanan olayı işler. Geçersiz imza 401 döner ve
// hiçbir kayıt yazılmaz.
// POST /api/webhooks/resend
func (h *WebhookHandler) HandleResend(c *fiber.Ctx) error {
	body := c.Body()
	if !h.service.VerifySignature(body, c.Get(signatureHeader)) {
		configslog.Log.Warn("Geçersiz webhook imzası", zap.String("ip", c.IP()))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Geçersiz imza."})
	}

	if err := h.service.HandleEvent(c.UserContext(), body); err != nil {
		configslog.Log.Error("Webhook olayı işlenemedi", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Olay işlenemedi."})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Ping sağlayıcı endpoint doğrulaması için sağlık yanıtı döndürür.
// GET /api/webhooks/resend
func (h *WebhookHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
