package renderer

import (
	"psikolog.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// View tarafında flash mesajların okunacağı anahtarlar.
const (
	FlashSuccessKeyView = "FlashSuccess"
	FlashErrorKeyView   = "FlashError"
)

// Render verilen view'ı layout ile birlikte işler. İsteğe bağlı son parametre
// HTTP durum kodudur.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["CsrfToken"]; !ok {
		data["CsrfToken"] = c.Locals("csrf")
	}
	if len(status) > 0 {
		c.Status(status[0])
	}
	return c.Render(view, data, layout)
}

// SetFlashMessages flash mesajları render verisine ekler.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashData) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}
