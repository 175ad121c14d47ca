package middlewares

import (
	"psikolog.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware giriş yapmamış kullanıcıları login sayfasına yönlendirir.
func AuthMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Bu sayfayı görüntülemek için giriş yapmalısınız.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// AdminMiddleware yönetici olmayan kullanıcıları ana sayfaya yönlendirir.
// AuthMiddleware'den sonra çalışmalıdır.
func AdminMiddleware(c *fiber.Ctx) error {
	isAdmin, ok := c.Locals("isAdmin").(bool)
	if !ok || !isAdmin {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Bu alana erişim yetkiniz yok.")
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}

// APIAuthMiddleware JSON uçları için 401 döndürür; yönlendirme yapmaz.
func APIAuthMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Giriş yapmalısınız."})
	}
	return c.Next()
}

// APIAdminMiddleware JSON uçları için 403 döndürür. APIAuthMiddleware'den sonra çalışır.
func APIAdminMiddleware(c *fiber.Ctx) error {
	isAdmin, ok := c.Locals("isAdmin").(bool)
	if !ok || !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Bu işlem için yetkiniz yok."})
	}
	return c.Next()
}

// GuestMiddleware giriş yapmış kullanıcıları panele yönlendirir (login sayfası için).
func GuestMiddleware(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return c.Redirect("/yonetim", fiber.StatusSeeOther)
	}
	return c.Next()
}
