package handlers

import (
	"errors"
	"net/http"

	"psikolog.link/configs/configslog"
	"psikolog.link/pkg/flashmessages"
	"psikolog.link/pkg/renderer"
	"psikolog.link/services"
	"psikolog.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler yönetim paneli giriş/çıkış ve profil işlemleri için handler.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{service: services.NewAuthService()}
}

// ShowLogin giriş formunu gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	renderData := fiber.Map{"Title": "Giriş Yap"}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "auth/login", "layouts/auth_layout", renderData, http.StatusOK)
}

// Login giriş formunu işler.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.service.Login(c.UserContext(), email, password)
	if err != nil {
		var svcErr services.AuthServiceError
		if errors.As(err, &svcErr) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		} else {
			configslog.Log.Error("Giriş hatası", zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Giriş yapılırken bir hata oluştu.")
		}
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Session başlatılamadı", zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	if err := utils.SetUserSession(sess, user.ID, user.Name, user.IsAdmin); err != nil {
		configslog.Log.Error("Session yazılamadı", zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	return c.Redirect("/yonetim", fiber.StatusFound)
}

// Logout oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := utils.SessionStart(c); err == nil {
		_ = utils.DestroyUserSession(sess)
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}

// Profile profil sayfasını gösterir.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	user, err := h.service.GetUserByID(c.UserContext(), userID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Profil bilgileri alınamadı.")
		return c.Redirect("/yonetim", fiber.StatusSeeOther)
	}

	renderData := fiber.Map{"Title": "Profil", "User": user}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "auth/profile", "layouts/admin_layout", renderData, http.StatusOK)
}

// UpdateProfile ad ve e-posta güncellemesini işler.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	name := c.FormValue("name")
	email := c.FormValue("email")

	if err := h.service.UpdateProfile(c.UserContext(), userID, name, email); err != nil {
		var svcErr services.AuthServiceError
		if errors.As(err, &svcErr) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		} else {
			configslog.Log.Error("Profil güncelleme hatası", zap.Uint("user_id", userID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Profil güncellenemedi.")
		}
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Profil güncellendi.")
	return c.Redirect("/auth/profile", fiber.StatusFound)
}

// UpdatePassword şifre değişikliğini işler.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	current := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")

	if err := h.service.ChangePassword(c.UserContext(), userID, current, newPassword); err != nil {
		var svcErr services.AuthServiceError
		if errors.As(err, &svcErr) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		} else {
			configslog.Log.Error("Şifre değiştirme hatası", zap.Uint("user_id", userID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Şifre değiştirilemedi.")
		}
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Şifreniz güncellendi.")
	return c.Redirect("/auth/profile", fiber.StatusFound)
}
