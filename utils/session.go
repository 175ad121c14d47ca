package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// ErrSessionStoreMissing session store Locals'a konmadan session istendiğinde döner.
var ErrSessionStoreMissing = errors.New("session store bulunamadı")

// SessionStart istek için session'ı başlatır/devam ettirir.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// GetUserIDFromSession session'daki kullanıcı ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	id, ok := sess.Get("user_id").(uint)
	if !ok || id == 0 {
		return 0, errors.New("session'da kullanıcı bulunamadı")
	}
	return id, nil
}

// GetIsAdminFromSession session'daki yönetici bayrağını döndürür.
func GetIsAdminFromSession(sess *session.Session) (bool, error) {
	isAdmin, ok := sess.Get("is_admin").(bool)
	if !ok {
		return false, errors.New("session'da yetki bilgisi bulunamadı")
	}
	return isAdmin, nil
}

// SetUserSession giriş sonrası kullanıcı bilgilerini session'a yazar.
func SetUserSession(sess *session.Session, userID uint, name string, isAdmin bool) error {
	sess.Set("user_id", userID)
	sess.Set("user_name", name)
	sess.Set("is_admin", isAdmin)
	return sess.Save()
}

// DestroyUserSession çıkışta session'ı yok eder.
func DestroyUserSession(sess *session.Session) error {
	return sess.Destroy()
}
