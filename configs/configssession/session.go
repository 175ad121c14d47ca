package configssession

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

var store *session.Store

// SetupSession cookie tabanlı session store'u hazırlar.
func SetupSession() *session.Store {
	if store != nil {
		return store
	}
	store = session.New(session.Config{
		Expiration:     12 * time.Hour,
		KeyLookup:      "cookie:psikolog_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	return store
}

// GetStore mevcut session store'u döndürür (yoksa oluşturur).
func GetStore() *session.Store {
	return SetupSession()
}
