package routes

import (
	api_handlers "psikolog.link/handlers/api"
	"psikolog.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes JSON API rotalarını tanımlar.
func registerAPIRoutes(app *fiber.App) {
	newsletterHandler := api_handlers.NewNewsletterHandler()
	podcastSyncHandler := api_handlers.NewPodcastSyncHandler()
	webhookHandler := api_handlers.NewWebhookHandler()

	api := app.Group("/api")

	// Public abonelik
	api.Post("/newsletter/subscribe", newsletterHandler.Subscribe)

	// Yönetici gönderimi
	api.Post("/newsletter/send", middlewares.APIAuthMiddleware, middlewares.APIAdminMiddleware, newsletterHandler.Send)

	// Podcast senkronizasyonu: POST yönetici, GET cron bearer token
	api.Post("/podcasts/sync", middlewares.APIAuthMiddleware, middlewares.APIAdminMiddleware, podcastSyncHandler.Sync)
	api.Get("/podcasts/sync", podcastSyncHandler.CronSync)

	// Sağlayıcı webhook'u: imza doğrulaması handler içinde
	api.Post("/webhooks/resend", webhookHandler.HandleResend)
	api.Get("/webhooks/resend", webhookHandler.Ping)
}
