package routes

import (
	admin_handlers "psikolog.link/handlers/admin"
	"psikolog.link/middlewares"
	"psikolog.link/realtime"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// registerAdminRoutes /yonetim altındaki rotaları tanımlar. Tüm grup oturum
// ve yönetici yetkisi ister.
func registerAdminRoutes(app *fiber.App, hub *realtime.Hub) {
	homeHandler := admin_handlers.NewAdminHomeHandler()
	appointmentHandler := admin_handlers.NewAdminAppointmentHandler()
	scheduleHandler := admin_handlers.NewAdminScheduleHandler()
	blogHandler := admin_handlers.NewAdminBlogHandler()
	commentHandler := admin_handlers.NewAdminCommentHandler()
	publicationHandler := admin_handlers.NewAdminPublicationHandler()
	podcastHandler := admin_handlers.NewAdminPodcastHandler()
	newsletterHandler := admin_handlers.NewAdminNewsletterHandler()
	inboxHandler := admin_handlers.NewAdminInboxHandler()
	settingHandler := admin_handlers.NewAdminSettingHandler()

	admin := app.Group("/yonetim")
	admin.Use(middlewares.AuthMiddleware, middlewares.AdminMiddleware)

	admin.Get("/", homeHandler.Dashboard)

	// Randevular
	admin.Get("/randevular", appointmentHandler.ListAppointments)
	admin.Get("/randevular/:id", appointmentHandler.ShowAppointment)
	admin.Post("/randevular/:id/durum", appointmentHandler.UpdateStatus)
	admin.Post("/randevular/:id/sil", appointmentHandler.DeleteAppointment)

	// Takvim: slot şablonu ve bloke günler
	admin.Get("/takvim", scheduleHandler.ShowSchedule)
	admin.Post("/takvim/slot", scheduleHandler.CreateSlot)
	admin.Post("/takvim/slot/:id", scheduleHandler.UpdateSlot)
	admin.Post("/takvim/slot/:id/sil", scheduleHandler.DeleteSlot)
	admin.Post("/takvim/bloke", scheduleHandler.BlockDate)
	admin.Post("/takvim/bloke/:id/sil", scheduleHandler.UnblockDate)

	// Blog
	admin.Get("/blog", blogHandler.ListPosts)
	admin.Get("/blog/yeni", blogHandler.ShowCreatePost)
	admin.Post("/blog/yeni", blogHandler.CreatePost)
	admin.Get("/blog/duzenle/:id", blogHandler.ShowUpdatePost)
	admin.Post("/blog/duzenle/:id", blogHandler.UpdatePost)
	admin.Post("/blog/sil/:id", blogHandler.DeletePost)
	admin.Get("/blog/kategoriler", blogHandler.ListCategories)
	admin.Post("/blog/kategoriler", blogHandler.CreateCategory)
	admin.Post("/blog/kategoriler/:id", blogHandler.UpdateCategory)
	admin.Post("/blog/kategoriler/:id/sil", blogHandler.DeleteCategory)

	// Yorum moderasyonu
	admin.Get("/yorumlar", commentHandler.ListComments)
	admin.Post("/yorumlar/:id/durum", commentHandler.ModerateComment)
	admin.Post("/yorumlar/:id/sil", commentHandler.DeleteComment)

	// Yayınlar
	admin.Get("/yayinlar", publicationHandler.ListPublications)
	admin.Post("/yayinlar", publicationHandler.CreatePublication)
	admin.Get("/yayinlar/duzenle/:id", publicationHandler.ShowUpdatePublication)
	admin.Post("/yayinlar/duzenle/:id", publicationHandler.UpdatePublication)
	admin.Post("/yayinlar/sil/:id", publicationHandler.DeletePublication)

	// Podcast
	admin.Get("/podcast", podcastHandler.ListEpisodes)

	// Bülten
	admin.Get("/bulten/aboneler", newsletterHandler.ListSubscribers)
	admin.Get("/bulten/gonder", newsletterHandler.ShowCompose)
	admin.Post("/bulten/aboneler/cikar", newsletterHandler.Unsubscribe)

	// Gelen kutusu
	admin.Get("/geri-arama", inboxHandler.ListCallRequests)
	admin.Post("/geri-arama/:id/arandi", inboxHandler.MarkCallRequestCalled)
	admin.Post("/geri-arama/:id/sil", inboxHandler.DeleteCallRequest)
	admin.Get("/mesajlar", inboxHandler.ListMessages)
	admin.Get("/mesajlar/:id", inboxHandler.ShowMessage)
	admin.Post("/mesajlar/:id/sil", inboxHandler.DeleteMessage)
	admin.Get("/bildirimler", inboxHandler.Notifications)
	admin.Post("/bildirimler/okundu", inboxHandler.MarkNotificationRead)

	// Ayarlar
	admin.Get("/ayarlar", settingHandler.ShowSettings)
	admin.Post("/ayarlar", settingHandler.SaveSettings)

	// Anlık bildirim kanalı
	admin.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	admin.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		client := hub.Register(conn)
		defer hub.Unregister(client)
		go client.WritePump()

		// Okuma döngüsü bağlantının kopuşunu yakalamak için tutulur;
		// istemciden içerik beklenmez.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}
