package routes

import (
	public_handlers "psikolog.link/handlers/public"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes ziyaretçiye açık Türkçe sayfaları tanımlar.
func registerPublicRoutes(app *fiber.App) {
	homeHandler := public_handlers.NewHomeHandler()
	bookingHandler := public_handlers.NewBookingHandler()
	blogHandler := public_handlers.NewBlogHandler()
	contentHandler := public_handlers.NewContentHandler()
	contactHandler := public_handlers.NewContactHandler()

	app.Get("/", homeHandler.Home)
	app.Get("/hakkimda", homeHandler.About)

	app.Get("/iletisim", contactHandler.ShowContact)
	app.Post("/iletisim", contactHandler.SubmitContact)
	app.Post("/iletisim/geri-arama", contactHandler.SubmitCallRequest)

	app.Get("/yayinlar", contentHandler.Publications)
	app.Get("/podcast", contentHandler.Podcast)

	app.Get("/blog", blogHandler.ListPosts)
	app.Get("/blog/:slug", blogHandler.ShowPost)
	app.Post("/blog/:slug/yorum", blogHandler.SubmitComment)

	app.Get("/randevu", bookingHandler.ShowBooking)
	app.Get("/randevu/uygunluk", bookingHandler.GetAvailability)
	app.Post("/randevu", bookingHandler.CreateBooking)
}
