package handlers

import (
	"net/http"

	"psikolog.link/configs/configslog"
	"psikolog.link/pkg/flashmessages"
	"psikolog.link/pkg/renderer"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHomeHandler yönetim paneli ana sayfası için handler.
type AdminHomeHandler struct {
	notificationService services.INotificationService
	appointmentService  services.IAppointmentService
	newsletterService   services.INewsletterService
	podcastService      services.IPodcastService
}

// NewAdminHomeHandler yeni bir AdminHomeHandler örneği oluşturur.
func NewAdminHomeHandler() *AdminHomeHandler {
	return &AdminHomeHandler{
		notificationService: services.NewNotificationService(),
		appointmentService:  services.NewAppointmentService(),
		newsletterService:   services.NewNewsletterService(),
		podcastService:      services.NewPodcastService(),
	}
}

// Dashboard bekleyen işlerin özetini gösterir.
func (h *AdminHomeHandler) Dashboard(c *fiber.Ctx) error {
	counts, err := h.notificationService.GetCounts(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - bildirim sayıları alınamadı", zap.Error(err))
	}
	pendingAppointments, _ := h.appointmentService.CountPending(c.UserContext())
	subscriberCount, _ := h.newsletterService.CountSubscribed(c.UserContext())
	episodeCount, _ := h.podcastService.EpisodeCount(c.UserContext())

	renderData := fiber.Map{
		"Title":               "Yönetim Paneli",
		"Counts":              counts,
		"PendingAppointments": pendingAppointments,
		"SubscriberCount":     subscriberCount,
		"EpisodeCount":        episodeCount,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "admin/dashboard", "layouts/admin_layout", renderData, http.StatusOK)
}
