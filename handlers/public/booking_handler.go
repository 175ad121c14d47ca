package handlers

import (
	"errors"
	"net/http"
	"time"

	"psikolog.link/configs/configslog"
	"psikolog.link/pkg/flashmessages"
	"psikolog.link/pkg/renderer"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BookingHandler public randevu sayfası ve rezervasyon formu için handler.
type BookingHandler struct {
	availabilityService services.IAvailabilityService
	appointmentService  services.IAppointmentService
}

// NewBookingHandler yeni bir BookingHandler örneği oluşturur.
func NewBookingHandler() *BookingHandler {
	return &BookingHandler{
		availabilityService: services.NewAvailabilityService(),
		appointmentService:  services.NewAppointmentService(),
	}
}

// ShowBooking randevu sayfasını içinde bulunulan ayın uygunluğu ile gösterir.
func (h *BookingHandler) ShowBooking(c *fiber.Ctx) error {
	now := time.Now()
	availability, err := h.availabilityService.GetMonthAvailability(c.UserContext(), now.Year(), int(now.Month()))
	if err != nil {
		configslog.Log.Error("Randevu sayfası - uygunluk alınamadı", zap.Error(err))
	}

	renderData := fiber.Map{
		"Title":        "Randevu Al",
		"Availability": availability,
		"FormData":     flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "public/booking", "layouts/public_layout", renderData, http.StatusOK)
}

// GetAvailability seçili ayın uygunluk takvimini JSON döndürür.
// GET /randevu/uygunluk?year=2025&month=3
func (h *BookingHandler) GetAvailability(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))

	availability, err := h.availabilityService.GetMonthAvailability(c.UserContext(), year, month)
	if err != nil {
		if errors.Is(err, services.ErrAvailabilityInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Uygunluk bilgisi alınamadı."})
	}
	return c.JSON(availability)
}

// CreateBooking randevu formunu işler.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req services.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/randevu", fiber.StatusSeeOther)
	}

	appointment, err := h.appointmentService.CreateAppointment(c.UserContext(), req)
	if err != nil {
		var svcErr services.AppointmentServiceError
		if errors.As(err, &svcErr) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		} else {
			configslog.Log.Error("Randevu oluşturma hatası", zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Randevu oluşturulurken bir hata oluştu.")
		}
		_ = flashmessages.SetFlashFormData(c, req)
		return c.Redirect("/randevu", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		"Randevu talebiniz alındı. Onay için "+appointment.Email+" adresinize dönüş yapılacaktır.")
	return c.Redirect("/randevu", fiber.StatusFound)
}
