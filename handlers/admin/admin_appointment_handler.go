package handlers

import (
	"errors"
	"net/http"

	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/flashmessages"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/pkg/renderer"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminAppointmentHandler randevu yönetim ekranları için handler.
type AdminAppointmentHandler struct {
	service services.IAppointmentService
}

// NewAdminAppointmentHandler yeni bir AdminAppointmentHandler örneği oluşturur.
func NewAdminAppointmentHandler() *AdminAppointmentHandler {
	return &AdminAppointmentHandler{service: services.NewAppointmentService()}
}

// ListAppointments randevuları durum ve isim filtresiyle listeler.
func (h *AdminAppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetAppointmentsPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Randevular",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Randevular listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Appointment{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Admin - ListAppointments Error", zap.Error(err))
	}
	return renderer.Render(c, "admin/appointments/list", "layouts/admin_layout", renderData, http.StatusOK)
}

// ShowAppointment randevu detayını gösterir ve okundu işaretler.
func (h *AdminAppointmentHandler) ShowAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/randevular")
	}
	appointmentID := uint(id)

	appointment, err := h.service.GetAppointmentByID(c.UserContext(), appointmentID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Randevu bulunamadı.")
		return c.Redirect("/yonetim/randevular")
	}
	if !appointment.IsRead {
		_ = h.service.MarkRead(c.UserContext(), appointmentID)
	}

	return renderer.Render(c, "admin/appointments/detail", "layouts/admin_layout", fiber.Map{
		"Title":       "Randevu Detayı",
		"Appointment": appointment,
	}, http.StatusOK)
}

// UpdateStatus randevu durum geçişini işler (onay, iptal, tamamlandı).
func (h *AdminAppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/randevular")
	}
	target := models.AppointmentStatus(c.FormValue("status"))

	if err := h.service.UpdateStatus(c.UserContext(), uint(id), userID, target); err != nil {
		var svcErr services.AppointmentServiceError
		if errors.As(err, &svcErr) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		} else {
			configslog.Log.Error("Admin - UpdateStatus Error", zap.Int("id", id), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Durum güncellenemedi.")
		}
		return c.Redirect("/yonetim/randevular", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Randevu durumu güncellendi.")
	return c.Redirect("/yonetim/randevular", fiber.StatusFound)
}

// DeleteAppointment randevuyu siler.
func (h *AdminAppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/randevular")
	}

	if err := h.service.DeleteAppointment(c.UserContext(), uint(id), userID); err != nil {
		configslog.Log.Error("Admin - DeleteAppointment Error", zap.Int("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Randevu silinemedi.")
		return c.Redirect("/yonetim/randevular", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Randevu silindi.")
	return c.Redirect("/yonetim/randevular", fiber.StatusFound)
}
