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

// AdminCommentHandler yorum moderasyonu için handler.
type AdminCommentHandler struct {
	service services.ICommentService
}

// NewAdminCommentHandler yeni bir AdminCommentHandler örneği oluşturur.
func NewAdminCommentHandler() *AdminCommentHandler {
	return &AdminCommentHandler{service: services.NewCommentService()}
}

// ListComments yorumları moderasyon durumu filtresiyle listeler.
func (h *AdminCommentHandler) ListComments(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetCommentsPaginated(c.UserContext(), params)
	renderData := fiber.Map{
		"Title":  "Yorumlar",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Yorumlar listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.BlogComment{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Admin - ListComments Error", zap.Error(err))
	}
	return renderer.Render(c, "admin/comments/list", "layouts/admin_layout", renderData, http.StatusOK)
}

// ModerateComment yorumu onaylar veya reddeder.
func (h *AdminCommentHandler) ModerateComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/yorumlar")
	}
	status := models.CommentStatus(c.FormValue("status"))

	if err := h.service.Moderate(c.UserContext(), uint(id), status); err != nil {
		var svcErr services.CommentServiceError
		if errors.As(err, &svcErr) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		} else {
			configslog.Log.Error("Admin - ModerateComment Error", zap.Int("id", id), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yorum güncellenemedi.")
		}
		return c.Redirect("/yonetim/yorumlar", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yorum durumu güncellendi.")
	return c.Redirect("/yonetim/yorumlar", fiber.StatusFound)
}

// DeleteComment yorumu siler.
func (h *AdminCommentHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/yorumlar")
	}

	if err := h.service.DeleteComment(c.UserContext(), uint(id)); err != nil {
		configslog.Log.Error("Admin - DeleteComment Error", zap.Int("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yorum silinemedi.")
		return c.Redirect("/yonetim/yorumlar", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yorum silindi.")
	return c.Redirect("/yonetim/yorumlar", fiber.StatusFound)
}
