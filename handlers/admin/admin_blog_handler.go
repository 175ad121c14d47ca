package handlers

import (
	"errors"
	"fmt"
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

// AdminBlogHandler blog yazıları ve kategorilerin yönetimi için handler.
type AdminBlogHandler struct {
	service services.IBlogService
}

// NewAdminBlogHandler yeni bir AdminBlogHandler örneği oluşturur.
func NewAdminBlogHandler() *AdminBlogHandler {
	return &AdminBlogHandler{service: services.NewBlogService()}
}

// ListPosts tüm yazıları (taslaklar dahil) listeler.
func (h *AdminBlogHandler) ListPosts(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetPostsPaginated(c.UserContext(), params, false)
	renderData := fiber.Map{
		"Title":  "Blog Yazıları",
		"Result": result,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Yazılar listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.BlogPost{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Admin - ListPosts Error", zap.Error(err))
	}
	return renderer.Render(c, "admin/blog/list", "layouts/admin_layout", renderData, http.StatusOK)
}

// ShowCreatePost yeni yazı formunu gösterir.
func (h *AdminBlogHandler) ShowCreatePost(c *fiber.Ctx) error {
	categories, _ := h.service.GetCategories(c.UserContext())
	return renderer.Render(c, "admin/blog/create", "layouts/admin_layout", fiber.Map{
		"Title":      "Yeni Yazı",
		"Categories": categories,
		"FormData":   flashmessages.GetFlashFormData(c),
	})
}

// CreatePost yeni yazı oluşturur.
func (h *AdminBlogHandler) CreatePost(c *fiber.Ctx) error {
	var input services.PostInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/yonetim/blog/yeni", fiber.StatusSeeOther)
	}

	post, err := h.service.CreatePost(c.UserContext(), input)
	if err != nil {
		h.flashBlogError(c, err, "Yazı oluşturulamadı.")
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/yonetim/blog/yeni", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yazı oluşturuldu: "+post.Title)
	return c.Redirect("/yonetim/blog", fiber.StatusFound)
}

// ShowUpdatePost yazı düzenleme formunu gösterir.
func (h *AdminBlogHandler) ShowUpdatePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/blog")
	}

	post, err := h.service.GetPostByID(c.UserContext(), uint(id))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yazı bulunamadı.")
		return c.Redirect("/yonetim/blog")
	}
	categories, _ := h.service.GetCategories(c.UserContext())

	return renderer.Render(c, "admin/blog/update", "layouts/admin_layout", fiber.Map{
		"Title":      "Yazıyı Düzenle",
		"Post":       post,
		"Categories": categories,
		"FormData":   flashmessages.GetFlashFormData(c),
	})
}

// UpdatePost yazıyı günceller.
func (h *AdminBlogHandler) UpdatePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/blog")
	}
	redirectPathOnError := fmt.Sprintf("/yonetim/blog/duzenle/%d", id)

	var input services.PostInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	if _, err := h.service.UpdatePost(c.UserContext(), uint(id), input); err != nil {
		h.flashBlogError(c, err, "Yazı güncellenemedi.")
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yazı güncellendi.")
	return c.Redirect("/yonetim/blog", fiber.StatusFound)
}

// DeletePost yazıyı siler.
func (h *AdminBlogHandler) DeletePost(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/blog")
	}

	if err := h.service.DeletePost(c.UserContext(), uint(id), userID); err != nil {
		h.flashBlogError(c, err, "Yazı silinemedi.")
		return c.Redirect("/yonetim/blog", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yazı silindi.")
	return c.Redirect("/yonetim/blog", fiber.StatusFound)
}

// ListCategories kategori yönetim ekranını gösterir.
func (h *AdminBlogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories(c.UserContext())
	renderData := fiber.Map{
		"Title":      "Kategoriler",
		"Categories": categories,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	if err != nil {
		configslog.Log.Error("Admin - ListCategories Error", zap.Error(err))
	}
	return renderer.Render(c, "admin/blog/categories", "layouts/admin_layout", renderData, http.StatusOK)
}

// CreateCategory yeni kategori ekler.
func (h *AdminBlogHandler) CreateCategory(c *fiber.Ctx) error {
	if _, err := h.service.CreateCategory(c.UserContext(), c.FormValue("name")); err != nil {
		h.flashBlogError(c, err, "Kategori oluşturulamadı.")
		return c.Redirect("/yonetim/blog/kategoriler", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kategori eklendi.")
	return c.Redirect("/yonetim/blog/kategoriler", fiber.StatusFound)
}

// UpdateCategory kategori adını günceller.
func (h *AdminBlogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/blog/kategoriler")
	}
	if err := h.service.UpdateCategory(c.UserContext(), uint(id), c.FormValue("name")); err != nil {
		h.flashBlogError(c, err, "Kategori güncellenemedi.")
		return c.Redirect("/yonetim/blog/kategoriler", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kategori güncellendi.")
	return c.Redirect("/yonetim/blog/kategoriler", fiber.StatusFound)
}

// DeleteCategory kategoriyi siler.
func (h *AdminBlogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/yonetim/blog/kategoriler")
	}
	if err := h.service.DeleteCategory(c.UserContext(), uint(id)); err != nil {
		h.flashBlogError(c, err, "Kategori silinemedi.")
		return c.Redirect("/yonetim/blog/kategoriler", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kategori silindi.")
	return c.Redirect("/yonetim/blog/kategoriler", fiber.StatusFound)
}

func (h *AdminBlogHandler) flashBlogError(c *fiber.Ctx, err error, fallback string) {
	var svcErr services.BlogServiceError
	if errors.As(err, &svcErr) {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		return
	}
	configslog.Log.Error("Admin - blog işlemi hatası", zap.Error(err))
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, fallback)
}
