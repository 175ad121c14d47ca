package handlers

import (
	"errors"
	"net/http"

	"psikolog.link/configs/configslog"
	"psikolog.link/pkg/flashmessages"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/pkg/renderer"
	"psikolog.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BlogHandler public blog listesi, yazı detayı ve yorum formu için handler.
type BlogHandler struct {
	blogService    services.IBlogService
	commentService services.ICommentService
}

// NewBlogHandler yeni bir BlogHandler örneği oluşturur.
func NewBlogHandler() *BlogHandler {
	return &BlogHandler{
		blogService:    services.NewBlogService(),
		commentService: services.NewCommentService(),
	}
}

// ListPosts yayınlanmış yazıları sayfalı listeler.
func (h *BlogHandler) ListPosts(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("published_at")
	}
	if params.SortBy == "" {
		params.SortBy = "published_at"
	}
	params.Validate()

	result, err := h.blogService.GetPostsPaginated(c.UserContext(), params, true)
	if err != nil {
		configslog.Log.Error("Blog listesi alınamadı", zap.Error(err))
		result = &queryparams.PaginatedResult{}
	}
	categories, _ := h.blogService.GetCategories(c.UserContext())

	return renderer.Render(c, "public/blog/list", "layouts/public_layout", fiber.Map{
		"Title":      "Blog",
		"Result":     result,
		"Categories": categories,
		"Params":     params,
	}, http.StatusOK)
}

// ShowPost yazı detayını onaylı yorumlarıyla gösterir. Taslaklar 404 döner.
func (h *BlogHandler) ShowPost(c *fiber.Ctx) error {
	slug := c.Params("slug")
	post, err := h.blogService.GetPostBySlug(c.UserContext(), slug, true)
	if err != nil {
		if errors.Is(err, services.ErrBlogPostNotFound) {
			return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Yazı Bulunamadı"}, "layouts/error_layout")
		}
		configslog.Log.Error("Blog yazısı alınamadı", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).Render("errors/404", fiber.Map{"Title": "Hata"}, "layouts/error_layout")
	}

	comments, err := h.commentService.GetApprovedByPost(c.UserContext(), post.ID)
	if err != nil {
		configslog.Log.Error("Yorumlar alınamadı", zap.Uint("post_id", post.ID), zap.Error(err))
	}

	renderData := fiber.Map{
		"Title":    post.Title,
		"Post":     post,
		"Comments": comments,
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "public/blog/detail", "layouts/public_layout", renderData, http.StatusOK)
}

// SubmitComment yazıya yorum formunu işler. Yorum moderasyon onayına düşer.
func (h *BlogHandler) SubmitComment(c *fiber.Ctx) error {
	slug := c.Params("slug")
	redirectPath := "/blog/" + slug

	var input services.CommentInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}
	input.PostSlug = slug

	if _, err := h.commentService.SubmitComment(c.UserContext(), input); err != nil {
		var svcErr services.CommentServiceError
		if errors.As(err, &svcErr) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, svcErr.Error())
		} else {
			configslog.Log.Error("Yorum gönderme hatası", zap.String("slug", slug), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yorumunuz gönderilirken bir hata oluştu.")
		}
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Yorumunuz alındı. Onaylandıktan sonra yayınlanacaktır.")
	return c.Redirect(redirectPath, fiber.StatusFound)
}
