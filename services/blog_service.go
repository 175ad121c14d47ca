package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/pkg/slugify"
	"psikolog.link/repositories"

	"go.uber.org/zap"
)

// BlogServiceError blog işlemlerine özgü servis hataları.
type BlogServiceError string

func (e BlogServiceError) Error() string { return string(e) }

const (
	ErrBlogPostNotFound      BlogServiceError = "blog yazısı bulunamadı"
	ErrBlogTitleRequired     BlogServiceError = "başlık alanı zorunludur"
	ErrBlogInvalidStatus     BlogServiceError = "geçersiz yayın durumu"
	ErrBlogInvalidJSONField  BlogServiceError = "yapılandırılmış alan geçerli JSON değil"
	ErrBlogCategoryNotFound  BlogServiceError = "kategori bulunamadı"
	ErrBlogCategoryNameEmpty BlogServiceError = "kategori adı zorunludur"
)

// PostInput blog yazısı oluşturma/güncelleme formunun girdisi.
type PostInput struct {
	Title        string `form:"title"`
	Slug         string `form:"slug"`
	Excerpt      string `form:"excerpt"`
	Content      string `form:"content"`
	CoverImage   string `form:"cover_image"`
	CategoryID   *uint  `form:"category_id"`
	Status       string `form:"status"`
	IsFeatured   bool   `form:"is_featured"`
	Author       string `form:"author"`
	ContentNotes string `form:"content_notes"`
	FAQItems     string `form:"faq_items"`
	Bibliography string `form:"bibliography"`
}

// IBlogService blog yazıları ve kategorileri için servis arayüzü.
type IBlogService interface {
	CreatePost(ctx context.Context, input PostInput) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, id uint, input PostInput) (*models.BlogPost, error)
	DeletePost(ctx context.Context, id uint, deletedByUserID uint) error
	GetPostByID(ctx context.Context, id uint) (*models.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.BlogPost, error)
	GetPostsPaginated(ctx context.Context, params queryparams.ListParams, publishedOnly bool) (*queryparams.PaginatedResult, error)
	GetFeaturedPosts(ctx context.Context, limit int) ([]models.BlogPost, error)

	GetCategories(ctx context.Context) ([]models.BlogCategory, error)
	CreateCategory(ctx context.Context, name string) (*models.BlogCategory, error)
	UpdateCategory(ctx context.Context, id uint, name string) error
	DeleteCategory(ctx context.Context, id uint) error
}

// BlogService IBlogService arayüzünü uygular.
type BlogService struct {
	repo repositories.IBlogRepository
	now  func() time.Time
}

// NewBlogService yeni bir BlogService örneği oluşturur.
func NewBlogService() IBlogService {
	return &BlogService{repo: repositories.NewBlogRepository(), now: time.Now}
}

// NewBlogServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewBlogServiceWith(repo repositories.IBlogRepository, now func() time.Time) IBlogService {
	return &BlogService{repo: repo, now: now}
}

// CreatePost yeni bir blog yazısı oluşturur. Slug verilmemişse başlıktan
// türetilir; çakışma varsa sayısal ek ile benzersizleştirilir.
func (s *BlogService) CreatePost(ctx context.Context, input PostInput) (*models.BlogPost, error) {
	post, err := s.buildPost(ctx, &models.BlogPost{}, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		configslog.Log.Error("Blog yazısı oluşturulamadı", zap.String("title", post.Title), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Blog yazısı oluşturuldu: %s (ID: %d)", post.Title, post.ID)
	return post, nil
}

// UpdatePost mevcut yazıyı günceller. Yayın durumu draft'tan published'a
// geçerken PublishedAt ilk kez damgalanır; sonraki güncellemelerde korunur.
func (s *BlogService) UpdatePost(ctx context.Context, id uint, input PostInput) (*models.BlogPost, error) {
	existing, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}

	post, err := s.buildPost(ctx, existing, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePost(ctx, post); err != nil {
		configslog.Log.Error("Blog yazısı güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return post, nil
}

// DeletePost yazıyı soft delete eder.
func (s *BlogService) DeletePost(ctx context.Context, id uint, deletedByUserID uint) error {
	post, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrBlogPostNotFound
		}
		return err
	}
	return s.repo.DeletePost(ctx, post, deletedByUserID)
}

// GetPostByID yazıyı ID ile döndürür.
func (s *BlogService) GetPostByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	post, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// GetPostBySlug yazıyı slug ile döndürür. publishedOnly true ise taslaklar
// bulunamadı sayılır.
func (s *BlogService) GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.BlogPost, error) {
	post, err := s.repo.FindPostBySlug(ctx, slug, publishedOnly)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// GetPostsPaginated yazıları sayfalı döndürür.
func (s *BlogService) GetPostsPaginated(ctx context.Context, params queryparams.ListParams, publishedOnly bool) (*queryparams.PaginatedResult, error) {
	params.Validate()
	posts, total, err := s.repo.FindPostsPaginated(ctx, params, publishedOnly)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(posts, total, params), nil
}

// GetFeaturedPosts öne çıkan yayınlanmış yazıları döndürür.
func (s *BlogService) GetFeaturedPosts(ctx context.Context, limit int) ([]models.BlogPost, error) {
	return s.repo.FindFeaturedPosts(ctx, limit)
}

// GetCategories tüm kategorileri döndürür.
func (s *BlogService) GetCategories(ctx context.Context) ([]models.BlogCategory, error) {
	return s.repo.FindAllCategories(ctx)
}

// CreateCategory yeni kategori oluşturur.
func (s *BlogService) CreateCategory(ctx context.Context, name string) (*models.BlogCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlogCategoryNameEmpty
	}
	category := &models.BlogCategory{Name: name, Slug: slugify.Slug(name)}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory kategori adını ve slug'ını günceller.
func (s *BlogService) UpdateCategory(ctx context.Context, id uint, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlogCategoryNameEmpty
	}
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrBlogCategoryNotFound
		}
		return err
	}
	category.Name = name
	category.Slug = slugify.Slug(name)
	return s.repo.UpdateCategory(ctx, category)
}

// DeleteCategory kategoriyi siler. Bağlı yazılarda category_id NULL'a düşer.
func (s *BlogService) DeleteCategory(ctx context.Context, id uint) error {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrBlogCategoryNotFound
		}
		return err
	}
	return s.repo.DeleteCategory(ctx, category)
}

// buildPost form girdisini doğrular ve model üzerine uygular.
func (s *BlogService) buildPost(ctx context.Context, post *models.BlogPost, input PostInput) (*models.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrBlogTitleRequired
	}

	status := models.PostStatus(input.Status)
	if status == "" {
		status = models.PostStatusDraft
	}
	if status != models.PostStatusDraft && status != models.PostStatusPublished {
		return nil, ErrBlogInvalidStatus
	}

	for _, field := range []string{input.FAQItems, input.Bibliography} {
		if field != "" && !json.Valid([]byte(field)) {
			return nil, ErrBlogInvalidJSONField
		}
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = slugify.Slug(title)
	} else {
		slug = slugify.Slug(slug)
	}
	uniqueSlug, err := s.ensureUniqueSlug(ctx, slug, post.ID)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Slug = uniqueSlug
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	post.Content = input.Content
	post.CoverImage = strings.TrimSpace(input.CoverImage)
	post.CategoryID = input.CategoryID
	post.IsFeatured = input.IsFeatured
	post.Author = strings.TrimSpace(input.Author)
	post.ContentNotes = input.ContentNotes
	post.FAQItems = input.FAQItems
	post.Bibliography = input.Bibliography

	if status == models.PostStatusPublished && post.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}
	post.Status = status

	return post, nil
}

// ensureUniqueSlug çakışan slug'lara sayısal ek uydurur: yazi, yazi-2, yazi-3...
func (s *BlogService) ensureUniqueSlug(ctx context.Context, slug string, excludeID uint) (string, error) {
	candidate := slug
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

var _ IBlogService = (*BlogService)(nil)
