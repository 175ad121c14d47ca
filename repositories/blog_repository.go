package repositories

import (
	"context"
	"errors"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/pkg/turkishsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IBlogRepository blog yazıları ve kategorileri için veritabanı işlemleri arayüzü.
type IBlogRepository interface {
	CreatePost(ctx context.Context, post *models.BlogPost) error
	FindPostByID(ctx context.Context, id uint) (*models.BlogPost, error)
	FindPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.BlogPost, error)
	FindPostsPaginated(ctx context.Context, params queryparams.ListParams, publishedOnly bool) ([]models.BlogPost, int64, error)
	FindFeaturedPosts(ctx context.Context, limit int) ([]models.BlogPost, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	UpdatePost(ctx context.Context, post *models.BlogPost) error
	DeletePost(ctx context.Context, post *models.BlogPost, deletedByUserID uint) error

	FindAllCategories(ctx context.Context) ([]models.BlogCategory, error)
	FindCategoryByID(ctx context.Context, id uint) (*models.BlogCategory, error)
	CreateCategory(ctx context.Context, category *models.BlogCategory) error
	UpdateCategory(ctx context.Context, category *models.BlogCategory) error
	DeleteCategory(ctx context.Context, category *models.BlogCategory) error
}

// BlogRepository IBlogRepository arayüzünü uygular.
type BlogRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.BlogPost]
}

// NewBlogRepository yeni bir BlogRepository örneği oluşturur.
func NewBlogRepository() IBlogRepository {
	return newBlogRepository(configs.GetDB())
}

// NewBlogRepositoryTx transaction içinden kullanılacak repository döndürür.
func NewBlogRepositoryTx(tx *gorm.DB) IBlogRepository {
	return newBlogRepository(tx)
}

func newBlogRepository(db *gorm.DB) *BlogRepository {
	base := NewBaseRepository[models.BlogPost](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "published_at", "title", "status"})
	return &BlogRepository{db: db, base: base}
}

func (r *BlogRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// CreatePost yeni bir blog yazısı oluşturur.
func (r *BlogRepository) CreatePost(ctx context.Context, post *models.BlogPost) error {
	return r.getDB(ctx).Create(post).Error
}

// FindPostByID yazıyı kategori bilgisiyle birlikte bulur.
func (r *BlogRepository) FindPostByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	if id == 0 {
		return nil, errors.New("geçersiz yazı ID")
	}
	var post models.BlogPost
	err := r.getDB(ctx).Preload("Category").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BlogRepository.FindPostByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &post, nil
}

// FindPostBySlug slug ile yazı bulur. publishedOnly true ise sadece yayınlanmış
// yazılar döner (public görünüm).
func (r *BlogRepository) FindPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.BlogPost, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	query := r.getDB(ctx).Preload("Category").Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("status = ?", models.PostStatusPublished)
	}
	var post models.BlogPost
	err := query.First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BlogRepository.FindPostBySlug: DB error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &post, nil
}

// FindPostsPaginated yazıları sayfalayarak listeler. params.Name başlıkta
// Türkçe duyarsız arama, params.Status durum filtresi olarak kullanılır.
func (r *BlogRepository) FindPostsPaginated(ctx context.Context, params queryparams.ListParams, publishedOnly bool) ([]models.BlogPost, int64, error) {
	var posts []models.BlogPost
	var totalCount int64

	query := r.getDB(ctx).Model(&models.BlogPost{})
	if publishedOnly {
		query = query.Where("status = ?", models.PostStatusPublished)
	} else if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Name != "" {
		fragment, args := turkishsearch.SQLFilter("title", params.Name)
		query = query.Where(fragment, args...)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("BlogRepository.Count (Paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return posts, 0, nil
	}

	order := r.base.OrderClause(params.SortBy, params.OrderBy)
	if publishedOnly {
		order = "published_at desc"
	}
	err := query.
		Order(order).
		Preload("Category").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&posts).Error
	if err != nil {
		configslog.Log.Error("BlogRepository.Find (Paginated): DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return posts, totalCount, nil
}

// FindFeaturedPosts öne çıkan yayınlanmış yazıları döndürür.
func (r *BlogRepository) FindFeaturedPosts(ctx context.Context, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.getDB(ctx).
		Where("status = ? AND is_featured = ?", models.PostStatusPublished, true).
		Order("published_at desc").
		Limit(limit).
		Preload("Category").
		Find(&posts).Error
	if err != nil {
		configslog.Log.Error("BlogRepository.FindFeaturedPosts: DB error", zap.Error(err))
		return nil, err
	}
	return posts, nil
}

// SlugExists verilen slug'ın başka bir yazıda kullanılıp kullanılmadığını döndürür.
func (r *BlogRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.getDB(ctx).Model(&models.BlogPost{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdatePost yazıyı Save ile günceller.
func (r *BlogRepository) UpdatePost(ctx context.Context, post *models.BlogPost) error {
	if post == nil || post.ID == 0 {
		return errors.New("güncellenecek yazı geçerli değil")
	}
	return r.getDB(ctx).Save(post).Error
}

// DeletePost yazıyı soft delete ile siler ve DeletedBy'ı ayarlar.
func (r *BlogRepository) DeletePost(ctx context.Context, post *models.BlogPost, deletedByUserID uint) error {
	if post == nil || post.ID == 0 {
		return errors.New("silinecek yazı geçerli değil")
	}
	result := r.getDB(ctx).Model(post).
		Where("id = ? AND deleted_at IS NULL", post.ID).
		Updates(map[string]interface{}{"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"), "deleted_by": &deletedByUserID})
	if result.Error != nil {
		configslog.Log.Error("BlogRepository.DeletePost: DB error", zap.Uint("id", post.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAllCategories tüm kategorileri ada göre sıralı döndürür.
func (r *BlogRepository) FindAllCategories(ctx context.Context) ([]models.BlogCategory, error) {
	var categories []models.BlogCategory
	err := r.getDB(ctx).Order("name asc").Find(&categories).Error
	if err != nil {
		configslog.Log.Error("BlogRepository.FindAllCategories: DB error", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

// FindCategoryByID belirli bir kategoriyi bulur.
func (r *BlogRepository) FindCategoryByID(ctx context.Context, id uint) (*models.BlogCategory, error) {
	if id == 0 {
		return nil, errors.New("geçersiz kategori ID")
	}
	var category models.BlogCategory
	err := r.getDB(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory yeni bir kategori oluşturur.
func (r *BlogRepository) CreateCategory(ctx context.Context, category *models.BlogCategory) error {
	return r.getDB(ctx).Create(category).Error
}

// UpdateCategory kategoriyi günceller.
func (r *BlogRepository) UpdateCategory(ctx context.Context, category *models.BlogCategory) error {
	if category == nil || category.ID == 0 {
		return errors.New("güncellenecek kategori geçerli değil")
	}
	return r.getDB(ctx).Save(category).Error
}

// DeleteCategory kategoriyi siler; yazılar SET NULL ile kategorisiz kalır.
func (r *BlogRepository) DeleteCategory(ctx context.Context, category *models.BlogCategory) error {
	if category == nil || category.ID == 0 {
		return errors.New("silinecek kategori geçerli değil")
	}
	return r.getDB(ctx).Delete(category).Error
}

var _ IBlogRepository = (*BlogRepository)(nil)
