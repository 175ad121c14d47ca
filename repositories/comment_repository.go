package repositories

import (
	"context"
	"errors"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICommentRepository blog yorumları için veritabanı işlemleri arayüzü.
type ICommentRepository interface {
	Create(ctx context.Context, comment *models.BlogComment) error
	FindByID(ctx context.Context, id uint) (*models.BlogComment, error)
	FindApprovedByPost(ctx context.Context, postID uint) ([]models.BlogComment, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.BlogComment, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.CommentStatus) error
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, comment *models.BlogComment) error
	CountPendingUnread(ctx context.Context) (int64, error)
	FindPendingUnread(ctx context.Context, limit int) ([]models.BlogComment, error)
}

// CommentRepository ICommentRepository arayüzünü uygular.
type CommentRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.BlogComment]
}

// NewCommentRepository yeni bir CommentRepository örneği oluşturur.
func NewCommentRepository() ICommentRepository {
	return newCommentRepository(configs.GetDB())
}

// NewCommentRepositoryTx transaction içinden kullanılacak repository döndürür.
func NewCommentRepositoryTx(tx *gorm.DB) ICommentRepository {
	return newCommentRepository(tx)
}

func newCommentRepository(db *gorm.DB) *CommentRepository {
	base := NewBaseRepository[models.BlogComment](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "status"})
	return &CommentRepository{db: db, base: base}
}

func (r *CommentRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// Create yeni bir yorum oluşturur (public formdan, status=pending).
func (r *CommentRepository) Create(ctx context.Context, comment *models.BlogComment) error {
	if comment == nil || comment.PostID == 0 {
		return errors.New("geçersiz yazı bilgisi olan yorum oluşturulamaz")
	}
	return r.getDB(ctx).Create(comment).Error
}

// FindByID yorumu yazı bilgisiyle birlikte bulur.
func (r *CommentRepository) FindByID(ctx context.Context, id uint) (*models.BlogComment, error) {
	if id == 0 {
		return nil, errors.New("geçersiz yorum ID")
	}
	var comment models.BlogComment
	err := r.getDB(ctx).Preload("Post").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CommentRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &comment, nil
}

// FindApprovedByPost bir yazının onaylanmış yorumlarını eskiden yeniye döndürür.
func (r *CommentRepository) FindApprovedByPost(ctx context.Context, postID uint) ([]models.BlogComment, error) {
	var comments []models.BlogComment
	err := r.getDB(ctx).
		Where("post_id = ? AND status = ?", postID, models.CommentStatusApproved).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		configslog.Log.Error("CommentRepository.FindApprovedByPost: DB error", zap.Uint("postID", postID), zap.Error(err))
		return nil, err
	}
	return comments, nil
}

// FindAllPaginated yorumları sayfalayarak listeler (moderasyon ekranı).
func (r *CommentRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.BlogComment, int64, error) {
	var comments []models.BlogComment
	var totalCount int64

	query := r.getDB(ctx).Model(&models.BlogComment{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("CommentRepository.Count (Paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return comments, 0, nil
	}

	err := query.
		Order(r.base.OrderClause(params.SortBy, params.OrderBy)).
		Preload("Post").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&comments).Error
	if err != nil {
		configslog.Log.Error("CommentRepository.Find (Paginated): DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return comments, totalCount, nil
}

// UpdateStatus yorumun moderasyon durumunu değiştirir.
func (r *CommentRepository) UpdateStatus(ctx context.Context, id uint, status models.CommentStatus) error {
	if id == 0 {
		return errors.New("geçersiz yorum ID")
	}
	result := r.getDB(ctx).Model(&models.BlogComment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkRead yorumu bildirim kutusunda okundu olarak işaretler.
// Moderasyon durumuna dokunmaz.
func (r *CommentRepository) MarkRead(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz yorum ID")
	}
	result := r.getDB(ctx).Model(&models.BlogComment{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete yorumu soft delete ile siler.
func (r *CommentRepository) Delete(ctx context.Context, comment *models.BlogComment) error {
	if comment == nil || comment.ID == 0 {
		return errors.New("silinecek yorum geçerli değil")
	}
	return r.getDB(ctx).Delete(comment).Error
}

// CountPendingUnread okunmamış bekleyen yorum sayısını döndürür.
func (r *CommentRepository) CountPendingUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.BlogComment{}).
		Where("status = ? AND is_read = ?", models.CommentStatusPending, false).
		Count(&count).Error
	return count, err
}

// FindPendingUnread okunmamış bekleyen yorumları yeniden eskiye döndürür.
func (r *CommentRepository) FindPendingUnread(ctx context.Context, limit int) ([]models.BlogComment, error) {
	var comments []models.BlogComment
	err := r.getDB(ctx).
		Where("status = ? AND is_read = ?", models.CommentStatusPending, false).
		Order("created_at desc").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		configslog.Log.Error("CommentRepository.FindPendingUnread: DB error", zap.Error(err))
		return nil, err
	}
	return comments, nil
}

var _ ICommentRepository = (*CommentRepository)(nil)
