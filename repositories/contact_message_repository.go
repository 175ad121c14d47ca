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

// IContactMessageRepository iletişim mesajları için veritabanı işlemleri arayüzü.
type IContactMessageRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	FindByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.ContactMessage, int64, error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, message *models.ContactMessage) error
	CountUnread(ctx context.Context) (int64, error)
	FindUnread(ctx context.Context, limit int) ([]models.ContactMessage, error)
}

// ContactMessageRepository IContactMessageRepository arayüzünü uygular.
type ContactMessageRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.ContactMessage]
}

// NewContactMessageRepository yeni bir ContactMessageRepository örneği oluşturur.
func NewContactMessageRepository() IContactMessageRepository {
	return newContactMessageRepository(configs.GetDB())
}

// NewContactMessageRepositoryTx transaction içinden kullanılacak repository döndürür.
func NewContactMessageRepositoryTx(tx *gorm.DB) IContactMessageRepository {
	return newContactMessageRepository(tx)
}

func newContactMessageRepository(db *gorm.DB) *ContactMessageRepository {
	base := NewBaseRepository[models.ContactMessage](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "is_read"})
	return &ContactMessageRepository{db: db, base: base}
}

func (r *ContactMessageRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// Create yeni bir iletişim mesajı oluşturur.
func (r *ContactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	if message == nil || message.Content == "" {
		return errors.New("içeriği boş iletişim mesajı oluşturulamaz")
	}
	return r.getDB(ctx).Create(message).Error
}

// FindByID belirli bir mesajı bulur.
func (r *ContactMessageRepository) FindByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	if id == 0 {
		return nil, errors.New("geçersiz mesaj ID")
	}
	var message models.ContactMessage
	err := r.getDB(ctx).First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ContactMessageRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &message, nil
}

// FindAllPaginated mesajları sayfalayarak listeler.
func (r *ContactMessageRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.ContactMessage, int64, error) {
	var messages []models.ContactMessage
	var totalCount int64

	query := r.getDB(ctx).Model(&models.ContactMessage{})
	if params.Status == "unread" {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("ContactMessageRepository.Count (Paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return messages, 0, nil
	}

	err := query.
		Order(r.base.OrderClause(params.SortBy, params.OrderBy)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&messages).Error
	if err != nil {
		configslog.Log.Error("ContactMessageRepository.Find (Paginated): DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return messages, totalCount, nil
}

// MarkRead mesajı okundu olarak işaretler.
func (r *ContactMessageRepository) MarkRead(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz mesaj ID")
	}
	result := r.getDB(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete mesajı soft delete ile siler.
func (r *ContactMessageRepository) Delete(ctx context.Context, message *models.ContactMessage) error {
	if message == nil || message.ID == 0 {
		return errors.New("silinecek mesaj geçerli değil")
	}
	return r.getDB(ctx).Delete(message).Error
}

// CountUnread okunmamış mesaj sayısını döndürür.
func (r *ContactMessageRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

// FindUnread okunmamış mesajları yeniden eskiye döndürür.
func (r *ContactMessageRepository) FindUnread(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.getDB(ctx).
		Where("is_read = ?", false).
		Order("created_at desc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		configslog.Log.Error("ContactMessageRepository.FindUnread: DB error", zap.Error(err))
		return nil, err
	}
	return messages, nil
}

var _ IContactMessageRepository = (*ContactMessageRepository)(nil)
