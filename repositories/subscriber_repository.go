package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISubscriberRepository bülten aboneleri için veritabanı işlemleri arayüzü.
type ISubscriberRepository interface {
	Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error
	FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	FindAllSubscribed(ctx context.Context) ([]models.NewsletterSubscriber, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.NewsletterSubscriber, int64, error)
	Update(ctx context.Context, subscriber *models.NewsletterSubscriber) error
	MarkUnsubscribedByEmail(ctx context.Context, email string) error
	CountSubscribed(ctx context.Context) (int64, error)
}

// SubscriberRepository ISubscriberRepository arayüzünü uygular.
type SubscriberRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.NewsletterSubscriber]
}

// NewSubscriberRepository yeni bir SubscriberRepository örneği oluşturur.
func NewSubscriberRepository() ISubscriberRepository {
	return newSubscriberRepository(configs.GetDB())
}

// NewSubscriberRepositoryTx transaction içinden kullanılacak repository döndürür.
func NewSubscriberRepositoryTx(tx *gorm.DB) ISubscriberRepository {
	return newSubscriberRepository(tx)
}

func newSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	base := NewBaseRepository[models.NewsletterSubscriber](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "email", "is_subscribed"})
	return &SubscriberRepository{db: db, base: base}
}

func (r *SubscriberRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// Create yeni bir abone kaydı oluşturur.
func (r *SubscriberRepository) Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	if subscriber == nil || subscriber.Email == "" {
		return errors.New("e-posta adresi olmayan abone oluşturulamaz")
	}
	subscriber.Email = strings.ToLower(strings.TrimSpace(subscriber.Email))
	return r.getDB(ctx).Create(subscriber).Error
}

// FindByEmail e-posta ile abone bulur. E-posta karşılaştırması küçük harfe
// çevrilerek yapılır (benzersizlik bu biçim üzerindedir).
func (r *SubscriberRepository) FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrNotFound
	}
	var subscriber models.NewsletterSubscriber
	err := r.getDB(ctx).Where("email = ?", email).First(&subscriber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SubscriberRepository.FindByEmail: DB error", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &subscriber, nil
}

// FindAllSubscribed aktif abonelerin tamamını döndürür (batch gönderim için).
func (r *SubscriberRepository) FindAllSubscribed(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	var subscribers []models.NewsletterSubscriber
	err := r.getDB(ctx).
		Where("is_subscribed = ?", true).
		Order("id asc").
		Find(&subscribers).Error
	if err != nil {
		configslog.Log.Error("SubscriberRepository.FindAllSubscribed: DB error", zap.Error(err))
		return nil, err
	}
	return subscribers, nil
}

// FindAllPaginated aboneleri sayfalayarak listeler (yönetim ekranı).
func (r *SubscriberRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.NewsletterSubscriber, int64, error) {
	var subscribers []models.NewsletterSubscriber
	var totalCount int64

	query := r.getDB(ctx).Model(&models.NewsletterSubscriber{})
	if params.Status == "subscribed" {
		query = query.Where("is_subscribed = ?", true)
	} else if params.Status == "unsubscribed" {
		query = query.Where("is_subscribed = ?", false)
	}
	if params.Name != "" {
		query = query.Where("email LIKE ?", "%"+strings.ToLower(params.Name)+"%")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("SubscriberRepository.Count (Paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return subscribers, 0, nil
	}

	err := query.
		Order(r.base.OrderClause(params.SortBy, params.OrderBy)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&subscribers).Error
	if err != nil {
		configslog.Log.Error("SubscriberRepository.Find (Paginated): DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return subscribers, totalCount, nil
}

// Update abone kaydını Save ile günceller.
func (r *SubscriberRepository) Update(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	if subscriber == nil || subscriber.ID == 0 {
		return errors.New("güncellenecek abone geçerli değil")
	}
	return r.getDB(ctx).Save(subscriber).Error
}

// MarkUnsubscribedByEmail aboneyi çıkış yapmış olarak işaretler
// (webhook bounce/complaint/unsubscribe akışı).
func (r *SubscriberRepository) MarkUnsubscribedByEmail(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("geçersiz e-posta adresi")
	}
	now := time.Now().UTC()
	result := r.getDB(ctx).Model(&models.NewsletterSubscriber{}).
		Where("email = ? AND is_subscribed = ?", email, true).
		Updates(map[string]interface{}{"is_subscribed": false, "unsubscribed_at": &now})
	if result.Error != nil {
		configslog.Log.Error("SubscriberRepository.MarkUnsubscribedByEmail: DB error",
			zap.String("email", email), zap.Error(result.Error))
		return result.Error
	}
	// Kayıt yoksa veya zaten çıkmışsa hata değildir; webhook idempotent kalmalı.
	return nil
}

// CountSubscribed aktif abone sayısını döndürür.
func (r *SubscriberRepository) CountSubscribed(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.NewsletterSubscriber{}).
		Where("is_subscribed = ?", true).
		Count(&count).Error
	return count, err
}

var _ ISubscriberRepository = (*SubscriberRepository)(nil)
