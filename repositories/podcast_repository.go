package repositories

import (
	"context"
	"errors"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IPodcastRepository podcast bölümleri için veritabanı işlemleri arayüzü.
type IPodcastRepository interface {
	FindByGUID(ctx context.Context, guid string) (*models.PodcastEpisode, error)
	Create(ctx context.Context, episode *models.PodcastEpisode) error
	Update(ctx context.Context, episode *models.PodcastEpisode) error
	FindAllOrdered(ctx context.Context, limit int) ([]models.PodcastEpisode, error)
	Count(ctx context.Context) (int64, error)
}

// PodcastRepository IPodcastRepository arayüzünü uygular.
type PodcastRepository struct {
	db *gorm.DB
}

// NewPodcastRepository yeni bir PodcastRepository örneği oluşturur.
func NewPodcastRepository() IPodcastRepository {
	return &PodcastRepository{db: configs.GetDB()}
}

func (r *PodcastRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// FindByGUID besleme GUID'i ile bölüm bulur.
func (r *PodcastRepository) FindByGUID(ctx context.Context, guid string) (*models.PodcastEpisode, error) {
	if guid == "" {
		return nil, ErrNotFound
	}
	var episode models.PodcastEpisode
	err := r.getDB(ctx).Where("guid = ?", guid).First(&episode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PodcastRepository.FindByGUID: DB error", zap.String("guid", guid), zap.Error(err))
		return nil, err
	}
	return &episode, nil
}

// Create yeni bir bölüm kaydı oluşturur.
func (r *PodcastRepository) Create(ctx context.Context, episode *models.PodcastEpisode) error {
	if episode == nil || episode.GUID == "" {
		return errors.New("GUID'i olmayan bölüm oluşturulamaz")
	}
	return r.getDB(ctx).Create(episode).Error
}

// Update bölümü Save ile günceller.
func (r *PodcastRepository) Update(ctx context.Context, episode *models.PodcastEpisode) error {
	if episode == nil || episode.ID == 0 {
		return errors.New("güncellenecek bölüm geçerli değil")
	}
	return r.getDB(ctx).Save(episode).Error
}

// FindAllOrdered bölümleri yayın tarihine göre yeniden eskiye döndürür.
func (r *PodcastRepository) FindAllOrdered(ctx context.Context, limit int) ([]models.PodcastEpisode, error) {
	var episodes []models.PodcastEpisode
	query := r.getDB(ctx).Order("published_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&episodes).Error
	if err != nil {
		configslog.Log.Error("PodcastRepository.FindAllOrdered: DB error", zap.Error(err))
		return nil, err
	}
	return episodes, nil
}

// Count toplam bölüm sayısını döndürür.
func (r *PodcastRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.PodcastEpisode{}).Count(&count).Error
	return count, err
}

var _ IPodcastRepository = (*PodcastRepository)(nil)
