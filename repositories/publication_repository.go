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

// IPublicationRepository yayınlar (kitap/makale/podcast) için veritabanı
// işlemleri arayüzü.
type IPublicationRepository interface {
	Create(ctx context.Context, publication *models.Publication) error
	FindByID(ctx context.Context, id uint) (*models.Publication, error)
	FindAll(ctx context.Context) ([]models.Publication, error)
	FindByType(ctx context.Context, pubType models.PublicationType) ([]models.Publication, error)
	Update(ctx context.Context, publication *models.Publication) error
	Delete(ctx context.Context, publication *models.Publication) error
}

// PublicationRepository IPublicationRepository arayüzünü uygular.
type PublicationRepository struct {
	db *gorm.DB
}

// NewPublicationRepository yeni bir PublicationRepository örneği oluşturur.
func NewPublicationRepository() IPublicationRepository {
	return &PublicationRepository{db: configs.GetDB()}
}

func (r *PublicationRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// Create yeni bir yayın kaydı oluşturur.
func (r *PublicationRepository) Create(ctx context.Context, publication *models.Publication) error {
	if publication == nil || publication.Title == "" {
		return errors.New("başlığı olmayan yayın oluşturulamaz")
	}
	return r.getDB(ctx).Create(publication).Error
}

// FindByID belirli bir yayını bulur.
func (r *PublicationRepository) FindByID(ctx context.Context, id uint) (*models.Publication, error) {
	if id == 0 {
		return nil, errors.New("geçersiz yayın ID")
	}
	var publication models.Publication
	err := r.getDB(ctx).First(&publication, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PublicationRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &publication, nil
}

// FindAll tüm yayınları sıralama ve tarih önceliğiyle döndürür.
func (r *PublicationRepository) FindAll(ctx context.Context) ([]models.Publication, error) {
	var publications []models.Publication
	err := r.getDB(ctx).Order("sort_order asc, date desc").Find(&publications).Error
	if err != nil {
		configslog.Log.Error("PublicationRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return publications, nil
}

// FindByType verilen türdeki yayınları döndürür.
func (r *PublicationRepository) FindByType(ctx context.Context, pubType models.PublicationType) ([]models.Publication, error) {
	var publications []models.Publication
	err := r.getDB(ctx).
		Where("type = ?", pubType).
		Order("sort_order asc, date desc").
		Find(&publications).Error
	if err != nil {
		configslog.Log.Error("PublicationRepository.FindByType: DB error",
			zap.String("type", string(pubType)), zap.Error(err))
		return nil, err
	}
	return publications, nil
}

// Update yayını Save ile günceller.
func (r *PublicationRepository) Update(ctx context.Context, publication *models.Publication) error {
	if publication == nil || publication.ID == 0 {
		return errors.New("güncellenecek yayın geçerli değil")
	}
	return r.getDB(ctx).Save(publication).Error
}

// Delete yayını soft delete ile siler.
func (r *PublicationRepository) Delete(ctx context.Context, publication *models.Publication) error {
	if publication == nil || publication.ID == 0 {
		return errors.New("silinecek yayın geçerli değil")
	}
	return r.getDB(ctx).Delete(publication).Error
}

var _ IPublicationRepository = (*PublicationRepository)(nil)
