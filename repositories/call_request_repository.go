package repositories

import (
	"context"
	"errors"
	"time"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICallRequestRepository geri arama talepleri için veritabanı işlemleri arayüzü.
type ICallRequestRepository interface {
	Create(ctx context.Context, request *models.CallRequest) error
	FindByID(ctx context.Context, id uint) (*models.CallRequest, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.CallRequest, int64, error)
	MarkCalled(ctx context.Context, id uint) error
	Delete(ctx context.Context, request *models.CallRequest) error
	CountUncalled(ctx context.Context) (int64, error)
	FindUncalled(ctx context.Context, limit int) ([]models.CallRequest, error)
}

// CallRequestRepository ICallRequestRepository arayüzünü uygular.
type CallRequestRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.CallRequest]
}

// NewCallRequestRepository yeni bir CallRequestRepository örneği oluşturur.
func NewCallRequestRepository() ICallRequestRepository {
	return newCallRequestRepository(configs.GetDB())
}

// NewCallRequestRepositoryTx transaction içinden kullanılacak repository döndürür.
func NewCallRequestRepositoryTx(tx *gorm.DB) ICallRequestRepository {
	return newCallRequestRepository(tx)
}

func newCallRequestRepository(db *gorm.DB) *CallRequestRepository {
	base := NewBaseRepository[models.CallRequest](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "status"})
	return &CallRequestRepository{db: db, base: base}
}

func (r *CallRequestRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// Create yeni bir geri arama talebi oluşturur.
func (r *CallRequestRepository) Create(ctx context.Context, request *models.CallRequest) error {
	if request == nil || request.Phone == "" {
		return errors.New("telefon numarası olmayan geri arama talebi oluşturulamaz")
	}
	return r.getDB(ctx).Create(request).Error
}

// FindByID belirli bir geri arama talebini bulur.
func (r *CallRequestRepository) FindByID(ctx context.Context, id uint) (*models.CallRequest, error) {
	if id == 0 {
		return nil, errors.New("geçersiz talep ID")
	}
	var request models.CallRequest
	err := r.getDB(ctx).First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CallRequestRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &request, nil
}

// FindAllPaginated talepleri sayfalayarak listeler.
func (r *CallRequestRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.CallRequest, int64, error) {
	var requests []models.CallRequest
	var totalCount int64

	query := r.getDB(ctx).Model(&models.CallRequest{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("CallRequestRepository.Count (Paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return requests, 0, nil
	}

	err := query.
		Order(r.base.OrderClause(params.SortBy, params.OrderBy)).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&requests).Error
	if err != nil {
		configslog.Log.Error("CallRequestRepository.Find (Paginated): DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return requests, totalCount, nil
}

// MarkCalled talebi aranmış olarak işaretler. CalledAt bildirim kutusunda
// "okundu" bilgisinin vekilidir.
func (r *CallRequestRepository) MarkCalled(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz talep ID")
	}
	now := time.Now().UTC()
	result := r.getDB(ctx).Model(&models.CallRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    models.CallRequestStatusCalled,
			"called_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete talebi soft delete ile siler.
func (r *CallRequestRepository) Delete(ctx context.Context, request *models.CallRequest) error {
	if request == nil || request.ID == 0 {
		return errors.New("silinecek talep geçerli değil")
	}
	return r.getDB(ctx).Delete(request).Error
}

// CountUncalled henüz aranmamış talep sayısını döndürür.
func (r *CallRequestRepository) CountUncalled(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.CallRequest{}).
		Where("called_at IS NULL").
		Count(&count).Error
	return count, err
}

// FindUncalled henüz aranmamış talepleri yeniden eskiye döndürür.
func (r *CallRequestRepository) FindUncalled(ctx context.Context, limit int) ([]models.CallRequest, error) {
	var requests []models.CallRequest
	err := r.getDB(ctx).
		Where("called_at IS NULL").
		Order("created_at desc").
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		configslog.Log.Error("CallRequestRepository.FindUncalled: DB error", zap.Error(err))
		return nil, err
	}
	return requests, nil
}

var _ ICallRequestRepository = (*CallRequestRepository)(nil)
