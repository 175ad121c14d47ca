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

// IAvailabilityRepository haftalık slot şablonu ve bloke günler için
// veritabanı işlemleri arayüzü.
type IAvailabilityRepository interface {
	FindActiveSlots(ctx context.Context) ([]models.AvailabilitySlot, error)
	FindAllSlots(ctx context.Context) ([]models.AvailabilitySlot, error)
	FindSlotByID(ctx context.Context, id uint) (*models.AvailabilitySlot, error)
	CreateSlot(ctx context.Context, slot *models.AvailabilitySlot) error
	UpdateSlot(ctx context.Context, slot *models.AvailabilitySlot) error
	DeleteSlot(ctx context.Context, slot *models.AvailabilitySlot) error

	FindBlockedDatesBetween(ctx context.Context, from, to string) ([]models.BlockedDate, error)
	FindAllBlockedDates(ctx context.Context) ([]models.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, blocked *models.BlockedDate) error
	DeleteBlockedDate(ctx context.Context, id uint) error
}

// AvailabilityRepository IAvailabilityRepository arayüzünü uygular.
type AvailabilityRepository struct {
	db *gorm.DB
}

// NewAvailabilityRepository yeni bir AvailabilityRepository örneği oluşturur.
func NewAvailabilityRepository() IAvailabilityRepository {
	return &AvailabilityRepository{db: configs.GetDB()}
}

// NewAvailabilityRepositoryTx transaction içinden kullanılacak repository döndürür.
func NewAvailabilityRepositoryTx(tx *gorm.DB) IAvailabilityRepository {
	return &AvailabilityRepository{db: tx}
}

func (r *AvailabilityRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// FindActiveSlots aktif şablon slotlarını gün ve saat sıralı döndürür.
func (r *AvailabilityRepository) FindActiveSlots(ctx context.Context) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := r.getDB(ctx).
		Where("is_active = ?", true).
		Order("day_of_week asc, start_time asc").
		Find(&slots).Error
	if err != nil {
		configslog.Log.Error("AvailabilityRepository.FindActiveSlots: DB error", zap.Error(err))
		return nil, err
	}
	return slots, nil
}

// FindAllSlots tüm şablon slotlarını (pasifler dahil) döndürür.
func (r *AvailabilityRepository) FindAllSlots(ctx context.Context) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := r.getDB(ctx).Order("day_of_week asc, start_time asc").Find(&slots).Error
	if err != nil {
		configslog.Log.Error("AvailabilityRepository.FindAllSlots: DB error", zap.Error(err))
		return nil, err
	}
	return slots, nil
}

// FindSlotByID belirli bir şablon slotunu bulur.
func (r *AvailabilityRepository) FindSlotByID(ctx context.Context, id uint) (*models.AvailabilitySlot, error) {
	if id == 0 {
		return nil, errors.New("geçersiz slot ID")
	}
	var slot models.AvailabilitySlot
	err := r.getDB(ctx).First(&slot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AvailabilityRepository.FindSlotByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &slot, nil
}

// CreateSlot yeni bir şablon slotu oluşturur.
func (r *AvailabilityRepository) CreateSlot(ctx context.Context, slot *models.AvailabilitySlot) error {
	return r.getDB(ctx).Create(slot).Error
}

// UpdateSlot şablon slotunu günceller.
func (r *AvailabilityRepository) UpdateSlot(ctx context.Context, slot *models.AvailabilitySlot) error {
	if slot == nil || slot.ID == 0 {
		return errors.New("güncellenecek slot geçerli değil")
	}
	return r.getDB(ctx).Save(slot).Error
}

// DeleteSlot şablon slotunu soft delete ile siler.
func (r *AvailabilityRepository) DeleteSlot(ctx context.Context, slot *models.AvailabilitySlot) error {
	if slot == nil || slot.ID == 0 {
		return errors.New("silinecek slot geçerli değil")
	}
	return r.getDB(ctx).Delete(slot).Error
}

// FindBlockedDatesBetween [from, to] aralığındaki bloke günleri döndürür.
func (r *AvailabilityRepository) FindBlockedDatesBetween(ctx context.Context, from, to string) ([]models.BlockedDate, error) {
	var blocked []models.BlockedDate
	err := r.getDB(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Find(&blocked).Error
	if err != nil {
		configslog.Log.Error("AvailabilityRepository.FindBlockedDatesBetween: DB error",
			zap.String("from", from), zap.String("to", to), zap.Error(err))
		return nil, err
	}
	return blocked, nil
}

// FindAllBlockedDates tüm bloke günleri tarih sıralı döndürür.
func (r *AvailabilityRepository) FindAllBlockedDates(ctx context.Context) ([]models.BlockedDate, error) {
	var blocked []models.BlockedDate
	err := r.getDB(ctx).Order("date asc").Find(&blocked).Error
	if err != nil {
		configslog.Log.Error("AvailabilityRepository.FindAllBlockedDates: DB error", zap.Error(err))
		return nil, err
	}
	return blocked, nil
}

// CreateBlockedDate yeni bir bloke gün kaydı oluşturur.
func (r *AvailabilityRepository) CreateBlockedDate(ctx context.Context, blocked *models.BlockedDate) error {
	return r.getDB(ctx).Create(blocked).Error
}

// DeleteBlockedDate bloke gün kaydını siler.
func (r *AvailabilityRepository) DeleteBlockedDate(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz bloke gün ID")
	}
	result := r.getDB(ctx).Delete(&models.BlockedDate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IAvailabilityRepository = (*AvailabilityRepository)(nil)
