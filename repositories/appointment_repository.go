package repositories

import (
	"context"
	"errors"
	"time"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/pkg/turkishsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IAppointmentRepository randevu kayıtları için veritabanı işlemleri arayüzü.
type IAppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Appointment, int64, error)
	BookedSlotIDsByDateRange(ctx context.Context, from, to string) (map[string][]uint, error)
	ExistsActiveByDateSlot(ctx context.Context, date string, slotID uint) (bool, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, appointment *models.Appointment, deletedByUserID uint) error
	CountByStatus(ctx context.Context, status models.AppointmentStatus) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
	FindUnread(ctx context.Context, limit int) ([]models.Appointment, error)
}

// AppointmentRepository IAppointmentRepository arayüzünü uygular.
type AppointmentRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Appointment]
}

// NewAppointmentRepository yeni bir AppointmentRepository örneği oluşturur.
func NewAppointmentRepository() IAppointmentRepository {
	return newAppointmentRepository(configs.GetDB())
}

// NewAppointmentRepositoryTx transaction içinden kullanılacak repository döndürür.
func NewAppointmentRepositoryTx(tx *gorm.DB) IAppointmentRepository {
	return newAppointmentRepository(tx)
}

func newAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	base := NewBaseRepository[models.Appointment](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "date", "status", "name"})
	return &AppointmentRepository{db: db, base: base}
}

func (r *AppointmentRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// Create yeni bir randevu talebi oluşturur.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment == nil || appointment.SlotID == 0 {
		return errors.New("geçersiz veya eksik slot bilgisi olan randevu oluşturulamaz")
	}
	return r.getDB(ctx).Create(appointment).Error
}

// FindByID belirli bir randevuyu slot bilgisiyle birlikte bulur.
func (r *AppointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	if id == 0 {
		return nil, errors.New("geçersiz randevu ID")
	}
	var appointment models.Appointment
	err := r.getDB(ctx).Preload("Slot").First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AppointmentRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &appointment, nil
}

// FindAllPaginated randevuları sayfalayarak listeler. params.Status durum
// filtresi, params.Name Türkçe duyarsız ad/e-posta filtresi olarak kullanılır.
func (r *AppointmentRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Appointment, int64, error) {
	var appointments []models.Appointment
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Appointment{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Name != "" {
		fragment, args := turkishsearch.SQLFilter("name", params.Name)
		query = query.Where(fragment, args...)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("AppointmentRepository.Count (Paginated): DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return appointments, 0, nil
	}

	err := query.
		Order(r.base.OrderClause(params.SortBy, params.OrderBy)).
		Preload("Slot").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&appointments).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.Find (Paginated): DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return appointments, totalCount, nil
}

// BookedSlotIDsByDateRange [from, to] aralığındaki iptal edilmemiş randevuların
// tarih -> slot ID listesini döndürür. Uygunluk hesabının slot düşme girdisidir.
func (r *AppointmentRepository) BookedSlotIDsByDateRange(ctx context.Context, from, to string) (map[string][]uint, error) {
	type row struct {
		Date   string
		SlotID uint
	}
	var rows []row
	err := r.getDB(ctx).Model(&models.Appointment{}).
		Select("date", "slot_id").
		Where("date >= ? AND date <= ?", from, to).
		Where("status <> ?", models.AppointmentStatusCancelled).
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.BookedSlotIDsByDateRange: DB error",
			zap.String("from", from), zap.String("to", to), zap.Error(err))
		return nil, err
	}

	booked := make(map[string][]uint, len(rows))
	for _, rw := range rows {
		booked[rw.Date] = append(booked[rw.Date], rw.SlotID)
	}
	return booked, nil
}

// ExistsActiveByDateSlot verilen tarih ve slot için iptal edilmemiş bir randevu
// olup olmadığını döndürür.
func (r *AppointmentRepository) ExistsActiveByDateSlot(ctx context.Context, date string, slotID uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Appointment{}).
		Where("date = ? AND slot_id = ?", date, slotID).
		Where("status <> ?", models.AppointmentStatusCancelled).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.ExistsActiveByDateSlot: DB error",
			zap.String("date", date), zap.Uint("slotID", slotID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// Update randevuyu Save ile günceller (BeforeUpdate hook'u UpdatedBy'ı ayarlar).
func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	if appointment == nil || appointment.ID == 0 {
		return errors.New("güncellenecek randevu geçerli değil")
	}
	return r.getDB(ctx).Save(appointment).Error
}

// MarkRead randevuyu okundu olarak işaretler.
func (r *AppointmentRepository) MarkRead(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz randevu ID")
	}
	result := r.getDB(ctx).Model(&models.Appointment{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete randevuyu soft delete ile siler ve DeletedBy'ı ayarlar.
func (r *AppointmentRepository) Delete(ctx context.Context, appointment *models.Appointment, deletedByUserID uint) error {
	if appointment == nil || appointment.ID == 0 {
		return errors.New("silinecek randevu geçerli değil")
	}
	db := r.getDB(ctx)
	now := time.Now().UTC()
	result := db.Model(appointment).
		Where("id = ? AND deleted_at IS NULL", appointment.ID).
		Updates(map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID})
	if result.Error != nil {
		configslog.Log.Error("AppointmentRepository.Delete: DB error", zap.Uint("id", appointment.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus verilen durumdaki randevu sayısını döndürür.
func (r *AppointmentRepository) CountByStatus(ctx context.Context, status models.AppointmentStatus) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Appointment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountUnread okunmamış randevu sayısını döndürür.
func (r *AppointmentRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Appointment{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

// FindUnread okunmamış randevuları yeniden eskiye sıralı döndürür.
func (r *AppointmentRepository) FindUnread(ctx context.Context, limit int) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.getDB(ctx).
		Where("is_read = ?", false).
		Order("created_at desc").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.FindUnread: DB error", zap.Error(err))
		return nil, err
	}
	return appointments, nil
}

var _ IAppointmentRepository = (*AppointmentRepository)(nil)
