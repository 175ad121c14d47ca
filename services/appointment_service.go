package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/realtime"
	"psikolog.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppointmentServiceError randevu işlemlerine özgü servis hataları.
type AppointmentServiceError string

func (e AppointmentServiceError) Error() string { return string(e) }

const (
	ErrAppointmentNotFound       AppointmentServiceError = "randevu bulunamadı"
	ErrAppointmentCreationFailed AppointmentServiceError = "randevu oluşturulamadı"
	ErrAppointmentInvalidInput   AppointmentServiceError = "geçersiz randevu bilgisi"
	ErrAppointmentNameRequired   AppointmentServiceError = "ad soyad alanı zorunludur"
	ErrAppointmentEmailRequired  AppointmentServiceError = "e-posta alanı zorunludur"
	ErrAppointmentSlotInvalid    AppointmentServiceError = "seçilen randevu saati geçerli değil"
	ErrAppointmentSlotTaken      AppointmentServiceError = "seçilen randevu saati az önce dolmuş, lütfen başka bir saat seçin"
	ErrAppointmentDateBlocked    AppointmentServiceError = "seçilen tarih randevuya kapalıdır"
	ErrAppointmentDatePast       AppointmentServiceError = "geçmiş bir tarihe randevu alınamaz"
	ErrAppointmentBadTransition  AppointmentServiceError = "geçersiz randevu durum geçişi"
)

// BookingRequest public randevu formundan gelen talebi taşır.
type BookingRequest struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	SessionType string `json:"session_type" form:"session_type"`
	Channel     string `json:"channel" form:"channel"`
	Date        string `json:"date" form:"date"` // YYYY-MM-DD
	SlotID      uint   `json:"slot_id" form:"slot_id"`
	Notes       string `json:"notes" form:"notes"`
}

// IAppointmentService randevu işlemleri için arayüz.
type IAppointmentService interface {
	CreateAppointment(ctx context.Context, req BookingRequest) (*models.Appointment, error)
	GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error)
	GetAppointmentsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateStatus(ctx context.Context, id uint, adminUserID uint, target models.AppointmentStatus) error
	MarkRead(ctx context.Context, id uint) error
	DeleteAppointment(ctx context.Context, id uint, deletingUserID uint) error
	CountPending(ctx context.Context) (int64, error)
}

// AppointmentService IAppointmentService arayüzünü uygular.
type AppointmentService struct {
	repo             repositories.IAppointmentRepository
	availabilityRepo repositories.IAvailabilityRepository
	db               *gorm.DB
	now              func() time.Time
}

// NewAppointmentService yeni bir AppointmentService örneği oluşturur.
func NewAppointmentService() IAppointmentService {
	return &AppointmentService{
		repo:             repositories.NewAppointmentRepository(),
		availabilityRepo: repositories.NewAvailabilityRepository(),
		db:               configs.GetDB(),
		now:              time.Now,
	}
}

// NewAppointmentServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewAppointmentServiceWith(
	repo repositories.IAppointmentRepository,
	availabilityRepo repositories.IAvailabilityRepository,
	db *gorm.DB,
	now func() time.Time,
) IAppointmentService {
	if now == nil {
		now = time.Now
	}
	return &AppointmentService{repo: repo, availabilityRepo: availabilityRepo, db: db, now: now}
}

// ValidateBookingRequest formdan gelen talebin temel doğrulamasını yapar.
func ValidateBookingRequest(req BookingRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrAppointmentNameRequired
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return ErrAppointmentEmailRequired
	}
	if req.SlotID == 0 {
		return ErrAppointmentSlotInvalid
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return fmt.Errorf("%w: tarih biçimi YYYY-AA-GG olmalı", ErrAppointmentInvalidInput)
	}
	return nil
}

// CreateAppointment public formdan gelen talebi doğrulayıp pending durumunda
// kaydeder. Slot şablonda var ve aktif olmalı, güne uymalı, tarih geçmiş veya
// bloke olmamalı ve aynı (tarih, slot) için iptal edilmemiş randevu
// bulunmamalıdır. Son kontrol veritabanındaki kısmi benzersiz indeks ile de
// desteklenir; yarışta kaybeden istek ErrAppointmentSlotTaken alır.
func (s *AppointmentService) CreateAppointment(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	if err := ValidateBookingRequest(req); err != nil {
		return nil, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	today := s.now().Format("2006-01-02")
	if req.Date < today {
		return nil, ErrAppointmentDatePast
	}

	slot, err := s.availabilityRepo.FindSlotByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentSlotInvalid
		}
		return nil, err
	}
	if !slot.IsActive || slot.DayOfWeek != int(date.Weekday()) {
		return nil, ErrAppointmentSlotInvalid
	}

	blocked, err := s.availabilityRepo.FindBlockedDatesBetween(ctx, req.Date, req.Date)
	if err != nil {
		return nil, err
	}
	if len(blocked) > 0 {
		return nil, ErrAppointmentDateBlocked
	}

	channel := models.AppointmentChannel(req.Channel)
	if channel != models.ChannelOnline && channel != models.ChannelInPerson {
		channel = models.ChannelOnline
	}

	appointment := &models.Appointment{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		SessionType: req.SessionType,
		Channel:     channel,
		Date:        req.Date,
		Time:        slot.StartTime,
		SlotID:      slot.ID,
		Status:      models.AppointmentStatusPending,
	}
	if req.Notes != "" {
		appointment.Notes = strings.TrimSpace(req.Notes)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewAppointmentRepositoryTx(tx)

		taken, err := repoTx.ExistsActiveByDateSlot(ctx, req.Date, slot.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrAppointmentSlotTaken
		}
		if err := repoTx.Create(ctx, appointment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAppointmentSlotTaken
			}
			configslog.Log.Error("Randevu oluşturulurken transaction hatası", zap.Error(err))
			return ErrAppointmentCreationFailed
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Yeni randevu talebi alındı: ID %d, %s %s (%s)",
		appointment.ID, appointment.Date, appointment.Time, appointment.Email)

	// Açık yönetici oturumlarına anlık bildirim; best-effort.
	realtime.Publish("appointment", map[string]interface{}{
		"id":   appointment.ID,
		"name": appointment.Name,
		"date": appointment.Date,
		"time": appointment.Time,
	})

	return appointment, nil
}

// GetAppointmentByID randevuyu getirir.
func (s *AppointmentService) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}

// GetAppointmentsPaginated randevuları yönetim ekranı için sayfalayarak getirir.
func (s *AppointmentService) GetAppointmentsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	appointments, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		configslog.Log.Error("Randevular listelenirken hata", zap.Error(err))
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: appointments,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateStatus randevu durumunu yönetici adına değiştirir. Geçişler yalnızca
// pending→confirmed/cancelled ve confirmed→completed/cancelled olabilir.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uint, adminUserID uint, target models.AppointmentStatus) error {
	if id == 0 || adminUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrAppointmentInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(repositories.ContextWithTx(ctx, tx), adminUserID)
		repoTx := repositories.NewAppointmentRepositoryTx(tx)

		appointment, err := repoTx.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}
		if !appointment.Status.CanTransitionTo(target) {
			return ErrAppointmentBadTransition
		}
		appointment.Status = target
		appointment.IsRead = true
		return repoTx.Update(txCtx, appointment)
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrAppointmentNotFound) && !errors.Is(txErr, ErrAppointmentBadTransition) {
			configslog.Log.Error("Randevu durumu güncellenemedi",
				zap.Uint("id", id), zap.String("target", string(target)), zap.Error(txErr))
		}
		return txErr
	}

	configslog.SLog.Infof("Randevu durumu güncellendi: ID %d -> %s (Yönetici: %d)", id, target, adminUserID)
	return nil
}

// MarkRead randevuyu bildirim kutusunda okundu olarak işaretler.
func (s *AppointmentService) MarkRead(ctx context.Context, id uint) error {
	err := s.repo.MarkRead(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrAppointmentNotFound
	}
	return err
}

// DeleteAppointment randevuyu soft delete ile siler.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uint, deletingUserID uint) error {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, appointment, deletingUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		configslog.Log.Error("Randevu silinemedi", zap.Uint("id", id), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Randevu silindi: ID %d (Silen: %d)", id, deletingUserID)
	return nil
}

// CountPending bekleyen randevu sayısını döndürür (panel rozetleri için).
func (s *AppointmentService) CountPending(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, models.AppointmentStatusPending)
}

var _ IAppointmentService = (*AppointmentService)(nil)
