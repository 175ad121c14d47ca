package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/repositories"

	"go.uber.org/zap"
)

// ScheduleServiceError takvim yönetimi işlemlerine özgü servis hataları.
type ScheduleServiceError string

func (e ScheduleServiceError) Error() string { return string(e) }

const (
	ErrScheduleSlotNotFound    ScheduleServiceError = "slot bulunamadı"
	ErrScheduleInvalidDay      ScheduleServiceError = "geçersiz gün değeri"
	ErrScheduleInvalidTime     ScheduleServiceError = "geçersiz saat biçimi (HH:MM bekleniyor)"
	ErrScheduleInvalidDuration ScheduleServiceError = "geçersiz süre değeri"
	ErrScheduleInvalidDate     ScheduleServiceError = "geçersiz tarih biçimi (YYYY-AA-GG bekleniyor)"
	ErrScheduleDateInPast      ScheduleServiceError = "geçmiş bir tarih bloke edilemez"
)

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// SlotInput haftalık slot şablonu formunun girdisi.
type SlotInput struct {
	DayOfWeek       int    `form:"day_of_week"`
	StartTime       string `form:"start_time"`
	DurationMinutes int    `form:"duration_minutes"`
	SessionType     string `form:"session_type"`
	IsActive        bool   `form:"is_active"`
}

// IScheduleService haftalık slot şablonu ve bloke günlerin yönetim arayüzü.
type IScheduleService interface {
	GetSlots(ctx context.Context) ([]models.AvailabilitySlot, error)
	GetSlotByID(ctx context.Context, id uint) (*models.AvailabilitySlot, error)
	CreateSlot(ctx context.Context, input SlotInput) (*models.AvailabilitySlot, error)
	UpdateSlot(ctx context.Context, id uint, input SlotInput) error
	DeleteSlot(ctx context.Context, id uint) error

	GetBlockedDates(ctx context.Context) ([]models.BlockedDate, error)
	BlockDate(ctx context.Context, date, reason string) (*models.BlockedDate, error)
	UnblockDate(ctx context.Context, id uint) error
}

// ScheduleService IScheduleService arayüzünü uygular.
type ScheduleService struct {
	repo repositories.IAvailabilityRepository
	now  func() time.Time
}

// NewScheduleService yeni bir ScheduleService örneği oluşturur.
func NewScheduleService() IScheduleService {
	return &ScheduleService{repo: repositories.NewAvailabilityRepository(), now: time.Now}
}

// NewScheduleServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewScheduleServiceWith(repo repositories.IAvailabilityRepository, now func() time.Time) IScheduleService {
	return &ScheduleService{repo: repo, now: now}
}

// GetSlots tüm şablon slotlarını döndürür (pasifler dahil).
func (s *ScheduleService) GetSlots(ctx context.Context) ([]models.AvailabilitySlot, error) {
	return s.repo.FindAllSlots(ctx)
}

// GetSlotByID slotu ID ile döndürür.
func (s *ScheduleService) GetSlotByID(ctx context.Context, id uint) (*models.AvailabilitySlot, error) {
	slot, err := s.repo.FindSlotByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrScheduleSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

// CreateSlot haftalık şablona yeni slot ekler.
func (s *ScheduleService) CreateSlot(ctx context.Context, input SlotInput) (*models.AvailabilitySlot, error) {
	if err := validateSlotInput(input); err != nil {
		return nil, err
	}
	slot := &models.AvailabilitySlot{
		DayOfWeek:       input.DayOfWeek,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		SessionType:     strings.TrimSpace(input.SessionType),
		IsActive:        input.IsActive,
	}
	if slot.DurationMinutes == 0 {
		slot.DurationMinutes = 50
	}
	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		configslog.Log.Error("Slot oluşturulamadı", zap.Int("day", input.DayOfWeek), zap.Error(err))
		return nil, err
	}
	return slot, nil
}

// UpdateSlot mevcut slotu günceller. Pasife çekmek gelecekteki uygunluğu
// kapatır; mevcut randevular etkilenmez.
func (s *ScheduleService) UpdateSlot(ctx context.Context, id uint, input SlotInput) error {
	if err := validateSlotInput(input); err != nil {
		return err
	}
	slot, err := s.repo.FindSlotByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrScheduleSlotNotFound
		}
		return err
	}
	slot.DayOfWeek = input.DayOfWeek
	slot.StartTime = input.StartTime
	if input.DurationMinutes > 0 {
		slot.DurationMinutes = input.DurationMinutes
	}
	slot.SessionType = strings.TrimSpace(input.SessionType)
	slot.IsActive = input.IsActive
	return s.repo.UpdateSlot(ctx, slot)
}

// DeleteSlot slotu soft delete eder. Slota bağlı randevular korunur.
func (s *ScheduleService) DeleteSlot(ctx context.Context, id uint) error {
	slot, err := s.repo.FindSlotByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrScheduleSlotNotFound
		}
		return err
	}
	return s.repo.DeleteSlot(ctx, slot)
}

// GetBlockedDates tüm bloke günleri döndürür.
func (s *ScheduleService) GetBlockedDates(ctx context.Context) ([]models.BlockedDate, error) {
	return s.repo.FindAllBlockedDates(ctx)
}

// BlockDate verilen günü randevuya kapatır. Gün bugünden önce olamaz.
func (s *ScheduleService) BlockDate(ctx context.Context, date, reason string) (*models.BlockedDate, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrScheduleInvalidDate
	}
	today := s.now().Format(dateLayout)
	if date < today {
		return nil, ErrScheduleDateInPast
	}
	blocked := &models.BlockedDate{Date: date, Reason: strings.TrimSpace(reason)}
	if err := s.repo.CreateBlockedDate(ctx, blocked); err != nil {
		configslog.Log.Error("Gün bloke edilemedi", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return blocked, nil
}

// UnblockDate bloke kaydını kaldırır.
func (s *ScheduleService) UnblockDate(ctx context.Context, id uint) error {
	return s.repo.DeleteBlockedDate(ctx, id)
}

func validateSlotInput(input SlotInput) error {
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return ErrScheduleInvalidDay
	}
	if !timePattern.MatchString(input.StartTime) {
		return ErrScheduleInvalidTime
	}
	if input.DurationMinutes < 0 || input.DurationMinutes > 240 {
		return ErrScheduleInvalidDuration
	}
	return nil
}

var _ IScheduleService = (*ScheduleService)(nil)
