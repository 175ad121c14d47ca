package services

import (
	"context"
	"fmt"
	"time"

	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/repositories"

	"go.uber.org/zap"
)

// AvailabilityServiceError uygunluk hesabına özgü servis hataları.
type AvailabilityServiceError string

func (e AvailabilityServiceError) Error() string { return string(e) }

const (
	// ErrAvailabilityInvalidInput geçersiz yıl/ay parametresi.
	ErrAvailabilityInvalidInput AvailabilityServiceError = "geçersiz uygunluk sorgusu"
)

// TimeSlot bir güne ait tek bir randevu saatini temsil eder.
type TimeSlot struct {
	SlotID          uint   `json:"slot_id"`
	Time            string `json:"time"` // HH:MM
	DurationMinutes int    `json:"duration_minutes"`
	SessionType     string `json:"session_type"`
	IsAvailable     bool   `json:"is_available"`
}

// DayAvailability bir günün uygun saatlerini taşır.
type DayAvailability struct {
	Date  string     `json:"date"` // YYYY-MM-DD
	Slots []TimeSlot `json:"slots"`
}

// MonthAvailability bir ayın gün gün uygunluğunu ve varsayılan seçimi taşır.
type MonthAvailability struct {
	Year        int               `json:"year"`
	Month       int               `json:"month"` // 1-12
	Days        []DayAvailability `json:"days"`
	DefaultDate string            `json:"default_date"` // Bugünden ileriye ilk uygun gün, yoksa boş
}

// IAvailabilityService aylık uygunluk hesabı için arayüz.
type IAvailabilityService interface {
	GetMonthAvailability(ctx context.Context, year, month int) (*MonthAvailability, error)
}

// AvailabilityService haftalık slot şablonu, dolu randevular ve bloke günlerden
// aylık uygunluk üretir.
type AvailabilityService struct {
	availabilityRepo repositories.IAvailabilityRepository
	appointmentRepo  repositories.IAppointmentRepository
	now              func() time.Time
}

// NewAvailabilityService yeni bir AvailabilityService örneği oluşturur.
func NewAvailabilityService() IAvailabilityService {
	return &AvailabilityService{
		availabilityRepo: repositories.NewAvailabilityRepository(),
		appointmentRepo:  repositories.NewAppointmentRepository(),
		now:              time.Now,
	}
}

// NewAvailabilityServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewAvailabilityServiceWith(
	availabilityRepo repositories.IAvailabilityRepository,
	appointmentRepo repositories.IAppointmentRepository,
	now func() time.Time,
) IAvailabilityService {
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		now:              now,
	}
}

// GetMonthAvailability verilen yıl/ay için gün gün uygun saatleri hesaplar.
//
// Kurallar:
//   - Bir gün için uygun slotlar, o günün haftanın gününe denk gelen aktif
//     şablon slotlarından başlar.
//   - O tarihte iptal edilmemiş bir randevunun tükettiği slotlar düşülür.
//   - Bloke gün kaydı olan günlerde hiçbir slot sunulmaz.
//   - Bugünden önceki tarihler asla uygun değildir.
//
// Veri çekme hatası ayın tamamı için boş uygunlukla sonuçlanır (loglanır,
// yeniden denenmez): hata durumunda hiçbir şey rezerve edilemez.
func (s *AvailabilityService) GetMonthAvailability(ctx context.Context, year, month int) (*MonthAvailability, error) {
	result := &MonthAvailability{Year: year, Month: month, Days: []DayAvailability{}}
	if month < 1 || month > 12 || year < 2000 || year > 2200 {
		return result, fmt.Errorf("%w: geçersiz yıl/ay (%d/%d)", ErrAvailabilityInvalidInput, year, month)
	}

	loc := s.now().Location()
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	lastDay := firstDay.AddDate(0, 1, -1)
	from := firstDay.Format(dateLayout)
	to := lastDay.Format(dateLayout)
	today := s.now().Format(dateLayout)

	slots, err := s.availabilityRepo.FindActiveSlots(ctx)
	if err != nil {
		configslog.Log.Error("Aylık uygunluk: şablon slotları alınamadı",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return result, nil
	}
	booked, err := s.appointmentRepo.BookedSlotIDsByDateRange(ctx, from, to)
	if err != nil {
		configslog.Log.Error("Aylık uygunluk: dolu slotlar alınamadı",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return result, nil
	}
	blockedDates, err := s.availabilityRepo.FindBlockedDatesBetween(ctx, from, to)
	if err != nil {
		configslog.Log.Error("Aylık uygunluk: bloke günler alınamadı",
			zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		return result, nil
	}

	slotsByDay := make(map[int][]models.AvailabilitySlot)
	for _, slot := range slots {
		slotsByDay[slot.DayOfWeek] = append(slotsByDay[slot.DayOfWeek], slot)
	}
	blocked := make(map[string]bool, len(blockedDates))
	for _, b := range blockedDates {
		blocked[b.Date] = true
	}

	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		date := day.Format(dateLayout)
		availability := DayAvailability{Date: date, Slots: []TimeSlot{}}

		// Geçmiş ve bloke günlerde hiçbir slot sunulmaz.
		if date >= today && !blocked[date] {
			bookedSet := make(map[uint]bool)
			for _, slotID := range booked[date] {
				bookedSet[slotID] = true
			}
			for _, slot := range slotsByDay[int(day.Weekday())] {
				if bookedSet[slot.ID] {
					continue
				}
				availability.Slots = append(availability.Slots, TimeSlot{
					SlotID:          slot.ID,
					Time:            slot.StartTime,
					DurationMinutes: slot.DurationMinutes,
					SessionType:     slot.SessionType,
					IsAvailable:     true,
				})
			}
		}

		if result.DefaultDate == "" && len(availability.Slots) > 0 {
			result.DefaultDate = date
		}
		result.Days = append(result.Days, availability)
	}

	return result, nil
}

const dateLayout = "2006-01-02"

var _ IAvailabilityService = (*AvailabilityService)(nil)
