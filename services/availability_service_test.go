package services

import (
	"testing"
	"time"

	"psikolog.link/models"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 10 Mart 2025 Pazartesi; testler bu sabit andan bakarak ileriye doğru
// uygunluk hesaplar.
func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
}

func newAvailabilityFixture(t *testing.T) (IAvailabilityService, repositories.IAvailabilityRepository, repositories.IAppointmentRepository) {
	db := setupTestDB(t)
	availabilityRepo := repositories.NewAvailabilityRepositoryTx(db)
	appointmentRepo := repositories.NewAppointmentRepositoryTx(db)
	svc := NewAvailabilityServiceWith(availabilityRepo, appointmentRepo, fixedNow)
	return svc, availabilityRepo, appointmentRepo
}

func findDay(t *testing.T, result *MonthAvailability, date string) DayAvailability {
	t.Helper()
	for _, day := range result.Days {
		if day.Date == date {
			return day
		}
	}
	t.Fatalf("gün bulunamadı: %s", date)
	return DayAvailability{}
}

func TestGetMonthAvailability_SlotTemplateAppliesToWeekday(t *testing.T) {
	svc, availabilityRepo, _ := newAvailabilityFixture(t)

	// Salı günleri 10:00 ve 11:00.
	require.NoError(t, availabilityRepo.CreateSlot(testCtx(), &models.AvailabilitySlot{
		DayOfWeek: 2, StartTime: "10:00", DurationMinutes: 50, SessionType: "Bireysel Terapi", IsActive: true,
	}))
	require.NoError(t, availabilityRepo.CreateSlot(testCtx(), &models.AvailabilitySlot{
		DayOfWeek: 2, StartTime: "11:00", DurationMinutes: 50, SessionType: "Bireysel Terapi", IsActive: true,
	}))

	result, err := svc.GetMonthAvailability(testCtx(), 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 2025, result.Year)
	assert.Equal(t, 3, result.Month)

	// 11 Mart 2025 bir Salı; her iki slot da uygun olmalı.
	day := findDay(t, result, "2025-03-11")
	require.Len(t, day.Slots, 2)
	assert.Equal(t, "10:00", day.Slots[0].Time)
	assert.True(t, day.Slots[0].IsAvailable)
	assert.Equal(t, "11:00", day.Slots[1].Time)
	assert.True(t, day.Slots[1].IsAvailable)

	// 12 Mart Çarşamba; şablonda gün yok, slot sunulmaz.
	for _, d := range result.Days {
		if d.Date == "2025-03-12" {
			assert.Empty(t, d.Slots)
		}
	}
}

func TestGetMonthAvailability_PastDaysNeverAvailable(t *testing.T) {
	svc, availabilityRepo, _ := newAvailabilityFixture(t)

	// Salı slotu; 4 Mart 2025 geçmişte kalan bir Salı.
	require.NoError(t, availabilityRepo.CreateSlot(testCtx(), &models.AvailabilitySlot{
		DayOfWeek: 2, StartTime: "10:00", DurationMinutes: 50, IsActive: true,
	}))

	result, err := svc.GetMonthAvailability(testCtx(), 2025, 3)
	require.NoError(t, err)

	for _, day := range result.Days {
		if day.Date < "2025-03-10" {
			assert.Empty(t, day.Slots, "geçmiş gün uygun görünmemeli: %s", day.Date)
		}
	}

	// Bugünden sonraki ilk Salı hâlâ sunulur.
	assert.NotEmpty(t, findDay(t, result, "2025-03-11").Slots)
}

func TestGetMonthAvailability_BlockedDateHasNoSlots(t *testing.T) {
	svc, availabilityRepo, _ := newAvailabilityFixture(t)

	require.NoError(t, availabilityRepo.CreateSlot(testCtx(), &models.AvailabilitySlot{
		DayOfWeek: 2, StartTime: "10:00", DurationMinutes: 50, IsActive: true,
	}))
	require.NoError(t, availabilityRepo.CreateBlockedDate(testCtx(), &models.BlockedDate{
		Date: "2025-03-11", Reason: "tatil",
	}))

	result, err := svc.GetMonthAvailability(testCtx(), 2025, 3)
	require.NoError(t, err)

	day := findDay(t, result, "2025-03-11")
	assert.Empty(t, day.Slots)

	// Sonraki Salı etkilenmez.
	next := findDay(t, result, "2025-03-18")
	require.NotEmpty(t, next.Slots)
	assert.True(t, next.Slots[0].IsAvailable)
}

func TestGetMonthAvailability_BookedSlotExcluded(t *testing.T) {
	svc, availabilityRepo, appointmentRepo := newAvailabilityFixture(t)

	slot := &models.AvailabilitySlot{DayOfWeek: 2, StartTime: "10:00", DurationMinutes: 50, IsActive: true}
	other := &models.AvailabilitySlot{DayOfWeek: 2, StartTime: "11:00", DurationMinutes: 50, IsActive: true}
	require.NoError(t, availabilityRepo.CreateSlot(testCtx(), slot))
	require.NoError(t, availabilityRepo.CreateSlot(testCtx(), other))

	require.NoError(t, appointmentRepo.Create(testCtx(), &models.Appointment{
		Name: "Ayşe Yılmaz", Email: "ayse@example.com",
		Date: "2025-03-11", Time: "10:00", SlotID: slot.ID,
		Status: models.AppointmentStatusPending, Channel: models.ChannelOnline,
	}))

	result, err := svc.GetMonthAvailability(testCtx(), 2025, 3)
	require.NoError(t, err)

	// Rezerve slot listeden düşer, boş slot kalır.
	day := findDay(t, result, "2025-03-11")
	require.Len(t, day.Slots, 1)
	assert.Equal(t, other.ID, day.Slots[0].SlotID)
	assert.True(t, day.Slots[0].IsAvailable)
}

func TestGetMonthAvailability_CancelledAppointmentFreesSlot(t *testing.T) {
	svc, availabilityRepo, appointmentRepo := newAvailabilityFixture(t)

	slot := &models.AvailabilitySlot{DayOfWeek: 2, StartTime: "10:00", DurationMinutes: 50, IsActive: true}
	require.NoError(t, availabilityRepo.CreateSlot(testCtx(), slot))

	require.NoError(t, appointmentRepo.Create(testCtx(), &models.Appointment{
		Name: "Ali Demir", Email: "ali@example.com",
		Date: "2025-03-11", Time: "10:00", SlotID: slot.ID,
		Status: models.AppointmentStatusCancelled, Channel: models.ChannelOnline,
	}))

	result, err := svc.GetMonthAvailability(testCtx(), 2025, 3)
	require.NoError(t, err)

	day := findDay(t, result, "2025-03-11")
	require.Len(t, day.Slots, 1)
	assert.True(t, day.Slots[0].IsAvailable)
}

func TestGetMonthAvailability_InvalidInput(t *testing.T) {
	svc, _, _ := newAvailabilityFixture(t)

	_, err := svc.GetMonthAvailability(testCtx(), 2025, 13)
	assert.ErrorIs(t, err, ErrAvailabilityInvalidInput)

	_, err = svc.GetMonthAvailability(testCtx(), 1999, 5)
	assert.ErrorIs(t, err, ErrAvailabilityInvalidInput)
}

func TestGetMonthAvailability_InactiveSlotNotOffered(t *testing.T) {
	svc, availabilityRepo, _ := newAvailabilityFixture(t)

	require.NoError(t, availabilityRepo.CreateSlot(testCtx(), &models.AvailabilitySlot{
		DayOfWeek: 2, StartTime: "10:00", DurationMinutes: 50, IsActive: false,
	}))

	result, err := svc.GetMonthAvailability(testCtx(), 2025, 3)
	require.NoError(t, err)

	day := findDay(t, result, "2025-03-11")
	assert.Empty(t, day.Slots)
}
