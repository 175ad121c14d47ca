package services

import (
	"testing"

	"psikolog.link/models"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAppointmentFixture(t *testing.T) (IAppointmentService, repositories.IAvailabilityRepository, *gorm.DB) {
	db := setupTestDB(t)
	availabilityRepo := repositories.NewAvailabilityRepositoryTx(db)
	appointmentRepo := repositories.NewAppointmentRepositoryTx(db)
	svc := NewAppointmentServiceWith(appointmentRepo, availabilityRepo, db, fixedNow)
	return svc, availabilityRepo, db
}

func tuesdaySlot(t *testing.T, repo repositories.IAvailabilityRepository) *models.AvailabilitySlot {
	t.Helper()
	slot := &models.AvailabilitySlot{
		DayOfWeek: 2, StartTime: "10:00", DurationMinutes: 50,
		SessionType: "Bireysel Terapi", IsActive: true,
	}
	require.NoError(t, repo.CreateSlot(testCtx(), slot))
	return slot
}

func validBooking(slotID uint) BookingRequest {
	return BookingRequest{
		Name:    "Ayşe Yılmaz",
		Email:   "Ayse@Example.com",
		Phone:   "+90 555 111 22 33",
		Channel: "online",
		Date:    "2025-03-11",
		SlotID:  slotID,
	}
}

func TestAppointmentRepository_DuplicateInsertTranslated(t *testing.T) {
	_, availabilityRepo, db := newAppointmentFixture(t)
	slot := tuesdaySlot(t, availabilityRepo)
	repo := repositories.NewAppointmentRepositoryTx(db)

	first := &models.Appointment{
		Name: "Ayşe Yılmaz", Email: "ayse@example.com", Date: "2025-03-11", Time: "10:00",
		SlotID: slot.ID, Status: models.AppointmentStatusPending, Channel: models.ChannelOnline,
	}
	require.NoError(t, repo.Create(testCtx(), first))

	// Ön kontrolü atlayan bir yarışta kaybeden taraf indekse takılır; sürücü
	// hatası gorm.ErrDuplicatedKey olarak çevrilmelidir.
	second := &models.Appointment{
		Name: "Bekir Demir", Email: "bekir@example.com", Date: "2025-03-11", Time: "10:00",
		SlotID: slot.ID, Status: models.AppointmentStatusPending, Channel: models.ChannelOnline,
	}
	err := repo.Create(testCtx(), second)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// İptal edilmiş kayıt indeksin dışında kalır, yeniden rezervasyon mümkündür.
	require.NoError(t, db.Model(first).Update("status", models.AppointmentStatusCancelled).Error)
	assert.NoError(t, repo.Create(testCtx(), second))
}

func TestCreateAppointment_Success(t *testing.T) {
	svc, availabilityRepo, _ := newAppointmentFixture(t)
	slot := tuesdaySlot(t, availabilityRepo)

	appointment, err := svc.CreateAppointment(testCtx(), validBooking(slot.ID))
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentStatusPending, appointment.Status)
	assert.Equal(t, "ayse@example.com", appointment.Email, "e-posta küçük harfe çevrilir")
	assert.Equal(t, "10:00", appointment.Time, "saat slottan kopyalanır")
	assert.False(t, appointment.IsRead)
}

func TestCreateAppointment_Validation(t *testing.T) {
	svc, availabilityRepo, _ := newAppointmentFixture(t)
	slot := tuesdaySlot(t, availabilityRepo)

	cases := []struct {
		name    string
		mutate  func(*BookingRequest)
		wantErr error
	}{
		{"ad eksik", func(r *BookingRequest) { r.Name = "  " }, ErrAppointmentNameRequired},
		{"e-posta eksik", func(r *BookingRequest) { r.Email = "" }, ErrAppointmentEmailRequired},
		{"e-posta bozuk", func(r *BookingRequest) { r.Email = "ayse" }, ErrAppointmentEmailRequired},
		{"slot sıfır", func(r *BookingRequest) { r.SlotID = 0 }, ErrAppointmentSlotInvalid},
		{"tarih bozuk", func(r *BookingRequest) { r.Date = "11.03.2025" }, ErrAppointmentInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBooking(slot.ID)
			tc.mutate(&req)
			_, err := svc.CreateAppointment(testCtx(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateAppointment_PastDateRejected(t *testing.T) {
	svc, availabilityRepo, _ := newAppointmentFixture(t)
	slot := tuesdaySlot(t, availabilityRepo)

	req := validBooking(slot.ID)
	req.Date = "2025-03-04" // geçmişteki Salı
	_, err := svc.CreateAppointment(testCtx(), req)
	assert.ErrorIs(t, err, ErrAppointmentDatePast)
}

func TestCreateAppointment_WrongWeekdayRejected(t *testing.T) {
	svc, availabilityRepo, _ := newAppointmentFixture(t)
	slot := tuesdaySlot(t, availabilityRepo)

	req := validBooking(slot.ID)
	req.Date = "2025-03-12" // Çarşamba, slot Salı şablonunda
	_, err := svc.CreateAppointment(testCtx(), req)
	assert.ErrorIs(t, err, ErrAppointmentSlotInvalid)
}

func TestCreateAppointment_BlockedDateRejected(t *testing.T) {
	svc, availabilityRepo, _ := newAppointmentFixture(t)
	slot := tuesdaySlot(t, availabilityRepo)

	require.NoError(t, availabilityRepo.CreateBlockedDate(testCtx(), &models.BlockedDate{
		Date: "2025-03-11", Reason: "kongre",
	}))

	_, err := svc.CreateAppointment(testCtx(), validBooking(slot.ID))
	assert.ErrorIs(t, err, ErrAppointmentDateBlocked)
}

func TestCreateAppointment_DoubleBookingRejected(t *testing.T) {
	svc, availabilityRepo, _ := newAppointmentFixture(t)
	slot := tuesdaySlot(t, availabilityRepo)

	_, err := svc.CreateAppointment(testCtx(), validBooking(slot.ID))
	require.NoError(t, err)

	second := validBooking(slot.ID)
	second.Name = "Ali Demir"
	second.Email = "ali@example.com"
	_, err = svc.CreateAppointment(testCtx(), second)
	assert.ErrorIs(t, err, ErrAppointmentSlotTaken)
}

func TestCreateAppointment_CancelledSlotCanBeRebooked(t *testing.T) {
	svc, availabilityRepo, _ := newAppointmentFixture(t)
	slot := tuesdaySlot(t, availabilityRepo)

	first, err := svc.CreateAppointment(testCtx(), validBooking(slot.ID))
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(testCtx(), first.ID, 1, models.AppointmentStatusCancelled))

	second := validBooking(slot.ID)
	second.Email = "ali@example.com"
	_, err = svc.CreateAppointment(testCtx(), second)
	assert.NoError(t, err, "iptal edilen slot yeniden alınabilmeli")
}

func TestUpdateStatus_Transitions(t *testing.T) {
	svc, availabilityRepo, _ := newAppointmentFixture(t)
	slot := tuesdaySlot(t, availabilityRepo)

	appointment, err := svc.CreateAppointment(testCtx(), validBooking(slot.ID))
	require.NoError(t, err)

	// pending -> confirmed -> completed
	require.NoError(t, svc.UpdateStatus(testCtx(), appointment.ID, 1, models.AppointmentStatusConfirmed))
	require.NoError(t, svc.UpdateStatus(testCtx(), appointment.ID, 1, models.AppointmentStatusCompleted))

	// Terminal durumdan geçiş yok.
	err = svc.UpdateStatus(testCtx(), appointment.ID, 1, models.AppointmentStatusCancelled)
	assert.ErrorIs(t, err, ErrAppointmentBadTransition)
}

func TestUpdateStatus_UnknownAppointment(t *testing.T) {
	svc, _, _ := newAppointmentFixture(t)
	err := svc.UpdateStatus(testCtx(), 9999, 1, models.AppointmentStatusConfirmed)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestMarkRead(t *testing.T) {
	svc, availabilityRepo, _ := newAppointmentFixture(t)
	slot := tuesdaySlot(t, availabilityRepo)

	appointment, err := svc.CreateAppointment(testCtx(), validBooking(slot.ID))
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(testCtx(), appointment.ID))

	got, err := svc.GetAppointmentByID(testCtx(), appointment.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
}
