package services

import (
	"testing"

	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduleFixture(t *testing.T) IScheduleService {
	db := setupTestDB(t)
	return NewScheduleServiceWith(repositories.NewAvailabilityRepositoryTx(db), fixedNow)
}

func TestCreateSlot_InactivePersistsInactive(t *testing.T) {
	svc := newScheduleFixture(t)

	slot, err := svc.CreateSlot(testCtx(), SlotInput{
		DayOfWeek: 2,
		StartTime: "10:00",
		IsActive:  false,
	})
	require.NoError(t, err)

	stored, err := svc.GetSlotByID(testCtx(), slot.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestCreateSlot_DefaultsDuration(t *testing.T) {
	svc := newScheduleFixture(t)

	slot, err := svc.CreateSlot(testCtx(), SlotInput{
		DayOfWeek: 2,
		StartTime: "10:00",
		IsActive:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, slot.DurationMinutes)
	assert.True(t, slot.IsActive)
}

func TestCreateSlot_Validation(t *testing.T) {
	svc := newScheduleFixture(t)

	tests := []struct {
		name    string
		input   SlotInput
		wantErr error
	}{
		{"gün negatif", SlotInput{DayOfWeek: -1, StartTime: "10:00"}, ErrScheduleInvalidDay},
		{"gün 7", SlotInput{DayOfWeek: 7, StartTime: "10:00"}, ErrScheduleInvalidDay},
		{"saat biçimsiz", SlotInput{DayOfWeek: 1, StartTime: "10.00"}, ErrScheduleInvalidTime},
		{"saat 25", SlotInput{DayOfWeek: 1, StartTime: "25:00"}, ErrScheduleInvalidTime},
		{"dakika 60", SlotInput{DayOfWeek: 1, StartTime: "10:60"}, ErrScheduleInvalidTime},
		{"süre aşırı", SlotInput{DayOfWeek: 1, StartTime: "10:00", DurationMinutes: 300}, ErrScheduleInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSlot(testCtx(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateSlot(t *testing.T) {
	svc := newScheduleFixture(t)

	slot, err := svc.CreateSlot(testCtx(), SlotInput{DayOfWeek: 2, StartTime: "10:00", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateSlot(testCtx(), slot.ID, SlotInput{
		DayOfWeek:       3,
		StartTime:       "14:30",
		DurationMinutes: 90,
		SessionType:     " Çift Terapisi ",
		IsActive:        false,
	}))

	updated, err := svc.GetSlotByID(testCtx(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.DayOfWeek)
	assert.Equal(t, "14:30", updated.StartTime)
	assert.Equal(t, 90, updated.DurationMinutes)
	assert.Equal(t, "Çift Terapisi", updated.SessionType)
	assert.False(t, updated.IsActive)

	assert.ErrorIs(t, svc.UpdateSlot(testCtx(), 9999, SlotInput{DayOfWeek: 1, StartTime: "09:00"}), ErrScheduleSlotNotFound)
}

func TestDeleteSlot(t *testing.T) {
	svc := newScheduleFixture(t)

	slot, err := svc.CreateSlot(testCtx(), SlotInput{DayOfWeek: 2, StartTime: "10:00", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSlot(testCtx(), slot.ID))
	_, err = svc.GetSlotByID(testCtx(), slot.ID)
	assert.ErrorIs(t, err, ErrScheduleSlotNotFound)
}

func TestBlockDate(t *testing.T) {
	svc := newScheduleFixture(t)

	blocked, err := svc.BlockDate(testCtx(), "2025-03-15", " Seminer ")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", blocked.Date)
	assert.Equal(t, "Seminer", blocked.Reason)

	// Bugün bloke edilebilir, dün edilemez.
	_, err = svc.BlockDate(testCtx(), "2025-03-10", "")
	assert.NoError(t, err)
	_, err = svc.BlockDate(testCtx(), "2025-03-09", "")
	assert.ErrorIs(t, err, ErrScheduleDateInPast)

	_, err = svc.BlockDate(testCtx(), "15.03.2025", "")
	assert.ErrorIs(t, err, ErrScheduleInvalidDate)

	dates, err := svc.GetBlockedDates(testCtx())
	require.NoError(t, err)
	assert.Len(t, dates, 2)
}

func TestUnblockDate(t *testing.T) {
	svc := newScheduleFixture(t)

	blocked, err := svc.BlockDate(testCtx(), "2025-03-15", "")
	require.NoError(t, err)

	require.NoError(t, svc.UnblockDate(testCtx(), blocked.ID))
	dates, err := svc.GetBlockedDates(testCtx())
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestGetSlots_IncludesInactive(t *testing.T) {
	svc := newScheduleFixture(t)

	_, err := svc.CreateSlot(testCtx(), SlotInput{DayOfWeek: 1, StartTime: "09:00", IsActive: true})
	require.NoError(t, err)
	_, err = svc.CreateSlot(testCtx(), SlotInput{DayOfWeek: 1, StartTime: "11:00", IsActive: false})
	require.NoError(t, err)

	slots, err := svc.GetSlots(testCtx())
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}
