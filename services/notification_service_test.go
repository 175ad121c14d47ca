package services

import (
	"testing"
	"time"

	"psikolog.link/models"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationFixture(t *testing.T) (INotificationService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewNotificationServiceWith(
		repositories.NewAppointmentRepositoryTx(db),
		repositories.NewCommentRepositoryTx(db),
		repositories.NewCallRequestRepositoryTx(db),
		repositories.NewContactMessageRepositoryTx(db),
	)
	return svc, db
}

func seedNotificationSources(t *testing.T, db *gorm.DB) {
	t.Helper()

	slot := models.AvailabilitySlot{DayOfWeek: 2, StartTime: "10:00", DurationMinutes: 50, IsActive: true}
	require.NoError(t, db.Create(&slot).Error)

	require.NoError(t, db.Create(&models.Appointment{
		Name: "Ayşe Yılmaz", Email: "ayse@example.com", Date: "2025-03-11", Time: "10:00",
		SlotID: slot.ID, Status: models.AppointmentStatusPending, Channel: models.ChannelOnline,
	}).Error)

	post := models.BlogPost{Title: "Kaygı", Slug: "kaygi", Status: models.PostStatusPublished}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&models.BlogComment{
		PostID: post.ID, AuthorName: "Ali", AuthorEmail: "ali@example.com",
		Content: "Teşekkürler.", Status: models.CommentStatusPending,
	}).Error)

	require.NoError(t, db.Create(&models.CallRequest{
		Name: "Fatma Kaya", Phone: "+905551112233", Status: models.CallRequestStatusPending,
	}).Error)

	require.NoError(t, db.Create(&models.ContactMessage{
		Name: "Mehmet Öz", Email: "mehmet@example.com", Content: "Merhaba, bilgi almak istiyorum.",
	}).Error)
}

func TestGetUnread_AggregatesAllSources(t *testing.T) {
	svc, db := newNotificationFixture(t)
	seedNotificationSources(t, db)

	items, err := svc.GetUnread(testCtx(), 10)
	require.NoError(t, err)
	require.Len(t, items, 4)

	types := make(map[string]bool)
	for _, item := range items {
		types[item.Type] = true
		assert.NotZero(t, item.SourceID)
		assert.NotEmpty(t, item.Title)
	}
	assert.True(t, types[NotificationTypeAppointment])
	assert.True(t, types[NotificationTypeComment])
	assert.True(t, types[NotificationTypeCallRequest])
	assert.True(t, types[NotificationTypeContactMessage])

	// Yeniden eskiye sıralıdır.
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i-1].CreatedAt.Before(items[i].CreatedAt))
	}
}

func TestGetCounts(t *testing.T) {
	svc, db := newNotificationFixture(t)
	seedNotificationSources(t, db)

	counts, err := svc.GetCounts(testCtx())
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Appointments)
	assert.EqualValues(t, 1, counts.Comments)
	assert.EqualValues(t, 1, counts.CallRequests)
	assert.EqualValues(t, 1, counts.ContactMessages)
	assert.EqualValues(t, 4, counts.Total)
}

func TestMarkRead_PerSource(t *testing.T) {
	svc, db := newNotificationFixture(t)
	seedNotificationSources(t, db)

	items, err := svc.GetUnread(testCtx(), 10)
	require.NoError(t, err)

	for _, item := range items {
		require.NoError(t, svc.MarkRead(testCtx(), item.Type, item.SourceID))
	}

	counts, err := svc.GetCounts(testCtx())
	require.NoError(t, err)
	assert.Zero(t, counts.Total)

	// Yorumun moderasyon durumu okundu işaretlemeyle değişmez.
	var comment models.BlogComment
	require.NoError(t, db.First(&comment).Error)
	assert.Equal(t, models.CommentStatusPending, comment.Status)
	assert.True(t, comment.IsRead)

	// Geri arama talebinde okundu, talebi aranmış saymaktır.
	var callRequest models.CallRequest
	require.NoError(t, db.First(&callRequest).Error)
	assert.Equal(t, models.CallRequestStatusCalled, callRequest.Status)
	assert.NotNil(t, callRequest.CalledAt)
}

func TestMarkRead_UnknownType(t *testing.T) {
	svc, _ := newNotificationFixture(t)
	err := svc.MarkRead(testCtx(), "bilinmeyen", 1)
	assert.ErrorIs(t, err, ErrNotificationUnknownType)
}

func TestGetUnread_LimitPerSource(t *testing.T) {
	svc, db := newNotificationFixture(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.ContactMessage{
			Name: "Gönderen", Email: "g@example.com", Content: "Mesaj",
			BaseModel: models.BaseModel{CreatedAt: time.Now().Add(time.Duration(i) * time.Minute)},
		}).Error)
	}

	items, err := svc.GetUnread(testCtx(), 3)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
