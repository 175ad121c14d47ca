package services

import (
	"strings"
	"testing"

	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContactFixture(t *testing.T) (IContactMessageService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewContactMessageServiceWith(repositories.NewContactMessageRepositoryTx(db))
	return svc, db
}

func validContactMessage() ContactMessageInput {
	return ContactMessageInput{
		Name:    "Mehmet Öz",
		Email:   "Mehmet@Example.com",
		Subject: " Randevu hakkında ",
		Content: "Merhaba, bilgi almak istiyorum.",
	}
}

func TestSubmitMessage(t *testing.T) {
	svc, _ := newContactFixture(t)

	message, err := svc.SubmitMessage(testCtx(), validContactMessage())
	require.NoError(t, err)
	assert.Equal(t, "mehmet@example.com", message.Email)
	assert.Equal(t, "Randevu hakkında", message.Subject)
	assert.False(t, message.IsRead)
}

func TestSubmitMessage_Validation(t *testing.T) {
	svc, _ := newContactFixture(t)

	tests := []struct {
		name    string
		mutate  func(*ContactMessageInput)
		wantErr error
	}{
		{"isim boş", func(in *ContactMessageInput) { in.Name = "" }, ErrContactNameRequired},
		{"e-posta geçersiz", func(in *ContactMessageInput) { in.Email = "bozuk" }, ErrContactEmailInvalid},
		{"içerik boş", func(in *ContactMessageInput) { in.Content = "  " }, ErrContactContentRequired},
		{"içerik çok uzun", func(in *ContactMessageInput) { in.Content = strings.Repeat("a", maxContactMessageLength+1) }, ErrContactContentTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validContactMessage()
			tt.mutate(&input)
			_, err := svc.SubmitMessage(testCtx(), input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestContactMarkReadAndGet(t *testing.T) {
	svc, db := newContactFixture(t)

	message, err := svc.SubmitMessage(testCtx(), validContactMessage())
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(testCtx(), message.ID))

	var stored models.ContactMessage
	require.NoError(t, db.First(&stored, message.ID).Error)
	assert.True(t, stored.IsRead)

	found, err := svc.GetMessageByID(testCtx(), message.ID)
	require.NoError(t, err)
	assert.Equal(t, message.Content, found.Content)

	_, err = svc.GetMessageByID(testCtx(), 9999)
	assert.ErrorIs(t, err, ErrContactMessageNotFound)
}

func TestGetMessagesPaginated(t *testing.T) {
	svc, _ := newContactFixture(t)

	for i := 0; i < 3; i++ {
		_, err := svc.SubmitMessage(testCtx(), validContactMessage())
		require.NoError(t, err)
	}

	params := queryparams.ListParams{Page: 1, PerPage: 2}
	result, err := svc.GetMessagesPaginated(testCtx(), params)
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Meta.TotalItems)
	assert.Equal(t, 2, result.Meta.TotalPages)

	messages, ok := result.Data.([]models.ContactMessage)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestDeleteMessage(t *testing.T) {
	svc, _ := newContactFixture(t)

	message, err := svc.SubmitMessage(testCtx(), validContactMessage())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMessage(testCtx(), message.ID))
	assert.ErrorIs(t, svc.DeleteMessage(testCtx(), message.ID), ErrContactMessageNotFound)
}
