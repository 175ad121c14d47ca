package services

import (
	"fmt"
	"testing"

	"psikolog.link/models"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const webhookTestSecret = "whsec_test_secret"

func newWebhookFixture(t *testing.T) (IWebhookService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewWebhookServiceWith(
		repositories.NewEmailEventRepository(),
		repositories.NewSubscriberRepositoryTx(db),
		webhookTestSecret,
		false,
	)
	return svc, db
}

func TestVerifySignature_AcceptsCorrectHMAC(t *testing.T) {
	svc, _ := newWebhookFixture(t)

	body := []byte(`{"type":"email.bounced","data":{"email":"a@example.com"}}`)
	signature := ComputeSignature(body, webhookTestSecret)

	assert.True(t, svc.VerifySignature(body, signature))
}

func TestVerifySignature_RejectsTamperedSignature(t *testing.T) {
	svc, _ := newWebhookFixture(t)

	body := []byte(`{"type":"email.bounced","data":{"email":"a@example.com"}}`)
	signature := ComputeSignature(body, webhookTestSecret)

	// Tek baytı değiştirilmiş imza reddedilir.
	tampered := []byte(signature)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	assert.False(t, svc.VerifySignature(body, string(tampered)))
}

func TestVerifySignature_RejectsTamperedBody(t *testing.T) {
	svc, _ := newWebhookFixture(t)

	body := []byte(`{"type":"email.bounced","data":{"email":"a@example.com"}}`)
	signature := ComputeSignature(body, webhookTestSecret)

	altered := []byte(`{"type":"email.bounced","data":{"email":"b@example.com"}}`)
	assert.False(t, svc.VerifySignature(altered, signature))
}

func TestVerifySignature_NoSecret(t *testing.T) {
	db := setupTestDB(t)
	eventRepo := repositories.NewEmailEventRepository()
	subscriberRepo := repositories.NewSubscriberRepositoryTx(db)

	strict := NewWebhookServiceWith(eventRepo, subscriberRepo, "", false)
	assert.False(t, strict.VerifySignature([]byte("{}"), ""), "secret yokken varsayılan reddir")

	permissive := NewWebhookServiceWith(eventRepo, subscriberRepo, "", true)
	assert.True(t, permissive.VerifySignature([]byte("{}"), ""), "imzasız mod açıkça etkinleştirilmiş")
}

func TestHandleEvent_BounceUnsubscribesRecipient(t *testing.T) {
	svc, db := newWebhookFixture(t)

	require.NoError(t, db.Create(&models.NewsletterSubscriber{
		Email: "bounce@example.com", IsSubscribed: true,
	}).Error)

	body := []byte(`{"type":"email.bounced","data":{"email_id":"em_1","to":["bounce@example.com"]}}`)
	require.NoError(t, svc.HandleEvent(testCtx(), body))

	var sub models.NewsletterSubscriber
	require.NoError(t, db.Where("email = ?", "bounce@example.com").First(&sub).Error)
	assert.False(t, sub.IsSubscribed)
	assert.NotNil(t, sub.UnsubscribedAt)

	// Olay kayıt defterine yazılır.
	var event models.EmailEvent
	require.NoError(t, db.Where("event_type = ?", EventEmailBounced).First(&event).Error)
	assert.Equal(t, "em_1", event.EmailID)
	assert.Equal(t, "bounce@example.com", event.Recipient)
	assert.JSONEq(t, string(body), event.Payload)
}

func TestHandleEvent_ComplaintAndUnsubscribe(t *testing.T) {
	svc, db := newWebhookFixture(t)

	for i, eventType := range []string{EventEmailComplained, EventContactUnsubscribed} {
		email := fmt.Sprintf("user%d@example.com", i)
		require.NoError(t, db.Create(&models.NewsletterSubscriber{Email: email, IsSubscribed: true}).Error)

		body := []byte(fmt.Sprintf(`{"type":"%s","data":{"email":"%s"}}`, eventType, email))
		require.NoError(t, svc.HandleEvent(testCtx(), body))

		var sub models.NewsletterSubscriber
		require.NoError(t, db.Where("email = ?", email).First(&sub).Error)
		assert.False(t, sub.IsSubscribed, "olay türü: %s", eventType)
	}
}

func TestHandleEvent_InformationalEventOnlyLogged(t *testing.T) {
	svc, db := newWebhookFixture(t)

	require.NoError(t, db.Create(&models.NewsletterSubscriber{
		Email: "ok@example.com", IsSubscribed: true,
	}).Error)

	body := []byte(`{"type":"email.delivered","data":{"email":"ok@example.com"}}`)
	require.NoError(t, svc.HandleEvent(testCtx(), body))

	var sub models.NewsletterSubscriber
	require.NoError(t, db.Where("email = ?", "ok@example.com").First(&sub).Error)
	assert.True(t, sub.IsSubscribed, "bilgilendirme olayı aboneliği değiştirmez")

	var count int64
	require.NoError(t, db.Model(&models.EmailEvent{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestHandleEvent_UnknownRecipientIsIdempotent(t *testing.T) {
	svc, db := newWebhookFixture(t)

	body := []byte(`{"type":"email.bounced","data":{"email":"yok@example.com"}}`)
	require.NoError(t, svc.HandleEvent(testCtx(), body))
	require.NoError(t, svc.HandleEvent(testCtx(), body))

	var count int64
	require.NoError(t, db.Model(&models.EmailEvent{}).Count(&count).Error)
	assert.EqualValues(t, 2, count, "her teslim kayıt defterine yazılır")
}

func TestHandleEvent_MalformedBodyStillRecorded(t *testing.T) {
	svc, db := newWebhookFixture(t)

	require.NoError(t, svc.HandleEvent(testCtx(), []byte("bozuk gövde")))

	var event models.EmailEvent
	require.NoError(t, db.Where("event_type = ?", "unknown").First(&event).Error)
	assert.Equal(t, "bozuk gövde", event.Payload)
}
