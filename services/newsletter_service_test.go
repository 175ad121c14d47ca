package services

import (
	"context"
	"errors"
	"testing"

	"psikolog.link/configs"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMailer sağlayıcı çağrılarını kaydeder; gerçek istek atmaz.
type fakeMailer struct {
	broadcasts []BroadcastParams
	batches    [][]BatchMessage
	contacts   []ContactParams

	broadcastErr error
	batchErr     error
}

func (m *fakeMailer) SendBroadcast(_ context.Context, params BroadcastParams) (string, error) {
	if m.broadcastErr != nil {
		return "", m.broadcastErr
	}
	m.broadcasts = append(m.broadcasts, params)
	return "bc_test_123", nil
}

func (m *fakeMailer) SendBatch(_ context.Context, messages []BatchMessage) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	m.batches = append(m.batches, messages)
	return nil
}

func (m *fakeMailer) UpsertContact(_ context.Context, params ContactParams) (string, error) {
	m.contacts = append(m.contacts, params)
	return "contact_test_1", nil
}

func newNewsletterFixture(t *testing.T, audienceID string) (INewsletterService, *fakeMailer, repositories.ISubscriberRepository) {
	db := setupTestDB(t)
	repo := repositories.NewSubscriberRepositoryTx(db)
	mailer := &fakeMailer{}
	cfg := &configs.AppConfig{
		ResendAudienceID: audienceID,
		ResendFromEmail:  "Test <test@example.com>",
	}
	return NewNewsletterServiceWith(repo, mailer, cfg), mailer, repo
}

func TestSubscribe_NewSubscriber(t *testing.T) {
	svc, mailer, repo := newNewsletterFixture(t, "aud_1")

	message, err := svc.Subscribe(testCtx(), SubscribeRequest{
		Email: "  Deniz@Example.com ", FirstName: "Deniz", Source: "footer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bültene başarıyla abone oldunuz.", message)

	sub, err := repo.FindByEmail(testCtx(), "deniz@example.com")
	require.NoError(t, err)
	assert.True(t, sub.IsSubscribed)
	assert.Equal(t, "footer", sub.Source)
	assert.Equal(t, "contact_test_1", sub.ResendContactID, "contact ID best-effort kaydedilir")

	require.Len(t, mailer.contacts, 1)
	assert.Equal(t, "deniz@example.com", mailer.contacts[0].Email)
}

func TestSubscribe_DuplicateRejected(t *testing.T) {
	svc, _, _ := newNewsletterFixture(t, "")

	_, err := svc.Subscribe(testCtx(), SubscribeRequest{Email: "deniz@example.com"})
	require.NoError(t, err)

	_, err = svc.Subscribe(testCtx(), SubscribeRequest{Email: "DENIZ@example.com"})
	assert.ErrorIs(t, err, ErrNewsletterAlreadySubscribed)
}

func TestSubscribe_ResubscribeAfterUnsubscribe(t *testing.T) {
	svc, _, repo := newNewsletterFixture(t, "")

	_, err := svc.Subscribe(testCtx(), SubscribeRequest{Email: "deniz@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(testCtx(), "deniz@example.com"))

	message, err := svc.Subscribe(testCtx(), SubscribeRequest{Email: "deniz@example.com", FirstName: "Deniz"})
	require.NoError(t, err)
	assert.Equal(t, "Aboneliğiniz yeniden etkinleştirildi.", message)

	sub, err := repo.FindByEmail(testCtx(), "deniz@example.com")
	require.NoError(t, err)
	assert.True(t, sub.IsSubscribed)
	assert.Nil(t, sub.UnsubscribedAt)
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	svc, _, _ := newNewsletterFixture(t, "")

	_, err := svc.Subscribe(testCtx(), SubscribeRequest{Email: ""})
	assert.ErrorIs(t, err, ErrNewsletterEmailRequired)

	invalid := []string{"deniz", "deniz@", "@example.com", "deniz deniz@example.com", "deniz@@example.com"}
	for _, email := range invalid {
		_, err = svc.Subscribe(testCtx(), SubscribeRequest{Email: email})
		assert.ErrorIs(t, err, ErrNewsletterEmailInvalid, "email: %q", email)
	}
}

func TestSendNewsletter_BroadcastPath(t *testing.T) {
	svc, mailer, _ := newNewsletterFixture(t, "aud_1")

	result, err := svc.SendNewsletter(testCtx(), SendRequest{Subject: "Mart Bülteni", HTML: "<p>Merhaba</p>"})
	require.NoError(t, err)
	assert.Equal(t, "bc_test_123", result.BroadcastID)
	assert.Zero(t, result.SentCount)

	require.Len(t, mailer.broadcasts, 1)
	assert.Equal(t, "aud_1", mailer.broadcasts[0].AudienceID)
	assert.Contains(t, mailer.broadcasts[0].HTML, "Merhaba")
}

func TestSendNewsletter_BroadcastFailure(t *testing.T) {
	svc, mailer, _ := newNewsletterFixture(t, "aud_1")
	mailer.broadcastErr = errors.New("sağlayıcı hatası")

	_, err := svc.SendNewsletter(testCtx(), SendRequest{Subject: "Mart", Text: "Merhaba"})
	assert.ErrorIs(t, err, ErrNewsletterSendFailed)
}

func TestSendNewsletter_BatchPathOnlyActiveSubscribers(t *testing.T) {
	svc, mailer, _ := newNewsletterFixture(t, "")

	_, err := svc.Subscribe(testCtx(), SubscribeRequest{Email: "a@example.com", FirstName: "Ayşe"})
	require.NoError(t, err)
	_, err = svc.Subscribe(testCtx(), SubscribeRequest{Email: "b@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(testCtx(), "b@example.com"))

	result, err := svc.SendNewsletter(testCtx(), SendRequest{Subject: "Mart", Text: "Merhaba"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SentCount, "çıkan abone gönderime dahil edilmez")

	require.Len(t, mailer.batches, 1)
	require.Len(t, mailer.batches[0], 1)
	assert.Equal(t, "a@example.com", mailer.batches[0][0].To)
}

func TestSendNewsletter_Validation(t *testing.T) {
	svc, _, _ := newNewsletterFixture(t, "aud_1")

	_, err := svc.SendNewsletter(testCtx(), SendRequest{HTML: "<p>x</p>"})
	assert.ErrorIs(t, err, ErrNewsletterSubjectRequired)

	_, err = svc.SendNewsletter(testCtx(), SendRequest{Subject: "Konu"})
	assert.ErrorIs(t, err, ErrNewsletterBodyRequired)
}

func TestCountSubscribed(t *testing.T) {
	svc, _, _ := newNewsletterFixture(t, "")

	_, err := svc.Subscribe(testCtx(), SubscribeRequest{Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.Subscribe(testCtx(), SubscribeRequest{Email: "b@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(testCtx(), "b@example.com"))

	count, err := svc.CountSubscribed(testCtx())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
