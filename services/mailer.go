package services

import (
	"context"

	"psikolog.link/configs"

	"github.com/resend/resend-go/v2"
)

// BroadcastParams audience'a gönderilecek tek kampanyanın parametrelerini taşır.
type BroadcastParams struct {
	AudienceID  string
	From        string
	Subject     string
	HTML        string
	Text        string
	ScheduledAt string // RFC3339 veya Resend'in kabul ettiği doğal ifade; boşsa hemen gönderilir
}

// BatchMessage tek bir alıcıya gidecek e-postayı taşır.
type BatchMessage struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// ContactParams sağlayıcı tarafındaki contact kaydının parametrelerini taşır.
type ContactParams struct {
	AudienceID   string
	Email        string
	FirstName    string
	LastName     string
	Unsubscribed bool
}

// IMailer e-posta sağlayıcısına giden çağrıları soyutlar. Production
// implementasyonu Resend SDK'sını sarar; testler sahte mailer kullanır.
type IMailer interface {
	SendBroadcast(ctx context.Context, params BroadcastParams) (string, error)
	SendBatch(ctx context.Context, messages []BatchMessage) error
	UpsertContact(ctx context.Context, params ContactParams) (string, error)
}

// ResendMailer IMailer arayüzünü Resend SDK'sı ile uygular.
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer yapılandırmadaki API anahtarıyla mailer oluşturur.
func NewResendMailer() *ResendMailer {
	return &ResendMailer{client: resend.NewClient(configs.GetConfig().ResendAPIKey)}
}

// SendBroadcast audience'a tek kampanya oluşturur ve gönderir.
func (m *ResendMailer) SendBroadcast(ctx context.Context, params BroadcastParams) (string, error) {
	created, err := m.client.Broadcasts.Create(&resend.CreateBroadcastRequest{
		AudienceId: params.AudienceID,
		From:       params.From,
		Subject:    params.Subject,
		Html:       params.HTML,
		Text:       params.Text,
	})
	if err != nil {
		return "", err
	}

	sendReq := &resend.SendBroadcastRequest{BroadcastId: created.Id}
	if params.ScheduledAt != "" {
		sendReq.ScheduledAt = params.ScheduledAt
	}
	sent, err := m.client.Broadcasts.Send(sendReq)
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}

// SendBatch mesaj grubunu tek API çağrısıyla gönderir.
func (m *ResendMailer) SendBatch(ctx context.Context, messages []BatchMessage) error {
	requests := make([]*resend.SendEmailRequest, 0, len(messages))
	for _, msg := range messages {
		requests = append(requests, &resend.SendEmailRequest{
			From:    msg.From,
			To:      []string{msg.To},
			Subject: msg.Subject,
			Html:    msg.HTML,
			Text:    msg.Text,
		})
	}
	_, err := m.client.Batch.SendWithContext(ctx, requests)
	return err
}

// UpsertContact sağlayıcı tarafında contact oluşturur/günceller ve contact
// ID'sini döndürür.
func (m *ResendMailer) UpsertContact(ctx context.Context, params ContactParams) (string, error) {
	created, err := m.client.Contacts.CreateWithContext(ctx, &resend.CreateContactRequest{
		AudienceId:   params.AudienceID,
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Unsubscribed: params.Unsubscribed,
	})
	if err == nil {
		return created.Id, nil
	}

	// Contact zaten varsa Create çakışma hatası döner; Update ile devam edilir.
	_, updateErr := m.client.Contacts.UpdateWithContext(ctx, &resend.UpdateContactRequest{
		AudienceId:   params.AudienceID,
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Unsubscribed: params.Unsubscribed,
	})
	if updateErr != nil {
		return "", err
	}
	return "", nil
}

var _ IMailer = (*ResendMailer)(nil)
