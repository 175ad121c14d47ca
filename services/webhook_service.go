package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/repositories"

	"go.uber.org/zap"
)

// WebhookServiceError webhook işlemlerine özgü servis hataları.
type WebhookServiceError string

func (e WebhookServiceError) Error() string { return string(e) }

const (
	// ErrWebhookSignatureInvalid imza doğrulaması başarısız olduğunda döner;
	// handler 401 yanıtlar ve hiçbir yazma yapılmaz.
	ErrWebhookSignatureInvalid WebhookServiceError = "webhook imzası geçersiz"
)

// Aboneyi otomatik olarak listeden çıkaran olay türleri.
const (
	EventEmailBounced        = "email.bounced"
	EventEmailComplained     = "email.complained"
	EventContactUnsubscribed = "contact.unsubscribed"
)

// WebhookEvent sağlayıcıdan gelen olayın çözümlenmiş halini taşır.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		EmailID string   `json:"email_id"`
		Email   string   `json:"email"`
		To      []string `json:"to"`
	} `json:"data"`
	CreatedAt string `json:"created_at"`
}

// IWebhookService inbound e-posta olayları için arayüz.
type IWebhookService interface {
	VerifySignature(body []byte, signature string) bool
	HandleEvent(ctx context.Context, body []byte) error
}

// WebhookService IWebhookService arayüzünü uygular.
type WebhookService struct {
	eventRepo      repositories.IEmailEventRepository
	subscriberRepo repositories.ISubscriberRepository
	secret         string
	allowUnsigned  bool
}

// NewWebhookService yeni bir WebhookService örneği oluşturur.
func NewWebhookService() IWebhookService {
	cfg := configs.GetConfig()
	return &WebhookService{
		eventRepo:      repositories.NewEmailEventRepository(),
		subscriberRepo: repositories.NewSubscriberRepository(),
		secret:         cfg.ResendWebhookSecret,
		allowUnsigned:  cfg.ResendWebhookAllowUnsigned,
	}
}

// NewWebhookServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewWebhookServiceWith(
	eventRepo repositories.IEmailEventRepository,
	subscriberRepo repositories.ISubscriberRepository,
	secret string,
	allowUnsigned bool,
) IWebhookService {
	return &WebhookService{
		eventRepo:      eventRepo,
		subscriberRepo: subscriberRepo,
		secret:         secret,
		allowUnsigned:  allowUnsigned,
	}
}

// ComputeSignature ham gövde üzerinde HMAC-SHA256 hex imzası üretir.
func ComputeSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature gelen imzayı sabit zamanlı karşılaştırma ile doğrular.
// Secret yapılandırılmamışsa doğrulama yalnızca allowUnsigned açıkça true
// olduğunda atlanır; aksi halde tüm istekler reddedilir.
func (s *WebhookService) VerifySignature(body []byte, signature string) bool {
	if s.secret == "" {
		return s.allowUnsigned
	}
	expected := ComputeSignature(body, s.secret)
	return hmac.Equal([]byte(signature), []byte(expected))
}

// HandleEvent doğrulanmış webhook gövdesini işler. Olay önce append-only
// kayıt tablosuna yazılır; kayıt hatası loglanır ama akışı durdurmaz, çünkü
// sağlayıcının 200 alması retry fırtınasını önler. Bounce/complaint/
// unsubscribe olaylarında eşleşen abone listeden çıkarılır.
func (s *WebhookService) HandleEvent(ctx context.Context, body []byte) error {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		configslog.Log.Warn("Webhook gövdesi çözümlenemedi", zap.Error(err))
		// Kayıt defterine ham haliyle yine de yazılır.
		event.Type = "unknown"
	}

	recipient := event.Data.Email
	if recipient == "" && len(event.Data.To) > 0 {
		recipient = event.Data.To[0]
	}

	record := &models.EmailEvent{
		EventType:  event.Type,
		EmailID:    event.Data.EmailID,
		Recipient:  recipient,
		Payload:    string(body),
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.eventRepo.Append(ctx, record); err != nil {
		configslog.Log.Error("E-posta olayı kaydedilemedi",
			zap.String("type", event.Type), zap.Error(err))
	}

	switch event.Type {
	case EventEmailBounced, EventEmailComplained, EventContactUnsubscribed:
		if recipient == "" {
			configslog.Log.Warn("Abonelik kapatma olayında alıcı adresi yok", zap.String("type", event.Type))
			return nil
		}
		if err := s.subscriberRepo.MarkUnsubscribedByEmail(ctx, recipient); err != nil {
			configslog.Log.Error("Abone listeden çıkarılamadı",
				zap.String("email", recipient), zap.String("type", event.Type), zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Abone listeden çıkarıldı (%s): %s", event.Type, recipient)
	}

	return nil
}

var _ IWebhookService = (*WebhookService)(nil)
