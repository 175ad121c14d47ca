package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/repositories"

	"go.uber.org/zap"
)

// NewsletterServiceError bülten işlemlerine özgü servis hataları.
type NewsletterServiceError string

func (e NewsletterServiceError) Error() string { return string(e) }

const (
	ErrNewsletterEmailRequired     NewsletterServiceError = "e-posta adresi zorunludur"
	ErrNewsletterEmailInvalid      NewsletterServiceError = "geçersiz e-posta adresi"
	ErrNewsletterAlreadySubscribed NewsletterServiceError = "bu e-posta adresi zaten abone"
	ErrNewsletterSubjectRequired   NewsletterServiceError = "konu alanı zorunludur"
	ErrNewsletterBodyRequired      NewsletterServiceError = "html veya text içeriklerinden en az biri zorunludur"
	ErrNewsletterSendFailed        NewsletterServiceError = "bülten gönderimi başarısız oldu"
)

// Tek batch'te gönderilecek alıcı sayısı; sağlayıcı limitlerine çarpmadan
// sıralı ilerlemek için küçük tutulur.
const newsletterBatchSize = 50

// firstNamePlaceholder gönderim sırasında alıcı adına çevrilen yer tutucu.
const firstNamePlaceholder = "{{{FIRST_NAME|there}}}"

// complianceFooter her bültenin sonuna eklenen sabit uyum metni.
const complianceFooter = "\n\n—\nBu e-postayı psikolog.link bültenine abone olduğunuz için alıyorsunuz. " +
	"Abonelikten ayrılmak için bize yanıt verebilirsiniz."

// SubscribeRequest abonelik formundan gelen isteği taşır.
type SubscribeRequest struct {
	Email      string `json:"email" form:"email"`
	FirstName  string `json:"firstName" form:"firstName"`
	LastName   string `json:"lastName" form:"lastName"`
	Source     string `json:"source" form:"source"`
	UpdateOnly bool   `json:"updateOnly" form:"updateOnly"`
}

// SendRequest yöneticinin bülten gönderim isteğini taşır.
type SendRequest struct {
	Subject     string `json:"subject"`
	HTML        string `json:"html"`
	Text        string `json:"text"`
	ScheduledAt string `json:"scheduledAt"`
}

// SendResult gönderim sonucunu taşır. Audience yolu kullanıldıysa BroadcastID
// dolu, SentCount 0'dır; batch yolunda SentCount başarıyla gönderilen alıcı
// sayısıdır.
type SendResult struct {
	BroadcastID string `json:"broadcast_id,omitempty"`
	SentCount   int    `json:"sent_count"`
}

// INewsletterService bülten işlemleri için arayüz.
type INewsletterService interface {
	Subscribe(ctx context.Context, req SubscribeRequest) (string, error)
	SendNewsletter(ctx context.Context, req SendRequest) (*SendResult, error)
	GetSubscribersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	Unsubscribe(ctx context.Context, email string) error
	CountSubscribed(ctx context.Context) (int64, error)
}

// NewsletterService INewsletterService arayüzünü uygular.
type NewsletterService struct {
	repo   repositories.ISubscriberRepository
	mailer IMailer
	cfg    *configs.AppConfig
}

// NewNewsletterService yeni bir NewsletterService örneği oluşturur.
func NewNewsletterService() INewsletterService {
	return &NewsletterService{
		repo:   repositories.NewSubscriberRepository(),
		mailer: NewResendMailer(),
		cfg:    configs.GetConfig(),
	}
}

// NewNewsletterServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewNewsletterServiceWith(repo repositories.ISubscriberRepository, mailer IMailer, cfg *configs.AppConfig) INewsletterService {
	return &NewsletterService{repo: repo, mailer: mailer, cfg: cfg}
}

// Subscribe abonelik isteğini işler.
//
//   - Hiç kayıt yoksa yeni abone oluşturulur.
//   - Aktif abone tekrar kaydolmaya çalışırsa "zaten abone" hatası döner.
//   - Daha önce çıkmış abone yeniden kaydolursa IsSubscribed tekrar true olur
//     ve UnsubscribedAt temizlenir.
//   - UpdateOnly yalnızca ad bilgilerini günceller, abonelik durumuna dokunmaz.
//
// Başarılı her yolda sağlayıcı tarafındaki contact kaydı best-effort senkronize
// edilir; sağlayıcı hatası loglanır ama aboneliği geri almaz.
func (s *NewsletterService) Subscribe(ctx context.Context, req SubscribeRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return "", ErrNewsletterEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrNewsletterEmailInvalid
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", err
	}

	var subscriber *models.NewsletterSubscriber
	var message string

	switch {
	case existing == nil:
		if req.UpdateOnly {
			return "", ErrNewsletterEmailInvalid
		}
		subscriber = &models.NewsletterSubscriber{
			Email:        email,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			IsSubscribed: true,
			Source:       req.Source,
		}
		if err := s.repo.Create(ctx, subscriber); err != nil {
			configslog.Log.Error("Abone oluşturulamadı", zap.String("email", email), zap.Error(err))
			return "", err
		}
		message = "Bültene başarıyla abone oldunuz."

	case req.UpdateOnly:
		subscriber = existing
		if req.FirstName != "" {
			subscriber.FirstName = strings.TrimSpace(req.FirstName)
		}
		if req.LastName != "" {
			subscriber.LastName = strings.TrimSpace(req.LastName)
		}
		if err := s.repo.Update(ctx, subscriber); err != nil {
			return "", err
		}
		message = "Bilgileriniz güncellendi."

	case existing.IsSubscribed:
		return "", ErrNewsletterAlreadySubscribed

	default:
		// Daha önce çıkmış abone yeniden kaydoluyor.
		subscriber = existing
		subscriber.IsSubscribed = true
		subscriber.UnsubscribedAt = nil
		if req.FirstName != "" {
			subscriber.FirstName = strings.TrimSpace(req.FirstName)
		}
		if req.LastName != "" {
			subscriber.LastName = strings.TrimSpace(req.LastName)
		}
		if req.Source != "" {
			subscriber.Source = req.Source
		}
		if err := s.repo.Update(ctx, subscriber); err != nil {
			return "", err
		}
		message = "Aboneliğiniz yeniden etkinleştirildi."
	}

	s.syncContact(ctx, subscriber)
	return message, nil
}

// syncContact sağlayıcı tarafındaki contact kaydını best-effort günceller.
func (s *NewsletterService) syncContact(ctx context.Context, subscriber *models.NewsletterSubscriber) {
	if s.cfg.ResendAudienceID == "" || s.mailer == nil {
		return
	}
	contactID, err := s.mailer.UpsertContact(ctx, ContactParams{
		AudienceID:   s.cfg.ResendAudienceID,
		Email:        subscriber.Email,
		FirstName:    subscriber.FirstName,
		LastName:     subscriber.LastName,
		Unsubscribed: !subscriber.IsSubscribed,
	})
	if err != nil {
		configslog.Log.Warn("Resend contact senkronizasyonu başarısız",
			zap.String("email", subscriber.Email), zap.Error(err))
		return
	}
	if contactID != "" && contactID != subscriber.ResendContactID {
		subscriber.ResendContactID = contactID
		if err := s.repo.Update(ctx, subscriber); err != nil {
			configslog.Log.Warn("Contact ID kaydedilemedi", zap.String("email", subscriber.Email), zap.Error(err))
		}
	}
}

// SendNewsletter bülteni gönderir. Audience yapılandırılmışsa tek broadcast
// çağrısı yapılır; aksi halde aktif abonelere 50'lik batch'ler halinde sıralı
// gönderim yapılır. Batch yolunda bir batch'in hatası diğerlerini durdurmaz;
// başarısız batch'teki alıcılar SentCount'a dahil edilmez.
func (s *NewsletterService) SendNewsletter(ctx context.Context, req SendRequest) (*SendResult, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return nil, ErrNewsletterSubjectRequired
	}
	if strings.TrimSpace(req.HTML) == "" && strings.TrimSpace(req.Text) == "" {
		return nil, ErrNewsletterBodyRequired
	}

	html := req.HTML
	text := req.Text
	if html != "" {
		html += strings.ReplaceAll(complianceFooter, "\n", "<br>")
	}
	if text != "" {
		text += complianceFooter
	}

	// Birincil yol: sağlayıcı tarafında yönetilen audience'a tek broadcast.
	if s.cfg.ResendAudienceID != "" {
		broadcastID, err := s.mailer.SendBroadcast(ctx, BroadcastParams{
			AudienceID:  s.cfg.ResendAudienceID,
			From:        s.cfg.ResendFromEmail,
			Subject:     req.Subject,
			HTML:        html,
			Text:        text,
			ScheduledAt: req.ScheduledAt,
		})
		if err != nil {
			configslog.Log.Error("Broadcast gönderimi başarısız", zap.Error(err))
			return nil, ErrNewsletterSendFailed
		}
		configslog.SLog.Infof("Bülten broadcast olarak gönderildi: %s", broadcastID)
		return &SendResult{BroadcastID: broadcastID}, nil
	}

	// Geri dönüş yolu: abonelere batch'ler halinde bireysel gönderim.
	subscribers, err := s.repo.FindAllSubscribed(ctx)
	if err != nil {
		return nil, err
	}

	sentCount := 0
	for start := 0; start < len(subscribers); start += newsletterBatchSize {
		end := start + newsletterBatchSize
		if end > len(subscribers) {
			end = len(subscribers)
		}
		batch := subscribers[start:end]

		messages := make([]BatchMessage, 0, len(batch))
		for _, sub := range batch {
			firstName := sub.FirstName
			if firstName == "" {
				firstName = "there"
			}
			messages = append(messages, BatchMessage{
				From:    s.cfg.ResendFromEmail,
				To:      sub.Email,
				Subject: req.Subject,
				HTML:    strings.ReplaceAll(html, firstNamePlaceholder, firstName),
				Text:    strings.ReplaceAll(text, firstNamePlaceholder, firstName),
			})
		}

		if err := s.mailer.SendBatch(ctx, messages); err != nil {
			// Batch hatası yutularak devam edilir; hangi adreslerin gittiği
			// sağlayıcıya bakılmadan bilinemez, sayılmaz.
			configslog.Log.Error("Bülten batch gönderimi başarısız",
				zap.Int("batch_start", start), zap.Int("batch_size", len(batch)), zap.Error(err))
			continue
		}
		sentCount += len(batch)
	}

	configslog.SLog.Infof("Bülten batch yoluyla gönderildi: %d/%d alıcı", sentCount, len(subscribers))
	return &SendResult{SentCount: sentCount}, nil
}

// GetSubscribersPaginated aboneleri yönetim ekranı için sayfalayarak getirir.
func (s *NewsletterService) GetSubscribersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	subscribers, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: subscribers,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// Unsubscribe aboneyi manuel olarak çıkarır (yönetim ekranından).
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	if err := s.repo.MarkUnsubscribedByEmail(ctx, email); err != nil {
		return err
	}
	if subscriber, err := s.repo.FindByEmail(ctx, email); err == nil {
		s.syncContact(ctx, subscriber)
	}
	return nil
}

// CountSubscribed aktif abone sayısını döndürür.
func (s *NewsletterService) CountSubscribed(ctx context.Context) (int64, error) {
	return s.repo.CountSubscribed(ctx)
}

var _ INewsletterService = (*NewsletterService)(nil)
