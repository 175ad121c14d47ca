package services

import (
	"context"
	"net/mail"
	"strings"

	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/realtime"
	"psikolog.link/repositories"

	"go.uber.org/zap"
)

// ContactMessageServiceError iletişim mesajlarına özgü servis hataları.
type ContactMessageServiceError string

func (e ContactMessageServiceError) Error() string { return string(e) }

const (
	ErrContactMessageNotFound ContactMessageServiceError = "mesaj bulunamadı"
	ErrContactNameRequired    ContactMessageServiceError = "isim alanı zorunludur"
	ErrContactEmailInvalid    ContactMessageServiceError = "geçerli bir e-posta adresi giriniz"
	ErrContactContentRequired ContactMessageServiceError = "mesaj içeriği boş olamaz"
	ErrContactContentTooLong  ContactMessageServiceError = "mesaj içeriği çok uzun"
)

const maxContactMessageLength = 10000

// ContactMessageInput iletişim formunun girdisi.
type ContactMessageInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Content string `json:"content" form:"content"`
}

// IContactMessageService iletişim mesajları için servis arayüzü.
type IContactMessageService interface {
	SubmitMessage(ctx context.Context, input ContactMessageInput) (*models.ContactMessage, error)
	GetMessageByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	GetMessagesPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	MarkRead(ctx context.Context, id uint) error
	DeleteMessage(ctx context.Context, id uint) error
}

// ContactMessageService IContactMessageService arayüzünü uygular.
type ContactMessageService struct {
	repo repositories.IContactMessageRepository
}

// NewContactMessageService yeni bir ContactMessageService örneği oluşturur.
func NewContactMessageService() IContactMessageService {
	return &ContactMessageService{repo: repositories.NewContactMessageRepository()}
}

// NewContactMessageServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewContactMessageServiceWith(repo repositories.IContactMessageRepository) IContactMessageService {
	return &ContactMessageService{repo: repo}
}

// SubmitMessage public iletişim formundan gelen mesajı kaydeder.
func (s *ContactMessageService) SubmitMessage(ctx context.Context, input ContactMessageInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrContactNameRequired
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrContactEmailInvalid
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrContactContentRequired
	}
	if len(content) > maxContactMessageLength {
		return nil, ErrContactContentTooLong
	}

	message := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(input.Subject),
		Content: content,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		configslog.Log.Error("İletişim mesajı kaydedilemedi", zap.Error(err))
		return nil, err
	}

	realtime.Publish("contact_message", map[string]interface{}{
		"id":   message.ID,
		"name": message.Name,
	})
	return message, nil
}

// GetMessageByID mesajı ID ile döndürür.
func (s *ContactMessageService) GetMessageByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrContactMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

// GetMessagesPaginated mesajları yönetim listesi için sayfalı döndürür.
func (s *ContactMessageService) GetMessagesPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	messages, total, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(messages, total, params), nil
}

// MarkRead mesajı okundu işaretler.
func (s *ContactMessageService) MarkRead(ctx context.Context, id uint) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if err == repositories.ErrNotFound {
			return ErrContactMessageNotFound
		}
		return err
	}
	return nil
}

// DeleteMessage mesajı siler.
func (s *ContactMessageService) DeleteMessage(ctx context.Context, id uint) error {
	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrContactMessageNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, message)
}

var _ IContactMessageService = (*ContactMessageService)(nil)
