package services

import (
	"context"
	"regexp"
	"strings"

	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/realtime"
	"psikolog.link/repositories"

	"go.uber.org/zap"
)

// CallRequestServiceError geri arama taleplerine özgü servis hataları.
type CallRequestServiceError string

func (e CallRequestServiceError) Error() string { return string(e) }

const (
	ErrCallRequestNotFound     CallRequestServiceError = "geri arama talebi bulunamadı"
	ErrCallRequestNameRequired CallRequestServiceError = "isim alanı zorunludur"
	ErrCallRequestPhoneInvalid CallRequestServiceError = "geçerli bir telefon numarası giriniz"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)

// CallRequestInput "sizi arayalım" formunun girdisi.
type CallRequestInput struct {
	Name          string `json:"name" form:"name"`
	Phone         string `json:"phone" form:"phone"`
	PreferredTime string `json:"preferredTime" form:"preferred_time"`
}

// ICallRequestService geri arama talepleri için servis arayüzü.
type ICallRequestService interface {
	SubmitCallRequest(ctx context.Context, input CallRequestInput) (*models.CallRequest, error)
	GetCallRequestsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	MarkCalled(ctx context.Context, id uint) error
	DeleteCallRequest(ctx context.Context, id uint) error
}

// CallRequestService ICallRequestService arayüzünü uygular.
type CallRequestService struct {
	repo repositories.ICallRequestRepository
}

// NewCallRequestService yeni bir CallRequestService örneği oluşturur.
func NewCallRequestService() ICallRequestService {
	return &CallRequestService{repo: repositories.NewCallRequestRepository()}
}

// NewCallRequestServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewCallRequestServiceWith(repo repositories.ICallRequestRepository) ICallRequestService {
	return &CallRequestService{repo: repo}
}

// SubmitCallRequest public formdan gelen geri arama talebini kaydeder.
func (s *CallRequestService) SubmitCallRequest(ctx context.Context, input CallRequestInput) (*models.CallRequest, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCallRequestNameRequired
	}
	phone := strings.TrimSpace(input.Phone)
	if !phonePattern.MatchString(phone) {
		return nil, ErrCallRequestPhoneInvalid
	}

	request := &models.CallRequest{
		Name:          name,
		Phone:         phone,
		PreferredTime: strings.TrimSpace(input.PreferredTime),
		Status:        models.CallRequestStatusPending,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		configslog.Log.Error("Geri arama talebi kaydedilemedi", zap.Error(err))
		return nil, err
	}

	realtime.Publish("call_request", map[string]interface{}{
		"id":   request.ID,
		"name": request.Name,
	})
	return request, nil
}

// GetCallRequestsPaginated talepleri yönetim listesi için sayfalı döndürür.
func (s *CallRequestService) GetCallRequestsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	requests, total, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(requests, total, params), nil
}

// MarkCalled talebi aranmış olarak kapatır.
func (s *CallRequestService) MarkCalled(ctx context.Context, id uint) error {
	if err := s.repo.MarkCalled(ctx, id); err != nil {
		if err == repositories.ErrNotFound {
			return ErrCallRequestNotFound
		}
		return err
	}
	return nil
}

// DeleteCallRequest talebi siler.
func (s *CallRequestService) DeleteCallRequest(ctx context.Context, id uint) error {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrCallRequestNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, request)
}

var _ ICallRequestService = (*CallRequestService)(nil)
