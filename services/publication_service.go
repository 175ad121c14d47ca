package services

import (
	"context"
	"strings"
	"time"

	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/repositories"

	"go.uber.org/zap"
)

// PublicationServiceError yayın işlemlerine özgü servis hataları.
type PublicationServiceError string

func (e PublicationServiceError) Error() string { return string(e) }

const (
	ErrPublicationNotFound      PublicationServiceError = "yayın bulunamadı"
	ErrPublicationTitleRequired PublicationServiceError = "yayın başlığı zorunludur"
	ErrPublicationInvalidType   PublicationServiceError = "geçersiz yayın türü"
	ErrPublicationInvalidDate   PublicationServiceError = "geçersiz yayın tarihi"
)

// PublicationInput yayın oluşturma/güncelleme formunun girdisi.
type PublicationInput struct {
	Title       string `form:"title"`
	Type        string `form:"type"`
	Description string `form:"description"`
	Date        string `form:"date"` // YYYY-MM-DD, boş olabilir
	URL         string `form:"url"`
	CoverImage  string `form:"cover_image"`
	SortOrder   int    `form:"sort_order"`
}

// IPublicationService yayınlar (kitap/makale/podcast) için servis arayüzü.
type IPublicationService interface {
	CreatePublication(ctx context.Context, input PublicationInput) (*models.Publication, error)
	UpdatePublication(ctx context.Context, id uint, input PublicationInput) error
	DeletePublication(ctx context.Context, id uint) error
	GetPublicationByID(ctx context.Context, id uint) (*models.Publication, error)
	GetPublications(ctx context.Context) ([]models.Publication, error)
	GetPublicationsByType(ctx context.Context, pubType models.PublicationType) ([]models.Publication, error)
	GetPublicationsGrouped(ctx context.Context) (map[models.PublicationType][]models.Publication, error)
}

// PublicationService IPublicationService arayüzünü uygular.
type PublicationService struct {
	repo repositories.IPublicationRepository
}

// NewPublicationService yeni bir PublicationService örneği oluşturur.
func NewPublicationService() IPublicationService {
	return &PublicationService{repo: repositories.NewPublicationRepository()}
}

// NewPublicationServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewPublicationServiceWith(repo repositories.IPublicationRepository) IPublicationService {
	return &PublicationService{repo: repo}
}

// CreatePublication yeni bir yayın kaydı oluşturur.
func (s *PublicationService) CreatePublication(ctx context.Context, input PublicationInput) (*models.Publication, error) {
	publication, err := buildPublication(&models.Publication{}, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, publication); err != nil {
		configslog.Log.Error("Yayın oluşturulamadı", zap.String("title", publication.Title), zap.Error(err))
		return nil, err
	}
	return publication, nil
}

// UpdatePublication mevcut yayını günceller.
func (s *PublicationService) UpdatePublication(ctx context.Context, id uint, input PublicationInput) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrPublicationNotFound
		}
		return err
	}
	publication, err := buildPublication(existing, input)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, publication)
}

// DeletePublication yayını siler.
func (s *PublicationService) DeletePublication(ctx context.Context, id uint) error {
	publication, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrPublicationNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, publication)
}

// GetPublicationByID yayını ID ile döndürür.
func (s *PublicationService) GetPublicationByID(ctx context.Context, id uint) (*models.Publication, error) {
	publication, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}
	return publication, nil
}

// GetPublications tüm yayınları sıralı döndürür.
func (s *PublicationService) GetPublications(ctx context.Context) ([]models.Publication, error) {
	return s.repo.FindAll(ctx)
}

// GetPublicationsByType belirli türdeki yayınları döndürür.
func (s *PublicationService) GetPublicationsByType(ctx context.Context, pubType models.PublicationType) ([]models.Publication, error) {
	return s.repo.FindByType(ctx, pubType)
}

// GetPublicationsGrouped yayınları tür bazında gruplar (public sayfa için).
func (s *PublicationService) GetPublicationsGrouped(ctx context.Context) (map[models.PublicationType][]models.Publication, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[models.PublicationType][]models.Publication)
	for _, p := range all {
		grouped[p.Type] = append(grouped[p.Type], p)
	}
	return grouped, nil
}

func buildPublication(publication *models.Publication, input PublicationInput) (*models.Publication, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPublicationTitleRequired
	}

	pubType := models.PublicationType(input.Type)
	switch pubType {
	case models.PublicationTypeBook, models.PublicationTypeArticle, models.PublicationTypePodcast:
	default:
		return nil, ErrPublicationInvalidType
	}

	publication.Title = title
	publication.Type = pubType
	publication.Description = strings.TrimSpace(input.Description)
	publication.URL = strings.TrimSpace(input.URL)
	publication.CoverImage = strings.TrimSpace(input.CoverImage)
	publication.SortOrder = input.SortOrder

	if dateStr := strings.TrimSpace(input.Date); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, ErrPublicationInvalidDate
		}
		publication.Date = &parsed
	} else {
		publication.Date = nil
	}

	return publication, nil
}

var _ IPublicationService = (*PublicationService)(nil)
