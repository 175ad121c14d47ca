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

// CommentServiceError yorum işlemlerine özgü servis hataları.
type CommentServiceError string

func (e CommentServiceError) Error() string { return string(e) }

const (
	ErrCommentNotFound       CommentServiceError = "yorum bulunamadı"
	ErrCommentPostNotFound   CommentServiceError = "yorum yapılacak yazı bulunamadı"
	ErrCommentNameRequired   CommentServiceError = "isim alanı zorunludur"
	ErrCommentEmailInvalid   CommentServiceError = "geçerli bir e-posta adresi giriniz"
	ErrCommentContentEmpty   CommentServiceError = "yorum içeriği boş olamaz"
	ErrCommentContentTooLong CommentServiceError = "yorum içeriği çok uzun"
	ErrCommentInvalidStatus  CommentServiceError = "geçersiz moderasyon durumu"
)

const maxCommentLength = 5000

// CommentInput public yorum formunun girdisi.
type CommentInput struct {
	PostSlug   string `json:"postSlug" form:"post_slug"`
	AuthorName string `json:"name" form:"name"`
	Email      string `json:"email" form:"email"`
	Content    string `json:"content" form:"content"`
}

// ICommentService blog yorumları için servis arayüzü.
type ICommentService interface {
	SubmitComment(ctx context.Context, input CommentInput) (*models.BlogComment, error)
	GetApprovedByPost(ctx context.Context, postID uint) ([]models.BlogComment, error)
	GetCommentsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	Moderate(ctx context.Context, id uint, status models.CommentStatus) error
	MarkRead(ctx context.Context, id uint) error
	DeleteComment(ctx context.Context, id uint) error
}

// CommentService ICommentService arayüzünü uygular.
type CommentService struct {
	repo     repositories.ICommentRepository
	blogRepo repositories.IBlogRepository
}

// NewCommentService yeni bir CommentService örneği oluşturur.
func NewCommentService() ICommentService {
	return &CommentService{
		repo:     repositories.NewCommentRepository(),
		blogRepo: repositories.NewBlogRepository(),
	}
}

// NewCommentServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewCommentServiceWith(repo repositories.ICommentRepository, blogRepo repositories.IBlogRepository) ICommentService {
	return &CommentService{repo: repo, blogRepo: blogRepo}
}

// SubmitComment public formdan gelen yorumu pending durumunda kaydeder.
// Yalnızca yayınlanmış yazılara yorum yapılabilir.
func (s *CommentService) SubmitComment(ctx context.Context, input CommentInput) (*models.BlogComment, error) {
	name := strings.TrimSpace(input.AuthorName)
	if name == "" {
		return nil, ErrCommentNameRequired
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrCommentEmailInvalid
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrCommentContentEmpty
	}
	if len(content) > maxCommentLength {
		return nil, ErrCommentContentTooLong
	}

	post, err := s.blogRepo.FindPostBySlug(ctx, input.PostSlug, true)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrCommentPostNotFound
		}
		return nil, err
	}

	comment := &models.BlogComment{
		PostID:      post.ID,
		AuthorName:  name,
		AuthorEmail: email,
		Content:     content,
		Status:      models.CommentStatusPending,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		configslog.Log.Error("Yorum kaydedilemedi", zap.Uint("post_id", post.ID), zap.Error(err))
		return nil, err
	}

	realtime.Publish("comment", map[string]interface{}{
		"id":     comment.ID,
		"post":   post.Title,
		"author": comment.AuthorName,
	})
	return comment, nil
}

// GetApprovedByPost yazının onaylı yorumlarını döndürür.
func (s *CommentService) GetApprovedByPost(ctx context.Context, postID uint) ([]models.BlogComment, error) {
	return s.repo.FindApprovedByPost(ctx, postID)
}

// GetCommentsPaginated yönetim listesi için yorumları sayfalı döndürür.
func (s *CommentService) GetCommentsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	comments, total, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(comments, total, params), nil
}

// Moderate yorumun moderasyon durumunu günceller.
func (s *CommentService) Moderate(ctx context.Context, id uint, status models.CommentStatus) error {
	if status != models.CommentStatusApproved && status != models.CommentStatusRejected {
		return ErrCommentInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if err == repositories.ErrNotFound {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

// MarkRead yorumu bildirim kutusunda okundu işaretler; moderasyon durumuna dokunmaz.
func (s *CommentService) MarkRead(ctx context.Context, id uint) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if err == repositories.ErrNotFound {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

// DeleteComment yorumu siler.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrCommentNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, comment)
}

var _ ICommentService = (*CommentService)(nil)
