package repositories

import (
	"context"
	"errors"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IEmailEventRepository webhook ile gelen e-posta olay kayıtları için arayüz.
// Tablo append-only'dir; güncelleme veya silme yoktur.
type IEmailEventRepository interface {
	Append(ctx context.Context, event *models.EmailEvent) error
	FindRecent(ctx context.Context, limit int) ([]models.EmailEvent, error)
}

// EmailEventRepository IEmailEventRepository arayüzünü uygular.
type EmailEventRepository struct {
	db *gorm.DB
}

// NewEmailEventRepository yeni bir EmailEventRepository örneği oluşturur.
func NewEmailEventRepository() IEmailEventRepository {
	return &EmailEventRepository{db: configs.GetDB()}
}

func (r *EmailEventRepository) getDB(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, r.db)
}

// Append olay kaydını ekler.
func (r *EmailEventRepository) Append(ctx context.Context, event *models.EmailEvent) error {
	if event == nil || event.EventType == "" {
		return errors.New("olay türü olmayan e-posta olayı kaydedilemez")
	}
	return r.getDB(ctx).Create(event).Error
}

// FindRecent son olayları yeniden eskiye döndürür.
func (r *EmailEventRepository) FindRecent(ctx context.Context, limit int) ([]models.EmailEvent, error) {
	var events []models.EmailEvent
	query := r.getDB(ctx).Order("received_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&events).Error
	if err != nil {
		configslog.Log.Error("EmailEventRepository.FindRecent: DB error", zap.Error(err))
		return nil, err
	}
	return events, nil
}

var _ IEmailEventRepository = (*EmailEventRepository)(nil)
