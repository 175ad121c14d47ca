package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound kayıt bulunamadığında repository katmanından dönen sentinel hata.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository tüm entity repository'lerinin paylaştığı temel CRUD arayüzü.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	Count(ctx context.Context) (int64, error)
	SetAllowedSortColumns(columns []string)
	OrderClause(sortBy, orderBy string) string
}

// BaseRepository generik temel repository implementasyonu. Entity repository'leri
// tekrar eden CRUD işlemlerinde bunu kullanır, özel sorgularda doğrudan db'ye iner.
type BaseRepository[T any] struct {
	db          *gorm.DB
	allowedSort map[string]bool
	defaultSort string
}

// NewBaseRepository yeni bir BaseRepository örneği oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:          db,
		allowedSort: map[string]bool{},
		defaultSort: "created_at",
	}
}

// SetAllowedSortColumns sıralamaya izin verilen sütunları belirler.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSort = make(map[string]bool, len(columns))
	for _, c := range columns {
		r.allowedSort[c] = true
	}
}

// OrderClause izin verilen sütunlara göre güvenli bir ORDER BY ifadesi üretir.
func (r *BaseRepository[T]) OrderClause(sortBy, orderBy string) string {
	if !r.allowedSort[sortBy] {
		sortBy = r.defaultSort
	}
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = "desc"
	}
	return sortBy + " " + orderBy
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *BaseRepository[T]) Delete(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Delete(entity).Error
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error
	return count, err
}

// getDBFromContext transaction taşıyan context'lerde tx'i, aksi halde verilen
// db'yi context'e bağlayarak döndürür.
func getDBFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

type txKey string

// txContextKey servis katmanındaki transaction'ı repository'lere taşır.
const txContextKey txKey = "tx"

// ContextWithTx verilen transaction'ı context'e ekler.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}
