package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"psikolog.link/configs/configslog"
	"psikolog.link/repositories"

	"go.uber.org/zap"
)

// NotificationServiceError bildirim işlemlerine özgü servis hataları.
type NotificationServiceError string

func (e NotificationServiceError) Error() string { return string(e) }

const (
	ErrNotificationUnknownType NotificationServiceError = "bilinmeyen bildirim türü"
)

// Bildirim kaynakları. Okundu işaretleme tür + kaynak kaydın ID'si ile yapılır.
const (
	NotificationTypeAppointment    = "appointment"
	NotificationTypeComment        = "comment"
	NotificationTypeCallRequest    = "call_request"
	NotificationTypeContactMessage = "contact_message"
)

// NotificationItem dört kaynaktan birinden gelen tek bir okunmamış bildirimi
// temsil eder. Kaynak kayıtların kendisi ayrı tablolarda durur; bu yapı
// yalnızca birleşik kutu görünümü içindir.
type NotificationItem struct {
	Type      string    `json:"type"`
	SourceID  uint      `json:"sourceId"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationCounts kaynak başına okunmamış sayılarını taşır.
type NotificationCounts struct {
	Appointments    int64 `json:"appointments"`
	Comments        int64 `json:"comments"`
	CallRequests    int64 `json:"callRequests"`
	ContactMessages int64 `json:"contactMessages"`
	Total           int64 `json:"total"`
}

// INotificationService birleşik yönetici bildirim kutusu arayüzü.
type INotificationService interface {
	GetUnread(ctx context.Context, limitPerSource int) ([]NotificationItem, error)
	GetCounts(ctx context.Context) (*NotificationCounts, error)
	MarkRead(ctx context.Context, notificationType string, sourceID uint) error
}

// NotificationService INotificationService arayüzünü uygular.
type NotificationService struct {
	appointmentRepo repositories.IAppointmentRepository
	commentRepo     repositories.ICommentRepository
	callRequestRepo repositories.ICallRequestRepository
	contactRepo     repositories.IContactMessageRepository
}

// NewNotificationService yeni bir NotificationService örneği oluşturur.
func NewNotificationService() INotificationService {
	return &NotificationService{
		appointmentRepo: repositories.NewAppointmentRepository(),
		commentRepo:     repositories.NewCommentRepository(),
		callRequestRepo: repositories.NewCallRequestRepository(),
		contactRepo:     repositories.NewContactMessageRepository(),
	}
}

// NewNotificationServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewNotificationServiceWith(
	appointmentRepo repositories.IAppointmentRepository,
	commentRepo repositories.ICommentRepository,
	callRequestRepo repositories.ICallRequestRepository,
	contactRepo repositories.IContactMessageRepository,
) INotificationService {
	return &NotificationService{
		appointmentRepo: appointmentRepo,
		commentRepo:     commentRepo,
		callRequestRepo: callRequestRepo,
		contactRepo:     contactRepo,
	}
}

// GetUnread dört kaynaktan okunmamışları toplar ve oluşturulma tarihine göre
// yeniden eskiye sıralı tek liste döndürür. Tek bir kaynağın hatası listeyi
// boşaltmaz; hata loglanır ve kalan kaynaklarla devam edilir.
func (s *NotificationService) GetUnread(ctx context.Context, limitPerSource int) ([]NotificationItem, error) {
	var items []NotificationItem

	appointments, err := s.appointmentRepo.FindUnread(ctx, limitPerSource)
	if err != nil {
		configslog.Log.Error("Okunmamış randevular alınamadı", zap.Error(err))
	}
	for _, a := range appointments {
		items = append(items, NotificationItem{
			Type:      NotificationTypeAppointment,
			SourceID:  a.ID,
			Title:     fmt.Sprintf("Yeni randevu talebi: %s", a.Name),
			Detail:    fmt.Sprintf("%s %s", a.Date, a.Time),
			CreatedAt: a.CreatedAt,
		})
	}

	comments, err := s.commentRepo.FindPendingUnread(ctx, limitPerSource)
	if err != nil {
		configslog.Log.Error("Okunmamış yorumlar alınamadı", zap.Error(err))
	}
	for _, c := range comments {
		items = append(items, NotificationItem{
			Type:      NotificationTypeComment,
			SourceID:  c.ID,
			Title:     fmt.Sprintf("Yeni yorum: %s", c.AuthorName),
			Detail:    truncate(c.Content, 120),
			CreatedAt: c.CreatedAt,
		})
	}

	callRequests, err := s.callRequestRepo.FindUncalled(ctx, limitPerSource)
	if err != nil {
		configslog.Log.Error("Aranmamış geri arama talepleri alınamadı", zap.Error(err))
	}
	for _, cr := range callRequests {
		items = append(items, NotificationItem{
			Type:      NotificationTypeCallRequest,
			SourceID:  cr.ID,
			Title:     fmt.Sprintf("Geri arama talebi: %s", cr.Name),
			Detail:    cr.Phone,
			CreatedAt: cr.CreatedAt,
		})
	}

	messages, err := s.contactRepo.FindUnread(ctx, limitPerSource)
	if err != nil {
		configslog.Log.Error("Okunmamış iletişim mesajları alınamadı", zap.Error(err))
	}
	for _, m := range messages {
		items = append(items, NotificationItem{
			Type:      NotificationTypeContactMessage,
			SourceID:  m.ID,
			Title:     fmt.Sprintf("Yeni mesaj: %s", m.Name),
			Detail:    truncate(m.Content, 120),
			CreatedAt: m.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// GetCounts kaynak başına okunmamış sayılarını döndürür.
func (s *NotificationService) GetCounts(ctx context.Context) (*NotificationCounts, error) {
	counts := &NotificationCounts{}

	var err error
	if counts.Appointments, err = s.appointmentRepo.CountUnread(ctx); err != nil {
		configslog.Log.Error("Randevu bildirim sayısı alınamadı", zap.Error(err))
	}
	if counts.Comments, err = s.commentRepo.CountPendingUnread(ctx); err != nil {
		configslog.Log.Error("Yorum bildirim sayısı alınamadı", zap.Error(err))
	}
	if counts.CallRequests, err = s.callRequestRepo.CountUncalled(ctx); err != nil {
		configslog.Log.Error("Geri arama bildirim sayısı alınamadı", zap.Error(err))
	}
	if counts.ContactMessages, err = s.contactRepo.CountUnread(ctx); err != nil {
		configslog.Log.Error("Mesaj bildirim sayısı alınamadı", zap.Error(err))
	}

	counts.Total = counts.Appointments + counts.Comments + counts.CallRequests + counts.ContactMessages
	return counts, nil
}

// MarkRead bildirimin kaynağındaki okundu bilgisini günceller. Yorumlarda
// moderasyon durumu, randevularda randevu durumu değişmez; geri arama
// taleplerinde okundu bilgisinin karşılığı talebin aranmış sayılmasıdır.
func (s *NotificationService) MarkRead(ctx context.Context, notificationType string, sourceID uint) error {
	switch notificationType {
	case NotificationTypeAppointment:
		return s.appointmentRepo.MarkRead(ctx, sourceID)
	case NotificationTypeComment:
		return s.commentRepo.MarkRead(ctx, sourceID)
	case NotificationTypeCallRequest:
		return s.callRequestRepo.MarkCalled(ctx, sourceID)
	case NotificationTypeContactMessage:
		return s.contactRepo.MarkRead(ctx, sourceID)
	default:
		return ErrNotificationUnknownType
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

var _ INotificationService = (*NotificationService)(nil)
