package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"psikolog.link/configs"
	"psikolog.link/configs/configslog"
	"psikolog.link/models"
	"psikolog.link/repositories"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

// PodcastServiceError podcast işlemlerine özgü servis hataları.
type PodcastServiceError string

func (e PodcastServiceError) Error() string { return string(e) }

const (
	ErrPodcastFeedURLMissing PodcastServiceError = "podcast besleme adresi yapılandırılmamış"
	ErrPodcastFeedFetch      PodcastServiceError = "podcast beslemesi alınamadı"
)

// SyncResult bir besleme senkronizasyonunun özetini taşır.
type SyncResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// IPodcastService podcast bölümleri için servis arayüzü.
type IPodcastService interface {
	Sync(ctx context.Context) (*SyncResult, error)
	ParseFeedData(data string) []*models.PodcastEpisode
	GetEpisodes(ctx context.Context, limit int) ([]models.PodcastEpisode, error)
	EpisodeCount(ctx context.Context) (int64, error)
}

// PodcastService IPodcastService arayüzünü uygular.
type PodcastService struct {
	repo      repositories.IPodcastRepository
	parser    *gofeed.Parser
	sanitizer *bluemonday.Policy
	feedURL   string
}

// NewPodcastService yeni bir PodcastService örneği oluşturur.
func NewPodcastService() IPodcastService {
	return &PodcastService{
		repo:      repositories.NewPodcastRepository(),
		parser:    gofeed.NewParser(),
		sanitizer: bluemonday.StrictPolicy(),
		feedURL:   configs.GetConfig().PodcastFeedURL,
	}
}

// NewPodcastServiceWith bağımlılıkları dışarıdan alan constructor (testler için).
func NewPodcastServiceWith(repo repositories.IPodcastRepository, feedURL string) IPodcastService {
	return &PodcastService{
		repo:      repo,
		parser:    gofeed.NewParser(),
		sanitizer: bluemonday.StrictPolicy(),
		feedURL:   feedURL,
	}
}

// Sync beslemeyi indirir ve bölümleri GUID üzerinden upsert eder. Tek bir
// bölümün hatası senkronizasyonu durdurmaz; hata sayacı artırılır ve devam
// edilir. Beslemenin tamamı alınamıyorsa ErrPodcastFeedFetch döner.
func (s *PodcastService) Sync(ctx context.Context) (*SyncResult, error) {
	if s.feedURL == "" {
		return nil, ErrPodcastFeedURLMissing
	}

	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		configslog.Log.Error("Podcast beslemesi alınamadı",
			zap.String("url", s.feedURL), zap.Error(err))
		return nil, ErrPodcastFeedFetch
	}

	result := &SyncResult{}
	for _, item := range feed.Items {
		episode := s.itemToEpisode(item)
		if episode.GUID == "" {
			result.Errors++
			continue
		}

		existing, err := s.repo.FindByGUID(ctx, episode.GUID)
		switch {
		case err == nil:
			episode.BaseModel = existing.BaseModel
			if err := s.repo.Update(ctx, episode); err != nil {
				configslog.Log.Error("Podcast bölümü güncellenemedi",
					zap.String("guid", episode.GUID), zap.Error(err))
				result.Errors++
				continue
			}
			result.Updated++
		case errors.Is(err, repositories.ErrNotFound):
			if err := s.repo.Create(ctx, episode); err != nil {
				configslog.Log.Error("Podcast bölümü oluşturulamadı",
					zap.String("guid", episode.GUID), zap.Error(err))
				result.Errors++
				continue
			}
			result.Added++
		default:
			result.Errors++
		}
	}

	configslog.SLog.Infof("Podcast senkronizasyonu tamamlandı: %d yeni, %d güncellendi, %d hata",
		result.Added, result.Updated, result.Errors)
	return result, nil
}

// ParseFeedData ham besleme içeriğini bölüm listesine çevirir. Bozuk XML
// boş liste döndürür; panik olmaz.
func (s *PodcastService) ParseFeedData(data string) []*models.PodcastEpisode {
	feed, err := s.parser.ParseString(data)
	if err != nil {
		configslog.Log.Warn("Besleme içeriği çözümlenemedi", zap.Error(err))
		return []*models.PodcastEpisode{}
	}
	episodes := make([]*models.PodcastEpisode, 0, len(feed.Items))
	for _, item := range feed.Items {
		episodes = append(episodes, s.itemToEpisode(item))
	}
	return episodes
}

// GetEpisodes bölümleri yayın tarihine göre yeniden eskiye döndürür.
func (s *PodcastService) GetEpisodes(ctx context.Context, limit int) ([]models.PodcastEpisode, error) {
	return s.repo.FindAllOrdered(ctx, limit)
}

// EpisodeCount toplam bölüm sayısını döndürür.
func (s *PodcastService) EpisodeCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// itemToEpisode bir besleme öğesini model kaydına dönüştürür. Açıklamadaki
// HTML/CDATA düz metne indirgenir; süre iTunes alanından saniyeye çevrilir.
func (s *PodcastService) itemToEpisode(item *gofeed.Item) *models.PodcastEpisode {
	episode := &models.PodcastEpisode{
		GUID:        strings.TrimSpace(item.GUID),
		Title:       strings.TrimSpace(item.Title),
		Description: s.stripHTML(item.Description),
	}
	if episode.GUID == "" {
		episode.GUID = strings.TrimSpace(item.Link)
	}

	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		episode.PublishedAt = &t
	}

	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "audio/") || enc.URL != "" {
			episode.AudioURL = enc.URL
			break
		}
	}

	// Gömülü oynatıcı adresi: enclosure > item linki > boş.
	switch {
	case episode.AudioURL != "":
		episode.EmbedURL = episode.AudioURL
	case item.Link != "":
		episode.EmbedURL = item.Link
	}

	if item.Image != nil {
		episode.ImageURL = item.Image.URL
	}

	if item.ITunesExt != nil {
		episode.DurationSeconds = parseITunesDuration(item.ITunesExt.Duration)
		if episode.ImageURL == "" {
			episode.ImageURL = item.ITunesExt.Image
		}
	}

	return episode
}

func (s *PodcastService) stripHTML(html string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(html))
}

// parseITunesDuration "HH:MM:SS", "MM:SS" veya düz saniye biçimlerini çözer.
// Çözümlenemeyen değerler 0 döndürür.
func parseITunesDuration(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	parts := strings.Split(raw, ":")
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

var _ IPodcastService = (*PodcastService)(nil)
