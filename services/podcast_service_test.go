package services

import (
	"testing"
	"time"

	"psikolog.link/models"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Ruh Sağlığı Sohbetleri</title>
    <item>
      <title>Kaygıyla Yaşamak</title>
      <guid>ep-001</guid>
      <link>https://podcast.example.com/ep-001</link>
      <pubDate>Mon, 03 Mar 2025 08:00:00 GMT</pubDate>
      <description><![CDATA[<p>Kaygı bozuklukları üzerine <b>kapsamlı</b> bir sohbet.</p>]]></description>
      <enclosure url="https://cdn.example.com/ep-001.mp3" type="audio/mpeg" length="1024"/>
      <itunes:duration>01:02:30</itunes:duration>
      <itunes:image href="https://cdn.example.com/ep-001.jpg"/>
    </item>
    <item>
      <title>Uyku ve Zihin</title>
      <link>https://podcast.example.com/ep-002</link>
      <pubDate>Mon, 10 Mar 2025 08:00:00 GMT</pubDate>
      <description>Uyku hijyeni.</description>
      <itunes:duration>45:10</itunes:duration>
    </item>
  </channel>
</rss>`

func newPodcastFixture(t *testing.T) IPodcastService {
	setupTestDB(t)
	return NewPodcastServiceWith(repositories.NewPodcastRepository(), "")
}

func TestParseFeedData(t *testing.T) {
	svc := newPodcastFixture(t)

	episodes := svc.ParseFeedData(sampleFeed)
	require.Len(t, episodes, 2)

	first := episodes[0]
	assert.Equal(t, "ep-001", first.GUID)
	assert.Equal(t, "Kaygıyla Yaşamak", first.Title)
	assert.Equal(t, "https://cdn.example.com/ep-001.mp3", first.AudioURL)
	assert.Equal(t, "https://cdn.example.com/ep-001.mp3", first.EmbedURL)
	assert.Equal(t, 3750, first.DurationSeconds)
	assert.Equal(t, "https://cdn.example.com/ep-001.jpg", first.ImageURL)

	// CDATA içindeki HTML düz metne indirgenir.
	assert.Equal(t, "Kaygı bozuklukları üzerine kapsamlı bir sohbet.", first.Description)

	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, time.March, first.PublishedAt.Month())

	// GUID yoksa link GUID olarak kullanılır; enclosure yoksa embed linke düşer.
	second := episodes[1]
	assert.Equal(t, "https://podcast.example.com/ep-002", second.GUID)
	assert.Empty(t, second.AudioURL)
	assert.Equal(t, "https://podcast.example.com/ep-002", second.EmbedURL)
	assert.Equal(t, 2710, second.DurationSeconds)
}

func TestParseFeedData_MalformedXML(t *testing.T) {
	svc := newPodcastFixture(t)

	assert.Empty(t, svc.ParseFeedData("bu bir rss beslemesi değil"))
	assert.Empty(t, svc.ParseFeedData("<rss><channel><item>"))
	assert.Empty(t, svc.ParseFeedData(""))
}

func TestParseITunesDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"01:02:30", 3750},
		{"45:10", 2710},
		{"90", 90},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"1:-5", 0},
		{" 10:00 ", 600},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseITunesDuration(tc.raw), "girdi: %q", tc.raw)
	}
}

func TestSync_MissingFeedURL(t *testing.T) {
	svc := newPodcastFixture(t)

	_, err := svc.Sync(testCtx())
	assert.ErrorIs(t, err, ErrPodcastFeedURLMissing)
}

func TestGetEpisodesAndCount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPodcastServiceWith(repositories.NewPodcastRepository(), "")

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.PodcastEpisode{GUID: "a", Title: "Eski", PublishedAt: &older}).Error)
	require.NoError(t, db.Create(&models.PodcastEpisode{GUID: "b", Title: "Yeni", PublishedAt: &newer}).Error)

	episodes, err := svc.GetEpisodes(testCtx(), 0)
	require.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.Equal(t, "Yeni", episodes[0].Title, "yeniden eskiye sıralanır")

	limited, err := svc.GetEpisodes(testCtx(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	count, err := svc.EpisodeCount(testCtx())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
