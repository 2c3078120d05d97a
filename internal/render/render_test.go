package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yt-feed/internal/models"
)

func TestFormatViews(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1234, "1.2K"},
		{1999, "1.9K"},
		{15000, "15K"},
		{999999, "999K"},
		{1_000_000, "1M"},
		{1_250_000, "1.2M"},
		{42_000_000, "42M"},
		{3_000_000_000, "3B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatViews(tt.n), "FormatViews(%d)", tt.n)
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 days ago", FormatAge(now.Add(-72*time.Hour), now))
	assert.Equal(t, "1 hour ago", FormatAge(now.Add(-time.Hour), now))
	assert.Equal(t, "", FormatAge(time.Time{}, now))
}

func renderPage(t *testing.T, page Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Feed(&buf, page))
	return buf.String()
}

func sampleItems(n int) []models.VideoItem {
	items := make([]models.VideoItem, n)
	for i := range items {
		items[i] = models.VideoItem{
			ID:           "vid" + string(rune('A'+i)),
			Title:        "Title <b>" + string(rune('A'+i)) + "</b>",
			ChannelTitle: "Channel",
			CategoryID:   "10",
			PublishedAt:  time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC),
			ThumbnailURL: "https://i.ytimg.com/vi/x/mqdefault.jpg",
			ViewCount:    1_200_000,
		}
	}
	return items
}

func TestFeedRendersOneCardPerItem(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	out := renderPage(t, Page{State: models.Loaded(sampleItems(3)), Category: "10", Now: now})

	assert.Equal(t, 3, strings.Count(out, `class="card"`))
	assert.Contains(t, out, `href="/videos/10/vidA"`)
	assert.Contains(t, out, `href="/videos/10/vidC"`)
	assert.Contains(t, out, "1.2M views")
	assert.Contains(t, out, "3 days ago")
	assert.Contains(t, out, "Title &lt;b&gt;A&lt;/b&gt;")
	assert.NotContains(t, out, "No videos found")
	assert.NotContains(t, out, "Loading videos...")
	assert.NotContains(t, out, "Error loading videos")
}

func TestFeedRendersEmpty(t *testing.T) {
	out := renderPage(t, Page{State: models.Loaded(nil)})

	assert.Contains(t, out, "No videos found")
	assert.NotContains(t, out, `class="card"`)
	assert.NotContains(t, out, "Error loading videos")
}

func TestFeedRendersError(t *testing.T) {
	out := renderPage(t, Page{State: models.Failed("YouTube API returned status code: 403")})

	assert.Contains(t, out, "Error loading videos:")
	assert.Contains(t, out, "403")
	assert.Contains(t, out, ConfigHint)
	assert.NotContains(t, out, `class="card"`)
	assert.NotContains(t, out, "No videos found")
}

func TestFeedRendersLoading(t *testing.T) {
	out := renderPage(t, Page{State: models.Loading()})

	assert.Contains(t, out, "Loading videos...")
	assert.Contains(t, out, `http-equiv="refresh"`)
	assert.NotContains(t, out, "No videos found")
	assert.NotContains(t, out, "Error loading videos")
}

func TestFeedSidebarLayout(t *testing.T) {
	expanded := renderPage(t, Page{State: models.Loaded(nil)})
	assert.Contains(t, expanded, "left: 15%; width: 85%;")

	collapsed := renderPage(t, Page{State: models.Loaded(nil), SidebarCollapsed: true})
	assert.Contains(t, collapsed, "left: 5%; width: 95%;")
}

func TestTemplatesParsedOnce(t *testing.T) {
	assert.Same(t, Templates(), Templates())

	first := renderPage(t, Page{State: models.Loaded(nil)})
	second := renderPage(t, Page{State: models.Loaded(nil)})
	assert.Equal(t, first, second)
}

func TestFeedRendersUndatedItem(t *testing.T) {
	items := sampleItems(1)
	items[0].PublishedAt = time.Time{}

	out := renderPage(t, Page{State: models.Loaded(items)})
	assert.Equal(t, 1, strings.Count(out, `class="card"`))
	assert.Contains(t, out, "1.2M views &middot; </p>")
}
