package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", AllCategories},
		{"   ", AllCategories},
		{"0", "0"},
		{"10", "10"},
		{" 24 ", "24"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveCategory(tt.in), "ResolveCategory(%q)", tt.in)
	}
}

func TestVideoItemLink(t *testing.T) {
	v := VideoItem{ID: "dQw4w9WgXcQ", CategoryID: "10"}
	assert.Equal(t, "/videos/10/dQw4w9WgXcQ", v.Link())

	odd := VideoItem{ID: "a/b", CategoryID: "1 0"}
	assert.Equal(t, "/videos/1%200/a%2Fb", odd.Link())
}

func TestVideoListResponse_VideoItems(t *testing.T) {
	body := `{
		"items": [{
			"id": "abc",
			"snippet": {
				"categoryId": "20",
				"title": "Speedrun",
				"channelTitle": "Gamer",
				"publishedAt": "2024-03-01T12:00:00Z",
				"thumbnails": {"medium": {"url": "https://i.ytimg.com/vi/abc/mqdefault.jpg"}}
			},
			"statistics": {"viewCount": "1234567"}
		}]
	}`
	var resp VideoListResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	items := resp.VideoItems()
	require.Len(t, items, 1)
	assert.Equal(t, VideoItem{
		ID:           "abc",
		Title:        "Speedrun",
		ChannelTitle: "Gamer",
		CategoryID:   "20",
		PublishedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ThumbnailURL: "https://i.ytimg.com/vi/abc/mqdefault.jpg",
		ViewCount:    1234567,
	}, items[0])
	assert.Nil(t, resp.Error)
}

func TestVideoListResponse_MissingItems(t *testing.T) {
	var resp VideoListResponse
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"youtube#videoListResponse"}`), &resp))

	items := resp.VideoItems()
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestVideoListResponse_ErrorDescriptor(t *testing.T) {
	var resp VideoListResponse
	require.NoError(t, json.Unmarshal([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "quota exceeded", resp.Error.Message)
	assert.Equal(t, 403, resp.Error.Code)
}

func TestFeedStateVariants(t *testing.T) {
	var zero FeedState
	assert.Equal(t, StatusLoading, zero.Status())
	assert.True(t, zero.IsLoading())

	loading := Loading()
	assert.True(t, loading.IsLoading())
	assert.Nil(t, loading.Items())
	assert.Empty(t, loading.Message())

	empty := Loaded(nil)
	assert.Equal(t, StatusLoaded, empty.Status())
	assert.True(t, empty.Empty())
	assert.NotNil(t, empty.Items())

	loaded := Loaded([]VideoItem{{ID: "a"}})
	assert.False(t, loaded.Empty())
	assert.False(t, loaded.IsFailed())
	assert.Empty(t, loaded.Message())

	failed := Failed("boom")
	assert.True(t, failed.IsFailed())
	assert.False(t, failed.IsLoading())
	assert.False(t, failed.Empty())
	assert.Nil(t, failed.Items())
	assert.Equal(t, "boom", failed.Message())
}

func TestFeedStateJSON(t *testing.T) {
	b, err := json.Marshal(Failed("quota exceeded"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"failed","error":"quota exceeded"}`, string(b))

	b, err = json.Marshal(Loading())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"loading"}`, string(b))

	b, err = json.Marshal(Loaded([]VideoItem{{ID: "x", CategoryID: "1"}}))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"status":"loaded"`)
	assert.Contains(t, string(b), `"id":"x"`)
}

func TestParsePublishedAt(t *testing.T) {
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), ParsePublishedAt("2024-03-01T12:00:00Z"))
	assert.True(t, ParsePublishedAt("").IsZero())
	assert.True(t, ParsePublishedAt("last tuesday").IsZero())
}

func TestVideoListResponse_BadTimestampKeepsItem(t *testing.T) {
	var resp VideoListResponse
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"id":"a","snippet":{"publishedAt":""}},{"id":"b","snippet":{"publishedAt":"nope"}}]}`), &resp))

	items := resp.VideoItems()
	require.Len(t, items, 2)
	assert.True(t, items[0].PublishedAt.IsZero())
	assert.Equal(t, "b", items[1].ID)
}
