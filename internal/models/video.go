package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AllCategories is the category id YouTube treats as "every category".
const AllCategories = "0"

// ResolveCategory returns the category to request, falling back to AllCategories
// when none is given.
func ResolveCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return AllCategories
	}
	return category
}

// VideoItem represents one entry of a trending list
type VideoItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channelTitle"`
	CategoryID   string    `json:"categoryId"`
	PublishedAt  time.Time `json:"publishedAt"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	ViewCount    int64     `json:"viewCount"`
}

// Link returns the detail route for the video.
func (v VideoItem) Link() string {
	return "/videos/" + url.PathEscape(v.CategoryID) + "/" + url.PathEscape(v.ID)
}

// ParsePublishedAt parses an RFC 3339 timestamp. Empty or malformed values
// yield the zero time so a single bad item does not fail the whole list.
func ParsePublishedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// VideoListResponse represents the response from YouTube API for videos.list
type VideoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			CategoryID   string `json:"categoryId"`
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
	Error *ErrorDescriptor `json:"error,omitempty"`
}

// ErrorDescriptor is the error object YouTube embeds in a response body.
type ErrorDescriptor struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// VideoItems converts the response items. A response without items yields an
// empty, non-nil slice.
func (r *VideoListResponse) VideoItems() []VideoItem {
	items := make([]VideoItem, 0, len(r.Items))
	for _, item := range r.Items {
		views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		items = append(items, VideoItem{
			ID:           item.ID,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			CategoryID:   item.Snippet.CategoryID,
			PublishedAt:  ParsePublishedAt(item.Snippet.PublishedAt),
			ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
			ViewCount:    views,
		})
	}
	return items
}
