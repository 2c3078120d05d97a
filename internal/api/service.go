package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yt-feed/internal/models"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeAPI fetches trending videos through the generated YouTube Data API client
type YouTubeAPI struct {
	service *youtube.Service
}

// NewYouTubeAPI creates a client authenticated with apiKey. A non-empty
// endpoint replaces the default API root, e.g. "http://127.0.0.1:8080/".
func NewYouTubeAPI(ctx context.Context, apiKey, endpoint string) (*YouTubeAPI, error) {
	// The generated client drops an error object embedded in a 200 body, so
	// responses go through errorDescriptorTransport first. With a custom HTTP
	// client the key is no longer added by the library.
	hc := &http.Client{Transport: &errorDescriptorTransport{apiKey: apiKey, base: http.DefaultTransport}}
	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %v", err)
	}

	return &YouTubeAPI{service: service}, nil
}

// FetchTrending fetches the most popular videos of a category.
func (y *YouTubeAPI) FetchTrending(ctx context.Context, category string) ([]models.VideoItem, error) {
	call := y.service.Videos.List(strings.Split(TrendingParts, ",")).
		Chart(TrendingChart).
		MaxResults(MaxResults).
		RegionCode(RegionCode).
		VideoCategoryId(category).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		var aerr *APIError
		if errors.As(err, &aerr) {
			return nil, aerr
		}
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, &TransportError{StatusCode: gerr.Code, Reason: gerr.Message, Err: gerr}
		}
		return nil, &TransportError{Err: redactURL(err)}
	}

	items := make([]models.VideoItem, 0, len(response.Items))
	for _, v := range response.Items {
		items = append(items, videoItemFromAPI(v))
	}
	return items, nil
}

func videoItemFromAPI(v *youtube.Video) models.VideoItem {
	item := models.VideoItem{ID: v.Id}
	if v.Snippet != nil {
		item.Title = v.Snippet.Title
		item.ChannelTitle = v.Snippet.ChannelTitle
		item.CategoryID = v.Snippet.CategoryId
		item.PublishedAt = models.ParsePublishedAt(v.Snippet.PublishedAt)
		if v.Snippet.Thumbnails != nil && v.Snippet.Thumbnails.Medium != nil {
			item.ThumbnailURL = v.Snippet.Thumbnails.Medium.Url
		}
	}
	if v.Statistics != nil {
		item.ViewCount = int64(v.Statistics.ViewCount)
	}
	return item
}

// errorDescriptorTransport adds the API key to every request and turns a 2xx
// body carrying an error descriptor into an *APIError.
type errorDescriptorTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *errorDescriptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	q := req.URL.Query()
	q.Set("key", t.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	var descriptor struct {
		Error *models.ErrorDescriptor `json:"error"`
	}
	if json.Unmarshal(body, &descriptor) == nil && descriptor.Error != nil {
		return nil, &APIError{Code: descriptor.Error.Code, Message: descriptor.Error.Message}
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp, nil
}
