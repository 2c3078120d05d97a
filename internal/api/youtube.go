package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yt-feed/internal/models"
)

const (
	youtubeAPIBaseURL = "https://youtube.googleapis.com/youtube/v3"

	// Parameters of every trending request.
	TrendingParts = "snippet,contentDetails,statistics"
	TrendingChart = "mostPopular"
	MaxResults    = 50
	RegionCode    = "US"
)

// maxResponseBytes caps how much of a response body is read.
var maxResponseBytes int64 = 8 << 20

// YouTubeClient handles direct HTTP requests to YouTube API
type YouTubeClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// ClientOption configures a YouTubeClient.
type ClientOption func(*YouTubeClient)

// WithBaseURL points the client at another videos.list host, e.g. a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *YouTubeClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *YouTubeClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewYouTubeClient creates a new YouTube client
func NewYouTubeClient(apiKey string, opts ...ClientOption) *YouTubeClient {
	c := &YouTubeClient{
		apiKey:  apiKey,
		baseURL: youtubeAPIBaseURL,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TrendingURL builds the videos.list request for the most popular videos of a
// category.
func (c *YouTubeClient) TrendingURL(category string) string {
	q := url.Values{}
	q.Set("part", TrendingParts)
	q.Set("chart", TrendingChart)
	q.Set("maxResults", strconv.Itoa(MaxResults))
	q.Set("regionCode", RegionCode)
	q.Set("videoCategoryId", category)
	q.Set("key", c.apiKey)
	return c.baseURL + "/videos?" + q.Encode()
}

// FetchTrending fetches the most popular videos of a category.
func (c *YouTubeClient) FetchTrending(ctx context.Context, category string) ([]models.VideoItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.TrendingURL(category), nil)
	if err != nil {
		return nil, &TransportError{Err: redactURL(err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: redactURL(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	var response models.VideoListResponse
	decodeErr := json.Unmarshal(body, &response)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		terr := &TransportError{StatusCode: resp.StatusCode}
		if decodeErr == nil && response.Error != nil {
			terr.Reason = response.Error.Message
		}
		return nil, terr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if response.Error != nil {
		return nil, &APIError{Code: response.Error.Code, Message: response.Error.Message}
	}

	return response.VideoItems(), nil
}
