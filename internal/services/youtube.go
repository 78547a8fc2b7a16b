// YouTube proxy client
//
// Communicates with the ytmusicapi proxy for operations on the user's
// account: ad hoc video search and playlist creation (the publish action).
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lectern-app/lectern/internal/models"
	"github.com/lectern-app/lectern/internal/shared"
	"golang.org/x/time/rate"
)

const defaultYTBaseURL string = "http://localhost:8080"

// defaultRate matches the proxy's own throttle of five requests per second.
const defaultRate float64 = 5.0

// YouTubeService talks to the YouTube proxy. It implements [Searcher] and the
// publish.Publisher interface.
type YouTubeService struct {
	baseURL    string
	authFile   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Searcher = (*YouTubeService)(nil)

// NewYouTubeService creates a new YouTube proxy client. requestsPerSecond
// bounds outbound calls; zero or negative falls back to the default.
func NewYouTubeService(baseURL string, requestsPerSecond float64) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultRate
	}

	return &YouTubeService{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// Authenticate stores the session file path forwarded to the proxy on
// subsequent requests. Expects the path to browser.json or oauth.json.
func (y *YouTubeService) Authenticate(authFile string) error {
	if authFile == "" {
		return fmt.Errorf("%w: missing auth file path", shared.ErrNotAuthenticated)
	}
	y.authFile = authFile
	return nil
}

// Available reports whether an authenticated session is configured. Without
// one, publishing is bypassed in favor of the browser fallback.
func (y *YouTubeService) Available() bool {
	return y.authFile != ""
}

// ytVideo is the proxy's wire shape for a video search result.
type ytVideo struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnailUrl"`
	Views        int64  `json:"views"`
	Likes        int64  `json:"likes"`
	Duration     string `json:"duration"` // ISO-8601 code, e.g. PT11M42S
	PublishedAt  string `json:"publishedAt"`
}

func (v ytVideo) candidate() models.VideoCandidate {
	published, _ := time.Parse(time.RFC3339, v.PublishedAt)
	return models.VideoCandidate{
		ID:           v.VideoID,
		Title:        v.Title,
		Channel:      v.ChannelTitle,
		ThumbnailURL: v.Thumbnail,
		Description:  v.Description,
		Views:        v.Views,
		Likes:        v.Likes,
		DurationCode: v.Duration,
		PublishedAt:  published,
	}
}

func (y *YouTubeService) doRequest(ctx context.Context, method, endpoint string, body io.Reader, result any) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, y.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if y.authFile != "" {
		req.Header.Set("X-Auth-File", y.authFile)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("youtube API error (status %d): %s", resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("youtube API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchVideos searches for candidate videos matching a topic query.
//
// Calls GET /api/search?q={query}&limit={n} on the proxy.
func (y *YouTubeService) SearchVideos(ctx context.Context, query string, maxResults int) ([]models.VideoCandidate, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	endpoint := fmt.Sprintf("/api/search?q=%s&limit=%d", url.QueryEscape(query), maxResults)

	var results []ytVideo
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &results); err != nil {
		return nil, err
	}

	candidates := make([]models.VideoCandidate, len(results))
	for i, r := range results {
		candidates[i] = r.candidate()
	}

	return candidates, nil
}

// CreatePlaylist creates a playlist on the user's account and adds the given
// videos in order, returning the new playlist id.
//
// Creates via POST /api/playlists and adds items via POST /api/playlists/{id}/items.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, title, description string, videoIDs []string) (string, error) {
	if !y.Available() {
		return "", shared.ErrNotAuthenticated
	}

	createBody, err := json.Marshal(struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		PrivacyStatus string `json:"privacy_status"`
	}{
		Title:         title,
		Description:   description,
		PrivacyStatus: "PRIVATE",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal create request: %w", err)
	}

	var createResp struct {
		PlaylistID string `json:"playlist_id"`
	}
	if err := y.doRequest(ctx, http.MethodPost, "/api/playlists", strings.NewReader(string(createBody)), &createResp); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
	}
	if createResp.PlaylistID == "" {
		return "", fmt.Errorf("%w: proxy returned no playlist id", shared.ErrPublishFailed)
	}

	if len(videoIDs) > 0 {
		addBody, err := json.Marshal(struct {
			VideoIDs []string `json:"video_ids"`
		}{VideoIDs: videoIDs})
		if err != nil {
			return "", fmt.Errorf("failed to marshal add items request: %w", err)
		}

		endpoint := fmt.Sprintf("/api/playlists/%s/items", createResp.PlaylistID)
		if err := y.doRequest(ctx, http.MethodPost, endpoint, strings.NewReader(string(addBody)), nil); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrPublishFailed, err)
		}
	}

	return createResp.PlaylistID, nil
}
