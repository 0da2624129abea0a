package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
)

const (
	defaultInnertubeBaseURL = "https://www.youtube.com/youtubei/v1"
	innertubeClientName     = "WEB"
	innertubeClientVersion  = "2.20240726.00.00"
	innertubeTimeout        = 15 * time.Second

	// searchVideoParams filters search results to videos.
	searchVideoParams = "EgIQAQ=="

	// playlistBrowsePrefix turns a playlist ID into a browse ID.
	playlistBrowsePrefix = "VL"
)

// Compile-time check that InnertubeClient implements ports.CatalogSource.
var _ ports.CatalogSource = (*InnertubeClient)(nil)

// InnertubeConfig configures the Innertube catalog client.
type InnertubeConfig struct {
	BaseURL string // defaults to the public youtubei v1 endpoint
	Cookie  string // optional account cookie passed through on every request
}

// InnertubeClient implements the catalog source against YouTube's innertube
// API. It performs no retries and no caching; every call is a single upstream
// round trip.
//
// The session (visitor data) is established lazily on first use and guarded
// against concurrent first-use, so the client can be constructed cheaply at
// module init and shared across resolution calls.
type InnertubeClient struct {
	baseURL string
	cookie  string
	http    *http.Client

	sessionOnce sync.Once
	visitorData string
}

// NewInnertubeClient creates a new InnertubeClient.
func NewInnertubeClient(config InnertubeConfig) *InnertubeClient {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultInnertubeBaseURL
	}

	return &InnertubeClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cookie:  config.Cookie,
		http: &http.Client{
			Timeout: innertubeTimeout,
		},
	}
}

// Search returns raw records for a text query. Non-video renderers (mixes,
// radios, playlists) are reported with their own record kinds; the caller
// filters for what it needs.
func (c *InnertubeClient) Search(ctx context.Context, text string) ([]ports.Video, error) {
	payload := map[string]any{
		"context": c.clientContext(ctx),
		"query":   text,
		"params":  searchVideoParams,
	}

	var response searchResponse
	if err := c.post(ctx, "search", payload, &response); err != nil {
		return nil, fmt.Errorf("innertube search: %w", err)
	}

	var records []ports.Video
	for _, section := range response.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents {
		if section.ItemSectionRenderer == nil {
			continue
		}
		for _, item := range section.ItemSectionRenderer.Contents {
			if record, ok := item.toRecord(); ok {
				records = append(records, record)
			}
		}
	}
	return records, nil
}

// VideoDetail returns the full record for a single video.
func (c *InnertubeClient) VideoDetail(ctx context.Context, id string) (*ports.Video, error) {
	payload := map[string]any{
		"context": c.clientContext(ctx),
		"videoId": id,
	}

	var response playerResponse
	if err := c.post(ctx, "player", payload, &response); err != nil {
		return nil, fmt.Errorf("innertube player: %w", err)
	}

	status := response.PlayabilityStatus.Status
	if status != "" && status != "OK" && status != "CONTENT_CHECK_REQUIRED" {
		return nil, fmt.Errorf("video %s not playable: %s", id, status)
	}

	details := response.VideoDetails
	if details.VideoID == "" {
		return nil, fmt.Errorf("video %s: empty player response", id)
	}

	lengthSeconds, _ := strconv.Atoi(details.LengthSeconds)
	record := &ports.Video{
		ID:              details.VideoID,
		Kind:            ports.RecordKindVideo,
		Title:           details.Title,
		Author:          details.Author,
		DurationSeconds: lengthSeconds,
		Thumbnails:      details.Thumbnail.Thumbnails.toPorts(),
		IsLive:          details.IsLiveContent && lengthSeconds == 0,
	}
	if details.ChannelID != "" {
		record.AuthorURL = "https://www.youtube.com/channel/" + details.ChannelID
	}
	return record, nil
}

// PlaylistPage returns the first page of a playlist, including its metadata.
func (c *InnertubeClient) PlaylistPage(ctx context.Context, playlistID string) (*ports.PlaylistPage, error) {
	payload := map[string]any{
		"context":  c.clientContext(ctx),
		"browseId": playlistBrowsePrefix + playlistID,
	}

	var response browseResponse
	if err := c.post(ctx, "browse", payload, &response); err != nil {
		return nil, fmt.Errorf("innertube browse: %w", err)
	}

	for _, alert := range response.Alerts {
		if alert.AlertRenderer.Type == "ERROR" {
			return nil, fmt.Errorf("playlist %s: %s",
				playlistID, alert.AlertRenderer.Text.text())
		}
	}

	page := &ports.PlaylistPage{
		Metadata: response.playlistMetadata(),
	}
	page.Videos, page.Continuation = collectPlaylistItems(response.playlistItems())
	return page, nil
}

// PlaylistContinuation returns a follow-up playlist page. The token is the
// one obtained from the previous page and is consumed by this call.
func (c *InnertubeClient) PlaylistContinuation(ctx context.Context, token string) (*ports.PlaylistPage, error) {
	payload := map[string]any{
		"context":      c.clientContext(ctx),
		"continuation": token,
	}

	var response browseResponse
	if err := c.post(ctx, "browse", payload, &response); err != nil {
		return nil, fmt.Errorf("innertube browse continuation: %w", err)
	}

	page := &ports.PlaylistPage{}
	page.Videos, page.Continuation = collectPlaylistItems(response.continuationItems())
	return page, nil
}

// clientContext builds the innertube client context, establishing the session
// on first use.
func (c *InnertubeClient) clientContext(ctx context.Context) map[string]any {
	c.sessionOnce.Do(func() {
		c.initSession(ctx)
	})

	client := map[string]any{
		"clientName":    innertubeClientName,
		"clientVersion": innertubeClientVersion,
		"hl":            "en",
		"gl":            "US",
	}
	if c.visitorData != "" {
		client["visitorData"] = c.visitorData
	}
	return map[string]any{"client": client}
}

// initSession fetches visitor data for the session. Failure is not fatal:
// the API accepts requests without visitor data, it just personalizes less.
func (c *InnertubeClient) initSession(ctx context.Context) {
	payload := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    innertubeClientName,
				"clientVersion": innertubeClientVersion,
			},
		},
	}

	var response struct {
		ResponseContext struct {
			VisitorData string `json:"visitorData"`
		} `json:"responseContext"`
	}
	if err := c.post(ctx, "visitor_id", payload, &response); err != nil {
		slog.Debug("innertube session init failed, continuing without visitor data",
			"error", err)
		return
	}
	c.visitorData = response.ResponseContext.VisitorData
}

func (c *InnertubeClient) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
