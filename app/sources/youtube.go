package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/devradar/devradar/app/database"
	"github.com/devradar/devradar/app/httpclient"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

const youtubeVideoLimit = 3

// YouTube Data API quota pricing: search.list costs 100 units, a
// videos.list statistics call costs 1 unit.
const (
	quotaSearchCall     = 100
	quotaStatisticsCall = 1
)

// YouTubeFetcher pulls the most recent videos per configured channel, then
// issues one statistics call per video for view counts. Without an API key
// the fetcher is a soft no-op.
type YouTubeFetcher struct {
	client    *httpclient.Client
	apiKey    string
	baseURL   string
	quotaUsed int
}

func NewYouTubeFetcher(client *httpclient.Client, apiKey string) *YouTubeFetcher {
	return &YouTubeFetcher{client: client, apiKey: apiKey, baseURL: defaultYouTubeBaseURL}
}

// QuotaUsed reports API quota units consumed by the last Fetch call.
func (f *YouTubeFetcher) QuotaUsed() int {
	return f.quotaUsed
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type youtubeVideosResponse struct {
	Items []struct {
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (f *YouTubeFetcher) Fetch(ctx context.Context, srcs []database.Source) []Item {
	f.quotaUsed = 0

	if f.apiKey == "" {
		if len(srcs) > 0 {
			slog.Info("YouTube API key not configured, skipping video sources", "sources", len(srcs))
		}
		return nil
	}

	var items []Item
	for _, src := range srcs {
		fetched, err := f.fetchChannel(ctx, src)
		if err != nil {
			slog.Warn("Failed to fetch YouTube channel", "source", src.Name, "error", err)
			continue
		}
		items = append(items, fetched...)
	}

	return items
}

func (f *YouTubeFetcher) fetchChannel(ctx context.Context, src database.Source) ([]Item, error) {
	channelID, err := channelIDFromMetadata(src)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("key", f.apiKey)
	query.Set("channelId", channelID)
	query.Set("part", "snippet")
	query.Set("order", "date")
	query.Set("type", "video")
	query.Set("maxResults", strconv.Itoa(youtubeVideoLimit))

	body, err := f.client.Get(ctx, f.baseURL+"/search?"+query.Encode())
	f.quotaUsed += quotaSearchCall
	if err != nil {
		return nil, err
	}

	var search youtubeSearchResponse
	if err := json.Unmarshal([]byte(body), &search); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	items := make([]Item, 0, len(search.Items))
	for _, video := range search.Items {
		publishedAt, err := time.Parse(time.RFC3339, video.Snippet.PublishedAt)
		if err != nil {
			publishedAt = time.Now().UTC()
		}

		item := Item{
			Title:        video.Snippet.Title,
			Summary:      video.Snippet.Description,
			Link:         "https://www.youtube.com/watch?v=" + video.ID.VideoID,
			Kind:         KindVideo,
			SourceName:   src.Name,
			ThumbnailURL: video.Snippet.Thumbnails.High.URL,
			PublishedAt:  publishedAt,
		}
		if item.SourceName == "" {
			item.SourceName = video.Snippet.ChannelTitle
		}

		item.Engagement = f.fetchViewCount(ctx, video.ID.VideoID)
		items = append(items, item)
	}

	return items, nil
}

func (f *YouTubeFetcher) fetchViewCount(ctx context.Context, videoID string) int {
	query := url.Values{}
	query.Set("key", f.apiKey)
	query.Set("id", videoID)
	query.Set("part", "statistics")

	body, err := f.client.Get(ctx, f.baseURL+"/videos?"+query.Encode())
	f.quotaUsed += quotaStatisticsCall
	if err != nil {
		slog.Debug("Failed to fetch video statistics", "video", videoID, "error", err)
		return 0
	}

	var videos youtubeVideosResponse
	if err := json.Unmarshal([]byte(body), &videos); err != nil || len(videos.Items) == 0 {
		return 0
	}

	views, err := strconv.Atoi(videos.Items[0].Statistics.ViewCount)
	if err != nil {
		return 0
	}
	return views
}

func channelIDFromMetadata(src database.Source) (string, error) {
	var meta struct {
		ChannelID string `json:"channel_id"`
	}
	if err := json.Unmarshal([]byte(src.Metadata), &meta); err != nil {
		return "", fmt.Errorf("failed to parse source metadata: %w", err)
	}
	if meta.ChannelID == "" {
		return "", fmt.Errorf("source %s has no channel_id in metadata", src.Name)
	}
	return meta.ChannelID, nil
}
