package sources

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"

	"github.com/devradar/devradar/app/httpclient"
)

const defaultAlgoliaBaseURL = "https://hn.algolia.com/api/v1"

var hnItemIDRe = regexp.MustCompile(`id=(\d+)`)

// HackerNewsEnhancer backfills point counts for items that came in through
// the Hacker News feed, which carries no engagement signal of its own.
// Lookup failures are swallowed; the item keeps its zero score.
type HackerNewsEnhancer struct {
	client  *httpclient.Client
	baseURL string
}

func NewHackerNewsEnhancer(client *httpclient.Client) *HackerNewsEnhancer {
	return &HackerNewsEnhancer{client: client, baseURL: defaultAlgoliaBaseURL}
}

type algoliaItem struct {
	Points int `json:"points"`
}

func (e *HackerNewsEnhancer) Run(ctx context.Context, items []Item) []Item {
	for i := range items {
		if items[i].SourceName != HackerNewsSourceName {
			continue
		}

		id := extractHNItemID(items[i].Link)
		if id == "" {
			continue
		}

		points, err := e.fetchPoints(ctx, id)
		if err != nil {
			slog.Debug("Failed to fetch Hacker News points", "item", id, "error", err)
			continue
		}
		items[i].Engagement = points
	}

	return items
}

func (e *HackerNewsEnhancer) fetchPoints(ctx context.Context, id string) (int, error) {
	body, err := e.client.Get(ctx, e.baseURL+"/items/"+id)
	if err != nil {
		return 0, err
	}

	var item algoliaItem
	if err := json.Unmarshal([]byte(body), &item); err != nil {
		return 0, err
	}

	return item.Points, nil
}

func extractHNItemID(link string) string {
	match := hnItemIDRe.FindStringSubmatch(link)
	if match == nil {
		return ""
	}
	return match[1]
}
