package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/devradar/devradar/app/database"
	"github.com/devradar/devradar/app/httpclient"
)

const defaultGitHubBaseURL = "https://api.github.com"

const (
	githubTrendingWindow = 7 * 24 * time.Hour
	githubRepoLimit      = 10
	githubMinStars       = 50
)

// GitHubFetcher runs a single global search for recently created repositories
// sorted by stars. It ignores configured sources: trending is one query.
type GitHubFetcher struct {
	client  *httpclient.Client
	baseURL string
	now     func() time.Time
}

func NewGitHubFetcher(client *httpclient.Client) *GitHubFetcher {
	return &GitHubFetcher{client: client, baseURL: defaultGitHubBaseURL, now: time.Now}
}

type githubSearchResponse struct {
	Items []struct {
		FullName        string    `json:"full_name"`
		Description     string    `json:"description"`
		HTMLURL         string    `json:"html_url"`
		StargazersCount int       `json:"stargazers_count"`
		CreatedAt       time.Time `json:"created_at"`
		Owner           struct {
			AvatarURL string `json:"avatar_url"`
		} `json:"owner"`
	} `json:"items"`
}

func (f *GitHubFetcher) Fetch(ctx context.Context, _ []database.Source) []Item {
	items, err := f.fetchTrending(ctx)
	if err != nil {
		slog.Warn("Failed to fetch GitHub trending repositories", "error", err)
		return nil
	}
	return items
}

func (f *GitHubFetcher) fetchTrending(ctx context.Context) ([]Item, error) {
	since := f.now().UTC().Add(-githubTrendingWindow).Format("2006-01-02")

	query := url.Values{}
	query.Set("q", "created:>"+since)
	query.Set("sort", "stars")
	query.Set("order", "desc")
	query.Set("per_page", fmt.Sprintf("%d", githubRepoLimit))

	body, err := f.client.Get(ctx, f.baseURL+"/search/repositories?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var search githubSearchResponse
	if err := json.Unmarshal([]byte(body), &search); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	var items []Item
	for _, repo := range search.Items {
		if repo.StargazersCount < githubMinStars {
			continue
		}
		items = append(items, Item{
			Title:        repo.FullName,
			Summary:      repo.Description,
			Link:         repo.HTMLURL,
			Kind:         KindGitHub,
			SourceName:   "GitHub Trending",
			ThumbnailURL: repo.Owner.AvatarURL,
			PublishedAt:  repo.CreatedAt,
			Engagement:   repo.StargazersCount,
		})
	}

	return items, nil
}
