package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/devradar/devradar/app/database"
	"github.com/devradar/devradar/app/httpclient"
)

const defaultRedditBaseURL = "https://www.reddit.com"

// Fetch-time gate for reddit posts, independent of the later popularity
// filter: both thresholds must hold or the post is discarded.
const (
	redditMinScore       = 100
	redditMinUpvoteRatio = 0.8
)

// RedditFetcher pulls the hot listing of each configured subreddit.
type RedditFetcher struct {
	client  *httpclient.Client
	baseURL string
}

func NewRedditFetcher(client *httpclient.Client) *RedditFetcher {
	return &RedditFetcher{client: client, baseURL: defaultRedditBaseURL}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	Stickied    bool    `json:"stickied"`
	Subreddit   string  `json:"subreddit"`
	Thumbnail   string  `json:"thumbnail"`
	CreatedUTC  float64 `json:"created_utc"`
}

func (f *RedditFetcher) Fetch(ctx context.Context, srcs []database.Source) []Item {
	var items []Item

	for _, src := range srcs {
		fetched, err := f.fetchSubreddit(ctx, src)
		if err != nil {
			slog.Warn("Failed to fetch subreddit", "source", src.Name, "error", err)
			continue
		}
		items = append(items, fetched...)
	}

	return items
}

func (f *RedditFetcher) fetchSubreddit(ctx context.Context, src database.Source) ([]Item, error) {
	subreddit, err := subredditFromMetadata(src)
	if err != nil {
		return nil, err
	}

	listingURL := fmt.Sprintf("%s/r/%s/hot.json", f.baseURL, subreddit)
	body, err := f.client.Get(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	var listing redditListing
	if err := json.Unmarshal([]byte(body), &listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	var items []Item
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Stickied {
			continue
		}
		if post.Score < redditMinScore || post.UpvoteRatio < redditMinUpvoteRatio {
			continue
		}
		items = append(items, f.convertPost(post))
	}

	return items, nil
}

func (f *RedditFetcher) convertPost(post redditPost) Item {
	item := Item{
		Title:       post.Title,
		Summary:     post.Selftext,
		Kind:        KindReddit,
		SourceName:  "r/" + post.Subreddit,
		Engagement:  post.Score,
		PublishedAt: time.Unix(int64(post.CreatedUTC), 0).UTC(),
	}

	if strings.HasPrefix(post.Thumbnail, "http") {
		item.ThumbnailURL = post.Thumbnail
	}

	// Self posts and crossposts stay reddit items; external links are
	// re-tagged with the target domain as the source name.
	if post.URL == "" || strings.Contains(post.URL, "reddit.com") {
		item.Link = f.baseURL + post.Permalink
		return item
	}

	item.Link = post.URL
	if domain := externalDomain(post.URL); domain != "" {
		item.SourceName = domain
		if strings.Contains(domain, "medium.com") {
			item.Kind = KindMedium
		} else {
			item.Kind = KindArticle
		}
	}

	return item
}

func subredditFromMetadata(src database.Source) (string, error) {
	var meta struct {
		Subreddit string `json:"subreddit"`
	}
	if err := json.Unmarshal([]byte(src.Metadata), &meta); err != nil {
		return "", fmt.Errorf("failed to parse source metadata: %w", err)
	}
	if meta.Subreddit == "" {
		return "", fmt.Errorf("source %s has no subreddit in metadata", src.Name)
	}
	return meta.Subreddit, nil
}

func externalDomain(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
