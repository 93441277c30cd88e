package sources

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/devradar/devradar/app/database"
	"github.com/devradar/devradar/app/httpclient"
)

// Per-source entry caps by feed flavor.
const (
	articleEntryLimit    = 10
	newsletterEntryLimit = 5
	podcastEntryLimit    = 3
)

// rawDateLayouts are tried when gofeed could not parse a date itself.
var rawDateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
}

// FeedFetcher turns RSS/Atom sources of one flavor (article, newsletter or
// podcast) into aggregated items.
type FeedFetcher struct {
	client *httpclient.Client
	parser *gofeed.Parser
	kind   ItemKind
	limit  int
}

func NewFeedFetcher(client *httpclient.Client, kind ItemKind, limit int) *FeedFetcher {
	return &FeedFetcher{
		client: client,
		parser: gofeed.NewParser(),
		kind:   kind,
		limit:  limit,
	}
}

func NewArticleFetcher(client *httpclient.Client) *FeedFetcher {
	return NewFeedFetcher(client, KindArticle, articleEntryLimit)
}

func NewNewsletterFetcher(client *httpclient.Client) *FeedFetcher {
	return NewFeedFetcher(client, KindNewsletter, newsletterEntryLimit)
}

func NewPodcastFetcher(client *httpclient.Client) *FeedFetcher {
	return NewFeedFetcher(client, KindPodcast, podcastEntryLimit)
}

// Fetch processes each source independently; a failing source is logged and
// skipped so one bad feed never costs the run the remaining sources.
func (f *FeedFetcher) Fetch(ctx context.Context, srcs []database.Source) []Item {
	var items []Item

	for _, src := range srcs {
		fetched, err := f.fetchSource(ctx, src)
		if err != nil {
			slog.Warn("Failed to fetch feed source", "source", src.Name, "url", src.URL, "error", err)
			continue
		}
		items = append(items, fetched...)
	}

	return items
}

func (f *FeedFetcher) fetchSource(ctx context.Context, src database.Source) ([]Item, error) {
	body, err := f.client.Get(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	feed, err := f.parser.ParseString(httpclient.SanitizeXML(body))
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		items = append(items, f.convertEntry(entry, feed, src))
	}

	// Most recent first, capped per source.
	sort.Slice(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if len(items) > f.limit {
		items = items[:f.limit]
	}

	return items, nil
}

func (f *FeedFetcher) convertEntry(entry *gofeed.Item, feed *gofeed.Feed, src database.Source) Item {
	item := Item{
		Title:       entry.Title,
		Summary:     entry.Description,
		Link:        entry.Link,
		Kind:        f.kind,
		SourceName:  src.Name,
		PublishedAt: resolvePublished(entry, src.Name),
	}

	if item.Summary == "" {
		item.Summary = entry.Content
	}

	if f.kind == KindArticle && isMediumLink(entry.Link) {
		item.Kind = KindMedium
	}

	if f.kind == KindPodcast {
		item.ThumbnailURL = resolvePodcastThumbnail(entry, feed)
	} else if entry.Image != nil {
		item.ThumbnailURL = entry.Image.URL
	}

	return item
}

// resolvePublished walks the date fallback chain: parsed published date,
// parsed updated date, raw published string, raw updated string, and finally
// the current time with a warning.
func resolvePublished(entry *gofeed.Item, sourceName string) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	if ts, ok := parseRawDate(entry.Published); ok {
		return ts
	}
	if ts, ok := parseRawDate(entry.Updated); ok {
		return ts
	}

	slog.Warn("Entry has no usable date, falling back to current time",
		"source", sourceName, "link", entry.Link)
	return time.Now().UTC()
}

func parseRawDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range rawDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func resolvePodcastThumbnail(entry *gofeed.Item, feed *gofeed.Feed) string {
	// Episode artwork beats program artwork.
	if entry.ITunesExt != nil && entry.ITunesExt.Image != "" {
		return entry.ITunesExt.Image
	}
	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}
	if feed.ITunesExt != nil && feed.ITunesExt.Image != "" {
		return feed.ITunesExt.Image
	}
	if feed.Image != nil {
		return feed.Image.URL
	}
	return ""
}

func isMediumLink(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(parsed.Hostname()), "medium.com")
}
