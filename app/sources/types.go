package sources

import (
	"time"
)

// ItemKind classifies an aggregated item. Web-feed entries come in as
// KindArticle and may be retagged KindMedium by link host; the reddit
// fetcher retags external links the same way.
type ItemKind string

const (
	KindArticle    ItemKind = "article"
	KindMedium     ItemKind = "medium"
	KindNewsletter ItemKind = "newsletter"
	KindPodcast    ItemKind = "podcast"
	KindReddit     ItemKind = "reddit"
	KindVideo      ItemKind = "video"
	KindGitHub     ItemKind = "github"
)

// Source kinds as stored in the source store.
const (
	SourceKindRSS        = "rss"
	SourceKindNewsletter = "newsletter"
	SourceKindPodcast    = "podcast"
	SourceKindReddit     = "reddit"
	SourceKindYouTube    = "youtube"
	SourceKindGitHub     = "github"
)

// HackerNewsSourceName is the display name the engagement enhancer and the
// popularity filter key on.
const HackerNewsSourceName = "Hacker News"

// Item is a transient aggregated entry produced by a fetcher. It has no
// identity beyond its link until it is persisted.
type Item struct {
	Title        string
	Summary      string
	Link         string
	Kind         ItemKind
	SourceName   string
	ThumbnailURL string
	PublishedAt  time.Time
	Engagement   int
}
