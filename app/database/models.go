package database

import (
	"time"
)

// Item lifecycle statuses. Only StatusPending is written by the pipeline;
// the remaining transitions belong to the review tooling.
const (
	StatusPending      = "pending"
	StatusAccepted     = "accepted"
	StatusDiscarded    = "discarded"
	StatusSavedForNext = "saved-for-next"
)

// Source is an ingestion origin configured by an operator. The pipeline only
// reads active sources; metadata carries kind-specific settings as raw JSON
// (e.g. {"subreddit": "golang"} or {"channel_id": "UC..."}).
type Source struct {
	ID        string
	Kind      string
	Name      string
	URL       string
	Active    bool
	Metadata  string
	CreatedAt time.Time
}

type Category struct {
	ID   string
	Slug string
	Name string
}

type Tag struct {
	ID   string
	Name string
}

// ScrapeBatch groups one aggregation run's saved items for later bulk review.
type ScrapeBatch struct {
	ID         string
	Name       string
	Status     string
	TotalItems int
	CreatedAt  time.Time
}

// ContentItemWithCategory joins an item with its resolved category for
// read-side listings. Items whose category row is gone carry empty strings.
type ContentItemWithCategory struct {
	ContentItem
	CategorySlug string
	CategoryName string
}

// ContentItem is a persisted, scored and categorized piece of content.
type ContentItem struct {
	ID            string
	Title         string
	Summary       string
	Link          string
	NormalizedURL string
	ContentHash   string
	SourceKind    string
	SourceName    string
	ThumbnailURL  string
	PublishedAt   time.Time
	Engagement    int
	QualityScore  int
	CategoryID    *string
	BatchID       *string
	NewsletterID  *string
	Status        string
	FeaturedRank  *int
	CreatedAt     time.Time
}
