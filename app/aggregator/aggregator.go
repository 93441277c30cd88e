package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/devradar/devradar/app/database"
	"github.com/devradar/devradar/app/sources"
)

// ErrRunInProgress is returned when a run is requested while another is
// still executing. Runs are strictly one at a time.
var ErrRunInProgress = errors.New("aggregation run already in progress")

// SourceFetcher turns the active sources of one kind into aggregated items.
// Implementations never fail the run: per-source errors are logged and the
// bad source contributes zero items.
type SourceFetcher interface {
	Fetch(ctx context.Context, srcs []database.Source) []sources.Item
}

// Enhancer post-processes fetched items before filtering.
type Enhancer interface {
	Run(ctx context.Context, items []sources.Item) []sources.Item
}

// QuotaReporter exposes API quota units spent by a fetcher.
type QuotaReporter interface {
	QuotaUsed() int
}

var _ SourceFetcher = (*sources.FeedFetcher)(nil)
var _ SourceFetcher = (*sources.RedditFetcher)(nil)
var _ SourceFetcher = (*sources.YouTubeFetcher)(nil)
var _ SourceFetcher = (*sources.GitHubFetcher)(nil)
var _ Enhancer = (*sources.HackerNewsEnhancer)(nil)
var _ QuotaReporter = (*sources.YouTubeFetcher)(nil)

// Aggregator coordinates one batch run: fetch all source kinds concurrently,
// filter, deduplicate, score, categorize and persist the survivors.
type Aggregator struct {
	sourceRepo  database.SourceRepository
	contentRepo database.ContentRepository
	batchRepo   database.BatchRepository
	tagRepo     database.TagRepository

	fetchers map[string]SourceFetcher
	enhancer Enhancer

	timeFilter       *TimeFilter
	popularityFilter *PopularityFilter
	dedup            *Deduplicator
	scorer           *Scorer
	categorizer      *Categorizer

	minQualityScore int
	now             func() time.Time

	mu        sync.Mutex
	running   bool
	lastStats *RunStats
}

func New(sourceRepo database.SourceRepository, contentRepo database.ContentRepository,
	batchRepo database.BatchRepository, tagRepo database.TagRepository,
	fetchers map[string]SourceFetcher, enhancer Enhancer,
	timeFilter *TimeFilter, popularityFilter *PopularityFilter,
	dedup *Deduplicator, scorer *Scorer, categorizer *Categorizer,
	minQualityScore int) *Aggregator {
	return &Aggregator{
		sourceRepo:       sourceRepo,
		contentRepo:      contentRepo,
		batchRepo:        batchRepo,
		tagRepo:          tagRepo,
		fetchers:         fetchers,
		enhancer:         enhancer,
		timeFilter:       timeFilter,
		popularityFilter: popularityFilter,
		dedup:            dedup,
		scorer:           scorer,
		categorizer:      categorizer,
		minQualityScore:  minQualityScore,
		now:              time.Now,
	}
}

// LastStats returns the statistics of the most recently finished run, or nil
// when no run has completed yet.
func (a *Aggregator) LastStats() *RunStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastStats
}

// Run executes one full aggregation batch. Failure to open the batch record
// is the only fatal error; everything downstream degrades per item or per
// source.
func (a *Aggregator) Run(ctx context.Context) (*RunStats, error) {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return nil, ErrRunInProgress
	}
	a.running = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	start := a.now()
	stats := newRunStats(start)
	stats.BatchName = "Scrape " + start.UTC().Format("2006-01-02 15:04")

	batchID, err := a.batchRepo.Create(stats.BatchName)
	if err != nil {
		return nil, fmt.Errorf("failed to create scrape batch: %w", err)
	}
	stats.BatchID = batchID

	slog.Info("Aggregation run started", "batch", stats.BatchName, "batch_id", batchID)

	grouped, err := a.sourceRepo.GetActiveGrouped()
	if err != nil {
		return nil, fmt.Errorf("failed to load active sources: %w", err)
	}

	items := a.fetchAll(ctx, grouped)
	stats.Fetched = len(items)

	items = a.enhancer.Run(ctx, items)

	for _, fetcher := range a.fetchers {
		if reporter, ok := fetcher.(QuotaReporter); ok {
			stats.QuotaUnits += reporter.QuotaUsed()
		}
	}

	items = a.timeFilter.Run(items)
	stats.AfterTimeFilter = len(items)

	items = a.popularityFilter.Run(items)
	stats.AfterPopularityFilter = len(items)

	a.processItems(items, stats)

	if err := a.batchRepo.UpdateTotalItems(batchID, stats.Saved); err != nil {
		slog.Error("Failed to close scrape batch", "batch_id", batchID, "error", err)
	}

	stats.FinishedAt = a.now()

	a.mu.Lock()
	a.lastStats = stats
	a.mu.Unlock()

	slog.Info("Aggregation run finished",
		"batch", stats.BatchName,
		"duration", stats.FinishedAt.Sub(stats.StartedAt).String(),
		"fetched", stats.Fetched,
		"after_time_filter", stats.AfterTimeFilter,
		"after_popularity_filter", stats.AfterPopularityFilter,
		"duplicates", stats.Duplicates,
		"similar_titles", stats.SimilarTitles,
		"low_quality", stats.LowQuality,
		"saved", stats.Saved,
		"quota_units", stats.QuotaUnits)

	return stats, nil
}

// fetchAll runs every fetcher as an independent task and joins the results.
// Fetchers share no mutable state, so the join needs no locking beyond the
// per-slot slices.
func (a *Aggregator) fetchAll(ctx context.Context, grouped map[string][]database.Source) []sources.Item {
	results := make(map[string][]sources.Item, len(a.fetchers))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for kind, fetcher := range a.fetchers {
		g.Go(func() error {
			fetched := fetcher.Fetch(gctx, grouped[kind])
			mu.Lock()
			results[kind] = fetched
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	var items []sources.Item
	for _, fetched := range results {
		items = append(items, fetched...)
	}

	return items
}

// processItems runs the sequential dedup, score, categorize, persist loop.
// It is deliberately not concurrent: each duplicate check must observe every
// record committed earlier in the same run.
func (a *Aggregator) processItems(items []sources.Item, stats *RunStats) {
	for _, item := range items {
		check, err := a.dedup.Check(item)
		if err != nil {
			slog.Error("Duplicate check failed, skipping item", "title", item.Title, "error", err)
			stats.StoreErrors++
			continue
		}
		if check.IsDuplicate {
			if check.Reason == ReasonSimilarTitle {
				stats.SimilarTitles++
			} else {
				stats.Duplicates++
			}
			continue
		}
		stats.AfterDedup++

		score := a.scorer.Score(Metrics{
			Kind:        item.Kind,
			SourceName:  item.SourceName,
			Engagement:  item.Engagement,
			PublishedAt: item.PublishedAt,
			Title:       item.Title,
			Summary:     item.Summary,
		})
		if score < a.minQualityScore {
			slog.Debug("Skipping low-quality item", "title", item.Title, "score", score)
			stats.LowQuality++
			continue
		}
		stats.AfterQualityFilter++

		category, tagName := a.categorizer.Run(item.Title, item.Summary)

		record := database.ContentItem{
			Title:         item.Title,
			Summary:       item.Summary,
			Link:          item.Link,
			NormalizedURL: check.NormalizedURL,
			ContentHash:   check.ContentHash,
			SourceKind:    string(item.Kind),
			SourceName:    item.SourceName,
			ThumbnailURL:  item.ThumbnailURL,
			PublishedAt:   item.PublishedAt,
			Engagement:    item.Engagement,
			QualityScore:  score,
			CategoryID:    &category.ID,
			BatchID:       &stats.BatchID,
		}

		itemID, err := a.contentRepo.Insert(record)
		if err != nil {
			slog.Error("Failed to persist item", "title", item.Title, "error", err)
			stats.StoreErrors++
			continue
		}

		if tagID, err := a.tagRepo.FindOrCreate(tagName); err != nil {
			slog.Warn("Failed to resolve tag", "tag", tagName, "error", err)
		} else if err := a.contentRepo.AttachTag(itemID, tagID); err != nil {
			slog.Warn("Failed to attach tag", "tag", tagName, "item", itemID, "error", err)
		}

		stats.Saved++
		stats.SavedByKind[item.Kind]++
	}
}
