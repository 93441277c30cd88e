package aggregator

import (
	"time"

	"github.com/devradar/devradar/app/sources"
)

// Popularity floors applied after the fan-in, per item kind.
const (
	minRedditEngagement     = 100
	minHackerNewsEngagement = 30
)

// TimeFilter drops items older than the configured age threshold.
type TimeFilter struct {
	maxAge time.Duration
	now    func() time.Time
}

func NewTimeFilter(maxAgeHours int) *TimeFilter {
	return &TimeFilter{
		maxAge: time.Duration(maxAgeHours) * time.Hour,
		now:    time.Now,
	}
}

// Run keeps items published within the age window; an item exactly at the
// boundary is kept.
func (f *TimeFilter) Run(items []sources.Item) []sources.Item {
	cutoff := f.now().Add(-f.maxAge)

	kept := make([]sources.Item, 0, len(items))
	for _, item := range items {
		if item.PublishedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, item)
	}

	return kept
}

// PopularityFilter applies per-kind engagement floors. Curated kinds
// (newsletter, podcast) carry no native signal and always pass.
type PopularityFilter struct{}

func NewPopularityFilter() *PopularityFilter {
	return &PopularityFilter{}
}

func (f *PopularityFilter) Run(items []sources.Item) []sources.Item {
	kept := make([]sources.Item, 0, len(items))
	for _, item := range items {
		if f.keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

func (f *PopularityFilter) keep(item sources.Item) bool {
	switch item.Kind {
	case sources.KindReddit:
		return item.Engagement >= minRedditEngagement
	case sources.KindArticle:
		if item.SourceName == sources.HackerNewsSourceName {
			return item.Engagement >= minHackerNewsEngagement
		}
		return true
	default:
		return true
	}
}
