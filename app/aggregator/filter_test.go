package aggregator

import (
	"testing"
	"time"

	"github.com/devradar/devradar/app/sources"
)

func TestTimeFilter_Run(t *testing.T) {
	fixedNow := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	filter := NewTimeFilter(120)
	filter.now = func() time.Time { return fixedNow }

	items := []sources.Item{
		{Title: "Fresh", PublishedAt: fixedNow.Add(-time.Hour)},
		{Title: "At boundary", PublishedAt: fixedNow.Add(-120 * time.Hour)},
		{Title: "Just past", PublishedAt: fixedNow.Add(-120*time.Hour - time.Second)},
		{Title: "Old", PublishedAt: fixedNow.Add(-200 * time.Hour)},
	}

	kept := filter.Run(items)

	if len(kept) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(kept))
	}
	if kept[0].Title != "Fresh" || kept[1].Title != "At boundary" {
		t.Errorf("Unexpected surviving items: %q, %q", kept[0].Title, kept[1].Title)
	}
}

func TestPopularityFilter_Run(t *testing.T) {
	filter := NewPopularityFilter()

	tests := []struct {
		name     string
		item     sources.Item
		expected bool
	}{
		{"reddit at floor", sources.Item{Kind: sources.KindReddit, Engagement: 100}, true},
		{"reddit below floor", sources.Item{Kind: sources.KindReddit, Engagement: 99}, false},
		{"hacker news at floor", sources.Item{Kind: sources.KindArticle, SourceName: sources.HackerNewsSourceName, Engagement: 30}, true},
		{"hacker news below floor", sources.Item{Kind: sources.KindArticle, SourceName: sources.HackerNewsSourceName, Engagement: 29}, false},
		{"plain article without signal", sources.Item{Kind: sources.KindArticle, SourceName: "Some Blog", Engagement: 0}, true},
		{"newsletter always passes", sources.Item{Kind: sources.KindNewsletter, Engagement: 0}, true},
		{"podcast always passes", sources.Item{Kind: sources.KindPodcast, Engagement: 0}, true},
		{"video always passes", sources.Item{Kind: sources.KindVideo, Engagement: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept := filter.Run([]sources.Item{tt.item})
			if (len(kept) == 1) != tt.expected {
				t.Errorf("Expected keep=%v, got %d items", tt.expected, len(kept))
			}
		})
	}
}
