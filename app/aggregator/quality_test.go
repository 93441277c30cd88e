package aggregator

import (
	"testing"
	"time"

	"github.com/devradar/devradar/app/sources"
)

func fixedScorer(now time.Time) *Scorer {
	s := NewScorer()
	s.now = func() time.Time { return now }
	return s
}

func TestScorer_UnknownSourceArticle(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	scorer := fixedScorer(now)

	// Unknown source falls to the article default (20), flat engagement for
	// articles (20), published one hour ago (20), and three keyword hits (6).
	score := scorer.Score(Metrics{
		Kind:        sources.KindArticle,
		SourceName:  "Some Random Blog",
		Engagement:  0,
		PublishedAt: now.Add(-time.Hour),
		Title:       "Rust Compiler Performance Internals",
	})

	if score != 66 {
		t.Errorf("Expected score 66, got %d", score)
	}
}

func TestScorer_KnownSourceReputation(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	scorer := fixedScorer(now)

	known := scorer.Score(Metrics{
		Kind:        sources.KindArticle,
		SourceName:  "Ars Technica",
		PublishedAt: now.Add(-time.Hour),
		Title:       "Quiet Afternoon",
	})
	unknown := scorer.Score(Metrics{
		Kind:        sources.KindArticle,
		SourceName:  "Obscure Blog",
		PublishedAt: now.Add(-time.Hour),
		Title:       "Quiet Afternoon",
	})

	if known-unknown != 7 {
		t.Errorf("Expected reputation delta of 7 points, got %d", known-unknown)
	}
}

func TestScorer_RedditEngagementNormalization(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	scorer := fixedScorer(now)

	tests := []struct {
		engagement int
		expected   int
	}{
		{0, 0},
		{250, 20},
		{500, 40},
		{5000, 40},
	}

	for _, tt := range tests {
		m := Metrics{Kind: sources.KindReddit, Engagement: tt.engagement, PublishedAt: now}
		if got := scorer.engagementScore(m); got != tt.expected {
			t.Errorf("engagementScore(reddit, %d) = %d, expected %d", tt.engagement, got, tt.expected)
		}
	}
}

func TestScorer_HackerNewsEngagement(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	scorer := fixedScorer(now)

	withPoints := scorer.engagementScore(Metrics{
		Kind:       sources.KindArticle,
		SourceName: sources.HackerNewsSourceName,
		Engagement: 50,
	})
	if withPoints != 20 {
		t.Errorf("Expected 50 points to normalize to 20, got %d", withPoints)
	}

	// A zero point count means the backfill failed; fall back to the flat
	// article score rather than punishing the item.
	withoutPoints := scorer.engagementScore(Metrics{
		Kind:       sources.KindArticle,
		SourceName: sources.HackerNewsSourceName,
		Engagement: 0,
	})
	if withoutPoints != 20 {
		t.Errorf("Expected flat fallback of 20, got %d", withoutPoints)
	}
}

func TestScorer_RecencyBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	scorer := fixedScorer(now)

	tests := []struct {
		age      time.Duration
		expected int
	}{
		{time.Hour, 20},
		{7 * time.Hour, 18},
		{13 * time.Hour, 15},
		{30 * time.Hour, 10},
		{60 * time.Hour, 5},
		{100 * time.Hour, 2},
	}

	for _, tt := range tests {
		m := Metrics{PublishedAt: now.Add(-tt.age)}
		if got := scorer.recencyScore(m); got != tt.expected {
			t.Errorf("recencyScore(age=%v) = %d, expected %d", tt.age, got, tt.expected)
		}
	}
}

func TestScorer_RelevanceCapped(t *testing.T) {
	scorer := NewScorer()

	m := Metrics{
		Title:   "AI LLM Machine Learning GPT Security Kubernetes Docker Postgres",
		Summary: "rust python typescript react cloud api performance compiler",
	}
	if got := scorer.relevanceScore(m); got != 10 {
		t.Errorf("Expected relevance capped at 10, got %d", got)
	}

	if got := scorer.relevanceScore(Metrics{Title: "Quiet Afternoon"}); got != 0 {
		t.Errorf("Expected zero relevance without keywords, got %d", got)
	}
}

func TestScorer_Bounds(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	scorer := fixedScorer(now)

	best := scorer.Score(Metrics{
		Kind:        sources.KindReddit,
		SourceName:  "Hacker News",
		Engagement:  1000000,
		PublishedAt: now,
		Title:       "AI LLM Machine Learning GPT Security Kubernetes",
	})
	if best > 100 {
		t.Errorf("Expected score bounded at 100, got %d", best)
	}

	worst := scorer.Score(Metrics{
		Kind:        sources.ItemKind("unknown"),
		SourceName:  "Nobody",
		Engagement:  0,
		PublishedAt: now.Add(-1000 * time.Hour),
		Title:       "Quiet Afternoon",
	})
	if worst < 0 {
		t.Errorf("Expected score bounded at 0, got %d", worst)
	}
}
