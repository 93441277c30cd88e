package aggregator

import (
	"strings"
	"time"

	"github.com/devradar/devradar/app/sources"
)

// Component caps of the composite quality score. Their sum bounds the total
// at 100.
const (
	maxReputationScore = 30
	maxEngagementScore = 40
	maxRecencyScore    = 20
	maxRelevanceScore  = 10
)

// sourceReputation holds curated per-outlet reputation points (20-30).
// Unknown names fall back to a per-kind default.
var sourceReputation = map[string]int{
	"Hacker News":                28,
	"Ars Technica":               27,
	"MIT Technology Review":      28,
	"The Pragmatic Engineer":     27,
	"InfoQ":                      26,
	"Stratechery":                26,
	"TechCrunch":                 25,
	"The Changelog":              25,
	"Lobsters":                   24,
	"Wired":                      24,
	"The Verge":                  23,
	"Software Engineering Daily": 23,
	"TLDR":                       22,
	"ByteByteGo":                 22,
	"Dev.to":                     20,
}

var kindReputationDefaults = map[sources.ItemKind]int{
	sources.KindArticle:    20,
	sources.KindMedium:     20,
	sources.KindVideo:      18,
	sources.KindReddit:     15,
	sources.KindNewsletter: 22,
	sources.KindPodcast:    20,
}

const unknownKindReputation = 15

// relevanceKeywords are high-value technical terms; each one found in
// title+summary contributes 2 points, capped at 10.
var relevanceKeywords = []string{
	"ai", "llm", "machine learning", "gpt",
	"startup", "open source",
	"security", "breach", "vulnerability",
	"golang", "rust", "python", "typescript", "javascript",
	"react", "kubernetes", "docker", "postgres",
	"database", "cloud", "api", "performance", "compiler",
}

// Metrics is the transient input to quality scoring.
type Metrics struct {
	Kind        sources.ItemKind
	SourceName  string
	Engagement  int
	PublishedAt time.Time
	Title       string
	Summary     string
}

// Scorer computes a bounded composite quality score from source reputation,
// normalized engagement, recency and keyword relevance.
type Scorer struct {
	now func() time.Time
}

func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// Score returns an integer in [0,100].
func (s *Scorer) Score(m Metrics) int {
	return s.reputationScore(m) +
		s.engagementScore(m) +
		s.recencyScore(m) +
		s.relevanceScore(m)
}

func (s *Scorer) reputationScore(m Metrics) int {
	if points, ok := sourceReputation[m.SourceName]; ok {
		return min(points, maxReputationScore)
	}
	if points, ok := kindReputationDefaults[m.Kind]; ok {
		return points
	}
	return unknownKindReputation
}

func (s *Scorer) engagementScore(m Metrics) int {
	switch m.Kind {
	case sources.KindReddit:
		return normalizeEngagement(m.Engagement, 500)
	case sources.KindVideo:
		return normalizeEngagement(m.Engagement, 100000)
	case sources.KindArticle, sources.KindMedium:
		if m.SourceName == sources.HackerNewsSourceName && m.Engagement > 0 {
			return normalizeEngagement(m.Engagement, 100)
		}
		return 20
	case sources.KindNewsletter, sources.KindPodcast:
		// Curated sources carry no comparable signal; reputation does
		// the differentiating.
		return 25
	default:
		return 15
	}
}

func normalizeEngagement(engagement, scale int) int {
	score := float64(engagement) / float64(scale) * float64(maxEngagementScore)
	if score > float64(maxEngagementScore) {
		return maxEngagementScore
	}
	if score < 0 {
		return 0
	}
	return int(score)
}

func (s *Scorer) recencyScore(m Metrics) int {
	age := s.now().Sub(m.PublishedAt)

	switch {
	case age < 6*time.Hour:
		return 20
	case age < 12*time.Hour:
		return 18
	case age < 24*time.Hour:
		return 15
	case age < 48*time.Hour:
		return 10
	case age < 72*time.Hour:
		return 5
	default:
		return 2
	}
}

func (s *Scorer) relevanceScore(m Metrics) int {
	text := strings.ToLower(m.Title + " " + m.Summary)

	matches := 0
	for _, keyword := range relevanceKeywords {
		if strings.Contains(text, keyword) {
			matches++
		}
	}

	return min(matches*2, maxRelevanceScore)
}
