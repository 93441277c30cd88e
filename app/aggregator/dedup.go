package aggregator

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/devradar/devradar/app/database"
	"github.com/devradar/devradar/app/sources"
)

const (
	recentTitleWindow   = 100
	similarityThreshold = 0.85
)

// Skip reasons reported in run statistics.
const (
	ReasonDuplicate    = "duplicate"
	ReasonSimilarTitle = "similar_title"
)

// trackingParams are stripped from URLs before duplicate comparison.
// utm_* is handled by prefix.
var trackingParams = map[string]bool{
	"ref":     true,
	"source":  true,
	"fbclid":  true,
	"gclid":   true,
	"yclid":   true,
	"msclkid": true,
	"twclid":  true,
	"igshid":  true,
	"mc_cid":  true,
	"mc_eid":  true,
}

// NormalizeURL produces the canonical duplicate key for a link: tracking
// query parameters and the fragment stripped, trailing slash removed, and
// the whole thing lower-cased.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return strings.ToLower(strings.TrimSuffix(trimmed, "/"))
	}

	query := parsed.Query()
	for param := range query {
		lower := strings.ToLower(param)
		if strings.HasPrefix(lower, "utm_") || trackingParams[lower] {
			query.Del(param)
		}
	}
	parsed.RawQuery = query.Encode()
	parsed.Fragment = ""

	normalized := parsed.String()
	normalized = strings.TrimSuffix(normalized, "/")

	return strings.ToLower(normalized)
}

// ContentHash digests the lower-cased, whitespace-collapsed title and summary
// into a stable duplicate key independent of the URL.
func ContentHash(title, summary string) string {
	content := collapseWhitespace(title) + "|" + collapseWhitespace(summary)
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// TitleSimilarity returns normalized Levenshtein similarity in [0,1] over the
// whitespace-collapsed, lower-cased titles. Equal inputs (including two empty
// strings) short-circuit to 1.0.
func TitleSimilarity(a, b string) float64 {
	a = collapseWhitespace(a)
	b = collapseWhitespace(b)

	if a == b {
		return 1.0
	}

	// ComputeDistance counts runes, so the denominator must too or
	// multi-byte titles inflate the ratio.
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

// CheckResult carries the dedup verdict together with the duplicate keys
// computed along the way, so persistence does not recompute them.
type CheckResult struct {
	IsDuplicate   bool
	Reason        string
	NormalizedURL string
	ContentHash   string
}

// Deduplicator decides whether an equivalent record already exists, using
// three exact keys (link, normalized URL, content hash) plus a fuzzy title
// comparison against the most recent records.
type Deduplicator struct {
	contentRepo database.ContentRepository
}

func NewDeduplicator(contentRepo database.ContentRepository) *Deduplicator {
	return &Deduplicator{contentRepo: contentRepo}
}

func (d *Deduplicator) Check(item sources.Item) (CheckResult, error) {
	result := CheckResult{
		NormalizedURL: NormalizeURL(item.Link),
		ContentHash:   ContentHash(item.Title, item.Summary),
	}

	existing, err := d.contentRepo.FindByAnyKey(item.Link, result.NormalizedURL, result.ContentHash)
	if err != nil {
		return result, err
	}

	if existing != nil {
		result.IsDuplicate = true
		result.Reason = ReasonDuplicate
		if existing.NewsletterID != nil {
			slog.Debug("Skipping item already used in a newsletter",
				"title", item.Title, "existing", existing.ID)
		} else {
			slog.Debug("Skipping duplicate item",
				"title", item.Title, "existing", existing.ID)
		}
		return result, nil
	}

	recent, err := d.contentRepo.GetRecent(recentTitleWindow)
	if err != nil {
		return result, err
	}

	for _, record := range recent {
		if TitleSimilarity(item.Title, record.Title) >= similarityThreshold {
			result.IsDuplicate = true
			result.Reason = ReasonSimilarTitle
			slog.Debug("Skipping item with similar title",
				"title", item.Title, "existing_title", record.Title, "existing", record.ID)
			return result, nil
		}
	}

	return result, nil
}
