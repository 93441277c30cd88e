package aggregator

import (
	"time"

	"github.com/devradar/devradar/app/sources"
)

// RunStats is the sole output contract of an aggregation run: per-stage item
// counts, per-kind saved counts, API quota spent and skip-reason breakdowns.
type RunStats struct {
	BatchID    string    `json:"batch_id"`
	BatchName  string    `json:"batch_name"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Fetched               int `json:"fetched"`
	AfterTimeFilter       int `json:"after_time_filter"`
	AfterPopularityFilter int `json:"after_popularity_filter"`
	AfterDedup            int `json:"after_dedup"`
	AfterQualityFilter    int `json:"after_quality_filter"`
	Saved                 int `json:"saved"`

	SavedByKind map[sources.ItemKind]int `json:"saved_by_kind"`

	QuotaUnits int `json:"quota_units"`

	Duplicates    int `json:"duplicates"`
	SimilarTitles int `json:"similar_titles"`
	LowQuality    int `json:"low_quality"`
	StoreErrors   int `json:"store_errors"`
}

func newRunStats(startedAt time.Time) *RunStats {
	return &RunStats{
		StartedAt:   startedAt,
		SavedByKind: make(map[sources.ItemKind]int),
	}
}
