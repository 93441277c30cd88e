package database

import (
	"fmt"
)

// SourceStoreRepository handles database operations for ingestion sources
type SourceStoreRepository struct {
	db *DB
}

func NewSourceStoreRepository(db *DB) *SourceStoreRepository {
	return &SourceStoreRepository{db: db}
}

// GetActiveGrouped loads all active sources in one query and groups them by
// kind in memory, so the run coordinator makes a single store round-trip
// instead of one per fetcher.
func (r *SourceStoreRepository) GetActiveGrouped() (map[string][]Source, error) {
	rows, err := r.db.Query(`
		SELECT id, kind, name, COALESCE(url, ''), active, metadata::text, created_at
		FROM sources
		WHERE active = true
		ORDER BY kind, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get active sources: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]Source)
	for rows.Next() {
		var src Source
		err := rows.Scan(&src.ID, &src.Kind, &src.Name, &src.URL, &src.Active,
			&src.Metadata, &src.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		grouped[src.Kind] = append(grouped[src.Kind], src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return grouped, nil
}
