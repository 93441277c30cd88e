package database

import (
	"fmt"
)

// ScrapeBatchRepository handles database operations for scrape batches
type ScrapeBatchRepository struct {
	db *DB
}

func NewScrapeBatchRepository(db *DB) *ScrapeBatchRepository {
	return &ScrapeBatchRepository{db: db}
}

// Create inserts a new batch row with status pending and zero items.
func (r *ScrapeBatchRepository) Create(name string) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO scrape_batches (name, status, total_items)
		VALUES ($1, $2, 0)
		RETURNING id
	`, name, StatusPending).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create scrape batch: %w", err)
	}
	return id, nil
}

// UpdateTotalItems sets the batch's final item count. Batch status is owned
// by the review tooling and not touched here.
func (r *ScrapeBatchRepository) UpdateTotalItems(batchID string, totalItems int) error {
	result, err := r.db.Exec(`
		UPDATE scrape_batches
		SET total_items = $2
		WHERE id = $1
	`, batchID, totalItems)
	if err != nil {
		return fmt.Errorf("failed to update batch total: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check batch update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("batch not found: %s", batchID)
	}

	return nil
}
