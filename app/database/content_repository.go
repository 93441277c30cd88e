package database

import (
	"database/sql"
	"fmt"
)

// ContentItemRepository handles database operations for content items
type ContentItemRepository struct {
	db *DB
}

func NewContentItemRepository(db *DB) *ContentItemRepository {
	return &ContentItemRepository{db: db}
}

func (r *ContentItemRepository) Insert(item ContentItem) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO content_items (
			title, summary, link, normalized_url, content_hash,
			source_kind, source_name, thumbnail_url, published_at,
			engagement, quality_score, category_id, batch_id, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, item.Title, item.Summary, item.Link, item.NormalizedURL, item.ContentHash,
		item.SourceKind, item.SourceName, item.ThumbnailURL, item.PublishedAt,
		item.Engagement, item.QualityScore, item.CategoryID, item.BatchID,
		StatusPending).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to insert content item: %w", err)
	}

	return id, nil
}

func (r *ContentItemRepository) FindByAnyKey(link, normalizedURL, contentHash string) (*ContentItem, error) {
	row := r.db.QueryRow(`
		SELECT id, title, COALESCE(summary, ''), link, normalized_url, content_hash,
		       source_kind, source_name, COALESCE(thumbnail_url, ''), published_at,
		       engagement, quality_score, category_id, batch_id, newsletter_id,
		       status, featured_rank, created_at
		FROM content_items
		WHERE link = $1 OR normalized_url = $2 OR content_hash = $3
		LIMIT 1
	`, link, normalizedURL, contentHash)

	item, err := scanContentItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find content item: %w", err)
	}

	return item, nil
}

func (r *ContentItemRepository) GetRecent(limit int) ([]ContentItem, error) {
	rows, err := r.db.Query(`
		SELECT id, title, COALESCE(summary, ''), link, normalized_url, content_hash,
		       source_kind, source_name, COALESCE(thumbnail_url, ''), published_at,
		       engagement, quality_score, category_id, batch_id, newsletter_id,
		       status, featured_rank, created_at
		FROM content_items
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent content items: %w", err)
	}
	defer rows.Close()

	var items []ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item row: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content item rows: %w", err)
	}

	return items, nil
}

func (r *ContentItemRepository) GetRecentWithCategory(limit int) ([]ContentItemWithCategory, error) {
	rows, err := r.db.Query(`
		SELECT i.id, i.title, COALESCE(i.summary, ''), i.link, i.normalized_url, i.content_hash,
		       i.source_kind, i.source_name, COALESCE(i.thumbnail_url, ''), i.published_at,
		       i.engagement, i.quality_score, i.category_id, i.batch_id, i.newsletter_id,
		       i.status, i.featured_rank, i.created_at,
		       COALESCE(c.slug, ''), COALESCE(c.name, '')
		FROM content_items i
		LEFT JOIN categories c ON c.id = i.category_id
		ORDER BY i.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent content items with categories: %w", err)
	}
	defer rows.Close()

	var items []ContentItemWithCategory
	for rows.Next() {
		var item ContentItemWithCategory
		var categoryID, batchID, newsletterID sql.NullString
		var featuredRank sql.NullInt64

		err := rows.Scan(
			&item.ID, &item.Title, &item.Summary, &item.Link, &item.NormalizedURL,
			&item.ContentHash, &item.SourceKind, &item.SourceName, &item.ThumbnailURL,
			&item.PublishedAt, &item.Engagement, &item.QualityScore,
			&categoryID, &batchID, &newsletterID, &item.Status, &featuredRank,
			&item.CreatedAt, &item.CategorySlug, &item.CategoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item row: %w", err)
		}

		if categoryID.Valid {
			item.CategoryID = &categoryID.String
		}
		if batchID.Valid {
			item.BatchID = &batchID.String
		}
		if newsletterID.Valid {
			item.NewsletterID = &newsletterID.String
		}
		if featuredRank.Valid {
			rank := int(featuredRank.Int64)
			item.FeaturedRank = &rank
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content item rows: %w", err)
	}

	return items, nil
}

func (r *ContentItemRepository) AttachTag(itemID, tagID string) error {
	_, err := r.db.Exec(`
		INSERT INTO content_item_tags (content_item_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, itemID, tagID)
	if err != nil {
		return fmt.Errorf("failed to attach tag: %w", err)
	}
	return nil
}

func (r *ContentItemRepository) GetItemCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM content_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count content items: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContentItem(row rowScanner) (*ContentItem, error) {
	var item ContentItem
	var categoryID, batchID, newsletterID sql.NullString
	var featuredRank sql.NullInt64

	err := row.Scan(
		&item.ID, &item.Title, &item.Summary, &item.Link, &item.NormalizedURL,
		&item.ContentHash, &item.SourceKind, &item.SourceName, &item.ThumbnailURL,
		&item.PublishedAt, &item.Engagement, &item.QualityScore,
		&categoryID, &batchID, &newsletterID, &item.Status, &featuredRank,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		item.CategoryID = &categoryID.String
	}
	if batchID.Valid {
		item.BatchID = &batchID.String
	}
	if newsletterID.Valid {
		item.NewsletterID = &newsletterID.String
	}
	if featuredRank.Valid {
		rank := int(featuredRank.Int64)
		item.FeaturedRank = &rank
	}

	return &item, nil
}
