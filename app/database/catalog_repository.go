package database

import (
	"fmt"
)

// CategoryStoreRepository handles read-only access to categories
type CategoryStoreRepository struct {
	db *DB
}

func NewCategoryStoreRepository(db *DB) *CategoryStoreRepository {
	return &CategoryStoreRepository{db: db}
}

func (r *CategoryStoreRepository) GetAll() ([]Category, error) {
	rows, err := r.db.Query(`SELECT id, slug, name FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Slug, &cat.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}

// TagStoreRepository handles find-or-create access to tags
type TagStoreRepository struct {
	db *DB
}

func NewTagStoreRepository(db *DB) *TagStoreRepository {
	return &TagStoreRepository{db: db}
}

func (r *TagStoreRepository) FindOrCreate(name string) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO tags (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to find or create tag: %w", err)
	}
	return id, nil
}
