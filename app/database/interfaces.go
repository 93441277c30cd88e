package database

type ContentRepository interface {
	Insert(item ContentItem) (string, error)
	// FindByAnyKey returns the first record matching the raw link, the
	// normalized URL or the content hash, or nil when none match.
	FindByAnyKey(link, normalizedURL, contentHash string) (*ContentItem, error)
	// GetRecent returns the most recently created records, newest first,
	// irrespective of status.
	GetRecent(limit int) ([]ContentItem, error)
	// GetRecentWithCategory is GetRecent with the category resolved, for
	// the API listing.
	GetRecentWithCategory(limit int) ([]ContentItemWithCategory, error)
	AttachTag(itemID, tagID string) error
	GetItemCount() (int, error)
}

type SourceRepository interface {
	// GetActiveGrouped returns all active sources in a single query,
	// grouped by source kind.
	GetActiveGrouped() (map[string][]Source, error)
}

type CategoryRepository interface {
	GetAll() ([]Category, error)
}

type TagRepository interface {
	FindOrCreate(name string) (string, error)
}

type BatchRepository interface {
	Create(name string) (string, error)
	UpdateTotalItems(batchID string, totalItems int) error
}

var _ ContentRepository = (*ContentItemRepository)(nil)
var _ SourceRepository = (*SourceStoreRepository)(nil)
var _ CategoryRepository = (*CategoryStoreRepository)(nil)
var _ TagRepository = (*TagStoreRepository)(nil)
var _ BatchRepository = (*ScrapeBatchRepository)(nil)
