package aggregator

import (
	"fmt"
	"time"

	"github.com/devradar/devradar/app/database"
)

// fakeContentRepo is an in-memory stand-in for the content store. Inserted
// records are visible to subsequent duplicate checks, mirroring the
// sequential persistence loop.
type fakeContentRepo struct {
	records   []database.ContentItem
	insertErr error
	// findErrLink makes FindByAnyKey fail for one specific link.
	findErrLink string
}

func (r *fakeContentRepo) Insert(item database.ContentItem) (string, error) {
	if r.insertErr != nil {
		return "", r.insertErr
	}
	item.ID = fmt.Sprintf("item-%d", len(r.records)+1)
	item.Status = database.StatusPending
	item.CreatedAt = time.Now().UTC()
	r.records = append(r.records, item)
	return item.ID, nil
}

func (r *fakeContentRepo) FindByAnyKey(link, normalizedURL, contentHash string) (*database.ContentItem, error) {
	if r.findErrLink != "" && link == r.findErrLink {
		return nil, fmt.Errorf("connection reset")
	}
	for i := range r.records {
		record := &r.records[i]
		if record.Link == link || record.NormalizedURL == normalizedURL || record.ContentHash == contentHash {
			return record, nil
		}
	}
	return nil, nil
}

func (r *fakeContentRepo) GetRecent(limit int) ([]database.ContentItem, error) {
	recent := make([]database.ContentItem, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, r.records[i])
	}
	return recent, nil
}

func (r *fakeContentRepo) GetRecentWithCategory(limit int) ([]database.ContentItemWithCategory, error) {
	recent, _ := r.GetRecent(limit)
	joined := make([]database.ContentItemWithCategory, 0, len(recent))
	for _, record := range recent {
		joined = append(joined, database.ContentItemWithCategory{ContentItem: record})
	}
	return joined, nil
}

func (r *fakeContentRepo) AttachTag(itemID, tagID string) error { return nil }

func (r *fakeContentRepo) GetItemCount() (int, error) { return len(r.records), nil }

type fakeSourceRepo struct {
	grouped map[string][]database.Source
}

func (r *fakeSourceRepo) GetActiveGrouped() (map[string][]database.Source, error) {
	return r.grouped, nil
}

type fakeCategoryRepo struct {
	categories []database.Category
}

func (r *fakeCategoryRepo) GetAll() ([]database.Category, error) {
	return r.categories, nil
}

type fakeTagRepo struct {
	tags map[string]string
}

func (r *fakeTagRepo) FindOrCreate(name string) (string, error) {
	if r.tags == nil {
		r.tags = map[string]string{}
	}
	if id, ok := r.tags[name]; ok {
		return id, nil
	}
	id := fmt.Sprintf("tag-%d", len(r.tags)+1)
	r.tags[name] = id
	return id, nil
}

type fakeBatchRepo struct {
	batches map[string]int
	created int
}

func (r *fakeBatchRepo) Create(name string) (string, error) {
	if r.batches == nil {
		r.batches = map[string]int{}
	}
	r.created++
	id := fmt.Sprintf("batch-%d", r.created)
	r.batches[id] = 0
	return id, nil
}

func (r *fakeBatchRepo) UpdateTotalItems(batchID string, totalItems int) error {
	r.batches[batchID] = totalItems
	return nil
}

var _ database.ContentRepository = (*fakeContentRepo)(nil)
var _ database.SourceRepository = (*fakeSourceRepo)(nil)
var _ database.CategoryRepository = (*fakeCategoryRepo)(nil)
var _ database.TagRepository = (*fakeTagRepo)(nil)
var _ database.BatchRepository = (*fakeBatchRepo)(nil)

func testCategories() []database.Category {
	return []database.Category{
		{ID: "cat-1", Slug: "ai-ml", Name: "AI & Machine Learning"},
		{ID: "cat-2", Slug: "frontend", Name: "Frontend Engineering"},
		{ID: "cat-3", Slug: "backend", Name: "Backend & Architecture"},
		{ID: "cat-4", Slug: "devops-cloud", Name: "DevOps & Cloud"},
		{ID: "cat-5", Slug: "security", Name: "Security"},
		{ID: "cat-6", Slug: "languages", Name: "Programming Languages"},
		{ID: "cat-7", Slug: "startups", Name: "Startups & Business"},
		{ID: "cat-8", Slug: "general", Name: "General"},
	}
}

func testCategorizer(t interface{ Fatalf(string, ...any) }) *Categorizer {
	categorizer, err := NewCategorizer(&fakeCategoryRepo{categories: testCategories()})
	if err != nil {
		t.Fatalf("Failed to build categorizer: %v", err)
	}
	return categorizer
}
