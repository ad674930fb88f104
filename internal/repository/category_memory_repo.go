package repository

import (
	"sync"

	"category_service/internal/domain"

	"github.com/sirupsen/logrus"
)

var _ domain.CategoryRepository = (*InMemoryCategoryRepository)(nil)

// InMemoryCategoryRepository holds the category list for the lifetime of the
// process. A single exclusive lock serializes every operation, and creates
// compute their id inside that critical section so concurrent creates can
// never collide or lose an insert.
type InMemoryCategoryRepository struct {
	mu         sync.Mutex
	categories []domain.Category
	log        *logrus.Logger
}

func NewInMemoryCategoryRepository(logger *logrus.Logger, seed ...domain.Category) *InMemoryCategoryRepository {
	repo := &InMemoryCategoryRepository{log: logger}
	for _, category := range seed {
		repo.InsertCategory(category)
	}
	return repo
}

// ListCategories returns the categories in insertion order. The result is a
// copy, so callers can range over it without holding up writers.
func (r *InMemoryCategoryRepository) ListCategories() []domain.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories := make([]domain.Category, len(r.categories))
	copy(categories, r.categories)
	return categories
}

// InsertCategory appends the category exactly as given. The caller guarantees
// the id is unique; seeding and tests use this to load a known initial set.
func (r *InMemoryCategoryRepository) InsertCategory(category domain.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = append(r.categories, category)
}

// CreateCategory assigns the next free id and appends. The id is one more
// than the current maximum (1 when the store is empty), recomputed from the
// live contents on every call: deleting the highest-numbered category frees
// its id for the next create.
func (r *InMemoryCategoryRepository) CreateCategory(category domain.Category) domain.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	category.ID = r.nextIDLocked()
	r.categories = append(r.categories, category)
	r.log.Infof("Category created successfully with ID: %d, Name: %s", category.ID, category.Name)
	return category
}

// RemoveCategoryByID deletes the category with the given id, preserving the
// order of the rest. It reports whether anything was removed.
func (r *InMemoryCategoryRepository) RemoveCategoryByID(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, category := range r.categories {
		if category.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			r.log.Infof("Category deleted successfully with ID: %d", id)
			return true
		}
	}

	r.log.Warnf("Attempted to delete non-existent category ID %d", id)
	return false
}

// Reset replaces the contents with the given seed. Tests use it to start
// from a known state.
func (r *InMemoryCategoryRepository) Reset(seed ...domain.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = append([]domain.Category(nil), seed...)
}

func (r *InMemoryCategoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.categories)
}

// nextIDLocked returns max existing id + 1. Callers must hold r.mu.
func (r *InMemoryCategoryRepository) nextIDLocked() int {
	maxID := 0
	for _, category := range r.categories {
		if category.ID > maxID {
			maxID = category.ID
		}
	}
	return maxID + 1
}
