package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"blogcms/internal/models"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories map[string]models.Category
	mu         sync.RWMutex
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]models.Category),
	}
}

// GetAll returns all categories.
func (r *MockCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categoryList := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categoryList = append(categoryList, c)
	}
	return categoryList, nil
}

// GetByID returns a category by its ID.
func (r *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	return &category, nil
}

// GetBySlug returns a category by its slug.
func (r *MockCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			category := c
			return &category, nil
		}
	}
	return nil, fmt.Errorf("category with slug %s: %w", slug, ErrNotFound)
}

// Create adds a new category.
func (r *MockCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	r.categories[category.ID] = *category
	return nil
}

// Delete removes a category by its ID.
func (r *MockCategoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return fmt.Errorf("category with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.categories, id)
	return nil
}
