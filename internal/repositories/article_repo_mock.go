package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"blogcms/internal/models"
)

// MockArticleRepository is an in-memory implementation of ArticleRepository.
type MockArticleRepository struct {
	articles   map[string]models.Article
	categories *MockCategoryRepository
	users      *MockUserRepository
	mu         sync.RWMutex
}

// NewMockArticleRepository creates a new instance of MockArticleRepository.
// Category and user repositories are needed to expand relations on reads.
func NewMockArticleRepository(categories *MockCategoryRepository, users *MockUserRepository) *MockArticleRepository {
	return &MockArticleRepository{
		articles:   make(map[string]models.Article),
		categories: categories,
		users:      users,
	}
}

// expand fills the Category and Author relations from the sibling repositories.
func (r *MockArticleRepository) expand(article models.Article) models.Article {
	if r.categories != nil {
		if category, err := r.categories.GetByID(article.CategoryID); err == nil {
			article.Category = *category
		}
	}
	if r.users != nil {
		if author, err := r.users.GetByID(article.AuthorID); err == nil {
			article.Author = *author
		}
	}
	return article
}

// GetAll returns all articles, optionally restricted to published ones.
func (r *MockArticleRepository) GetAll(publishedOnly bool) ([]models.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	articleList := make([]models.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if publishedOnly && a.PublishedAt == nil {
			continue
		}
		articleList = append(articleList, r.expand(a))
	}
	return articleList, nil
}

// GetForList returns the reduced list projection of all articles.
func (r *MockArticleRepository) GetForList() ([]models.ArticleForList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.ArticleForList, 0, len(r.articles))
	for _, a := range r.articles {
		expanded := r.expand(a)
		list = append(list, models.ArticleForList{
			ID:          expanded.ID,
			Title:       expanded.Title,
			Slug:        expanded.Slug,
			Category:    models.CategoryRef{Name: expanded.Category.Name, Slug: expanded.Category.Slug},
			Author:      models.AuthorRef{Name: expanded.Author.Name},
			PublishedAt: expanded.PublishedAt,
		})
	}
	return list, nil
}

// GetByID returns an article by its ID.
func (r *MockArticleRepository) GetByID(id string) (*models.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	article, ok := r.articles[id]
	if !ok {
		return nil, fmt.Errorf("article with ID %s: %w", id, ErrNotFound)
	}
	expanded := r.expand(article)
	return &expanded, nil
}

// GetBySlug returns an article by its slug.
func (r *MockArticleRepository) GetBySlug(slug string) (*models.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.articles {
		if a.Slug == slug {
			expanded := r.expand(a)
			return &expanded, nil
		}
	}
	return nil, fmt.Errorf("article with slug %s: %w", slug, ErrNotFound)
}

// GetMetadataBySlug returns the SEO projection of an article.
func (r *MockArticleRepository) GetMetadataBySlug(slug string) (*models.ArticleMetadata, error) {
	article, err := r.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	return &models.ArticleMetadata{
		Title:       article.Title,
		Description: article.Description,
		Robots:      article.Robots,
		Author:      article.Author.Name,
	}, nil
}

// Create adds a new article.
func (r *MockArticleRepository) Create(article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	r.articles[article.ID] = *article
	return nil
}

// Update modifies an existing article.
func (r *MockArticleRepository) Update(article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[article.ID]; !ok {
		return fmt.Errorf("article with ID %s for update: %w", article.ID, ErrNotFound)
	}
	r.articles[article.ID] = *article
	return nil
}

// Delete removes an article by its ID.
func (r *MockArticleRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[id]; !ok {
		return fmt.Errorf("article with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.articles, id)
	return nil
}
