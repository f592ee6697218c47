package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogcms/internal/models"
)

// GORMArticleRepository is a GORM implementation of ArticleRepository.
type GORMArticleRepository struct {
	db *gorm.DB
}

// NewGORMArticleRepository creates a new instance of GORMArticleRepository.
func NewGORMArticleRepository(db *gorm.DB) *GORMArticleRepository {
	return &GORMArticleRepository{
		db: db,
	}
}

// GetAll retrieves articles with their category and author expanded.
// When publishedOnly is true, drafts are filtered out at the query level.
func (r *GORMArticleRepository) GetAll(publishedOnly bool) ([]models.Article, error) {
	query := r.db.Preload("Category").Preload("Author")
	if publishedOnly {
		query = query.Where("published_at IS NOT NULL")
	}
	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("failed to get all articles: %w", err)
	}
	return articles, nil
}

// GetForList retrieves the reduced projection used by index views. The
// content body is never selected from the store.
func (r *GORMArticleRepository) GetForList() ([]models.ArticleForList, error) {
	var articles []models.Article
	err := r.db.
		Select("id", "title", "slug", "published_at", "category_id", "author_id").
		Preload("Category").
		Preload("Author").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get articles for list: %w", err)
	}

	list := make([]models.ArticleForList, 0, len(articles))
	for _, a := range articles {
		list = append(list, models.ArticleForList{
			ID:          a.ID,
			Title:       a.Title,
			Slug:        a.Slug,
			Category:    models.CategoryRef{Name: a.Category.Name, Slug: a.Category.Slug},
			Author:      models.AuthorRef{Name: a.Author.Name},
			PublishedAt: a.PublishedAt,
		})
	}
	return list, nil
}

// GetByID retrieves a single article by its ID.
func (r *GORMArticleRepository) GetByID(id string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Category").Preload("Author").First(&article, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article by ID %s: %w", id, err)
	}
	return &article, nil
}

// GetBySlug retrieves a single article by its slug.
func (r *GORMArticleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Category").Preload("Author").First(&article, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article with slug %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article by slug %s: %w", slug, err)
	}
	return &article, nil
}

// GetMetadataBySlug retrieves only the SEO fields of an article.
func (r *GORMArticleRepository) GetMetadataBySlug(slug string) (*models.ArticleMetadata, error) {
	var article models.Article
	err := r.db.
		Select("id", "title", "description", "robots", "author_id").
		Preload("Author").
		First(&article, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article with slug %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article metadata by slug %s: %w", slug, err)
	}
	return &models.ArticleMetadata{
		Title:       article.Title,
		Description: article.Description,
		Robots:      article.Robots,
		Author:      article.Author.Name,
	}, nil
}

// Create creates a new article in the database.
func (r *GORMArticleRepository) Create(article *models.Article) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	if err := r.db.Omit("Category", "Author").Create(article).Error; err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

// Update updates an existing article in the database.
func (r *GORMArticleRepository) Update(article *models.Article) error {
	res := r.db.Omit("Category", "Author").Save(article)
	if res.Error != nil {
		return fmt.Errorf("failed to update article: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for a missing row,
		// so RowsAffected is the only signal.
		return fmt.Errorf("article with ID %s for update: %w", article.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes an article by its ID from the database.
func (r *GORMArticleRepository) Delete(id string) error {
	res := r.db.Delete(&models.Article{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete article: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("article with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}
