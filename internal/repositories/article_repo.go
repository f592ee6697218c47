package repositories

import "blogcms/internal/models"

// ArticleRepository defines the interface for article data access.
// Read operations return articles with Category and Author expanded.
type ArticleRepository interface {
	GetAll(publishedOnly bool) ([]models.Article, error)
	GetForList() ([]models.ArticleForList, error)
	GetByID(id string) (*models.Article, error)
	GetBySlug(slug string) (*models.Article, error)
	GetMetadataBySlug(slug string) (*models.ArticleMetadata, error)
	Create(article *models.Article) error
	Update(article *models.Article) error
	Delete(id string) error
}
