package services

import (
	"errors"
	"log"
	"regexp"
	"strings"

	"blogcms/internal/models"
	"blogcms/internal/repositories"
	"blogcms/internal/validation"
	"blogcms/pkg/rabbitmq"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ArticleListParams controls the public listing query.
type ArticleListParams struct {
	IsPublished bool
}

// ContentService handles business logic for the article lifecycle:
// validated create/update/delete/fetch, publish-state transitions and
// SEO metadata projection. It also owns category management.
type ContentService struct {
	articleRepo  repositories.ArticleRepository
	categoryRepo repositories.CategoryRepository
	validate     *validation.Validator
	mqClient     *rabbitmq.Client
}

// NewContentService creates a new ContentService. mqClient may be nil,
// in which case publish events are skipped.
func NewContentService(articleRepo repositories.ArticleRepository, categoryRepo repositories.CategoryRepository, mqClient *rabbitmq.Client) *ContentService {
	return &ContentService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		validate:     validation.New(),
		mqClient:     mqClient,
	}
}

// CreateArticle validates the input, resolves the category reference and
// stores the new article. The article starts as a draft unless a publish
// timestamp is explicitly supplied. The created record is returned with
// its category and author expanded.
func (s *ContentService) CreateArticle(input validation.ArticleCreateInput) Envelope[*models.Article] {
	if input.Slug == "" {
		input.Slug = Slugify(input.Title)
	}
	if input.Robots == "" {
		input.Robots = string(models.RobotsIndexFollow)
	}
	if fieldErrors := s.validate.Check(input); fieldErrors != nil {
		return invalid[*models.Article](fieldErrors)
	}

	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.Article]("Category not found with id: " + input.CategoryID)
		}
		log.Printf("Failed to resolve category %s: %v", input.CategoryID, err)
		return failure[*models.Article](msgInternalError)
	}

	if existing, err := s.articleRepo.GetBySlug(input.Slug); err == nil && existing != nil {
		return failure[*models.Article]("Article already exists with slug: " + input.Slug)
	}

	article := &models.Article{
		Title:       input.Title,
		Slug:        input.Slug,
		Image:       input.Image,
		Description: input.Description,
		Content:     input.Content,
		CategoryID:  input.CategoryID,
		Tags:        input.Tags,
		AuthorID:    input.AuthorID,
		PublishedAt: input.PublishedAt,
		Robots:      models.Robots(input.Robots),
	}
	if err := s.articleRepo.Create(article); err != nil {
		log.Printf("Failed to create article: %v", err)
		return failure[*models.Article](msgInternalError)
	}

	created, err := s.articleRepo.GetByID(article.ID)
	if err != nil {
		log.Printf("Failed to reload created article %s: %v", article.ID, err)
		return failure[*models.Article](msgInternalError)
	}
	if created.IsPublished() {
		s.publishArticleEvent(created)
	}
	return success(sanitizeArticle(created), "Article created successfully")
}

// UpdateArticle validates the input and persists the changes, including
// the one-way draft to published transition via PublishedAt. The slug of
// a published article is immutable.
func (s *ContentService) UpdateArticle(id string, input validation.ArticleUpdateInput) Envelope[*models.Article] {
	existing, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.Article]("Article not found with id: " + id)
		}
		log.Printf("Failed to fetch article %s: %v", id, err)
		return failure[*models.Article](msgInternalError)
	}

	if fieldErrors := s.validate.Check(input); fieldErrors != nil {
		return invalid[*models.Article](fieldErrors)
	}

	if input.Slug != existing.Slug {
		if existing.IsPublished() {
			return failure[*models.Article]("Slug cannot be changed after publishing: " + existing.Slug)
		}
		if other, err := s.articleRepo.GetBySlug(input.Slug); err == nil && other != nil {
			return failure[*models.Article]("Article already exists with slug: " + input.Slug)
		}
	}

	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.Article]("Category not found with id: " + input.CategoryID)
		}
		log.Printf("Failed to resolve category %s: %v", input.CategoryID, err)
		return failure[*models.Article](msgInternalError)
	}

	wasDraft := !existing.IsPublished()

	existing.Title = input.Title
	existing.Slug = input.Slug
	existing.Image = input.Image
	existing.Description = input.Description
	existing.Content = input.Content
	existing.CategoryID = input.CategoryID
	existing.Tags = input.Tags
	existing.Robots = models.Robots(input.Robots)
	// There is no unpublish transition: a nil timestamp on input leaves
	// a published article published.
	if input.PublishedAt != nil {
		existing.PublishedAt = input.PublishedAt
	}

	if err := s.articleRepo.Update(existing); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.Article]("Article not found with id: " + id)
		}
		log.Printf("Failed to update article %s: %v", id, err)
		return failure[*models.Article](msgInternalError)
	}

	updated, err := s.articleRepo.GetByID(id)
	if err != nil {
		log.Printf("Failed to reload updated article %s: %v", id, err)
		return failure[*models.Article](msgInternalError)
	}
	if wasDraft && updated.IsPublished() {
		s.publishArticleEvent(updated)
	}
	return success(sanitizeArticle(updated), "Article updated successfully")
}

// DeleteArticle removes an article by id and returns the removed record.
func (s *ContentService) DeleteArticle(id string) Envelope[*models.Article] {
	existing, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.Article]("Article not found with id: " + id)
		}
		log.Printf("Failed to fetch article %s: %v", id, err)
		return failure[*models.Article](msgInternalError)
	}

	if err := s.articleRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.Article]("Article not found with id: " + id)
		}
		log.Printf("Failed to delete article %s: %v", id, err)
		return failure[*models.Article](msgInternalError)
	}
	return success(sanitizeArticle(existing), "Article deleted successfully")
}

// GetArticlesPublic returns the full article projection, filtered by
// publish state according to params.
func (s *ContentService) GetArticlesPublic(params ArticleListParams) Envelope[[]models.Article] {
	articles, err := s.articleRepo.GetAll(params.IsPublished)
	if err != nil {
		log.Printf("Failed to fetch articles: %v", err)
		return failure[[]models.Article](msgInternalError)
	}
	sanitized := make([]models.Article, 0, len(articles))
	for i := range articles {
		sanitized = append(sanitized, *sanitizeArticle(&articles[i]))
	}
	return success(sanitized, "Articles fetched successfully")
}

// GetArticles returns the reduced projection used by admin index views.
// Entries carry no content body.
func (s *ContentService) GetArticles() Envelope[[]models.ArticleForList] {
	articles, err := s.articleRepo.GetForList()
	if err != nil {
		log.Printf("Failed to fetch articles for list: %v", err)
		return failure[[]models.ArticleForList](msgInternalError)
	}
	return success(articles, "Articles fetched successfully")
}

// GetArticleByID returns a single article by id with relations expanded.
func (s *ContentService) GetArticleByID(id string) Envelope[*models.Article] {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.Article]("Article not found with id: " + id)
		}
		log.Printf("Failed to fetch article %s: %v", id, err)
		return failure[*models.Article](msgInternalError)
	}
	return success(sanitizeArticle(article), "Article fetched successfully")
}

// GetArticleBySlug returns a single article by slug with relations expanded.
func (s *ContentService) GetArticleBySlug(slug string) Envelope[*models.Article] {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.Article]("Article not found with slug: " + slug)
		}
		log.Printf("Failed to fetch article by slug %s: %v", slug, err)
		return failure[*models.Article](msgInternalError)
	}
	return success(sanitizeArticle(article), "Article fetched successfully")
}

// GetArticleMetadataBySlug returns only the SEO fields of an article.
func (s *ContentService) GetArticleMetadataBySlug(slug string) Envelope[*models.ArticleMetadata] {
	metadata, err := s.articleRepo.GetMetadataBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.ArticleMetadata]("Article not found with slug: " + slug)
		}
		log.Printf("Failed to fetch article metadata by slug %s: %v", slug, err)
		return failure[*models.ArticleMetadata](msgInternalError)
	}
	return success(metadata, "Article fetched successfully")
}

// CreateCategory validates the input and stores a new category.
func (s *ContentService) CreateCategory(input validation.CategoryInput) Envelope[*models.Category] {
	if input.Slug == "" {
		input.Slug = Slugify(input.Name)
	}
	if fieldErrors := s.validate.Check(input); fieldErrors != nil {
		return invalid[*models.Category](fieldErrors)
	}

	if existing, err := s.categoryRepo.GetBySlug(input.Slug); err == nil && existing != nil {
		return failure[*models.Category]("Category already exists with slug: " + input.Slug)
	}

	category := &models.Category{
		Name: input.Name,
		Slug: input.Slug,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		log.Printf("Failed to create category: %v", err)
		return failure[*models.Category](msgInternalError)
	}
	return success(category, "Category created successfully")
}

// GetCategories returns all categories.
func (s *ContentService) GetCategories() Envelope[[]models.Category] {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		log.Printf("Failed to fetch categories: %v", err)
		return failure[[]models.Category](msgInternalError)
	}
	return success(categories, "Categories fetched successfully")
}

// GetCategoryBySlug returns a single category by slug.
func (s *ContentService) GetCategoryBySlug(slug string) Envelope[*models.Category] {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.Category]("Category not found with slug: " + slug)
		}
		log.Printf("Failed to fetch category by slug %s: %v", slug, err)
		return failure[*models.Category](msgInternalError)
	}
	return success(category, "Category fetched successfully")
}

// sanitizeArticle reduces the expanded author to its public fields. The
// article holds only a weak reference to its author, so email, role and
// credential never belong in an article payload.
func sanitizeArticle(article *models.Article) *models.Article {
	sanitized := *article
	sanitized.Author = models.User{
		ID:   article.Author.ID,
		Name: article.Author.Name,
	}
	return &sanitized
}

// publishArticleEvent emits an article.published event. Publication is
// best-effort: a broker failure is logged and never fails the request.
func (s *ContentService) publishArticleEvent(article *models.Article) {
	if s.mqClient == nil {
		return
	}
	event := map[string]interface{}{
		"articleID":   article.ID,
		"slug":        article.Slug,
		"publishedAt": article.PublishedAt,
	}
	if err := s.mqClient.PublishArticlePublished(event); err != nil {
		log.Printf("Warning: Failed to publish article event for article %s: %v", article.ID, err)
	}
}
