package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blogcms/internal/models"
	"blogcms/internal/services"
	"blogcms/internal/validation"
)

// MockArticleRepository is a mock implementation of repositories.ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) GetAll(publishedOnly bool) ([]models.Article, error) {
	args := m.Called(publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetForList() ([]models.ArticleForList, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ArticleForList), args.Error(1)
}

func (m *MockArticleRepository) GetByID(id string) (*models.Article, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetBySlug(slug string) (*models.Article, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetMetadataBySlug(slug string) (*models.ArticleMetadata, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ArticleMetadata), args.Error(1)
}

func (m *MockArticleRepository) Create(article *models.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockArticleRepository) Update(article *models.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var testCategory = models.Category{ID: "cat-1", Name: "Tech", Slug: "tech"}

func validArticleInput() validation.ArticleCreateInput {
	return validation.ArticleCreateInput{
		Title:       "Hello World",
		Slug:        "hello-world",
		Description: "An introduction",
		Content:     "<p>Hello</p>",
		CategoryID:  "cat-1",
		Tags:        []string{"go"},
		AuthorID:    "user-1",
		Robots:      "index,follow",
	}
}

func TestContentService_CreateArticle(t *testing.T) {
	t.Run("DefaultsToDraft", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		categoryRepo.On("GetByID", "cat-1").Return(&testCategory, nil).Once()
		articleRepo.On("GetBySlug", "hello-world").Return(nil, notFoundErr("article with slug %s", "hello-world")).Once()
		articleRepo.On("Create", mock.AnythingOfType("*models.Article")).Run(func(args mock.Arguments) {
			a := args.Get(0).(*models.Article)
			a.ID = "art-1"
			assert.Nil(t, a.PublishedAt)
		}).Return(nil).Once()
		articleRepo.On("GetByID", "art-1").Return(&models.Article{
			ID:         "art-1",
			Slug:       "hello-world",
			CategoryID: "cat-1",
			Category:   testCategory,
		}, nil).Once()

		res := contentService.CreateArticle(validArticleInput())
		assert.True(t, res.OK)
		assert.Equal(t, "Article created successfully", res.Message)
		assert.Nil(t, res.Payload.PublishedAt)
		assert.False(t, res.Payload.IsPublished())
	})

	t.Run("ExplicitPublishTimestampIsKept", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		now := time.Now()
		input := validArticleInput()
		input.PublishedAt = &now

		categoryRepo.On("GetByID", "cat-1").Return(&testCategory, nil).Once()
		articleRepo.On("GetBySlug", "hello-world").Return(nil, notFoundErr("article with slug %s", "hello-world")).Once()
		articleRepo.On("Create", mock.AnythingOfType("*models.Article")).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Article).ID = "art-1"
		}).Return(nil).Once()
		articleRepo.On("GetByID", "art-1").Return(&models.Article{ID: "art-1", Slug: "hello-world", PublishedAt: &now}, nil).Once()

		res := contentService.CreateArticle(input)
		assert.True(t, res.OK)
		assert.NotNil(t, res.Payload.PublishedAt)
	})

	t.Run("SlugDerivedFromTitle", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		input := validArticleInput()
		input.Title = "Go Generics, Explained!"
		input.Slug = ""

		categoryRepo.On("GetByID", "cat-1").Return(&testCategory, nil).Once()
		articleRepo.On("GetBySlug", "go-generics-explained").Return(nil, notFoundErr("article with slug %s", "go-generics-explained")).Once()
		articleRepo.On("Create", mock.AnythingOfType("*models.Article")).Run(func(args mock.Arguments) {
			a := args.Get(0).(*models.Article)
			a.ID = "art-1"
			assert.Equal(t, "go-generics-explained", a.Slug)
		}).Return(nil).Once()
		articleRepo.On("GetByID", "art-1").Return(&models.Article{ID: "art-1", Slug: "go-generics-explained"}, nil).Once()

		res := contentService.CreateArticle(input)
		assert.True(t, res.OK)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		categoryRepo.On("GetByID", "cat-9").Return(nil, notFoundErr("category with ID %s", "cat-9")).Once()

		input := validArticleInput()
		input.CategoryID = "cat-9"
		res := contentService.CreateArticle(input)
		assert.False(t, res.OK)
		assert.Equal(t, "Category not found with id: cat-9", res.Message)
		articleRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("DuplicateSlug", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		categoryRepo.On("GetByID", "cat-1").Return(&testCategory, nil).Once()
		articleRepo.On("GetBySlug", "hello-world").Return(&models.Article{ID: "art-0", Slug: "hello-world"}, nil).Once()

		res := contentService.CreateArticle(validArticleInput())
		assert.False(t, res.OK)
		assert.Equal(t, "Article already exists with slug: hello-world", res.Message)
		articleRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestContentService_UpdateArticle(t *testing.T) {
	draft := func() *models.Article {
		return &models.Article{
			ID:          "art-1",
			Title:       "Hello World",
			Slug:        "hello-world",
			Description: "An introduction",
			Content:     "<p>Hello</p>",
			CategoryID:  "cat-1",
			AuthorID:    "user-1",
			Robots:      models.RobotsIndexFollow,
		}
	}

	updateInput := func() validation.ArticleUpdateInput {
		return validation.ArticleUpdateInput{
			Title:       "Hello World",
			Slug:        "hello-world",
			Description: "An introduction",
			Content:     "<p>Hello</p>",
			CategoryID:  "cat-1",
			Robots:      "index,follow",
		}
	}

	t.Run("PublishTransition", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		existing := draft()
		now := time.Now()
		published := *existing
		published.PublishedAt = &now

		articleRepo.On("GetByID", "art-1").Return(existing, nil).Once()
		categoryRepo.On("GetByID", "cat-1").Return(&testCategory, nil).Once()
		articleRepo.On("Update", mock.AnythingOfType("*models.Article")).Return(nil).Once()
		articleRepo.On("GetByID", "art-1").Return(&published, nil).Once()

		input := updateInput()
		input.PublishedAt = &now
		res := contentService.UpdateArticle("art-1", input)
		assert.True(t, res.OK)
		assert.True(t, res.Payload.IsPublished())
	})

	t.Run("NoUnpublishTransition", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		now := time.Now()
		existing := draft()
		existing.PublishedAt = &now

		var updated *models.Article
		articleRepo.On("GetByID", "art-1").Return(existing, nil).Once()
		categoryRepo.On("GetByID", "cat-1").Return(&testCategory, nil).Once()
		articleRepo.On("Update", mock.AnythingOfType("*models.Article")).Run(func(args mock.Arguments) {
			updated = args.Get(0).(*models.Article)
		}).Return(nil).Once()
		articleRepo.On("GetByID", "art-1").Return(existing, nil).Once()

		// A nil timestamp on input leaves a published article published.
		res := contentService.UpdateArticle("art-1", updateInput())
		assert.True(t, res.OK)
		assert.NotNil(t, updated.PublishedAt)
	})

	t.Run("SlugImmutableOncePublished", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		now := time.Now()
		existing := draft()
		existing.PublishedAt = &now

		articleRepo.On("GetByID", "art-1").Return(existing, nil).Once()

		input := updateInput()
		input.Slug = "hello-world-v2"
		res := contentService.UpdateArticle("art-1", input)
		assert.False(t, res.OK)
		assert.Contains(t, res.Message, "Slug cannot be changed after publishing")
		articleRepo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		articleRepo.On("GetByID", "ghost").Return(nil, notFoundErr("article with ID %s", "ghost")).Once()

		res := contentService.UpdateArticle("ghost", updateInput())
		assert.False(t, res.OK)
		assert.Equal(t, "Article not found with id: ghost", res.Message)
	})
}

func TestContentService_GetArticleBySlug_NotFound(t *testing.T) {
	articleRepo := new(MockArticleRepository)
	categoryRepo := new(MockCategoryRepository)
	contentService := services.NewContentService(articleRepo, categoryRepo, nil)

	articleRepo.On("GetBySlug", "nonexistent").Return(nil, notFoundErr("article with slug %s", "nonexistent")).Once()

	res := contentService.GetArticleBySlug("nonexistent")
	assert.False(t, res.OK)
	assert.Nil(t, res.Payload)
	assert.Equal(t, "Article not found with slug: nonexistent", res.Message)
}

func TestContentService_GetArticleByID_ReturnsEntity(t *testing.T) {
	articleRepo := new(MockArticleRepository)
	categoryRepo := new(MockCategoryRepository)
	contentService := services.NewContentService(articleRepo, categoryRepo, nil)

	articleRepo.On("GetByID", "art-1").Return(&models.Article{ID: "art-1", Slug: "hello-world"}, nil).Once()

	res := contentService.GetArticleByID("art-1")
	assert.True(t, res.OK)
	assert.NotNil(t, res.Payload)
	assert.Equal(t, "art-1", res.Payload.ID)
}

func TestContentService_GetArticles(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		articleRepo.On("GetForList").Return([]models.ArticleForList{}, nil).Once()

		res := contentService.GetArticles()
		assert.True(t, res.OK)
		assert.Empty(t, res.Payload)
	})

	t.Run("ReducedProjection", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		categoryRepo := new(MockCategoryRepository)
		contentService := services.NewContentService(articleRepo, categoryRepo, nil)

		articleRepo.On("GetForList").Return([]models.ArticleForList{
			{
				ID:       "art-1",
				Title:    "Hello World",
				Slug:     "hello-world",
				Category: models.CategoryRef{Name: "Tech", Slug: "tech"},
				Author:   models.AuthorRef{Name: "Jane"},
			},
		}, nil).Once()

		res := contentService.GetArticles()
		assert.True(t, res.OK)
		assert.Len(t, res.Payload, 1)
		assert.Equal(t, "tech", res.Payload[0].Category.Slug)
	})
}

func TestContentService_GetArticlesPublic_FilterApplied(t *testing.T) {
	articleRepo := new(MockArticleRepository)
	categoryRepo := new(MockCategoryRepository)
	contentService := services.NewContentService(articleRepo, categoryRepo, nil)

	// The publish filter must reach the underlying query.
	articleRepo.On("GetAll", true).Return([]models.Article{}, nil).Once()
	res := contentService.GetArticlesPublic(services.ArticleListParams{IsPublished: true})
	assert.True(t, res.OK)

	articleRepo.On("GetAll", false).Return([]models.Article{}, nil).Once()
	res = contentService.GetArticlesPublic(services.ArticleListParams{IsPublished: false})
	assert.True(t, res.OK)

	articleRepo.AssertExpectations(t)
}

func TestContentService_GetArticleMetadataBySlug(t *testing.T) {
	articleRepo := new(MockArticleRepository)
	categoryRepo := new(MockCategoryRepository)
	contentService := services.NewContentService(articleRepo, categoryRepo, nil)

	articleRepo.On("GetMetadataBySlug", "hello-world").Return(&models.ArticleMetadata{
		Title:       "Hello World",
		Description: "An introduction",
		Robots:      models.RobotsIndexFollow,
		Author:      "Jane",
	}, nil).Once()

	res := contentService.GetArticleMetadataBySlug("hello-world")
	assert.True(t, res.OK)
	assert.Equal(t, "Jane", res.Payload.Author)

	articleRepo.On("GetMetadataBySlug", "ghost").Return(nil, notFoundErr("article with slug %s", "ghost")).Once()
	res = contentService.GetArticleMetadataBySlug("ghost")
	assert.False(t, res.OK)
	assert.Equal(t, "Article not found with slug: ghost", res.Message)
}

func TestContentService_DeleteArticle_NotFound(t *testing.T) {
	articleRepo := new(MockArticleRepository)
	categoryRepo := new(MockCategoryRepository)
	contentService := services.NewContentService(articleRepo, categoryRepo, nil)

	articleRepo.On("GetByID", "ghost").Return(nil, notFoundErr("article with ID %s", "ghost")).Once()

	res := contentService.DeleteArticle("ghost")
	assert.False(t, res.OK)
	assert.Equal(t, "Article not found with id: ghost", res.Message)
	articleRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestContentService_CreateCategory(t *testing.T) {
	articleRepo := new(MockArticleRepository)
	categoryRepo := new(MockCategoryRepository)
	contentService := services.NewContentService(articleRepo, categoryRepo, nil)

	categoryRepo.On("GetBySlug", "tech").Return(nil, notFoundErr("category with slug %s", "tech")).Once()
	categoryRepo.On("Create", mock.AnythingOfType("*models.Category")).Return(nil).Once()

	res := contentService.CreateCategory(validation.CategoryInput{Name: "Tech", Slug: "tech"})
	assert.True(t, res.OK)
	assert.Equal(t, "tech", res.Payload.Slug)
	categoryRepo.AssertExpectations(t)

	// Duplicate slug
	categoryRepo.On("GetBySlug", "tech").Return(&testCategory, nil).Once()
	res = contentService.CreateCategory(validation.CategoryInput{Name: "Tech", Slug: "tech"})
	assert.False(t, res.OK)
	assert.Equal(t, "Category already exists with slug: tech", res.Message)
}
