package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"blogcms/internal/services"
	"blogcms/internal/validation"
)

// ArticleHandler handles HTTP requests for articles.
type ArticleHandler struct {
	contentService *services.ContentService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(contentService *services.ContentService) *ArticleHandler {
	return &ArticleHandler{
		contentService: contentService,
	}
}

// RegisterPublicRoutes registers the unauthenticated article routes.
func (h *ArticleHandler) RegisterPublicRoutes(router fiber.Router) {
	articleRoutes := router.Group("/articles")
	articleRoutes.Get("/", h.HandleListPublic)
	articleRoutes.Get("/:slug", h.HandleGetBySlug)
	articleRoutes.Get("/:slug/metadata", h.HandleGetMetadata)
}

// RegisterAdminRoutes registers the article management routes.
func (h *ArticleHandler) RegisterAdminRoutes(router fiber.Router) {
	articleRoutes := router.Group("/articles")
	articleRoutes.Get("/", h.HandleList)
	articleRoutes.Get("/:id", h.HandleGetByID)
	articleRoutes.Post("/", h.HandleCreate)
	articleRoutes.Put("/:id", h.HandleUpdate)
	articleRoutes.Delete("/:id", h.HandleDelete)
}

// HandleListPublic returns the full article projection. Published-only
// is the default; drafts are included with ?published=false.
func (h *ArticleHandler) HandleListPublic(c *fiber.Ctx) error {
	params := services.ArticleListParams{
		IsPublished: c.QueryBool("published", true),
	}
	res := h.contentService.GetArticlesPublic(params)
	return respond(c, res, "articles", fiber.StatusOK)
}

// HandleList returns the reduced index projection of all articles.
func (h *ArticleHandler) HandleList(c *fiber.Ctx) error {
	res := h.contentService.GetArticles()
	return respond(c, res, "articles", fiber.StatusOK)
}

// HandleGetBySlug returns a single article by slug.
func (h *ArticleHandler) HandleGetBySlug(c *fiber.Ctx) error {
	res := h.contentService.GetArticleBySlug(c.Params("slug"))
	return respond(c, res, "article", fiber.StatusOK)
}

// HandleGetMetadata returns the SEO metadata of an article.
func (h *ArticleHandler) HandleGetMetadata(c *fiber.Ctx) error {
	res := h.contentService.GetArticleMetadataBySlug(c.Params("slug"))
	return respond(c, res, "metadata", fiber.StatusOK)
}

// HandleGetByID returns a single article by id.
func (h *ArticleHandler) HandleGetByID(c *fiber.Ctx) error {
	res := h.contentService.GetArticleByID(c.Params("id"))
	return respond(c, res, "article", fiber.StatusOK)
}

// HandleCreate creates a new article. The authenticated actor becomes
// the author when the input does not name one.
func (h *ArticleHandler) HandleCreate(c *fiber.Ctx) error {
	var input validation.ArticleCreateInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create article request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Invalid request body",
		})
	}
	if input.AuthorID == "" {
		if actorID, ok := c.Locals("user_id").(string); ok {
			input.AuthorID = actorID
		}
	}
	res := h.contentService.CreateArticle(input)
	return respond(c, res, "article", fiber.StatusCreated)
}

// HandleUpdate updates an existing article.
func (h *ArticleHandler) HandleUpdate(c *fiber.Ctx) error {
	var input validation.ArticleUpdateInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update article request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Invalid request body",
		})
	}
	res := h.contentService.UpdateArticle(c.Params("id"), input)
	return respond(c, res, "article", fiber.StatusOK)
}

// HandleDelete deletes an article by id.
func (h *ArticleHandler) HandleDelete(c *fiber.Ctx) error {
	res := h.contentService.DeleteArticle(c.Params("id"))
	return respond(c, res, "article", fiber.StatusOK)
}
