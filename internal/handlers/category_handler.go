package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"blogcms/internal/services"
	"blogcms/internal/validation"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	contentService *services.ContentService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(contentService *services.ContentService) *CategoryHandler {
	return &CategoryHandler{
		contentService: contentService,
	}
}

// RegisterPublicRoutes registers the unauthenticated category routes.
func (h *CategoryHandler) RegisterPublicRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Get("/:slug", h.HandleGetBySlug)
}

// RegisterAdminRoutes registers the category management routes.
func (h *CategoryHandler) RegisterAdminRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Post("/", h.HandleCreate)
}

// HandleList returns all categories.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	res := h.contentService.GetCategories()
	return respond(c, res, "categories", fiber.StatusOK)
}

// HandleGetBySlug returns a single category by slug.
func (h *CategoryHandler) HandleGetBySlug(c *fiber.Ctx) error {
	res := h.contentService.GetCategoryBySlug(c.Params("slug"))
	return respond(c, res, "category", fiber.StatusOK)
}

// HandleCreate creates a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var input validation.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Invalid request body",
		})
	}
	res := h.contentService.CreateCategory(input)
	return respond(c, res, "category", fiber.StatusCreated)
}
