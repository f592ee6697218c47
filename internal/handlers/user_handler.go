package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"blogcms/internal/services"
	"blogcms/internal/validation"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	identityService *services.IdentityService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(identityService *services.IdentityService) *UserHandler {
	return &UserHandler{
		identityService: identityService,
	}
}

// RegisterAdminRoutes registers the user management routes.
func (h *UserHandler) RegisterAdminRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleList)
	userRoutes.Get("/:id", h.HandleGetByID)
	userRoutes.Post("/", h.HandleCreate)
	userRoutes.Put("/:id", h.HandleUpdate)
	userRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns all users, credentials stripped.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	res := h.identityService.GetAllUsers()
	return respond(c, res, "users", fiber.StatusOK)
}

// HandleGetByID returns a single user by id.
func (h *UserHandler) HandleGetByID(c *fiber.Ctx) error {
	res := h.identityService.GetUserByID(c.Params("id"))
	return respond(c, res, "user", fiber.StatusOK)
}

// HandleCreate creates a new user.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var input validation.UserCreateInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Invalid request body",
		})
	}
	res := h.identityService.CreateUser(input)
	return respond(c, res, "user", fiber.StatusCreated)
}

// HandleUpdate updates an existing user.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var input validation.UserUpdateInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Invalid request body",
		})
	}
	res := h.identityService.UpdateUser(c.Params("id"), input)
	return respond(c, res, "user", fiber.StatusOK)
}

// HandleDelete deletes a user by id.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	res := h.identityService.DeleteUser(c.Params("id"))
	return respond(c, res, "user", fiber.StatusOK)
}
