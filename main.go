package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"blogcms/internal/handlers"
	"blogcms/internal/middleware"
	"blogcms/internal/models"
	"blogcms/internal/repositories"
	"blogcms/internal/services"
	"blogcms/pkg/rabbitmq"
)

// buildRepositories wires the record store. With a DSN the store is
// PostgreSQL via GORM; without one the in-memory repositories are used,
// which is enough for local development.
func buildRepositories(databaseDSN string) (repositories.ArticleRepository, repositories.CategoryRepository, repositories.UserRepository, error) {
	if databaseDSN == "" {
		log.Println("DATABASE_DSN not set, using in-memory repositories")
		categoryRepo := repositories.NewMockCategoryRepository()
		userRepo := repositories.NewMockUserRepository()
		articleRepo := repositories.NewMockArticleRepository(categoryRepo, userRepo)
		return articleRepo, categoryRepo, userRepo, nil
	}

	db, err := gorm.Open(postgres.Open(databaseDSN), &gorm.Config{})
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.AutoMigrate(&models.Category{}, &models.User{}, &models.Article{}); err != nil {
		return nil, nil, nil, err
	}
	return repositories.NewGORMArticleRepository(db),
		repositories.NewGORMCategoryRepository(db),
		repositories.NewGORMUserRepository(db),
		nil
}

// buildApp assembles the Fiber application from the given collaborators.
func buildApp(contentService *services.ContentService, identityService *services.IdentityService, authService *services.AuthService) *fiber.App {
	contentHandler := handlers.NewArticleHandler(contentService)
	categoryHandler := handlers.NewCategoryHandler(contentService)
	userHandler := handlers.NewUserHandler(identityService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	contentHandler.RegisterPublicRoutes(apiV1)
	categoryHandler.RegisterPublicRoutes(apiV1)

	// Admin routes (role ADMIN)
	adminRoutes := apiV1.Group("/admin",
		middleware.AuthRequired(authService),
		middleware.RequireRole(string(models.RoleAdmin)),
	)
	contentHandler.RegisterAdminRoutes(adminRoutes)
	categoryHandler.RegisterAdminRoutes(adminRoutes)
	userHandler.RegisterAdminRoutes(adminRoutes)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("JWT_SECRET", "change_me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("ADMIN_EMAIL", "admin@example.com")
	viper.SetDefault("ADMIN_PASSWORD", "admin-password")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Record store ---
	articleRepo, categoryRepo, userRepo, err := buildRepositories(databaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize record store: %v", err)
	}
	if databaseDSN == "" {
		seedAdmin(userRepo, viper.GetString("ADMIN_EMAIL"), viper.GetString("ADMIN_PASSWORD"))
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Failed to initialize RabbitMQ client, publish events disabled: %v", err)
		} else {
			defer mqClient.Close()
		}
	}

	// --- Services ---
	contentService := services.NewContentService(articleRepo, categoryRepo, mqClient)
	identityService := services.NewIdentityService(userRepo)
	authService := services.NewAuthService(userRepo, jwtSecret)

	app := buildApp(contentService, identityService, authService)

	// --- Article event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for article events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received article event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeArticleEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedAdmin populates the in-memory user repository with a bootstrap
// admin so the management routes are usable without a database.
func seedAdmin(repo repositories.UserRepository, email, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing seed admin password: %v", err)
		return
	}
	admin := models.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := repo.Create(&admin); err != nil {
		log.Printf("Error seeding admin user: %v", err)
		return
	}
	log.Printf("Seeded admin user: %s (ID: %s)", admin.Email, admin.ID)
}
