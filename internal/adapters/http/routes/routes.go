package routes

import (
	"tms-shipflow/internal/adapters/http/handlers"
	"tms-shipflow/internal/adapters/http/middleware"
	"tms-shipflow/internal/adapters/persistence/repositories"
	"tms-shipflow/internal/config"
	"tms-shipflow/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto the app
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	shipmentRepo := repositories.NewShipmentRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	roleRepo := repositories.NewUserRoleRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Services
	gateway := services.NewGateway(shipmentRepo, profileRepo, roleRepo)
	authService := services.NewAuthService(profileRepo, roleRepo, refreshTokenRepo, cfg)

	// Handlers
	graphqlHandler := handlers.NewGraphQLHandler(gateway)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()

	// Public routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (stricter rate limit)
	auth := app.Group("/api/v1/auth", middleware.AuthRateLimiter())
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(), authHandler.LogoutAll)

	// Operation gateway. Auth is optional at the transport layer; the
	// gateway itself rejects anonymous callers per operation.
	app.Post("/graphql", middleware.OptionalAuth(), graphqlHandler.Execute)
}
