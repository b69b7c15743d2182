package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chasonjia/familytree/internal/handlers"
	"github.com/chasonjia/familytree/internal/middleware"
	"github.com/chasonjia/familytree/internal/repositories"
	"github.com/chasonjia/familytree/internal/services"
	"github.com/chasonjia/familytree/pkg/config"
	"github.com/chasonjia/familytree/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	personRepo := repositories.NewPersonRepository(database.DB)
	userRepo := repositories.NewUserRepository(database.DB)
	credRepo := repositories.NewCredentialRepository(database.DB)
	relationshipRepo := repositories.NewRelationshipRepository(database.DB)
	familyTreeRepo := repositories.NewFamilyTreeRepository(database.DB)

	credService := services.NewCredentialService(credRepo)
	authService := services.NewAuthService(credService, userRepo, personRepo)
	storyService := services.NewStoryService(personRepo)
	personService := services.NewPersonService(personRepo, storyService)
	relationshipService := services.NewRelationshipService(relationshipRepo, familyTreeRepo)
	userService := services.NewUserService(userRepo, personRepo)
	exportService := services.NewExportService(personRepo)
	mailerService := services.NewMailerService()

	// Initialize router
	router := gin.Default()

	setupRoutes(router, credService, userRepo, authService, personService, relationshipService, userService, exportService, mailerService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	credService *services.CredentialService,
	userRepo *repositories.UserRepository,
	authService *services.AuthService,
	personService *services.PersonService,
	relationshipService *services.RelationshipService,
	userService *services.UserService,
	exportService *services.ExportService,
	mailerService *services.MailerService,
) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	personHandler := handlers.NewPersonHandler(personService, exportService)
	relationshipHandler := handlers.NewRelationshipHandler(relationshipService)
	userHandler := handlers.NewUserHandler(userService)
	contactHandler := handlers.NewContactHandler(mailerService)
	healthHandler := handlers.NewHealthHandler()

	authRequired := middleware.AuthRequired(credService, userRepo)
	adminOnly := middleware.RequireRole("admin")

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	// User administration
	users := router.Group("/users")
	users.Use(authRequired)
	{
		users.GET("", adminOnly, userHandler.ListUsers)
		users.POST("", adminOnly, userHandler.CreateUser)
		users.DELETE("/:id", adminOnly, userHandler.DeleteUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.GET("/profile", userHandler.Profile)
	}

	// Person directory
	people := router.Group("/people")
	people.Use(authRequired)
	{
		people.GET("", personHandler.ListPeople)
		people.GET("/search", personHandler.SearchPeople)
		people.GET("/export", adminOnly, personHandler.ExportPeople)
		people.GET("/:id", personHandler.GetPerson)
		people.POST("", personHandler.CreatePerson)
		people.PUT("/:id", personHandler.UpdatePerson)
		people.DELETE("/:id", personHandler.DeletePerson)
		people.GET("/details/:id", personHandler.GetPersonDetails)
		people.PUT("/:id/story", personHandler.SaveStory)
	}

	// Relationship graph
	relationships := router.Group("/relationships")
	relationships.Use(authRequired)
	{
		relationships.GET("", relationshipHandler.List)
		relationships.GET("/person/:personId", relationshipHandler.ByPerson)
		relationships.GET("/parent/:parentId", relationshipHandler.ByParent)
		relationships.GET("/child/:childId", relationshipHandler.ByChild)
		relationships.POST("", relationshipHandler.Create)
		relationships.PUT("/:id", relationshipHandler.Update)
		relationships.DELETE("/:id", relationshipHandler.Delete)
	}

	// Contact form
	router.POST("/contact", contactHandler.Submit)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
