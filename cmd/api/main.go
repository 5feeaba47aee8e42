package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ministryworks/dms-go/internal/api/handlers"
	"github.com/ministryworks/dms-go/internal/api/middleware"
	"github.com/ministryworks/dms-go/internal/api/routes"
	"github.com/ministryworks/dms-go/internal/application"
	"github.com/ministryworks/dms-go/internal/config"
	"github.com/ministryworks/dms-go/internal/config/db"
	"github.com/ministryworks/dms-go/internal/repository"
	"github.com/ministryworks/dms-go/pkg/notify"
	"github.com/ministryworks/dms-go/pkg/storage"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection
	db.Init()

	if err := db.Migrate(db.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	store, err := storage.NewMinioStore(storage.MinioConfig{
		Endpoint:  config.MinioEndpoint,
		AccessKey: config.MinioAccessKey,
		SecretKey: config.MinioSecretKey,
		Bucket:    config.MinioBucket,
		UseSSL:    config.MinioUseSSL,
		PublicURL: config.MinioPublicURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	repos := repository.New(db.DB)
	hub := notify.NewHub()
	dispatcher := application.NewNotificationDispatcher(
		repos,
		notify.NewResendSender(config.ResendAPIKey, config.EmailFrom),
		notify.NewExpoPushSender(config.ExpoPushURL),
		hub,
	)
	services := application.New(repos, store, dispatcher)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	h := handlers.New(services, hub, router)
	routes.RegisterRoutes(router, h)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
