package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/syaoranea/FlowChat/database"
	"github.com/syaoranea/FlowChat/internal/config"
	"github.com/syaoranea/FlowChat/internal/jobs"
	"github.com/syaoranea/FlowChat/internal/models"
	"github.com/syaoranea/FlowChat/internal/routes"
	"github.com/syaoranea/FlowChat/internal/services"
	"github.com/syaoranea/FlowChat/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - using environment variables")
	}

	settings := config.Load()

	// Initialize storage
	var store storage.Store

	if settings.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage with demo catalog (not for production!)")
		memStore := storage.NewMemoryStore()
		storage.SeedDemoCatalog(memStore)
		store = memStore
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		db, err := database.Connect()
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		log.Println("🔄 Running database migrations...")
		err = db.AutoMigrate(
			&models.ConversationState{},
			&models.Product{},
			&models.Sku{},
			&models.StockEntry{},
			&models.Quote{},
			&models.QuoteSequence{},
			&models.InteractionLog{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(db)
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Initialize Twilio service (optional in development)
	twilioService, err := services.NewTwilioService(settings)
	if err != nil {
		log.Printf("⚠️  Twilio service not initialized: %v", err)
		log.Println("📤 Replies will only be logged")
		twilioService = nil
	} else {
		log.Println("✅ Twilio service initialized")
	}

	// Conversation engine
	router := services.NewRouter(store, settings)

	// Scheduled jobs
	expiryJob := jobs.NewQuoteExpiryJob(store)
	expiryJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "FlowChat v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	routes.SetupRoutes(app, store, router, twilioService, settings)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		expiryJob.Stop()
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 FlowChat starting on port %s", settings.Port)
	log.Printf("🏢 Company: %s", settings.CompanyName)
	log.Printf("🌍 Environment: %s", settings.Environment)
	log.Printf("📱 WhatsApp from: %s", settings.TwilioWhatsAppFrom)
	log.Println("========================================")

	if err := app.Listen(":" + settings.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
