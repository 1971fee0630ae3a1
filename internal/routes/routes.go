package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/syaoranea/FlowChat/internal/config"
	"github.com/syaoranea/FlowChat/internal/handlers"
	"github.com/syaoranea/FlowChat/internal/middleware"
	"github.com/syaoranea/FlowChat/internal/services"
	"github.com/syaoranea/FlowChat/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, router *services.Router, twilioService *services.TwilioService, settings *config.Settings) {
	whatsappHandler := handlers.NewWhatsAppHandler(router, twilioService)
	healthHandler := handlers.NewHealthHandler(settings.CompanyName, "1.0.0")
	quoteHandler := handlers.NewQuoteHandler(store)
	authHandler := handlers.NewAuthHandler(settings)

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "online",
			"service": "WhatsApp E-commerce Chatbot",
			"company": settings.CompanyName,
			"version": "1.0.0",
		})
	})

	app.Get("/health", healthHandler.Check)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	if settings.Environment == "development" || settings.DisableWebhookValidation {
		webhooks.Post("/whatsapp", whatsappHandler.HandleWebhook)
		log.Println("⚠️  WhatsApp webhook validation DISABLED for development")
	} else {
		webhooks.Post("/whatsapp", middleware.ValidateTwilioSignature(settings.TwilioAuthToken), whatsappHandler.HandleWebhook)
	}
	webhooks.Post("/whatsapp/status", whatsappHandler.HandleStatusWebhook)

	// ========== TEST ROUTES (Development Only) ==========
	app.Post("/test/whatsapp", whatsappHandler.HandleTestWebhook)

	// ========== AUTH ==========
	app.Post("/auth/login", authHandler.Login)

	// ========== BACK-OFFICE API ==========
	api := app.Group("/api", middleware.RequireJWT(settings.JWTSecret))
	api.Get("/quotes/:number", quoteHandler.GetByNumber)
}
