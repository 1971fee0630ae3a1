package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/syaoranea/FlowChat/internal/services"
	"github.com/syaoranea/FlowChat/internal/utils"
)

// WhatsAppHandler handles WhatsApp webhook requests.
type WhatsAppHandler struct {
	router        *services.Router
	twilioService *services.TwilioService
}

// NewWhatsAppHandler creates a new WhatsApp handler. twilioService may
// be nil in development; replies are then only logged.
func NewWhatsAppHandler(router *services.Router, twilioService *services.TwilioService) *WhatsAppHandler {
	return &WhatsAppHandler{
		router:        router,
		twilioService: twilioService,
	}
}

// TwilioWebhookPayload is the inbound WhatsApp message form Twilio posts.
type TwilioWebhookPayload struct {
	MessageSid string `form:"MessageSid"`
	AccountSid string `form:"AccountSid"`
	From       string `form:"From"` // "whatsapp:+5511999999999"
	To         string `form:"To"`
	Body       string `form:"Body"`
	NumMedia   string `form:"NumMedia"`
}

// HandleWebhook processes incoming WhatsApp messages.
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	log.Printf("📱 WhatsApp message from %s: %s", payload.From, payload.Body)

	if payload.Body != "" && payload.From != "" {
		from := utils.NormalizePhone(payload.From)

		response, err := h.router.ProcessMessage(from, payload.Body)
		if err != nil {
			log.Printf("Error processing message: %v", err)
		}

		if h.twilioService != nil && response != "" {
			if err := h.twilioService.SendWhatsAppMessage(from, response); err != nil {
				log.Printf("❌ Failed to send WhatsApp response: %v", err)
			} else {
				log.Printf("✅ Response sent to %s", from)
			}
		} else {
			log.Printf("📤 Response (not sent - Twilio not configured): %s", response)
		}
	}

	return c.SendStatus(fiber.StatusOK)
}

// HandleStatusWebhook receives message delivery status updates.
func (h *WhatsAppHandler) HandleStatusWebhook(c *fiber.Ctx) error {
	messageSid := c.FormValue("MessageSid")
	messageStatus := c.FormValue("MessageStatus")

	log.Printf("📊 Status update - SID: %s, Status: %s", messageSid, messageStatus)

	return c.SendString("OK")
}

// TestWebhookPayload is the JSON shape for the development test endpoint.
type TestWebhookPayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// HandleTestWebhook processes test messages without Twilio (for development).
func (h *WhatsAppHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}

	log.Printf("🧪 Test webhook from %s: %s", payload.Phone, payload.Message)

	phone := utils.NormalizePhone(payload.Phone)
	response, err := h.router.ProcessMessage(phone, payload.Message)
	if err != nil {
		log.Printf("Error processing test message: %v", err)
	}

	return c.JSON(fiber.Map{
		"success":  err == nil,
		"phone":    phone,
		"response": response,
	})
}
