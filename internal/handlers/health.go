package handlers

import "github.com/gofiber/fiber/v2"

// HealthHandler handles health check requests
type HealthHandler struct {
	CompanyName string
	Version     string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(companyName, version string) *HealthHandler {
	return &HealthHandler{
		CompanyName: companyName,
		Version:     version,
	}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "FlowChat",
		"company": h.CompanyName,
		"version": h.Version,
	})
}
