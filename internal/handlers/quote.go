package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/syaoranea/FlowChat/internal/storage"
)

// QuoteHandler serves generated quotes to the back office.
type QuoteHandler struct {
	store storage.Store
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(store storage.Store) *QuoteHandler {
	return &QuoteHandler{store: store}
}

// GetByNumber returns a quote by its formatted number (ORC-2026-00001).
func (h *QuoteHandler) GetByNumber(c *fiber.Ctx) error {
	number := c.Params("number")

	quote, err := h.store.GetQuoteByNumber(number)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch quote",
		})
	}

	return c.JSON(quote)
}
