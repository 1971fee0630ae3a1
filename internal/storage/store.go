package storage

import (
	"errors"
	"time"

	"github.com/syaoranea/FlowChat/internal/models"
)

// ErrNotFound is returned by point lookups when the record is absent.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for storage operations. The
// conversation methods assume at most one in-flight handling per
// phone at a time; the transport delivers one message per sender, so
// last-writer-wins on save is acceptable.
type Store interface {
	// Conversation operations
	GetConversation(phone string) (*models.ConversationState, error)
	GetOrCreateConversation(phone string) (*models.ConversationState, error)
	SaveConversation(state *models.ConversationState) error
	AppendInteraction(entry *models.InteractionLog) error

	// Catalog operations (active records only)
	ListCategories() ([]string, error)
	ListProductsByCategory(category string) ([]*models.Product, error)
	ListSkusByProduct(productID string) ([]*models.Sku, error)
	GetProduct(id string) (*models.Product, error)
	GetSku(id string) (*models.Sku, error)
	GetSkuByCode(code string) (*models.Sku, error)

	// StockTotal sums the stock ledger for a SKU code. 0 means the
	// ledger has no rows for that code.
	StockTotal(skuCode string) (int, error)

	// Quote operations
	CreateQuote(customerName, phone string, items []models.QuoteItem, subtotal float64, validityDays int) (*models.Quote, error)
	GetQuoteByNumber(formattedNumber string) (*models.Quote, error)
	ListExpiredQuotes(asOf time.Time) ([]*models.Quote, error)
	UpdateQuoteStatus(id, status string) error
}
