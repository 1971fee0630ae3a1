package models

import (
	"fmt"
	"time"
)

// Quote statuses.
const (
	QuoteStatusDraft   = "draft"
	QuoteStatusExpired = "expired"
)

// QuoteItemSnapshot freezes the variant attributes as they were when
// the quote was generated.
type QuoteItemSnapshot struct {
	Attributes map[string]string `json:"attributes"`
}

// QuoteItem is one persisted line of a generated quote.
type QuoteItem struct {
	ItemID      int               `json:"item_id"`
	SkuCode     string            `json:"sku"`
	ProductID   string            `json:"product_id"`
	Description string            `json:"description"`
	Quantity    int               `json:"quantity"`
	UnitPrice   float64           `json:"unit_price"`
	Total       float64           `json:"total"`
	Snapshot    QuoteItemSnapshot `json:"snapshot"`
}

// QuoteValues breaks down the quote total. Discount, freight and
// taxes are reserved for the human agent; the bot always writes
// Total == Subtotal.
type QuoteValues struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Freight  float64 `json:"freight"`
	Taxes    float64 `json:"taxes"`
	Total    float64 `json:"total"`
}

// Quote is a generated quote record. Number is sequential per
// installation; FormattedNumber is the customer-facing identifier.
type Quote struct {
	ID              string      `json:"id" gorm:"primaryKey"`
	Number          int         `json:"number"`
	FormattedNumber string      `json:"formatted_number" gorm:"uniqueIndex"`
	Status          string      `json:"status" gorm:"index"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone" gorm:"index"`
	Items           []QuoteItem `json:"items" gorm:"serializer:json"`
	Values          QuoteValues `json:"values" gorm:"serializer:json"`
	ExpiresAt       time.Time   `json:"expires_at"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// QuoteSequence is the single-row counter backing sequential quote
// numbering.
type QuoteSequence struct {
	ID         uint `gorm:"primaryKey"`
	LastNumber int
}

// FormatQuoteNumber renders the customer-facing quote identifier.
func FormatQuoteNumber(year, number int) string {
	return fmt.Sprintf("ORC-%d-%05d", year, number)
}

// QuoteDocID renders the storage document id for a quote.
func QuoteDocID(year, number int) string {
	return fmt.Sprintf("orc_%d_%06d", year, number)
}
