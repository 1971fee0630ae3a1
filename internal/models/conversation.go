package models

import "time"

// Stage is the fine-grained step within the active flow (or the
// pre-flow onboarding sequence).
type Stage string

const (
	StageStart        Stage = "start"
	StageAwaitingName Stage = "awaiting_name"
	StageMainMenu     Stage = "main_menu"

	// Quote flow
	StageQuoteCategory Stage = "quote_category"
	StageQuoteProduct  Stage = "quote_product"
	StageQuoteVariant  Stage = "quote_variant"
	StageQuoteQuantity Stage = "quote_quantity"
	StageQuoteContinue Stage = "quote_continue"

	// Purchase flow
	StagePurchaseConfirmName Stage = "purchase_confirm_name"

	// After-sales flow
	StageAfterSalesConfirmName Stage = "aftersales_confirm_name"
	StageAfterSalesOrderNumber Stage = "aftersales_order_number"

	// Human agent
	StageHumanHandoff Stage = "human_handoff"
)

// Flow is the active top-level conversational journey.
type Flow string

const (
	FlowNone         Flow = "none"
	FlowQuote        Flow = "quote"
	FlowPurchase     Flow = "purchase"
	FlowAfterSales   Flow = "aftersales"
	FlowHumanHandoff Flow = "human_handoff"
)

// LineItem is one line of a pending quote. Immutable once appended.
// SequenceNumber is a 1-based display ordinal, not a durable id.
type LineItem struct {
	SequenceNumber int               `json:"sequence_number"`
	SkuCode        string            `json:"sku_code"`
	ProductID      string            `json:"product_id"`
	ProductName    string            `json:"product_name"`
	Description    string            `json:"description"`
	Quantity       int               `json:"quantity"`
	UnitPrice      float64           `json:"unit_price"`
	Total          float64           `json:"total"`
	Attributes     map[string]string `json:"attributes"`
}

// PendingOrder is the quote being assembled during the Quote flow.
// Subtotal is maintained incrementally and always equals the sum of
// the line totals.
type PendingOrder struct {
	LineItems []LineItem `json:"line_items"`
	Subtotal  float64    `json:"subtotal"`
}

// AddItem appends a line item with the next sequence number and bumps
// the running subtotal.
func (o *PendingOrder) AddItem(item LineItem) {
	item.SequenceNumber = len(o.LineItems) + 1
	o.LineItems = append(o.LineItems, item)
	o.Subtotal += item.Total
}

// Scratch holds transient working data for the active flow. It is
// cleared whenever the flow exits or the conversation resets.
//
// The option maps carry only the key needed to re-resolve the entity
// (category name, product id, SKU id); the selection is looked up
// again in the catalog when used. Each map is valid only for the menu
// that most recently populated it.
type Scratch struct {
	SelectedCategory  string `json:"selected_category,omitempty"`
	SelectedProductID string `json:"selected_product_id,omitempty"`
	SelectedSkuID     string `json:"selected_sku_id,omitempty"`
	SelectedQuantity  int    `json:"selected_quantity,omitempty"`

	CategoryOptions map[string]string `json:"category_options,omitempty"`
	ProductOptions  map[string]string `json:"product_options,omitempty"`
	SkuOptions      map[string]string `json:"sku_options,omitempty"`

	PendingOrder *PendingOrder `json:"pending_order,omitempty"`
	OrderNumber  string        `json:"order_number,omitempty"`
}

// ConversationState is the persisted conversation of one customer,
// keyed by phone number. Each inbound message loads, mutates and
// re-saves it; per-phone serialization is the transport's concern.
type ConversationState struct {
	Phone       string    `json:"phone" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Stage       Stage     `json:"stage"`
	Flow        Flow      `json:"flow"`
	Scratch     Scratch   `json:"scratch" gorm:"serializer:json"`
	Escalated   bool      `json:"escalated"`
	LastUpdated time.Time `json:"last_updated"`
}

// NewConversationState creates the initial state for an unknown phone.
func NewConversationState(phone string) *ConversationState {
	return &ConversationState{
		Phone:       phone,
		Stage:       StageStart,
		Flow:        FlowNone,
		LastUpdated: time.Now().UTC(),
	}
}

// Reset returns the conversation to the main menu and discards all
// flow progress, including any pending order.
func (s *ConversationState) Reset() {
	s.Stage = StageMainMenu
	s.Flow = FlowNone
	s.Scratch = Scratch{}
	s.Escalated = false
}

// Escalate hands the conversation to a human agent. Scratch is left
// untouched so a partial quote survives the handoff.
func (s *ConversationState) Escalate() {
	s.Stage = StageHumanHandoff
	s.Flow = FlowHumanHandoff
	s.Escalated = true
}
