package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/syaoranea/FlowChat/internal/models"
)

// MemoryStore holds all data in memory. Used for development without
// a database and as the test fixture.
type MemoryStore struct {
	conversations map[string]*models.ConversationState
	products      map[string]*models.Product
	skus          map[string]*models.Sku
	stockEntries  []*models.StockEntry
	quotes        map[string]*models.Quote
	interactions  []*models.InteractionLog

	convMu  sync.RWMutex
	quoteMu sync.Mutex
	logMu   sync.Mutex

	quoteCounter int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*models.ConversationState),
		products:      make(map[string]*models.Product),
		skus:          make(map[string]*models.Sku),
		quotes:        make(map[string]*models.Quote),
	}
}

// AddProduct registers a product in the catalog.
func (m *MemoryStore) AddProduct(p *models.Product) {
	m.products[p.ID] = p
}

// AddSku registers a SKU in the catalog.
func (m *MemoryStore) AddSku(s *models.Sku) {
	m.skus[s.ID] = s
}

// AddStockEntry appends a ledger row for a SKU code.
func (m *MemoryStore) AddStockEntry(e *models.StockEntry) {
	m.stockEntries = append(m.stockEntries, e)
}

// Conversation operations

func (m *MemoryStore) GetConversation(phone string) (*models.ConversationState, error) {
	m.convMu.RLock()
	defer m.convMu.RUnlock()

	state, ok := m.conversations[phone]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *state
	return &copied, nil
}

func (m *MemoryStore) GetOrCreateConversation(phone string) (*models.ConversationState, error) {
	m.convMu.Lock()
	defer m.convMu.Unlock()

	if state, ok := m.conversations[phone]; ok {
		copied := *state
		return &copied, nil
	}

	state := models.NewConversationState(phone)
	m.conversations[phone] = state
	copied := *state
	return &copied, nil
}

func (m *MemoryStore) SaveConversation(state *models.ConversationState) error {
	m.convMu.Lock()
	defer m.convMu.Unlock()

	state.LastUpdated = time.Now().UTC()
	copied := *state
	m.conversations[state.Phone] = &copied
	return nil
}

func (m *MemoryStore) AppendInteraction(entry *models.InteractionLog) error {
	m.logMu.Lock()
	defer m.logMu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	m.interactions = append(m.interactions, entry)
	return nil
}

// Interactions returns the interaction log (for tests and inspection).
func (m *MemoryStore) Interactions() []*models.InteractionLog {
	m.logMu.Lock()
	defer m.logMu.Unlock()

	out := make([]*models.InteractionLog, len(m.interactions))
	copy(out, m.interactions)
	return out
}

// Catalog operations

func (m *MemoryStore) ListCategories() ([]string, error) {
	seen := make(map[string]bool)
	for _, p := range m.products {
		if p.Active && p.Category != "" {
			seen[p.Category] = true
		}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (m *MemoryStore) ListProductsByCategory(category string) ([]*models.Product, error) {
	var products []*models.Product
	for _, p := range m.products {
		if p.Active && p.Category == category {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *MemoryStore) ListSkusByProduct(productID string) ([]*models.Sku, error) {
	var skus []*models.Sku
	for _, s := range m.skus {
		if s.Active && s.ProductID == productID {
			skus = append(skus, s)
		}
	}
	sort.Slice(skus, func(i, j int) bool { return skus[i].ID < skus[j].ID })
	return skus, nil
}

func (m *MemoryStore) GetProduct(id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *MemoryStore) GetSku(id string) (*models.Sku, error) {
	s, ok := m.skus[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) GetSkuByCode(code string) (*models.Sku, error) {
	for _, s := range m.skus {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) StockTotal(skuCode string) (int, error) {
	total := 0
	for _, e := range m.stockEntries {
		if e.SkuCode == skuCode {
			total += e.Quantity
		}
	}
	return total, nil
}

// Quote operations

func (m *MemoryStore) CreateQuote(customerName, phone string, items []models.QuoteItem, subtotal float64, validityDays int) (*models.Quote, error) {
	m.quoteMu.Lock()
	defer m.quoteMu.Unlock()

	m.quoteCounter++
	number := m.quoteCounter
	now := time.Now().UTC()

	quote := &models.Quote{
		ID:              models.QuoteDocID(now.Year(), number),
		Number:          number,
		FormattedNumber: models.FormatQuoteNumber(now.Year(), number),
		Status:          models.QuoteStatusDraft,
		CustomerName:    customerName,
		CustomerPhone:   phone,
		Items:           items,
		Values: models.QuoteValues{
			Subtotal: subtotal,
			Total:    subtotal,
		},
		ExpiresAt: now.AddDate(0, 0, validityDays),
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.quotes[quote.ID] = quote
	return quote, nil
}

// QuoteCount returns how many quotes were created (for tests and inspection).
func (m *MemoryStore) QuoteCount() int {
	m.quoteMu.Lock()
	defer m.quoteMu.Unlock()
	return len(m.quotes)
}

func (m *MemoryStore) GetQuoteByNumber(formattedNumber string) (*models.Quote, error) {
	m.quoteMu.Lock()
	defer m.quoteMu.Unlock()

	for _, q := range m.quotes {
		if q.FormattedNumber == formattedNumber {
			return q, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListExpiredQuotes(asOf time.Time) ([]*models.Quote, error) {
	m.quoteMu.Lock()
	defer m.quoteMu.Unlock()

	var expired []*models.Quote
	for _, q := range m.quotes {
		if q.Status == models.QuoteStatusDraft && q.ExpiresAt.Before(asOf) {
			expired = append(expired, q)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].Number < expired[j].Number })
	return expired, nil
}

func (m *MemoryStore) UpdateQuoteStatus(id, status string) error {
	m.quoteMu.Lock()
	defer m.quoteMu.Unlock()

	q, ok := m.quotes[id]
	if !ok {
		return ErrNotFound
	}
	q.Status = status
	q.UpdatedAt = time.Now().UTC()
	return nil
}
