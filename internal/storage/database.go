package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/syaoranea/FlowChat/internal/models"
)

// DatabaseStore implements Store backed by PostgreSQL via GORM.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Conversation operations

func (d *DatabaseStore) GetConversation(phone string) (*models.ConversationState, error) {
	var state models.ConversationState
	err := d.db.First(&state, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (d *DatabaseStore) GetOrCreateConversation(phone string) (*models.ConversationState, error) {
	state, err := d.GetConversation(phone)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	state = models.NewConversationState(phone)
	if err := d.db.Create(state).Error; err != nil {
		return nil, err
	}
	return state, nil
}

func (d *DatabaseStore) SaveConversation(state *models.ConversationState) error {
	state.LastUpdated = time.Now().UTC()
	return d.db.Save(state).Error
}

func (d *DatabaseStore) AppendInteraction(entry *models.InteractionLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	return d.db.Create(entry).Error
}

// Catalog operations

func (d *DatabaseStore) ListCategories() ([]string, error) {
	var categories []string
	err := d.db.Model(&models.Product{}).
		Where("active = ?", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (d *DatabaseStore) ListProductsByCategory(category string) ([]*models.Product, error) {
	var products []*models.Product
	err := d.db.
		Where("category = ? AND active = ?", category, true).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (d *DatabaseStore) ListSkusByProduct(productID string) ([]*models.Sku, error) {
	var skus []*models.Sku
	err := d.db.
		Where("product_id = ? AND active = ?", productID, true).
		Order("id").
		Find(&skus).Error
	if err != nil {
		return nil, err
	}
	return skus, nil
}

func (d *DatabaseStore) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	err := d.db.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (d *DatabaseStore) GetSku(id string) (*models.Sku, error) {
	var sku models.Sku
	err := d.db.First(&sku, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sku, nil
}

func (d *DatabaseStore) GetSkuByCode(code string) (*models.Sku, error) {
	var sku models.Sku
	err := d.db.First(&sku, "sku_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sku, nil
}

func (d *DatabaseStore) StockTotal(skuCode string) (int, error) {
	var total *int
	err := d.db.Model(&models.StockEntry{}).
		Where("sku_code = ?", skuCode).
		Select("SUM(quantity)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// Quote operations

func (d *DatabaseStore) CreateQuote(customerName, phone string, items []models.QuoteItem, subtotal float64, validityDays int) (*models.Quote, error) {
	now := time.Now().UTC()
	var quote *models.Quote

	err := d.db.Transaction(func(tx *gorm.DB) error {
		var seq models.QuoteSequence
		if err := tx.FirstOrCreate(&seq, models.QuoteSequence{ID: 1}).Error; err != nil {
			return err
		}

		seq.LastNumber++
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}

		quote = &models.Quote{
			ID:              models.QuoteDocID(now.Year(), seq.LastNumber),
			Number:          seq.LastNumber,
			FormattedNumber: models.FormatQuoteNumber(now.Year(), seq.LastNumber),
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

		return tx.Create(quote).Error
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (d *DatabaseStore) GetQuoteByNumber(formattedNumber string) (*models.Quote, error) {
	var quote models.Quote
	err := d.db.First(&quote, "formatted_number = ?", formattedNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (d *DatabaseStore) ListExpiredQuotes(asOf time.Time) ([]*models.Quote, error) {
	var quotes []*models.Quote
	err := d.db.
		Where("status = ? AND expires_at < ?", models.QuoteStatusDraft, asOf).
		Order("number").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (d *DatabaseStore) UpdateQuoteStatus(id, status string) error {
	result := d.db.Model(&models.Quote{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
