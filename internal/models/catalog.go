package models

import "time"

// Product is a sellable item grouping one or more SKUs.
// AttributeNames lists the variant axes (e.g. "Cor", "Tamanho") in
// display order; products with a single SKU usually declare none.
type Product struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category" gorm:"index"`
	Active         bool      `json:"active"`
	AttributeNames []string  `json:"attribute_names" gorm:"serializer:json"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Sku is a purchasable variant of a product with its own price and
// stock. Attributes maps attribute name to value ({"Cor": "Preto"}).
type Sku struct {
	ID         string            `json:"id" gorm:"primaryKey"`
	ProductID  string            `json:"product_id" gorm:"index"`
	Code       string            `json:"sku" gorm:"column:sku_code;index"`
	Price      float64           `json:"price"`
	Stock      int               `json:"stock"`
	Active     bool              `json:"active"`
	Attributes map[string]string `json:"attributes" gorm:"serializer:json"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// StockEntry is one row of the stock ledger. The available quantity
// of a SKU is the sum of its entries; when the ledger has rows for a
// SKU it overrides the embedded Sku.Stock field.
type StockEntry struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	SkuCode  string `json:"sku" gorm:"column:sku_code;index"`
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
}

// ProductListing is a product enriched for the quote flow's product
// menu: its active SKUs and the price range across them. Built per
// display, never persisted.
type ProductListing struct {
	Product  *Product
	Skus     []*Sku
	PriceMin float64
	PriceMax float64
}
