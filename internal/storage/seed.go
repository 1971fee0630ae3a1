package storage

import "github.com/syaoranea/FlowChat/internal/models"

// SeedDemoCatalog loads a small demo catalog into a memory store,
// for development without a database and for tests.
func SeedDemoCatalog(m *MemoryStore) {
	products := []*models.Product{
		{ID: "prod_001", Name: "Camiseta Básica", Description: "Camiseta 100% algodão", Category: "Roupas", Active: true, AttributeNames: []string{"Cor", "Tamanho"}},
		{ID: "prod_002", Name: "Calça Jeans", Description: "Calça jeans tradicional", Category: "Roupas", Active: true, AttributeNames: []string{"Cor", "Tamanho"}},
		{ID: "prod_003", Name: "Notebook Dell", Description: "Notebook Dell Inspiron 15", Category: "Informática", Active: true},
		{ID: "prod_004", Name: "Mouse Wireless", Description: "Mouse sem fio Logitech", Category: "Informática", Active: true, AttributeNames: []string{"Cor"}},
		{ID: "prod_005", Name: "Fone Bluetooth", Description: "Fone de ouvido Bluetooth", Category: "Eletrônicos", Active: true, AttributeNames: []string{"Cor"}},
	}

	skus := []*models.Sku{
		{ID: "sku_001", ProductID: "prod_001", Code: "CAM-PRE-M", Price: 59.90, Stock: 10, Active: true, Attributes: map[string]string{"Cor": "Preto", "Tamanho": "M"}},
		{ID: "sku_002", ProductID: "prod_001", Code: "CAM-PRE-G", Price: 59.90, Stock: 8, Active: true, Attributes: map[string]string{"Cor": "Preto", "Tamanho": "G"}},
		{ID: "sku_003", ProductID: "prod_001", Code: "CAM-BRA-M", Price: 59.90, Stock: 5, Active: true, Attributes: map[string]string{"Cor": "Branco", "Tamanho": "M"}},
		{ID: "sku_004", ProductID: "prod_002", Code: "CAL-AZU-42", Price: 149.90, Stock: 6, Active: true, Attributes: map[string]string{"Cor": "Azul", "Tamanho": "42"}},
		{ID: "sku_005", ProductID: "prod_002", Code: "CAL-PRE-42", Price: 149.90, Stock: 4, Active: true, Attributes: map[string]string{"Cor": "Preto", "Tamanho": "42"}},
		{ID: "sku_006", ProductID: "prod_003", Code: "NOTE-DELL-01", Price: 3499.00, Stock: 3, Active: true},
		{ID: "sku_007", ProductID: "prod_004", Code: "MOU-PRE-01", Price: 89.90, Stock: 15, Active: true, Attributes: map[string]string{"Cor": "Preto"}},
		{ID: "sku_008", ProductID: "prod_004", Code: "MOU-BRA-01", Price: 89.90, Stock: 12, Active: true, Attributes: map[string]string{"Cor": "Branco"}},
		{ID: "sku_009", ProductID: "prod_005", Code: "FON-PRE-01", Price: 199.90, Stock: 20, Active: true, Attributes: map[string]string{"Cor": "Preto"}},
	}

	for _, p := range products {
		m.AddProduct(p)
	}
	for _, s := range skus {
		m.AddSku(s)
		m.AddStockEntry(&models.StockEntry{SkuCode: s.Code, Quantity: s.Stock, Location: "principal"})
	}
}
