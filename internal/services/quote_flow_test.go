package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syaoranea/FlowChat/internal/models"
	"github.com/syaoranea/FlowChat/internal/storage"
)

func startedQuote(t *testing.T, r *Router) *models.ConversationState {
	t.Helper()
	state := newOnboardedState(t, r, "Ana Maria")
	reply := r.Route(state, "1")
	require.Contains(t, reply, "Categorias disponíveis")
	require.NotNil(t, state.Scratch.PendingOrder)
	return state
}

func TestQuoteCategoryMenuIsOrdered(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)

	// Distinct categories, sorted: Eletrônicos, Informática, Roupas.
	require.Len(t, state.Scratch.CategoryOptions, 3)
	assert.Equal(t, "Eletrônicos", state.Scratch.CategoryOptions["1"])
	assert.Equal(t, "Informática", state.Scratch.CategoryOptions["2"])
	assert.Equal(t, "Roupas", state.Scratch.CategoryOptions["3"])
}

func TestQuoteInvalidCategoryRelists(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)

	reply := r.Route(state, "99")

	assert.Contains(t, reply, "Opção inválida")
	assert.Contains(t, reply, "Categorias disponíveis")
	assert.Equal(t, models.StageQuoteCategory, state.Stage)
}

func TestQuoteSingleSkuProductSkipsVariantSelection(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)

	reply := r.Route(state, "2") // Informática
	assert.Contains(t, reply, "Produtos em Informática")
	assert.Equal(t, models.StageQuoteProduct, state.Stage)

	// Notebook Dell has exactly one SKU: straight to quantity.
	reply = r.Route(state, "1")
	assert.Equal(t, models.StageQuoteQuantity, state.Stage)
	assert.Equal(t, "sku_006", state.Scratch.SelectedSkuID)
	assert.Contains(t, reply, "Notebook Dell")
	assert.Contains(t, reply, "R$ 3499.00")
	assert.Contains(t, reply, "Quantas unidades")

	reply = r.Route(state, "1")
	assert.Equal(t, models.StageQuoteContinue, state.Stage)
	assert.Contains(t, reply, "*Subtotal: R$ 3499.00*")
	require.Len(t, state.Scratch.PendingOrder.LineItems, 1)
	assert.Equal(t, 3499.00, state.Scratch.PendingOrder.Subtotal)
}

func TestQuoteMultiAttributeVariantFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)

	r.Route(state, "3") // Roupas
	reply := r.Route(state, "1") // Camiseta Básica: 2 attributes, 3 SKUs

	assert.Equal(t, models.StageQuoteVariant, state.Stage)
	require.Len(t, state.Scratch.SkuOptions, 3)
	assert.Contains(t, reply, "Escolha a variação desejada")
	assert.Contains(t, reply, "Cor: Preto / Tamanho: M")
	assert.Contains(t, reply, "Cor: Preto / Tamanho: G")
	assert.Contains(t, reply, "Cor: Branco / Tamanho: M")
	assert.Contains(t, reply, "em estoque")

	reply = r.Route(state, "2") // CAM-PRE-G
	assert.Equal(t, models.StageQuoteQuantity, state.Stage)
	assert.Contains(t, reply, "CAM-PRE-G")
	assert.Contains(t, reply, "Preto / G")

	reply = r.Route(state, "2")
	assert.Equal(t, models.StageQuoteContinue, state.Stage)

	order := state.Scratch.PendingOrder
	require.Len(t, order.LineItems, 1)
	item := order.LineItems[0]
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 59.90, item.UnitPrice)
	assert.Equal(t, item.UnitPrice*2, item.Total)
	assert.Equal(t, item.Total, order.Subtotal)
	assert.Contains(t, reply, "2x R$ 59.90")
}

func TestQuoteSubtotalInvariantAndSequenceNumbers(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)

	r.Route(state, "2") // Informática
	r.Route(state, "1") // Notebook Dell
	r.Route(state, "1") // qty 1

	r.Route(state, "1") // add more products
	r.Route(state, "2") // Informática
	r.Route(state, "2") // Mouse Wireless (2 SKUs, 1 attribute)
	require.Equal(t, models.StageQuoteVariant, state.Stage)
	r.Route(state, "1") // MOU-PRE-01
	r.Route(state, "3") // qty 3

	order := state.Scratch.PendingOrder
	require.Len(t, order.LineItems, 2)

	sum := 0.0
	for i, item := range order.LineItems {
		assert.Equal(t, i+1, item.SequenceNumber)
		assert.Equal(t, item.UnitPrice*float64(item.Quantity), item.Total)
		sum += item.Total
	}
	assert.InDelta(t, sum, order.Subtotal, 1e-9)
	assert.InDelta(t, 3499.00+3*89.90, order.Subtotal, 1e-9)
}

func TestQuoteSupersededOptionMapIsRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)

	// "3" is a valid key in the category menu (Roupas)...
	r.Route(state, "3")
	require.Equal(t, models.StageQuoteProduct, state.Stage)
	require.Len(t, state.Scratch.ProductOptions, 2)

	// ...but the product menu that replaced it has only 2 entries, so
	// the stale key must be rejected against the new map.
	reply := r.Route(state, "3")

	assert.Contains(t, reply, "Opção inválida")
	assert.Equal(t, models.StageQuoteProduct, state.Stage)
	assert.Nil(t, state.Scratch.CategoryOptions)
}

func TestQuoteVoltarAtProductStageReturnsToCategories(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)
	r.Route(state, "2")
	require.Equal(t, models.StageQuoteProduct, state.Stage)

	reply := r.Route(state, "voltar")

	assert.Equal(t, models.StageQuoteCategory, state.Stage)
	assert.Equal(t, models.FlowQuote, state.Flow)
	assert.Contains(t, reply, "Categorias disponíveis")
}

func TestQuoteVoltarElsewhereIsGlobalReset(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)
	r.Route(state, "2")
	r.Route(state, "1")
	require.Equal(t, models.StageQuoteQuantity, state.Stage)

	reply := r.Route(state, "voltar")

	assert.Equal(t, models.StageMainMenu, state.Stage)
	assert.Equal(t, models.FlowNone, state.Flow)
	assert.Contains(t, reply, "1️⃣ Orçamento")
}

func TestQuoteQuantityParseFailureReprompts(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)
	r.Route(state, "2")
	r.Route(state, "1")

	for _, input := range []string{"muitos", "1.5", "-2", "0"} {
		reply := r.Route(state, input)
		assert.Equal(t, models.StageQuoteQuantity, state.Stage, "input %q", input)
		assert.Empty(t, state.Scratch.PendingOrder.LineItems, "input %q", input)
		assert.NotContains(t, reply, "Item adicionado", "input %q", input)
	}
}

func TestQuoteQuantityAboveStockIsRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)
	r.Route(state, "2")
	r.Route(state, "1") // Notebook Dell, 3 in stock

	reply := r.Route(state, "5")

	assert.Contains(t, reply, "Quantidade indisponível")
	assert.Contains(t, reply, "*3*")
	assert.Equal(t, models.StageQuoteQuantity, state.Stage)
	assert.Empty(t, state.Scratch.PendingOrder.LineItems)
	assert.Zero(t, state.Scratch.PendingOrder.Subtotal)
}

func TestQuoteZeroStockDoesNotConstrainQuantity(t *testing.T) {
	// No ledger rows and an embedded stock of 0 mean "no stock
	// constraint", not "out of stock".
	store := storage.NewMemoryStore()
	store.AddProduct(&models.Product{ID: "prod_x", Name: "Cabo HDMI", Category: "Cabos", Active: true})
	store.AddSku(&models.Sku{ID: "sku_x", ProductID: "prod_x", Code: "CAB-HDMI-2M", Price: 25.00, Stock: 0, Active: true})
	r := NewRouter(store, testSettings())

	state := newOnboardedState(t, r, "Ana")
	r.Route(state, "1") // quote flow
	r.Route(state, "1") // Cabos
	r.Route(state, "1") // Cabo HDMI (single SKU)
	require.Equal(t, models.StageQuoteQuantity, state.Stage)

	reply := r.Route(state, "5")

	assert.Equal(t, models.StageQuoteContinue, state.Stage)
	require.Len(t, state.Scratch.PendingOrder.LineItems, 1)
	assert.Equal(t, 5, state.Scratch.PendingOrder.LineItems[0].Quantity)
	assert.Contains(t, reply, "*Subtotal: R$ 125.00*")
}

func TestQuoteContinueInvalidOptionRelists(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)
	r.Route(state, "2")
	r.Route(state, "1")
	r.Route(state, "1")
	require.Equal(t, models.StageQuoteContinue, state.Stage)

	reply := r.Route(state, "4")

	assert.Contains(t, reply, "Opção inválida")
	assert.Contains(t, reply, "1️⃣ Adicionar mais produtos")
	assert.Equal(t, models.StageQuoteContinue, state.Stage)
}

func TestQuoteFinalizeCreatesQuoteAndHandsOff(t *testing.T) {
	r, store := newTestRouter(t)
	state := startedQuote(t, r)
	r.Route(state, "2")
	r.Route(state, "1")
	r.Route(state, "1")

	reply := r.Route(state, "2") // finalize

	formatted := fmt.Sprintf("ORC-%d-00001", time.Now().UTC().Year())
	assert.Contains(t, reply, "Orçamento gerado com sucesso")
	assert.Contains(t, reply, formatted)
	assert.Contains(t, reply, "R$ 3499.00")

	assert.Equal(t, models.StageHumanHandoff, state.Stage)
	assert.Equal(t, models.FlowHumanHandoff, state.Flow)
	assert.True(t, state.Escalated)
	assert.Equal(t, models.Scratch{}, state.Scratch)

	quote, err := store.GetQuoteByNumber(formatted)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", quote.CustomerName)
	assert.Equal(t, "5511999990000", quote.CustomerPhone)
	assert.Equal(t, models.QuoteStatusDraft, quote.Status)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, 1, quote.Items[0].ItemID)
	assert.Equal(t, "NOTE-DELL-01", quote.Items[0].SkuCode)
	assert.Equal(t, quote.Values.Subtotal, quote.Values.Total)
}

func TestQuoteFinalizeWithEmptyOrderReturnsToCategories(t *testing.T) {
	r, store := newTestRouter(t)
	state := startedQuote(t, r)
	state.Stage = models.StageQuoteContinue

	reply := r.Route(state, "2")

	assert.Contains(t, reply, "vazio")
	assert.Contains(t, reply, "Categorias disponíveis")
	assert.Equal(t, models.StageQuoteCategory, state.Stage)
	assert.Zero(t, store.QuoteCount())
}

type failingQuoteStore struct {
	*storage.MemoryStore
}

func (f *failingQuoteStore) CreateQuote(string, string, []models.QuoteItem, float64, int) (*models.Quote, error) {
	return nil, fmt.Errorf("quote writer unavailable")
}

func TestQuoteFinalizeFailurePreservesPendingOrder(t *testing.T) {
	memStore := storage.NewMemoryStore()
	storage.SeedDemoCatalog(memStore)
	r := NewRouter(&failingQuoteStore{memStore}, testSettings())

	state := newOnboardedState(t, r, "Ana")
	r.Route(state, "1")
	r.Route(state, "2")
	r.Route(state, "1")
	r.Route(state, "1")
	require.Equal(t, models.StageQuoteContinue, state.Stage)

	reply := r.Route(state, "2")

	assert.Contains(t, reply, "erro ao salvar seu orçamento")
	assert.Contains(t, reply, "tentar novamente")
	assert.Equal(t, models.StageQuoteContinue, state.Stage)
	require.NotNil(t, state.Scratch.PendingOrder)
	assert.Len(t, state.Scratch.PendingOrder.LineItems, 1)
	assert.False(t, state.Escalated)
}

func TestQuoteEscalateWithPartialQuoteKeepsScratch(t *testing.T) {
	r, _ := newTestRouter(t)
	state := startedQuote(t, r)
	r.Route(state, "2")
	r.Route(state, "1")
	r.Route(state, "1")

	reply := r.Route(state, "3") // talk to an agent

	assert.Equal(t, models.StageHumanHandoff, state.Stage)
	assert.True(t, state.Escalated)
	require.NotNil(t, state.Scratch.PendingOrder)
	assert.Len(t, state.Scratch.PendingOrder.LineItems, 1)
	assert.Contains(t, reply, "orçamento parcial (R$ 3499.00)")
}

func TestQuoteEmptyCatalogExitsToMainMenu(t *testing.T) {
	store := storage.NewMemoryStore()
	r := NewRouter(store, testSettings())
	state := newOnboardedState(t, r, "Ana")

	reply := r.Route(state, "1")

	assert.Equal(t, models.StageMainMenu, state.Stage)
	assert.Equal(t, models.FlowNone, state.Flow)
	assert.Contains(t, reply, "Não encontrei categorias")
}
