package services

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/syaoranea/FlowChat/internal/config"
	"github.com/syaoranea/FlowChat/internal/models"
	"github.com/syaoranea/FlowChat/internal/storage"
)

// QuoteFlow drives the quote-building conversation: category →
// product → variant → quantity → continue/finalize. Every numbered
// menu is 1-based and its option map is valid only for the reply that
// showed it; displaying a new menu discards the previous map.
type QuoteFlow struct {
	store    storage.Store
	settings *config.Settings
}

// NewQuoteFlow creates the quote flow handler.
func NewQuoteFlow(store storage.Store, settings *config.Settings) *QuoteFlow {
	return &QuoteFlow{store: store, settings: settings}
}

// Start begins a fresh quote: new pending order, category menu.
func (f *QuoteFlow) Start(state *models.ConversationState) string {
	state.Scratch.PendingOrder = &models.PendingOrder{}
	return f.showCategories(state)
}

// Handle processes one message inside the quote flow.
func (f *QuoteFlow) Handle(state *models.ConversationState, message string) string {
	switch state.Stage {
	case models.StageQuoteCategory:
		return f.handleCategory(state, message)
	case models.StageQuoteProduct:
		return f.handleProduct(state, message)
	case models.StageQuoteVariant:
		return f.handleVariant(state, message)
	case models.StageQuoteQuantity:
		return f.handleQuantity(state, message)
	case models.StageQuoteContinue:
		return f.handleContinue(state, message)
	}
	return f.showCategories(state)
}

func (f *QuoteFlow) showCategories(state *models.ConversationState) string {
	categories, err := f.store.ListCategories()
	if err != nil {
		log.Printf("❌ Failed to list categories: %v", err)
	}
	if len(categories) == 0 {
		state.Stage = models.StageMainMenu
		state.Flow = models.FlowNone
		return "Ops! Não encontrei categorias disponíveis no momento. 😕\n\n" +
			"Por favor, tente novamente mais tarde ou fale com um atendente.\n\n" +
			"Digite *menu* para voltar ao menu principal."
	}

	state.Scratch.CategoryOptions = make(map[string]string, len(categories))
	state.Scratch.ProductOptions = nil
	state.Scratch.SkuOptions = nil
	state.Stage = models.StageQuoteCategory

	var b strings.Builder
	b.WriteString("📦 *Categorias disponíveis:*\n\n")
	for i, category := range categories {
		key := strconv.Itoa(i + 1)
		state.Scratch.CategoryOptions[key] = category
		b.WriteString(fmt.Sprintf("%s️⃣ %s\n", key, category))
	}
	b.WriteString("\n👉 Digite o *número* da categoria desejada:")

	return b.String()
}

func (f *QuoteFlow) handleCategory(state *models.ConversationState, message string) string {
	category, ok := state.Scratch.CategoryOptions[strings.TrimSpace(message)]
	if !ok {
		return "Opção inválida. Por favor, escolha um número da lista.\n\n" + f.showCategories(state)
	}

	state.Scratch.SelectedCategory = category
	return f.showProducts(state, category)
}

func (f *QuoteFlow) showProducts(state *models.ConversationState, category string) string {
	products, err := f.store.ListProductsByCategory(category)
	if err != nil {
		log.Printf("❌ Failed to list products for %q: %v", category, err)
	}
	if len(products) == 0 {
		return fmt.Sprintf("Não encontrei produtos na categoria *%s*. 😕\n\n"+
			"Vamos escolher outra categoria?\n\n", category) + f.showCategories(state)
	}

	// Attach SKUs and price range; products without SKUs are not sellable.
	var listings []*models.ProductListing
	for _, product := range products {
		skus, err := f.store.ListSkusByProduct(product.ID)
		if err != nil || len(skus) == 0 {
			continue
		}
		listing := &models.ProductListing{Product: product, Skus: skus, PriceMin: skus[0].Price, PriceMax: skus[0].Price}
		for _, sku := range skus[1:] {
			if sku.Price < listing.PriceMin {
				listing.PriceMin = sku.Price
			}
			if sku.Price > listing.PriceMax {
				listing.PriceMax = sku.Price
			}
		}
		listings = append(listings, listing)
	}

	if len(listings) == 0 {
		return fmt.Sprintf("Não encontrei produtos disponíveis na categoria *%s*. 😕\n\n", category) +
			f.showCategories(state)
	}

	state.Scratch.ProductOptions = make(map[string]string, len(listings))
	state.Scratch.CategoryOptions = nil
	state.Scratch.SkuOptions = nil
	state.Stage = models.StageQuoteProduct

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🛍️ *Produtos em %s:*\n\n", category))
	for i, listing := range listings {
		key := strconv.Itoa(i + 1)
		state.Scratch.ProductOptions[key] = listing.Product.ID

		priceStr := FormatPrice(listing.PriceMin)
		if listing.PriceMin != listing.PriceMax {
			priceStr = fmt.Sprintf("%s - %s", FormatPrice(listing.PriceMin), FormatPrice(listing.PriceMax))
		}
		b.WriteString(fmt.Sprintf("%s️⃣ *%s*\n   💰 %s\n\n", key, listing.Product.Name, priceStr))
	}
	b.WriteString("👉 Digite o *número* do produto desejado:\n")
	b.WriteString("_Ou digite *voltar* para ver outras categorias._")

	return b.String()
}

func (f *QuoteFlow) handleProduct(state *models.ConversationState, message string) string {
	if strings.EqualFold(strings.TrimSpace(message), "voltar") {
		return f.showCategories(state)
	}

	productID, ok := state.Scratch.ProductOptions[strings.TrimSpace(message)]
	if !ok {
		return "Opção inválida. Por favor, escolha um número da lista de produtos."
	}

	product, err := f.store.GetProduct(productID)
	if err != nil {
		log.Printf("❌ Selected product %s no longer resolvable: %v", productID, err)
		return "Ops! Não encontrei o produto. Vamos tentar novamente?\n\n" + f.showCategories(state)
	}

	skus, err := f.store.ListSkusByProduct(productID)
	if err != nil || len(skus) == 0 {
		return "Ops! Não encontrei o produto. Vamos tentar novamente?\n\n" + f.showCategories(state)
	}

	state.Scratch.SelectedProductID = productID

	if len(skus) == 1 {
		// Single variant: select it and go straight to quantity.
		sku := skus[0]
		state.Scratch.SelectedSkuID = sku.ID
		state.Scratch.SkuOptions = nil
		state.Scratch.ProductOptions = nil
		state.Stage = models.StageQuoteQuantity

		return fmt.Sprintf("✅ *%s*\n💰 Preço: %s\n\nQuantas unidades você deseja?",
			product.Name, FormatPrice(sku.Price))
	}

	if len(product.AttributeNames) > 0 {
		return f.showSkusWithAttributes(state, product, skus)
	}
	return f.showSkusSimple(state, product, skus)
}

func (f *QuoteFlow) showSkusWithAttributes(state *models.ConversationState, product *models.Product, skus []*models.Sku) string {
	state.Scratch.SkuOptions = make(map[string]string, len(skus))
	state.Scratch.ProductOptions = nil
	state.Scratch.CategoryOptions = nil
	state.Stage = models.StageQuoteVariant

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔍 *%s*\n\nEscolha a variação desejada:\n\n", product.Name))

	for i, sku := range skus {
		key := strconv.Itoa(i + 1)
		state.Scratch.SkuOptions[key] = sku.ID

		b.WriteString(fmt.Sprintf("%s️⃣ %s\n", key, attributePairs(sku, product.AttributeNames)))
		b.WriteString(fmt.Sprintf("   💰 %s", FormatPrice(sku.Price)))
		if sku.Stock > 0 {
			b.WriteString(fmt.Sprintf(" | 📦 %d em estoque\n\n", sku.Stock))
		} else {
			b.WriteString(" | ⚠️ Sob consulta\n\n")
		}
	}
	b.WriteString("👉 Digite o *número* da opção desejada:")

	return b.String()
}

func (f *QuoteFlow) showSkusSimple(state *models.ConversationState, product *models.Product, skus []*models.Sku) string {
	state.Scratch.SkuOptions = make(map[string]string, len(skus))
	state.Scratch.ProductOptions = nil
	state.Scratch.CategoryOptions = nil
	state.Stage = models.StageQuoteVariant

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔍 *%s*\n\nOpções disponíveis:\n\n", product.Name))

	for i, sku := range skus {
		key := strconv.Itoa(i + 1)
		state.Scratch.SkuOptions[key] = sku.ID
		b.WriteString(fmt.Sprintf("%s️⃣ %s - %s\n", key, sku.Code, FormatPrice(sku.Price)))
	}
	b.WriteString("\n👉 Digite o *número* da opção desejada:")

	return b.String()
}

func (f *QuoteFlow) handleVariant(state *models.ConversationState, message string) string {
	skuID, ok := state.Scratch.SkuOptions[strings.TrimSpace(message)]
	if !ok {
		return "Opção inválida. Por favor, escolha um número da lista."
	}

	sku, err := f.store.GetSku(skuID)
	if err != nil {
		log.Printf("❌ Selected SKU %s no longer resolvable: %v", skuID, err)
		return "Ops! Não encontrei o produto. Vamos tentar novamente?\n\n" + f.showCategories(state)
	}

	state.Scratch.SelectedSkuID = sku.ID
	state.Scratch.SkuOptions = nil
	state.Stage = models.StageQuoteQuantity

	suffix := ""
	if values := attributeValues(sku); values != "" {
		suffix = " - " + values
	}

	return fmt.Sprintf("✅ Selecionado: *%s*%s\n💰 Preço unitário: %s\n\nQuantas unidades você deseja?",
		sku.Code, suffix, FormatPrice(sku.Price))
}

func (f *QuoteFlow) handleQuantity(state *models.ConversationState, message string) string {
	quantity, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil {
		return "Não entendi. 🤔 Por favor, informe a quantidade em números.\n\n_Exemplo: 2_"
	}
	if quantity <= 0 {
		return "Por favor, informe uma quantidade válida (número inteiro maior que zero)."
	}

	sku, err := f.store.GetSku(state.Scratch.SelectedSkuID)
	if err != nil {
		log.Printf("❌ Selected SKU %s no longer resolvable: %v", state.Scratch.SelectedSkuID, err)
		return "Ops! Não encontrei o produto. Vamos tentar novamente?\n\n" + f.showCategories(state)
	}

	// The stock ledger, when it has rows for this SKU, overrides the
	// embedded stock field. A total of 0 means no ledger rows, not
	// zero stock, so only a positive availability constrains quantity.
	available := sku.Stock
	if total, err := f.store.StockTotal(sku.Code); err == nil && total > 0 {
		available = total
	}

	if available > 0 && quantity > available {
		return fmt.Sprintf("⚠️ Quantidade indisponível.\nTemos apenas *%d* unidades em estoque.\n\n"+
			"Qual quantidade você deseja?", available)
	}

	state.Scratch.SelectedQuantity = quantity
	return f.addLineItem(state, sku, quantity)
}

func (f *QuoteFlow) addLineItem(state *models.ConversationState, sku *models.Sku, quantity int) string {
	productName := "Produto"
	if product, err := f.store.GetProduct(state.Scratch.SelectedProductID); err == nil {
		productName = product.Name
	}

	description := productName
	if values := attributeValues(sku); values != "" {
		description = productName + " - " + values
	}

	if state.Scratch.PendingOrder == nil {
		state.Scratch.PendingOrder = &models.PendingOrder{}
	}

	state.Scratch.PendingOrder.AddItem(models.LineItem{
		SkuCode:     sku.Code,
		ProductID:   state.Scratch.SelectedProductID,
		ProductName: productName,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   sku.Price,
		Total:       sku.Price * float64(quantity),
		Attributes:  sku.Attributes,
	})

	state.Stage = models.StageQuoteContinue
	return f.renderSummary(state)
}

func (f *QuoteFlow) renderSummary(state *models.ConversationState) string {
	order := state.Scratch.PendingOrder

	var b strings.Builder
	b.WriteString("✅ *Item adicionado ao orçamento!*\n\n")
	b.WriteString("📋 *Resumo do seu orçamento:*\n")
	b.WriteString(strings.Repeat("─", 20) + "\n\n")

	for _, item := range order.LineItems {
		b.WriteString(fmt.Sprintf("• %s\n", item.Description))
		b.WriteString(fmt.Sprintf("  %dx %s = *%s*\n\n", item.Quantity, FormatPrice(item.UnitPrice), FormatPrice(item.Total)))
	}

	b.WriteString(strings.Repeat("─", 20) + "\n")
	b.WriteString(fmt.Sprintf("💰 *Subtotal: %s*\n\n", FormatPrice(order.Subtotal)))
	b.WriteString("O que deseja fazer agora?\n\n")
	b.WriteString(continueOptionsText())

	return b.String()
}

func (f *QuoteFlow) handleContinue(state *models.ConversationState, message string) string {
	switch strings.TrimSpace(message) {
	case "1":
		return f.showCategories(state)
	case "2":
		return f.finalize(state)
	case "3":
		return f.escalateWithPartialQuote(state)
	default:
		return "Opção inválida. Por favor, escolha:\n\n" + continueOptionsText()
	}
}

func (f *QuoteFlow) finalize(state *models.ConversationState) string {
	order := state.Scratch.PendingOrder
	if order == nil || len(order.LineItems) == 0 {
		return "Seu orçamento está vazio! 😅\n\nVamos adicionar alguns produtos?\n\n" + f.showCategories(state)
	}

	items := make([]models.QuoteItem, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		items = append(items, models.QuoteItem{
			ItemID:      item.SequenceNumber,
			SkuCode:     item.SkuCode,
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
			Snapshot:    models.QuoteItemSnapshot{Attributes: item.Attributes},
		})
	}

	customerName := state.Name
	if customerName == "" {
		customerName = "Cliente"
	}

	quote, err := f.store.CreateQuote(customerName, state.Phone, items, order.Subtotal, f.settings.QuoteValidityDays)
	if err != nil {
		log.Printf("❌ Failed to create quote for %s: %v", state.Phone, err)
		// Pending order stays intact; the customer can retry or escalate.
		return "Ops! Ocorreu um erro ao salvar seu orçamento. 😕\n" +
			"Seus itens foram mantidos.\n\n" +
			"Digite *2* para tentar novamente ou *3* para falar com um atendente."
	}

	state.Scratch = models.Scratch{}
	state.Escalate()

	var b strings.Builder
	b.WriteString("🎉 *Orçamento gerado com sucesso!*\n\n")
	b.WriteString(fmt.Sprintf("📄 *Número:* %s\n", quote.FormattedNumber))
	b.WriteString(fmt.Sprintf("💰 *Valor Total:* %s\n", FormatPrice(quote.Values.Total)))
	b.WriteString(fmt.Sprintf("📅 *Válido até:* %s\n\n", quote.ExpiresAt.Format("2006-01-02")))
	b.WriteString(strings.Repeat("─", 20) + "\n\n")
	b.WriteString("Agora vou te encaminhar para um de nossos atendentes finalizar seu pedido! 😊\n\n")
	b.WriteString("⏳ Aguarde um momento, por favor.")

	return b.String()
}

func (f *QuoteFlow) escalateWithPartialQuote(state *models.ConversationState) string {
	// Scratch is preserved so the agent sees the partial quote.
	state.Escalate()

	var b strings.Builder
	b.WriteString("Perfeito! 😊\n\n")

	if order := state.Scratch.PendingOrder; order != nil && len(order.LineItems) > 0 {
		b.WriteString(fmt.Sprintf("Seu orçamento parcial (%s) foi salvo.\n\n", FormatPrice(order.Subtotal)))
	}

	b.WriteString("Vou te encaminhar agora para um atendente humano.\n\n")
	b.WriteString("⏳ Aguarde um momento, por favor.\n\n")
	b.WriteString("_Digite *menu* a qualquer momento para voltar ao início._")

	return b.String()
}

func continueOptionsText() string {
	return "1️⃣ Adicionar mais produtos\n" +
		"2️⃣ Finalizar orçamento\n" +
		"3️⃣ Falar com atendente"
}

// attributePairs renders "Cor: Preto / Tamanho: M", following the
// product's declared attribute order.
func attributePairs(sku *models.Sku, attributeNames []string) string {
	pairs := make([]string, 0, len(sku.Attributes))
	for _, name := range attributeNames {
		if value, ok := sku.Attributes[name]; ok {
			pairs = append(pairs, fmt.Sprintf("%s: %s", name, value))
		}
	}
	return strings.Join(pairs, " / ")
}

// attributeValues renders just the values ("Preto / M"), in the same
// deterministic order used by attributePairs when the product
// declares its attributes.
func attributeValues(sku *models.Sku) string {
	if len(sku.Attributes) == 0 {
		return ""
	}
	names := sortedAttributeNames(sku.Attributes)
	values := make([]string, 0, len(names))
	for _, name := range names {
		values = append(values, sku.Attributes[name])
	}
	return strings.Join(values, " / ")
}

func sortedAttributeNames(attributes map[string]string) []string {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
