package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/syaoranea/FlowChat/internal/config"
	"github.com/syaoranea/FlowChat/internal/models"
	"github.com/syaoranea/FlowChat/internal/storage"
)

// Global commands, checked before any flow dispatch.
var (
	menuCommands   = map[string]bool{"menu": true, "início": true, "inicio": true, "voltar": true, "0": true}
	cancelCommands = map[string]bool{"sair": true, "cancelar": true}
)

// Router is the top-level message dispatcher: global commands, the
// onboarding sequence (greeting, name capture, main menu) and
// delegation to the active flow.
type Router struct {
	store      storage.Store
	settings   *config.Settings
	quote      *QuoteFlow
	purchase   *PurchaseFlow
	afterSales *AfterSalesFlow
}

// NewRouter creates the router and its flow handlers.
func NewRouter(store storage.Store, settings *config.Settings) *Router {
	return &Router{
		store:      store,
		settings:   settings,
		quote:      NewQuoteFlow(store, settings),
		purchase:   NewPurchaseFlow(settings),
		afterSales: NewAfterSalesFlow(settings),
	}
}

// ProcessMessage handles one inbound message end to end: loads (or
// creates) the conversation, routes the text, persists the mutated
// state and appends one interaction-log record. It always returns a
// user-facing reply.
func (r *Router) ProcessMessage(phone, message string) (string, error) {
	message = strings.TrimSpace(message)

	state, err := r.store.GetOrCreateConversation(phone)
	if err != nil {
		log.Printf("❌ Failed to load conversation for %s: %v", phone, err)
		return "Ops 😅 tive um probleminha aqui. Pode tentar novamente em alguns instantes?", err
	}

	log.Printf("📨 [%s] etapa=%s fluxo=%s msg=%q", phone, state.Stage, state.Flow, message)

	reply := r.Route(state, message)

	if err := r.store.SaveConversation(state); err != nil {
		log.Printf("❌ Failed to save conversation for %s: %v", phone, err)
	}

	if err := r.store.AppendInteraction(&models.InteractionLog{
		Phone:    phone,
		Kind:     "message",
		Received: message,
		Sent:     Truncate(reply, 500),
		Stage:    state.Stage,
		Flow:     state.Flow,
	}); err != nil {
		log.Printf("❌ Failed to log interaction for %s: %v", phone, err)
	}

	return reply, nil
}

// Route advances the conversation one step: (state, text) → reply,
// mutating state in place. Persistence belongs to the caller.
func (r *Router) Route(state *models.ConversationState, message string) string {
	lower := strings.ToLower(message)

	// Inside the product menu "voltar" steps back to the category
	// list; everywhere else it is a global reset.
	if lower == "voltar" && state.Flow == models.FlowQuote && state.Stage == models.StageQuoteProduct {
		return r.quote.Handle(state, message)
	}

	if menuCommands[lower] {
		state.Reset()
		return r.showMainMenu(state)
	}
	if cancelCommands[lower] {
		state.Reset()
		return "Orçamento cancelado. ❌\n\n" + r.showMainMenu(state)
	}

	switch state.Stage {
	case models.StageStart:
		return r.handleStart(state)
	case models.StageAwaitingName:
		return r.handleName(state, message)
	case models.StageMainMenu:
		return r.handleMainMenu(state, message)
	}

	switch state.Flow {
	case models.FlowQuote:
		return r.quote.Handle(state, message)
	case models.FlowPurchase:
		return r.purchase.Handle(state, message)
	case models.FlowAfterSales:
		return r.afterSales.Handle(state, message)
	}

	if state.Stage == models.StageHumanHandoff {
		return "Você já foi encaminhado para um atendente. ⏳\n" +
			"Por favor, aguarde que em breve você será atendido.\n\n" +
			"_Digite *menu* para voltar ao menu principal._"
	}

	return r.showMainMenu(state)
}

func (r *Router) handleStart(state *models.ConversationState) string {
	state.Stage = models.StageAwaitingName
	return fmt.Sprintf(
		"👋 Olá! Seja bem-vindo(a) à %s. Sou o assistente virtual e estou aqui para te ajudar 😊\n\n"+
			"Para começar, qual é o seu nome?",
		r.settings.CompanyName,
	)
}

func (r *Router) handleName(state *models.ConversationState, message string) string {
	if !ValidName(message) {
		return "Por favor, me informe seu nome corretamente. 😊\n\nQual é o seu nome?"
	}

	state.Name = TitleCase(message)
	state.Stage = models.StageMainMenu

	return fmt.Sprintf("Prazer em te conhecer, %s! 😄\n\n%s", state.Name, mainMenuText())
}

func (r *Router) handleMainMenu(state *models.ConversationState, message string) string {
	switch strings.TrimSpace(message) {
	case "1":
		state.Flow = models.FlowQuote
		state.Stage = models.StageQuoteCategory
		return r.quote.Start(state)
	case "2":
		state.Flow = models.FlowPurchase
		state.Stage = models.StagePurchaseConfirmName
		return r.purchase.Start(state)
	case "3":
		state.Flow = models.FlowAfterSales
		state.Stage = models.StageAfterSalesConfirmName
		return r.afterSales.Start(state)
	case "4":
		state.Escalate()
		return "Sem problemas 😊\n" +
			"Vou te encaminhar agora para um atendente humano.\n\n" +
			"⏳ Aguarde um momento, por favor.\n\n" +
			"_Digite *menu* a qualquer momento para voltar ao início._"
	default:
		return "Opção inválida. Por favor, escolha uma das opções abaixo:\n\n" + mainMenuText()
	}
}

func (r *Router) showMainMenu(state *models.ConversationState) string {
	state.Stage = models.StageMainMenu
	state.Flow = models.FlowNone

	greeting := ""
	if state.Name != "" {
		greeting = fmt.Sprintf("Olá, %s! ", state.Name)
	}
	return fmt.Sprintf("%sComo posso te ajudar?\n\n%s", greeting, mainMenuText())
}

func mainMenuText() string {
	return "Escolha uma das opções abaixo 👇\n\n" +
		"1️⃣ Orçamento\n" +
		"2️⃣ Compras\n" +
		"3️⃣ Pós-venda\n" +
		"4️⃣ Falar com atendente"
}
