package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/syaoranea/FlowChat/internal/config"
	"github.com/syaoranea/FlowChat/internal/models"
)

// AfterSalesFlow confirms the customer's name, captures an order
// reference and hands the case to a human agent.
type AfterSalesFlow struct {
	settings *config.Settings
}

// NewAfterSalesFlow creates the after-sales flow handler.
func NewAfterSalesFlow(settings *config.Settings) *AfterSalesFlow {
	return &AfterSalesFlow{settings: settings}
}

// Start opens the flow with the name confirmation prompt.
func (f *AfterSalesFlow) Start(state *models.ConversationState) string {
	return nameConfirmationPrompt(state, "seu atendimento")
}

// Handle processes one message inside the after-sales flow.
func (f *AfterSalesFlow) Handle(state *models.ConversationState, message string) string {
	switch state.Stage {
	case models.StageAfterSalesConfirmName:
		return handleNameConfirmation(state, message, f.askOrderNumber)
	case models.StageAfterSalesOrderNumber:
		return f.handleOrderNumber(state, message)
	}
	return f.askOrderNumber(state)
}

func (f *AfterSalesFlow) askOrderNumber(state *models.ConversationState) string {
	state.Stage = models.StageAfterSalesOrderNumber

	return fmt.Sprintf("Certo, %s! 😊\n\n"+
		"Por favor, me informe o *número do seu pedido* para que eu possa localizar:\n\n"+
		"_Exemplo: 12345 ou PED-2026-00001_", state.Name)
}

func (f *AfterSalesFlow) handleOrderNumber(state *models.ConversationState, message string) string {
	orderNumber := strings.TrimSpace(message)

	// Any reference of 3+ characters passes; real validation is the
	// agent's job.
	if utf8.RuneCountInString(orderNumber) < 3 {
		return "Por favor, informe um número de pedido válido.\n\n_Exemplo: 12345 ou PED-2026-00001_"
	}

	state.Scratch.OrderNumber = orderNumber
	state.Escalate()

	return fmt.Sprintf("Perfeito! Já localizei sua solicitação ✅\n\n"+
		"📦 *Pedido:* %s\n"+
		"👤 *Cliente:* %s\n\n"+
		"Vou te encaminhar para um atendente que vai te ajudar com isso agora mesmo 😊\n\n"+
		"⏳ Aguarde um momento, por favor.\n\n"+
		"_Digite *menu* a qualquer momento para voltar ao início._", orderNumber, state.Name)
}
