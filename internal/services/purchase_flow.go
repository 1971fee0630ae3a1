package services

import (
	"fmt"

	"github.com/syaoranea/FlowChat/internal/config"
	"github.com/syaoranea/FlowChat/internal/models"
)

// PurchaseFlow confirms the customer's name and hands the purchase to
// a human agent.
type PurchaseFlow struct {
	settings *config.Settings
}

// NewPurchaseFlow creates the purchase flow handler.
func NewPurchaseFlow(settings *config.Settings) *PurchaseFlow {
	return &PurchaseFlow{settings: settings}
}

// Start opens the flow with the name confirmation prompt.
func (f *PurchaseFlow) Start(state *models.ConversationState) string {
	return nameConfirmationPrompt(state, "sua compra")
}

// Handle processes one message inside the purchase flow.
func (f *PurchaseFlow) Handle(state *models.ConversationState, message string) string {
	if state.Stage == models.StagePurchaseConfirmName {
		return handleNameConfirmation(state, message, f.escalate)
	}
	return f.escalate(state)
}

func (f *PurchaseFlow) escalate(state *models.ConversationState) string {
	state.Escalate()

	name := state.Name
	if name == "" {
		name = "Cliente"
	}

	return fmt.Sprintf("Perfeito, %s! 😄\n\n"+
		"Vou te encaminhar agora para um de nossos atendentes para finalizar sua compra 🛒\n\n"+
		"⏳ Aguarde um momento, por favor.\n\n"+
		"_Digite *menu* a qualquer momento para voltar ao início._", name)
}
