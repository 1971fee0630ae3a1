package services

import (
	"fmt"
	"strings"

	"github.com/syaoranea/FlowChat/internal/models"
)

// The Purchase and After-sales flows share the same short opening
// sub-machine: confirm the known name (or capture one), then proceed.

func nameConfirmationPrompt(state *models.ConversationState, purpose string) string {
	if state.Name != "" {
		return fmt.Sprintf("Você é *%s*, certo? 😊\n\n1️⃣ Sim, sou eu\n2️⃣ Não, quero informar outro nome", state.Name)
	}
	return fmt.Sprintf("Para prosseguir com %s, preciso do seu nome.\n\nQual é o seu nome?", purpose)
}

// handleNameConfirmation advances the ConfirmName stage. "1" confirms,
// "2" clears the name and re-asks, valid free text is accepted as a
// new name; anything else re-prompts. proceed runs once a name is
// settled.
func handleNameConfirmation(state *models.ConversationState, message string, proceed func(*models.ConversationState) string) string {
	choice := strings.TrimSpace(message)

	if state.Name != "" {
		switch choice {
		case "1":
			return proceed(state)
		case "2":
			state.Name = ""
			return "Ok! Qual é o seu nome?"
		default:
			if ValidName(choice) {
				state.Name = TitleCase(choice)
				return proceed(state)
			}
			return fmt.Sprintf("Por favor, escolha uma opção:\n\n1️⃣ Sim, sou %s\n2️⃣ Não, quero informar outro nome", state.Name)
		}
	}

	if ValidName(choice) {
		state.Name = TitleCase(choice)
		return proceed(state)
	}
	return "Por favor, informe um nome válido."
}
