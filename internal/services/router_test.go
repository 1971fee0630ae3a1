package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syaoranea/FlowChat/internal/config"
	"github.com/syaoranea/FlowChat/internal/models"
	"github.com/syaoranea/FlowChat/internal/storage"
)

func testSettings() *config.Settings {
	return &config.Settings{
		CompanyName:       "Minha Empresa",
		QuoteValidityDays: 10,
	}
}

func newTestRouter(t *testing.T) (*Router, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	storage.SeedDemoCatalog(store)
	return NewRouter(store, testSettings()), store
}

func newOnboardedState(t *testing.T, r *Router, name string) *models.ConversationState {
	t.Helper()
	state := models.NewConversationState("5511999990000")
	r.Route(state, "oi")
	reply := r.Route(state, name)
	require.Contains(t, reply, "Prazer em te conhecer")
	require.Equal(t, models.StageMainMenu, state.Stage)
	return state
}

func TestRouterGreetsAndAsksName(t *testing.T) {
	r, _ := newTestRouter(t)
	state := models.NewConversationState("5511999990000")

	reply := r.Route(state, "oi")

	assert.Contains(t, reply, "Minha Empresa")
	assert.Contains(t, reply, "qual é o seu nome?")
	assert.Equal(t, models.StageAwaitingName, state.Stage)
}

func TestRouterNameValidation(t *testing.T) {
	tests := []struct {
		input    string
		accepted bool
		stored   string
	}{
		{"Jo", true, "Jo"},
		{"J", false, ""},
		{"Ana2", false, ""},
		{"maria silva", true, "Maria Silva"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, _ := newTestRouter(t)
			state := models.NewConversationState("5511999990000")
			r.Route(state, "oi")

			reply := r.Route(state, tt.input)

			if tt.accepted {
				assert.Equal(t, tt.stored, state.Name)
				assert.Equal(t, models.StageMainMenu, state.Stage)
			} else {
				assert.Empty(t, state.Name)
				assert.Equal(t, models.StageAwaitingName, state.Stage)
				assert.Contains(t, reply, "informe seu nome corretamente")
			}
		})
	}
}

func TestRouterMainMenuSelection(t *testing.T) {
	t.Run("quote", func(t *testing.T) {
		r, _ := newTestRouter(t)
		state := newOnboardedState(t, r, "Ana")

		reply := r.Route(state, "1")

		assert.Equal(t, models.FlowQuote, state.Flow)
		assert.Equal(t, models.StageQuoteCategory, state.Stage)
		assert.Contains(t, reply, "Categorias disponíveis")
	})

	t.Run("purchase", func(t *testing.T) {
		r, _ := newTestRouter(t)
		state := newOnboardedState(t, r, "Ana")

		reply := r.Route(state, "2")

		assert.Equal(t, models.FlowPurchase, state.Flow)
		assert.Equal(t, models.StagePurchaseConfirmName, state.Stage)
		assert.Contains(t, reply, "Você é *Ana*, certo?")
	})

	t.Run("after-sales", func(t *testing.T) {
		r, _ := newTestRouter(t)
		state := newOnboardedState(t, r, "Ana")

		reply := r.Route(state, "3")

		assert.Equal(t, models.FlowAfterSales, state.Flow)
		assert.Equal(t, models.StageAfterSalesConfirmName, state.Stage)
		assert.Contains(t, reply, "Você é *Ana*, certo?")
	})

	t.Run("human handoff", func(t *testing.T) {
		r, _ := newTestRouter(t)
		state := newOnboardedState(t, r, "Ana")

		reply := r.Route(state, "4")

		assert.True(t, state.Escalated)
		assert.Equal(t, models.StageHumanHandoff, state.Stage)
		assert.Equal(t, models.FlowHumanHandoff, state.Flow)
		assert.Contains(t, reply, "atendente humano")
	})

	t.Run("invalid option re-shows menu", func(t *testing.T) {
		r, _ := newTestRouter(t)
		state := newOnboardedState(t, r, "Ana")

		reply := r.Route(state, "9")

		assert.Equal(t, models.StageMainMenu, state.Stage)
		assert.Contains(t, reply, "Opção inválida")
		assert.Contains(t, reply, "1️⃣ Orçamento")
	})
}

func TestRouterGlobalResetFromAnyStage(t *testing.T) {
	r, _ := newTestRouter(t)
	state := newOnboardedState(t, r, "Ana")

	// Deep into the quote flow, with an item already accumulated.
	r.Route(state, "1") // quote
	r.Route(state, "2") // Informática
	r.Route(state, "1") // Notebook Dell (single SKU)
	r.Route(state, "1") // quantity
	require.Equal(t, models.StageQuoteContinue, state.Stage)
	require.NotNil(t, state.Scratch.PendingOrder)

	reply := r.Route(state, "menu")

	assert.Equal(t, models.StageMainMenu, state.Stage)
	assert.Equal(t, models.FlowNone, state.Flow)
	assert.Equal(t, models.Scratch{}, state.Scratch)
	assert.Contains(t, reply, "Olá, Ana!")
	assert.Contains(t, reply, "1️⃣ Orçamento")
}

func TestRouterCancelCommand(t *testing.T) {
	r, _ := newTestRouter(t)
	state := newOnboardedState(t, r, "Ana")
	r.Route(state, "1")

	reply := r.Route(state, "sair")

	assert.Equal(t, models.StageMainMenu, state.Stage)
	assert.Contains(t, reply, "cancelado")
	assert.Contains(t, reply, "1️⃣ Orçamento")
}

func TestRouterHandoffEcho(t *testing.T) {
	r, _ := newTestRouter(t)
	state := newOnboardedState(t, r, "Ana")
	r.Route(state, "4")

	reply := r.Route(state, "alguém aí?")

	assert.Contains(t, reply, "já foi encaminhado")
	assert.Equal(t, models.StageHumanHandoff, state.Stage)
}

func TestProcessMessagePersistsAndLogs(t *testing.T) {
	r, store := newTestRouter(t)

	reply, err := r.ProcessMessage("5511988887777", "oi")
	require.NoError(t, err)
	assert.Contains(t, reply, "Minha Empresa")

	saved, err := store.GetConversation("5511988887777")
	require.NoError(t, err)
	assert.Equal(t, models.StageAwaitingName, saved.Stage)
	assert.False(t, saved.LastUpdated.IsZero())

	logs := store.Interactions()
	require.Len(t, logs, 1)
	assert.Equal(t, "5511988887777", logs[0].Phone)
	assert.Equal(t, "oi", logs[0].Received)
	assert.Equal(t, models.StageAwaitingName, logs[0].Stage)
	assert.NotEmpty(t, logs[0].ID)
}
