package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rbatllet/royale-advisor/internal/api/response"
	"github.com/rbatllet/royale-advisor/internal/archetype"
	"github.com/rbatllet/royale-advisor/internal/cards"
)

// DeckHandler handles deck-related API requests.
type DeckHandler struct {
	registry *cards.Provider
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(registry *cards.Provider) *DeckHandler {
	return &DeckHandler{registry: registry}
}

// AnalyzeDeckRequest represents a request to classify a deck.
type AnalyzeDeckRequest struct {
	Cards []string `json:"cards"`
}

// AnalyzeDeck classifies a deck and returns the full analysis.
func (h *DeckHandler) AnalyzeDeck(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	if err := cards.Validate(req.Cards); err != nil {
		response.BadRequest(w, err)
		return
	}

	classifier := archetype.NewClassifier(h.registry.Index())
	response.Success(w, classifier.Analyze(req.Cards))
}
