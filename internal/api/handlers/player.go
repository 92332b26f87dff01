package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rbatllet/royale-advisor/internal/api/response"
	"github.com/rbatllet/royale-advisor/internal/archetype"
	"github.com/rbatllet/royale-advisor/internal/cards"
	"github.com/rbatllet/royale-advisor/internal/charts"
	"github.com/rbatllet/royale-advisor/internal/ml"
	"github.com/rbatllet/royale-advisor/internal/modelcache"
	"github.com/rbatllet/royale-advisor/internal/profile"
	"github.com/rbatllet/royale-advisor/internal/royale"
	"github.com/rbatllet/royale-advisor/internal/suggest"
)

// PlayerHandler handles player-centric API requests: style profiles, deck
// suggestions, trained models and HTML reports.
type PlayerHandler struct {
	client   *royale.Client
	registry *cards.Provider
	models   *modelcache.Service
	limit    int
}

// NewPlayerHandler creates a new PlayerHandler. limit caps battle-log
// fetches for profile building.
func NewPlayerHandler(client *royale.Client, registry *cards.Provider, models *modelcache.Service, limit int) *PlayerHandler {
	return &PlayerHandler{client: client, registry: registry, models: models, limit: limit}
}

// playerTag extracts the tag URL parameter, restoring the leading '#'
// clients usually drop.
func playerTag(r *http.Request) string {
	tag := chi.URLParam(r, "tag")
	if tag != "" && !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag
}

func upstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, royale.ErrNotFound) {
		response.NotFound(w, err)
		return
	}
	response.BadGateway(w, err)
}

// GetProfile returns the player's style profile built from recent battles.
func (h *PlayerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	tag := playerTag(r)

	battles, err := h.client.RecentBattles(r.Context(), tag, h.limit)
	if err != nil {
		upstreamError(w, err)
		return
	}

	classifier := archetype.NewClassifier(h.registry.Index())
	response.Success(w, profile.NewAnalyzer(classifier).Build(battles))
}

// GetSuggestions returns ranked deck suggestions for the player. With
// ?force=true the cached model is bypassed and retrained first.
func (h *PlayerHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	tag := playerTag(r)
	force := r.URL.Query().Get("force") == "true"

	player, err := h.client.Player(r.Context(), tag)
	if err != nil {
		upstreamError(w, err)
		return
	}

	battles, err := h.client.RecentBattles(r.Context(), tag, h.limit)
	if err != nil {
		upstreamError(w, err)
		return
	}

	result, err := h.models.Get(r.Context(), tag, force)
	if err != nil {
		upstreamError(w, err)
		return
	}

	index := h.registry.Index()
	classifier := archetype.NewClassifier(index)
	style := profile.NewAnalyzer(classifier).Build(battles)
	ranker := suggest.NewRanker(classifier, ml.NewFeatureBuilder(index))
	owned := suggest.NewOwnership(player.OwnedNames())

	response.Success(w, ranker.Rank(owned, style, result.Model, result.Distribution))
}

// ModelInfo summarizes a player's trained model without exposing weights.
type ModelInfo struct {
	Trained      bool            `json:"trained"`
	Samples      int             `json:"samples"`
	FromCache    bool            `json:"fromCache"`
	TrainedAt    *time.Time      `json:"trainedAt,omitempty"`
	Version      int             `json:"version"`
	Dims         int             `json:"dims,omitempty"`
	Distribution ml.Distribution `json:"opponentDistribution,omitempty"`
}

// GetModel returns the training status for the player, training on a cache
// miss. With ?force=true the cached model is discarded and retrained.
func (h *PlayerHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	tag := playerTag(r)
	force := r.URL.Query().Get("force") == "true"

	result, err := h.models.Get(r.Context(), tag, force)
	if err != nil {
		upstreamError(w, err)
		return
	}

	info := ModelInfo{
		Trained:      result.Model != nil,
		Samples:      result.Samples,
		FromCache:    result.FromCache,
		Version:      ml.SchemaVersion,
		Distribution: result.Distribution,
	}
	if result.Model != nil {
		info.Dims = result.Model.Dims
		trainedAt := result.TrainedAt
		info.TrainedAt = &trainedAt
	}
	response.Success(w, info)
}

// DeleteModel drops the player's cached model. The next request retrains.
func (h *PlayerHandler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := h.models.Invalidate(r.Context(), playerTag(r)); err != nil {
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}

// GetReport renders the player's style and matchup report as a standalone
// HTML page.
func (h *PlayerHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	tag := playerTag(r)

	player, err := h.client.Player(r.Context(), tag)
	if err != nil {
		upstreamError(w, err)
		return
	}

	battles, err := h.client.RecentBattles(r.Context(), tag, h.limit)
	if err != nil {
		upstreamError(w, err)
		return
	}

	result, err := h.models.Get(r.Context(), tag, false)
	if err != nil {
		upstreamError(w, err)
		return
	}

	index := h.registry.Index()
	classifier := archetype.NewClassifier(index)
	style := profile.NewAnalyzer(classifier).Build(battles)

	report := &charts.PlayerReport{
		PlayerName:   player.Name,
		Style:        style,
		Distribution: result.Distribution,
		Matchups:     h.matchups(index, classifier, player, style, result),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.Render(w, report); err != nil {
		response.InternalError(w, err)
	}
}

// matchups computes per-archetype win probabilities for the player's best
// suggested deck. Empty when no model is available or no deck could be
// assembled.
func (h *PlayerHandler) matchups(index *cards.Index, classifier *archetype.Classifier, player *royale.Player, style *profile.StyleProfile, result *modelcache.Result) map[archetype.Archetype]float64 {
	if result.Model == nil {
		return nil
	}

	features := ml.NewFeatureBuilder(index)
	ranker := suggest.NewRanker(classifier, features)
	owned := suggest.NewOwnership(player.OwnedNames())
	suggestions := ranker.Rank(owned, style, result.Model, result.Distribution)
	if len(suggestions) == 0 {
		return nil
	}

	deck := suggestions[0].Deck
	matchups := make(map[archetype.Archetype]float64, len(archetype.All))
	for _, opp := range archetype.All {
		matchups[opp] = result.Model.Predict(features.Build(deck, opp, 0))
	}
	return matchups
}
