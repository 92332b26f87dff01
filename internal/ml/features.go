// Package ml builds feature vectors from decks and trains per-player
// win-probability models with online logistic regression.
package ml

import (
	"github.com/rbatllet/royale-advisor/internal/archetype"
	"github.com/rbatllet/royale-advisor/internal/cards"
)

// FeatureDims is the fixed feature-vector length:
// 1 bias + 1 avg elixir + 7 role flags + 16 win-condition one-hot +
// 7 opponent-archetype one-hot + 1 crown differential.
// The layout is a contract; changing it invalidates cached models, so
// SchemaVersion must be bumped together with any layout change.
const FeatureDims = 1 + 1 + 7 + 16 + 7 + 1

// SchemaVersion guards persisted models against feature-layout drift.
// A cached record with a different version is treated as absent.
const SchemaVersion = 3

// featureWinCons is the fixed list of win conditions recognized by the
// feature layout. It is deliberately maintained separately from the
// registry's winCon role set: registry updates must not silently shift the
// meaning of trained weights. New win conditions are invisible to the model
// until this list (and SchemaVersion) is updated.
var featureWinCons = [16]string{
	"Hog Rider",
	"Giant",
	"Golem",
	"Lava Hound",
	"X-Bow",
	"Mortar",
	"Graveyard",
	"Royal Giant",
	"Balloon",
	"Miner",
	"Wall Breakers",
	"Goblin Barrel",
	"Battle Ram",
	"Ram Rider",
	"Electro Giant",
	"Goblin Giant",
}

// crownDiffLimit clamps the crown differential feature to [-3, 3].
const crownDiffLimit = 3

// FeatureBuilder converts decks into fixed-length numeric vectors.
type FeatureBuilder struct {
	index *cards.Index
}

// NewFeatureBuilder creates a feature builder over the given registry.
func NewFeatureBuilder(index *cards.Index) *FeatureBuilder {
	return &FeatureBuilder{index: index}
}

// Build returns the FeatureDims-length vector for a deck against an
// opponent archetype with the given crown differential. It is a pure
// function of its inputs and the registry snapshot.
func (b *FeatureBuilder) Build(deck []string, opponent archetype.Archetype, crownDiff int) []float64 {
	x := make([]float64, FeatureDims)
	x[0] = 1 // bias

	normalized := make([]string, len(deck))
	for i, name := range deck {
		normalized[i] = cards.Normalize(name)
	}

	total := 0.0
	for _, name := range normalized {
		total += b.index.Cost(name)
	}
	if len(normalized) > 0 {
		x[1] = total / float64(len(normalized))
	}

	roleFlags := []cards.Role{
		cards.RoleBigSpell, cards.RoleSmallSpell, cards.RoleBuilding,
		cards.RoleAirTarget, cards.RoleSplash, cards.RoleReset,
		cards.RoleChampion,
	}
	for i, role := range roleFlags {
		if b.index.HasRole(role, normalized) {
			x[2+i] = 1
		}
	}

	for i, winCon := range featureWinCons {
		for _, name := range normalized {
			if name == winCon {
				x[9+i] = 1
				break
			}
		}
	}

	if idx := archetype.Index(opponent); idx >= 0 {
		x[25+idx] = 1
	}

	if crownDiff > crownDiffLimit {
		crownDiff = crownDiffLimit
	} else if crownDiff < -crownDiffLimit {
		crownDiff = -crownDiffLimit
	}
	x[32] = float64(crownDiff)

	return x
}
