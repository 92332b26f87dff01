package ml

import (
	"math"

	"github.com/rbatllet/royale-advisor/internal/archetype"
)

// Model is a trained win-probability model: a weight vector over the fixed
// feature layout. Immutable once trained; retraining replaces it wholesale.
type Model struct {
	Weights []float64 `json:"weights"`
	Dims    int       `json:"dims"`
	Samples int       `json:"samples"`
}

// Distribution is an opponent-archetype frequency distribution. Seen
// archetypes carry probabilities summing to 1; unseen archetypes are simply
// absent (weight 0).
type Distribution map[archetype.Archetype]float64

// Predict returns the win probability for a feature vector. A dimension
// mismatch between the stored weights and the current layout fails soft
// with a neutral 0.5: the version guard in the cache should prevent it, but
// a stale model leaking through must not crash a request.
func (m *Model) Predict(x []float64) float64 {
	if m == nil || m.Dims != len(x) || len(m.Weights) != len(x) {
		return 0.5
	}
	return sigmoid(dot(m.Weights, x))
}

// ExpectedWinProb returns the win probability for a deck averaged over an
// opponent-archetype distribution. Crown differential is zero: the
// prediction is made before the match starts.
func (m *Model) ExpectedWinProb(b *FeatureBuilder, deck []string, dist Distribution) float64 {
	if m == nil || len(dist) == 0 {
		return 0.5
	}
	expected := 0.0
	for opp, p := range dist {
		expected += p * m.Predict(b.Build(deck, opp, 0))
	}
	return expected
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(w, x []float64) float64 {
	sum := 0.0
	for i := range w {
		sum += w[i] * x[i]
	}
	return sum
}
