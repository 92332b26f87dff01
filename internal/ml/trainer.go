package ml

import (
	"log/slog"

	"github.com/rbatllet/royale-advisor/internal/archetype"
	"github.com/rbatllet/royale-advisor/internal/cards"
	"github.com/rbatllet/royale-advisor/internal/royale"
)

// TrainerConfig holds the training hyperparameters. The defaults are part
// of the behavior contract: training is deterministic given identical input
// order, with no convergence check.
type TrainerConfig struct {
	// Epochs is the number of full passes over the example set.
	Epochs int

	// LearningRate is the SGD step size.
	LearningRate float64

	// L2 is the L2 regularization coefficient.
	L2 float64

	// MaxBattles caps how many recent battles are considered.
	MaxBattles int

	// MinExamples is the minimum number of usable examples required to
	// train. Below it no model is produced.
	MinExamples int
}

// DefaultTrainerConfig returns the documented default hyperparameters.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Epochs:       200,
		LearningRate: 0.1,
		L2:           1e-3,
		MaxBattles:   50,
		MinExamples:  10,
	}
}

// TrainResult is the output of a training run. Model is nil when fewer than
// MinExamples usable battles were available; Distribution and Samples are
// populated either way.
type TrainResult struct {
	Model        *Model
	Distribution Distribution
	Samples      int
}

// RegistrySource supplies the current card registry snapshot. Implemented
// by cards.Provider, so a trainer behind a hot-reloading registry always
// trains against the same snapshot the request handlers see.
type RegistrySource interface {
	Index() *cards.Index
}

// Trainer fits a per-player logistic regression over recent battles.
// Each training run takes a fresh registry snapshot; classifier and
// feature builder are rebuilt per run, never pinned to startup state.
type Trainer struct {
	registry RegistrySource
	config   TrainerConfig
}

// NewTrainer creates a trainer. A zero-value config is replaced by the
// defaults.
func NewTrainer(registry RegistrySource, config TrainerConfig) *Trainer {
	if config.Epochs == 0 {
		config = DefaultTrainerConfig()
	}
	return &Trainer{registry: registry, config: config}
}

// example is one usable battle converted to a training pair.
type example struct {
	x []float64
	y float64
}

// Train builds training examples from the battle log and runs SGD.
// The opponent-archetype histogram counts every battle with a usable
// opponent deck; becoming a training example additionally requires the
// team side to be complete, so a battle missing the team card list still
// shapes the distribution. Example order follows battle chronology and is
// preserved across every epoch.
func (t *Trainer) Train(battles []royale.Battle) *TrainResult {
	index := t.registry.Index()
	classifier := archetype.NewClassifier(index)
	features := NewFeatureBuilder(index)

	if len(battles) > t.config.MaxBattles {
		battles = battles[:t.config.MaxBattles]
	}

	examples := make([]example, 0, len(battles))
	histogram := make(map[archetype.Archetype]int)
	seen := 0

	for i := range battles {
		b := &battles[i]
		if len(b.Opponent) != 1 || len(b.Opponent[0].Cards) == 0 {
			continue
		}

		opp := classifier.Analyze(b.OpponentDeck()).Archetype
		histogram[opp]++
		seen++

		if !b.IsUsable() {
			continue
		}

		label := 0.0
		if b.Team[0].Crowns > b.Opponent[0].Crowns {
			label = 1.0
		}
		x := features.Build(b.TeamDeck(), opp, b.Team[0].Crowns-b.Opponent[0].Crowns)
		examples = append(examples, example{x: x, y: label})
	}

	result := &TrainResult{
		Distribution: normalize(histogram, seen),
		Samples:      len(examples),
	}

	if len(examples) < t.config.MinExamples {
		slog.Debug("skipping training, insufficient examples",
			"examples", len(examples), "required", t.config.MinExamples)
		return result
	}

	result.Model = t.fit(examples)
	return result
}

// fit runs the fixed epoch count of L2-regularized SGD with zero-initialized
// weights.
func (t *Trainer) fit(examples []example) *Model {
	w := make([]float64, FeatureDims)
	lr := t.config.LearningRate
	l2 := t.config.L2

	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		for _, ex := range examples {
			err := sigmoid(dot(w, ex.x)) - ex.y
			for j := range w {
				w[j] -= lr * (err*ex.x[j] + l2*w[j])
			}
		}
	}

	return &Model{
		Weights: w,
		Dims:    FeatureDims,
		Samples: len(examples),
	}
}

func normalize(histogram map[archetype.Archetype]int, total int) Distribution {
	dist := make(Distribution, len(histogram))
	if total == 0 {
		return dist
	}
	for arch, count := range histogram {
		dist[arch] = float64(count) / float64(total)
	}
	return dist
}
