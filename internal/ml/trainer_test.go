package ml

import (
	"math"
	"reflect"
	"testing"

	"github.com/rbatllet/royale-advisor/internal/archetype"
	"github.com/rbatllet/royale-advisor/internal/cards"
	"github.com/rbatllet/royale-advisor/internal/royale"
)

var beatdownDeck = []string{"Golem", "Baby Dragon", "Night Witch", "Lightning", "Tornado", "Mega Minion", "Lumberjack", "Zap"}

func battle(teamCrowns, oppCrowns int, teamDeck, oppDeck []string) royale.Battle {
	return royale.Battle{
		Type: "pathOfLegend",
		Team: []royale.BattlePlayer{{
			Tag:    "#PLAYER",
			Crowns: teamCrowns,
			Cards:  battleCards(teamDeck),
		}},
		Opponent: []royale.BattlePlayer{{
			Tag:    "#OPPONENT",
			Crowns: oppCrowns,
			Cards:  battleCards(oppDeck),
		}},
	}
}

func battleCards(deck []string) []royale.BattleCard {
	out := make([]royale.BattleCard, len(deck))
	for i, name := range deck {
		out[i] = royale.BattleCard{Name: name}
	}
	return out
}

func newTestTrainer(config TrainerConfig) *Trainer {
	return NewTrainer(cards.NewProvider(cards.LoadDefault(), ""), config)
}

func TestTrainer_Train_BelowMinimum(t *testing.T) {
	trainer := newTestTrainer(TrainerConfig{})

	battles := make([]royale.Battle, 0, 9)
	for i := 0; i < 9; i++ {
		battles = append(battles, battle(1, 0, cycleDeck, beatdownDeck))
	}

	result := trainer.Train(battles)
	if result.Model != nil {
		t.Errorf("Train() with 9 examples produced a model, want nil")
	}
	if result.Samples != 9 {
		t.Errorf("Train() samples = %d, want 9", result.Samples)
	}
	// The opponent distribution is still computed from what was seen.
	if got := result.Distribution[archetype.Beatdown]; got != 1.0 {
		t.Errorf("Distribution[Beatdown] = %v, want 1.0", got)
	}
}

func TestTrainer_Train_AtMinimum(t *testing.T) {
	trainer := newTestTrainer(TrainerConfig{})

	battles := make([]royale.Battle, 0, 10)
	for i := 0; i < 10; i++ {
		battles = append(battles, battle(1, 0, cycleDeck, beatdownDeck))
	}

	result := trainer.Train(battles)
	if result.Model == nil {
		t.Fatal("Train() with 10 examples produced no model")
	}
	if result.Model.Dims != FeatureDims {
		t.Errorf("model dims = %d, want %d", result.Model.Dims, FeatureDims)
	}
	if result.Model.Samples != 10 {
		t.Errorf("model samples = %d, want 10", result.Model.Samples)
	}
}

func TestTrainer_Train_SkipsUnusableBattles(t *testing.T) {
	trainer := newTestTrainer(TrainerConfig{
		Epochs: 50, LearningRate: 0.1, L2: 1e-3, MaxBattles: 50, MinExamples: 2,
	})

	noCards := battle(1, 0, cycleDeck, beatdownDeck)
	noCards.Opponent[0].Cards = nil

	twoVsTwo := battle(1, 0, cycleDeck, beatdownDeck)
	twoVsTwo.Team = append(twoVsTwo.Team, twoVsTwo.Team[0])

	battles := []royale.Battle{
		battle(2, 0, cycleDeck, beatdownDeck),
		noCards,
		twoVsTwo,
		battle(0, 3, cycleDeck, beatdownDeck),
	}

	result := trainer.Train(battles)
	if result.Samples != 2 {
		t.Errorf("Train() samples = %d, want 2", result.Samples)
	}
	if result.Model == nil {
		t.Fatal("Train() produced no model from 2 usable battles")
	}
}

func TestTrainer_Train_OpponentOnlyBattlesShapeDistribution(t *testing.T) {
	trainer := newTestTrainer(TrainerConfig{
		Epochs: 10, LearningRate: 0.1, L2: 1e-3, MaxBattles: 50, MinExamples: 1,
	})

	// The team card list is missing, so this battle cannot become a
	// training example, but the opponent deck is intact and must still
	// count toward the distribution.
	teamMissing := battle(0, 1, cycleDeck, beatdownDeck)
	teamMissing.Team[0].Cards = nil

	battles := []royale.Battle{
		teamMissing,
		battle(1, 0, cycleDeck, cycleDeck),
	}

	result := trainer.Train(battles)
	if result.Samples != 1 {
		t.Errorf("Train() samples = %d, want 1", result.Samples)
	}
	if got := result.Distribution[archetype.Beatdown]; got != 0.5 {
		t.Errorf("Distribution[Beatdown] = %v, want 0.5", got)
	}
	if got := result.Distribution[archetype.Cycle]; got != 0.5 {
		t.Errorf("Distribution[Cycle] = %v, want 0.5", got)
	}
}

// swappableRegistry stands in for a hot-reloading provider.
type swappableRegistry struct {
	idx *cards.Index
}

func (r *swappableRegistry) Index() *cards.Index {
	return r.idx
}

func TestTrainer_Train_ObservesRegistryReload(t *testing.T) {
	reg := &swappableRegistry{idx: cards.LoadDefault()}
	trainer := NewTrainer(reg, TrainerConfig{
		Epochs: 10, LearningRate: 0.1, L2: 1e-3, MaxBattles: 50, MinExamples: 1,
	})

	battles := []royale.Battle{battle(1, 0, cycleDeck, beatdownDeck)}

	before := trainer.Train(battles)
	if got := before.Distribution[archetype.Beatdown]; got != 1.0 {
		t.Fatalf("Distribution[Beatdown] before reload = %v, want 1.0", got)
	}

	// A reloaded registry where the same cards cost one elixir makes the
	// opponent deck far too cheap for a beatdown read. Training after the
	// swap must label against the new snapshot.
	reg.idx = cards.Load([]byte(`{"cost": {
		"Golem": 1, "Baby Dragon": 1, "Night Witch": 1, "Lightning": 1,
		"Tornado": 1, "Mega Minion": 1, "Lumberjack": 1, "Zap": 1
	}}`))

	after := trainer.Train(battles)
	if got := after.Distribution[archetype.Beatdown]; got != 0 {
		t.Errorf("Distribution[Beatdown] after reload = %v, want 0", got)
	}
	if got := after.Distribution[archetype.Hybrid]; got != 1.0 {
		t.Errorf("Distribution[Hybrid] after reload = %v, want 1.0", got)
	}
}

func TestTrainer_Train_RespectsMaxBattles(t *testing.T) {
	trainer := newTestTrainer(TrainerConfig{
		Epochs: 10, LearningRate: 0.1, L2: 1e-3, MaxBattles: 5, MinExamples: 2,
	})

	battles := make([]royale.Battle, 0, 20)
	for i := 0; i < 20; i++ {
		battles = append(battles, battle(1, 0, cycleDeck, beatdownDeck))
	}

	result := trainer.Train(battles)
	if result.Samples != 5 {
		t.Errorf("Train() samples = %d, want 5", result.Samples)
	}
}

func TestTrainer_Train_Deterministic(t *testing.T) {
	battles := []royale.Battle{
		battle(1, 0, cycleDeck, beatdownDeck),
		battle(0, 2, cycleDeck, beatdownDeck),
		battle(3, 1, cycleDeck, cycleDeck),
		battle(1, 1, cycleDeck, beatdownDeck),
		battle(2, 0, cycleDeck, cycleDeck),
		battle(0, 1, cycleDeck, beatdownDeck),
		battle(1, 0, cycleDeck, cycleDeck),
		battle(2, 1, cycleDeck, beatdownDeck),
		battle(0, 3, cycleDeck, cycleDeck),
		battle(3, 0, cycleDeck, beatdownDeck),
	}

	first := newTestTrainer(TrainerConfig{}).Train(battles)
	second := newTestTrainer(TrainerConfig{}).Train(battles)

	if first.Model == nil || second.Model == nil {
		t.Fatal("Train() produced no model")
	}
	if !reflect.DeepEqual(first.Model.Weights, second.Model.Weights) {
		t.Error("Train() weights differ between identical runs")
	}
	if !reflect.DeepEqual(first.Distribution, second.Distribution) {
		t.Error("Train() distributions differ between identical runs")
	}
}

func TestTrainer_Train_DistributionSumsToOne(t *testing.T) {
	trainer := newTestTrainer(TrainerConfig{})

	battles := []royale.Battle{
		battle(1, 0, cycleDeck, beatdownDeck),
		battle(0, 1, cycleDeck, beatdownDeck),
		battle(1, 0, cycleDeck, cycleDeck),
		battle(2, 1, cycleDeck, beatdownDeck),
	}

	result := trainer.Train(battles)
	sum := 0.0
	for _, p := range result.Distribution {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Distribution sums to %v, want 1.0", sum)
	}
	if got := result.Distribution[archetype.Beatdown]; got != 0.75 {
		t.Errorf("Distribution[Beatdown] = %v, want 0.75", got)
	}
}

func TestTrainer_Train_LearnsWinningSide(t *testing.T) {
	trainer := newTestTrainer(TrainerConfig{})

	// All victories against beatdown. The model should prefer the deck it
	// always saw winning.
	battles := make([]royale.Battle, 0, 12)
	for i := 0; i < 12; i++ {
		battles = append(battles, battle(2, 0, cycleDeck, beatdownDeck))
	}

	result := trainer.Train(battles)
	if result.Model == nil {
		t.Fatal("Train() produced no model")
	}

	features := NewFeatureBuilder(cards.LoadDefault())
	x := features.Build(cycleDeck, archetype.Beatdown, 2)
	if got := result.Model.Predict(x); got <= 0.5 {
		t.Errorf("Predict() after all-wins training = %v, want > 0.5", got)
	}
}
