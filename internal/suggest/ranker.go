package suggest

import (
	"math"
	"sort"

	"github.com/rbatllet/royale-advisor/internal/archetype"
	"github.com/rbatllet/royale-advisor/internal/ml"
	"github.com/rbatllet/royale-advisor/internal/profile"
)

// Suggestion is one ranked candidate deck.
type Suggestion struct {
	Deck      []string            `json:"deck"`
	Archetype archetype.Archetype `json:"archetype"`
	Score     float64             `json:"score"`
	WinProb   float64             `json:"winProb,omitempty"`
	Analysis  *archetype.Analysis `json:"analysis"`
}

// candidateCount is how many candidate decks a ranking pass evaluates.
const candidateCount = 5

// Ranker generates and orders deck suggestions for a player.
type Ranker struct {
	classifier *archetype.Classifier
	features   *ml.FeatureBuilder
}

// NewRanker creates a ranker over the given classifier and feature builder.
func NewRanker(classifier *archetype.Classifier, features *ml.FeatureBuilder) *Ranker {
	return &Ranker{classifier: classifier, features: features}
}

// ScoreDeck computes the heuristic fit of a deck for a player profile:
// a flat bonus for matching their favored archetype, closeness to their
// usual average elixir, and fixed bonuses for spell and anti-air coverage.
func (r *Ranker) ScoreDeck(deck []string, style *profile.StyleProfile) (float64, *archetype.Analysis) {
	analysis := r.classifier.Analyze(deck)

	score := 0.0
	if analysis.Archetype == style.Favored {
		score += 2.0
	}
	score += math.Max(0, 1.5-math.Abs(analysis.AvgElixir-style.AvgElixir))
	if analysis.HasSmallSpell {
		score += 0.6
	}
	if analysis.HasBigSpell {
		score += 0.6
	}
	if analysis.HasAirTarget {
		score += 0.6
	}
	if analysis.HasSplash {
		score += 0.4
	}
	return score, analysis
}

// Rank generates candidateCount decks and orders them best first. Without a
// model the order is by heuristic score. With a model the primary key is
// expected win probability against the opponent-archetype distribution,
// heuristic score breaking ties.
func (r *Ranker) Rank(owned Ownership, style *profile.StyleProfile, model *ml.Model, dist ml.Distribution) []Suggestion {
	suggestions := make([]Suggestion, 0, candidateCount)
	for _, arch := range candidateArchetypes(style) {
		deck := Generate(arch, owned, style.AvgElixir)
		if len(deck) == 0 {
			continue
		}
		score, analysis := r.ScoreDeck(deck, style)
		suggestions = append(suggestions, Suggestion{
			Deck:      deck,
			Archetype: arch,
			Score:     score,
			Analysis:  analysis,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if model == nil || len(dist) == 0 {
		return suggestions
	}

	for i := range suggestions {
		suggestions[i].WinProb = model.ExpectedWinProb(r.features, suggestions[i].Deck, dist)
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].WinProb != suggestions[j].WinProb {
			return suggestions[i].WinProb > suggestions[j].WinProb
		}
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions
}

// candidateArchetypes picks which archetypes to generate candidates for:
// the player's favored archetype first, then the rest of their histogram by
// frequency, topped up in canonical order until candidateCount are chosen.
func candidateArchetypes(style *profile.StyleProfile) []archetype.Archetype {
	chosen := make([]archetype.Archetype, 0, candidateCount)
	used := make(map[archetype.Archetype]bool, candidateCount)

	add := func(arch archetype.Archetype) {
		if len(chosen) < candidateCount && !used[arch] {
			chosen = append(chosen, arch)
			used[arch] = true
		}
	}

	add(style.Favored)

	rest := make([]archetype.Archetype, 0, len(archetype.All))
	for _, arch := range archetype.All {
		if !used[arch] && style.Histogram[arch] > 0 {
			rest = append(rest, arch)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return style.Histogram[rest[i]] > style.Histogram[rest[j]]
	})
	for _, arch := range rest {
		add(arch)
	}

	for _, arch := range archetype.All {
		add(arch)
	}
	return chosen
}
