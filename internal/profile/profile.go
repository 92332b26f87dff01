// Package profile derives a player's style profile from recent battle
// history.
package profile

import (
	"math"

	"github.com/rbatllet/royale-advisor/internal/archetype"
	"github.com/rbatllet/royale-advisor/internal/royale"
)

// StyleProfile aggregates a player's recent battles: how fast their decks
// are, what they like to play, and how many crowns they take. Derived and
// ephemeral; never persisted.
type StyleProfile struct {
	Samples   int                         `json:"samples"`
	AvgElixir float64                     `json:"avgElixir"`
	Favored   archetype.Archetype         `json:"favoredArchetype"`
	Histogram map[archetype.Archetype]int `json:"archetypeHistogram"`
	AvgCrowns float64                     `json:"avgCrowns"`
}

// Analyzer builds style profiles using the deck classifier.
type Analyzer struct {
	classifier *archetype.Classifier
}

// NewAnalyzer creates a style analyzer.
func NewAnalyzer(classifier *archetype.Classifier) *Analyzer {
	return &Analyzer{classifier: classifier}
}

// Build aggregates the usable battles in the log. Battles without a team
// card list are skipped individually. With no usable battles the profile is
// zero-valued with Favored = Hybrid/Other.
func (a *Analyzer) Build(battles []royale.Battle) *StyleProfile {
	p := &StyleProfile{
		Favored:   archetype.Hybrid,
		Histogram: make(map[archetype.Archetype]int),
	}

	totalElixir := 0.0
	totalCrowns := 0

	for i := range battles {
		b := &battles[i]
		deck := b.TeamDeck()
		if len(deck) == 0 {
			continue
		}

		analysis := a.classifier.Analyze(deck)
		p.Histogram[analysis.Archetype]++
		totalElixir += analysis.AvgElixir
		totalCrowns += b.Team[0].Crowns
		p.Samples++
	}

	if p.Samples == 0 {
		return p
	}

	p.AvgElixir = math.Round(totalElixir/float64(p.Samples)*10) / 10
	p.AvgCrowns = math.Round(float64(totalCrowns)/float64(p.Samples)*100) / 100

	// Favored archetype: highest count, canonical order breaking ties so
	// the result is deterministic.
	best := -1
	for _, arch := range archetype.All {
		if count := p.Histogram[arch]; count > best {
			best = count
			p.Favored = arch
		}
	}
	return p
}
