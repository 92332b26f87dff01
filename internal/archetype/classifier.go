// Package archetype classifies 8-card decks into strategic archetypes and
// produces advisory notes about deck composition.
package archetype

import (
	"math"

	"github.com/rbatllet/royale-advisor/internal/cards"
)

// Archetype is one of the seven strategic deck categories.
type Archetype string

const (
	Cycle      Archetype = "Cycle"
	Bait       Archetype = "Bait"
	Beatdown   Archetype = "Beatdown"
	Control    Archetype = "Control"
	Siege      Archetype = "Siege"
	BridgeSpam Archetype = "Bridge Spam"
	Hybrid     Archetype = "Hybrid/Other"
)

// All lists every archetype in canonical order. The order is a contract:
// the feature builder derives one-hot indices from it.
var All = []Archetype{Cycle, Bait, Beatdown, Control, Siege, BridgeSpam, Hybrid}

// Index returns the canonical position of an archetype, or -1 if unknown.
func Index(a Archetype) int {
	for i, other := range All {
		if a == other {
			return i
		}
	}
	return -1
}

// Fixed card sets driving classification. These are intentionally narrow:
// they name the cards that define a strategy, not every card that can appear
// in it.
var (
	siegeUnits = []string{"X-Bow", "Mortar"}

	beatdownWinCons = []string{
		"Golem", "Giant", "Lava Hound", "Electro Giant", "Goblin Giant",
	}

	baitCore = []string{
		"Goblin Barrel", "Princess", "Goblin Gang", "Dart Goblin",
	}

	cycleWinCons = []string{
		"Hog Rider", "Miner", "Wall Breakers", "Royal Hogs",
	}

	bridgeSpamCore = []string{
		"Bandit", "Battle Ram", "Ram Rider", "Dark Prince", "Royal Ghost",
	}

	controlWinCons = []string{
		"Graveyard", "Royal Giant", "Three Musketeers",
	}
)

// Analysis is an immutable snapshot of a classified deck. It is recomputed
// fresh on every call and never cached.
type Analysis struct {
	Cards         []string  `json:"cards"`
	AvgElixir     float64   `json:"avgElixir"`
	Archetype     Archetype `json:"archetype"`
	WinConditions []string  `json:"winConditions"`
	CheapCyclers  int       `json:"cheapCyclers"`

	HasWinCon     bool `json:"hasWinCon"`
	HasBigSpell   bool `json:"hasBigSpell"`
	HasSmallSpell bool `json:"hasSmallSpell"`
	HasBuilding   bool `json:"hasBuilding"`
	HasAirTarget  bool `json:"hasAirTarget"`
	HasSplash     bool `json:"hasSplash"`
	HasReset      bool `json:"hasReset"`
	HasChampion   bool `json:"hasChampion"`

	Notes []string `json:"notes"`
}

// Classifier maps decks to archetypes using an ordered rule chain over the
// card registry.
type Classifier struct {
	index *cards.Index
}

// NewClassifier creates a classifier backed by the given registry snapshot.
func NewClassifier(index *cards.Index) *Classifier {
	return &Classifier{index: index}
}

// rule pairs a predicate with the archetype it selects. Rules are evaluated
// in order and the first match wins; the order is part of the contract
// (e.g. a deck with both a siege unit and a beatdown win condition is Siege).
type rule struct {
	archetype Archetype
	matches   func(a *Analysis, deck []string) bool
}

var rules = []rule{
	{Siege, func(a *Analysis, deck []string) bool {
		return containsAny(deck, siegeUnits) > 0
	}},
	{Beatdown, func(a *Analysis, deck []string) bool {
		return containsAny(deck, beatdownWinCons) > 0 && a.AvgElixir >= 4.1
	}},
	{Bait, func(a *Analysis, deck []string) bool {
		return containsAny(deck, baitCore) >= 2
	}},
	{Cycle, func(a *Analysis, deck []string) bool {
		return containsAny(deck, cycleWinCons) > 0 && a.AvgElixir <= 3.2
	}},
	{BridgeSpam, func(a *Analysis, deck []string) bool {
		return containsAny(deck, bridgeSpamCore) >= 2
	}},
	{Control, func(a *Analysis, deck []string) bool {
		return containsAny(deck, controlWinCons) > 0
	}},
}

// Analyze classifies a deck. Card names may carry variant suffixes; they are
// normalized before lookup. Unknown cards cost the registry default and
// belong to no role set. The function is pure: identical input yields
// identical output.
func (c *Classifier) Analyze(deck []string) *Analysis {
	normalized := make([]string, len(deck))
	for i, name := range deck {
		normalized[i] = cards.Normalize(name)
	}

	a := &Analysis{
		Cards:     normalized,
		AvgElixir: c.averageElixir(normalized),
	}

	a.HasWinCon = c.index.HasRole(cards.RoleWinCon, normalized)
	a.HasBigSpell = c.index.HasRole(cards.RoleBigSpell, normalized)
	a.HasSmallSpell = c.index.HasRole(cards.RoleSmallSpell, normalized)
	a.HasBuilding = c.index.HasRole(cards.RoleBuilding, normalized)
	a.HasAirTarget = c.index.HasRole(cards.RoleAirTarget, normalized)
	a.HasSplash = c.index.HasRole(cards.RoleSplash, normalized)
	a.HasReset = c.index.HasRole(cards.RoleReset, normalized)
	a.HasChampion = c.index.HasRole(cards.RoleChampion, normalized)

	for _, name := range normalized {
		if c.index.Cost(name) <= 2 {
			a.CheapCyclers++
		}
		if c.index.IsRole(cards.RoleWinCon, name) {
			a.WinConditions = append(a.WinConditions, name)
		}
	}

	a.Archetype = Hybrid
	for _, r := range rules {
		if r.matches(a, normalized) {
			a.Archetype = r.archetype
			break
		}
	}

	a.Notes = c.notes(a)
	return a
}

// averageElixir returns the mean cost over the actual card count, rounded
// half away from zero to one decimal.
func (c *Classifier) averageElixir(deck []string) float64 {
	if len(deck) == 0 {
		return 0
	}
	total := 0.0
	for _, name := range deck {
		total += c.index.Cost(name)
	}
	return math.Round(total/float64(len(deck))*10) / 10
}

// notes generates advisory notes in a fixed order. Each note is independent;
// every applicable note is emitted.
func (c *Classifier) notes(a *Analysis) []string {
	var notes []string
	if !a.HasAirTarget {
		notes = append(notes, "No reliable anti-air: air decks will be a hard matchup.")
	}
	if !a.HasSmallSpell {
		notes = append(notes, "No small spell: swarms and bait cards go unanswered.")
	}
	if !a.HasBigSpell {
		notes = append(notes, "No big spell: grouped mid-health troops are hard to punish.")
	}
	if a.CheapCyclers < 2 {
		notes = append(notes, "Fewer than two cheap cyclers: the deck will struggle to rotate.")
	}
	if !a.HasSplash {
		notes = append(notes, "No splash damage: swarm pushes can overwhelm single-target troops.")
	}
	if a.AvgElixir >= 4.5 && a.Archetype != Beatdown {
		notes = append(notes, "High average elixir without a beatdown plan: expect to be outpaced.")
	}
	return notes
}

// containsAny counts how many cards from set appear in the normalized deck.
func containsAny(deck []string, set []string) int {
	count := 0
	for _, want := range set {
		for _, name := range deck {
			if name == want {
				count++
				break
			}
		}
	}
	return count
}
