// Package suggest generates candidate decks for an archetype and ranks them
// for a player, heuristically and by modeled win probability.
package suggest

import (
	"github.com/rbatllet/royale-advisor/internal/archetype"
	"github.com/rbatllet/royale-advisor/internal/cards"
)

// DeckSize is the number of cards in a complete deck.
const DeckSize = 8

// Ownership is the set of cards a player owns, keyed by normalized name.
type Ownership map[string]bool

// NewOwnership builds an ownership set from raw card names.
func NewOwnership(names []string) Ownership {
	owned := make(Ownership, len(names))
	for _, name := range names {
		owned[cards.Normalize(name)] = true
	}
	return owned
}

// Generate builds a candidate deck for the archetype from its role pools,
// keeping only owned cards. Pools are drained in strict priority order
// (win condition, small spell, big spell, building, anti-air, splash), one
// pick each, then remaining slots fill from the support pool and finally
// from the universal fallback list. A card already picked is never added
// again.
//
// targetAvg is accepted for interface compatibility but does not steer pool
// selection; generation follows pool order only. Deliberately left as-is
// until the steering behavior is specified.
//
// The result has at most DeckSize cards and may be shorter when ownership
// is too sparse even after fallback; callers must tolerate a short deck.
func Generate(arch archetype.Archetype, owned Ownership, targetAvg float64) []string {
	_ = targetAvg

	pools, ok := archetypePools[arch]
	if !ok {
		pools = archetypePools[archetype.Hybrid]
	}

	deck := make([]string, 0, DeckSize)
	picked := make(map[string]bool, DeckSize)

	pick := func(pool []string, limit int) {
		taken := 0
		for _, name := range pool {
			if len(deck) >= DeckSize || taken >= limit {
				return
			}
			if picked[name] || !owned[name] {
				continue
			}
			deck = append(deck, name)
			picked[name] = true
			taken++
		}
	}

	pick(pools.WinCon, 1)
	pick(pools.SmallSpell, 1)
	pick(pools.BigSpell, 1)
	pick(pools.Building, 1) // no-op for archetypes without a building pool
	pick(pools.AntiAir, 1)
	pick(pools.Splash, 1)
	pick(pools.Support, DeckSize)
	pick(fallbackCards, DeckSize)

	return deck
}
