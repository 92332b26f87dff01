package suggest

import (
	"testing"

	"github.com/rbatllet/royale-advisor/internal/archetype"
)

// everything owns the whole pool universe plus the fallback list.
func everything(t *testing.T) Ownership {
	t.Helper()
	var names []string
	for _, pools := range archetypePools {
		names = append(names, pools.WinCon...)
		names = append(names, pools.SmallSpell...)
		names = append(names, pools.BigSpell...)
		names = append(names, pools.Building...)
		names = append(names, pools.AntiAir...)
		names = append(names, pools.Splash...)
		names = append(names, pools.Support...)
	}
	names = append(names, fallbackCards...)
	return NewOwnership(names)
}

func TestGenerate_FullOwnership(t *testing.T) {
	owned := everything(t)

	for _, arch := range archetype.All {
		t.Run(string(arch), func(t *testing.T) {
			deck := Generate(arch, owned, 0)
			if len(deck) != DeckSize {
				t.Fatalf("Generate(%v) = %d cards, want %d: %v", arch, len(deck), DeckSize, deck)
			}

			seen := make(map[string]bool, len(deck))
			for _, name := range deck {
				if seen[name] {
					t.Errorf("Generate(%v) duplicated %q: %v", arch, name, deck)
				}
				seen[name] = true
			}
		})
	}
}

func TestGenerate_PoolPriority(t *testing.T) {
	owned := everything(t)

	deck := Generate(archetype.Cycle, owned, 0)
	if deck[0] != "Hog Rider" {
		t.Errorf("Generate(Cycle) first pick = %q, want the win condition", deck[0])
	}
	if deck[1] != "The Log" {
		t.Errorf("Generate(Cycle) second pick = %q, want the small spell", deck[1])
	}
}

func TestGenerate_OwnershipFilter(t *testing.T) {
	// Owning only the second-choice win condition makes it the pick.
	owned := NewOwnership([]string{"Miner", "Zap", "Fireball", "Cannon", "Musketeer", "Skeletons", "Ice Spirit", "Knight"})

	deck := Generate(archetype.Cycle, owned, 0)
	if deck[0] != "Miner" {
		t.Errorf("Generate(Cycle) first pick = %q, want Miner", deck[0])
	}
	for _, name := range deck {
		if !owned[name] {
			t.Errorf("Generate(Cycle) picked unowned card %q", name)
		}
	}
}

func TestGenerate_SparseOwnershipShortDeck(t *testing.T) {
	owned := NewOwnership([]string{"Hog Rider", "Knight"})

	deck := Generate(archetype.Cycle, owned, 0)
	if len(deck) != 2 {
		t.Errorf("Generate() with 2 owned cards = %d cards, want 2: %v", len(deck), deck)
	}
}

func TestGenerate_BeatdownSkipsBuildings(t *testing.T) {
	owned := everything(t)

	deck := Generate(archetype.Beatdown, owned, 0)
	buildings := map[string]bool{"Cannon": true, "Tesla": true, "Bomb Tower": true, "Inferno Tower": true, "Goblin Cage": true}
	for _, name := range deck {
		if buildings[name] {
			t.Errorf("Generate(Beatdown) picked building %q: %v", name, deck)
		}
	}
}

func TestGenerate_UnknownArchetypeFallsBack(t *testing.T) {
	owned := everything(t)

	deck := Generate(archetype.Archetype("Nonsense"), owned, 0)
	hybrid := Generate(archetype.Hybrid, owned, 0)
	if len(deck) != len(hybrid) {
		t.Fatalf("Generate(unknown) = %v, want the Hybrid deck %v", deck, hybrid)
	}
	for i := range deck {
		if deck[i] != hybrid[i] {
			t.Fatalf("Generate(unknown) = %v, want the Hybrid deck %v", deck, hybrid)
		}
	}
}

func TestNewOwnership_Normalizes(t *testing.T) {
	owned := NewOwnership([]string{"Knight (Evolution)", "Archers"})
	if !owned["Knight"] {
		t.Error("NewOwnership did not normalize variant suffix")
	}
	if !owned["Archers"] {
		t.Error("NewOwnership dropped a plain name")
	}
}
