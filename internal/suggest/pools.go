package suggest

import "github.com/rbatllet/royale-advisor/internal/archetype"

// cardPools holds the role-labeled candidate pools for one archetype.
// Within each pool the listed order is the pick order: first owned card
// wins. Beatdown intentionally has no building pool; those decks spend
// their defensive elixir on troops that join the next push.
type cardPools struct {
	WinCon     []string
	SmallSpell []string
	BigSpell   []string
	Building   []string
	AntiAir    []string
	Splash     []string
	Support    []string
}

// archetypePools defines the generation pools per archetype.
var archetypePools = map[archetype.Archetype]cardPools{
	archetype.Cycle: {
		WinCon:     []string{"Hog Rider", "Miner", "Wall Breakers", "Royal Hogs"},
		SmallSpell: []string{"The Log", "Zap", "Giant Snowball"},
		BigSpell:   []string{"Fireball", "Poison", "Earthquake"},
		Building:   []string{"Cannon", "Tesla", "Bomb Tower"},
		AntiAir:    []string{"Musketeer", "Archers", "Mega Minion", "Firecracker"},
		Splash:     []string{"Valkyrie", "Ice Wizard"},
		Support:    []string{"Skeletons", "Ice Spirit", "Electro Spirit", "Ice Golem", "Knight"},
	},
	archetype.Bait: {
		WinCon:     []string{"Goblin Barrel", "Miner"},
		SmallSpell: []string{"The Log", "Zap", "Arrows"},
		BigSpell:   []string{"Rocket", "Fireball"},
		Building:   []string{"Inferno Tower", "Goblin Cage", "Tesla"},
		AntiAir:    []string{"Princess", "Dart Goblin", "Firecracker"},
		Splash:     []string{"Princess", "Valkyrie"},
		Support:    []string{"Goblin Gang", "Skeleton Army", "Knight", "Ice Spirit", "Skeletons"},
	},
	archetype.Beatdown: {
		WinCon:     []string{"Golem", "Giant", "Lava Hound", "Electro Giant", "Goblin Giant"},
		SmallSpell: []string{"Zap", "Barbarian Barrel"},
		BigSpell:   []string{"Lightning", "Fireball", "Poison"},
		AntiAir:    []string{"Mega Minion", "Musketeer", "Flying Machine"},
		Splash:     []string{"Baby Dragon", "Witch", "Bowler"},
		Support:    []string{"Night Witch", "Lumberjack", "Dark Prince", "Elixir Collector", "Heal Spirit"},
	},
	archetype.Control: {
		WinCon:     []string{"Graveyard", "Royal Giant", "Three Musketeers"},
		SmallSpell: []string{"The Log", "Barbarian Barrel", "Tornado"},
		BigSpell:   []string{"Poison", "Fireball", "Lightning"},
		Building:   []string{"Bomb Tower", "Cannon", "Tesla"},
		AntiAir:    []string{"Musketeer", "Hunter", "Electro Wizard"},
		Splash:     []string{"Ice Wizard", "Bowler", "Baby Dragon"},
		Support:    []string{"Knight", "Ice Golem", "Fisherman", "Skeletons"},
	},
	archetype.Siege: {
		WinCon:     []string{"X-Bow", "Mortar"},
		SmallSpell: []string{"The Log", "Arrows"},
		BigSpell:   []string{"Fireball", "Rocket"},
		Building:   []string{"Tesla", "Cannon"},
		AntiAir:    []string{"Archers", "Musketeer", "Dart Goblin"},
		Splash:     []string{"Ice Wizard", "Firecracker"},
		Support:    []string{"Knight", "Ice Spirit", "Skeletons", "Ice Golem"},
	},
	archetype.BridgeSpam: {
		WinCon:     []string{"Battle Ram", "Ram Rider", "Royal Hogs"},
		SmallSpell: []string{"Zap", "Barbarian Barrel", "The Log"},
		BigSpell:   []string{"Poison", "Fireball"},
		Building:   []string{"Goblin Cage"},
		AntiAir:    []string{"Electro Wizard", "Magic Archer", "Hunter"},
		Splash:     []string{"Dark Prince", "Magic Archer"},
		Support:    []string{"Bandit", "Royal Ghost", "Lumberjack", "Ice Golem"},
	},
	archetype.Hybrid: {
		WinCon:     []string{"Hog Rider", "Miner", "Royal Giant"},
		SmallSpell: []string{"Zap", "The Log"},
		BigSpell:   []string{"Fireball", "Poison"},
		Building:   []string{"Cannon", "Tesla"},
		AntiAir:    []string{"Musketeer", "Archers"},
		Splash:     []string{"Valkyrie", "Baby Dragon"},
		Support:    []string{"Knight", "Ice Spirit", "Skeletons", "Bats"},
	},
}

// fallbackCards backfills a deck when ownership is too sparse to fill from
// the archetype pools. Every account owns these early-arena cards.
var fallbackCards = []string{
	"Knight", "Archers", "Arrows", "Fireball",
	"Minions", "Spear Goblins", "Goblins", "Musketeer",
}
