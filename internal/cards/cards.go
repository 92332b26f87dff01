// Package cards provides the card role and elixir-cost registry used by the
// classifier, the feature builder, and the deck generator.
package cards

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Role identifies a named set of cards sharing a tactical function.
type Role string

const (
	RoleWinCon     Role = "winCon"
	RoleBigSpell   Role = "bigSpell"
	RoleSmallSpell Role = "smallSpell"
	RoleBuilding   Role = "building"
	RoleAirTarget  Role = "airTarget"
	RoleSplash     Role = "splash"
	RoleReset      Role = "reset"
	RoleChampion   Role = "champion"
)

// AllRoles lists every role set the registry knows about.
var AllRoles = []Role{
	RoleWinCon, RoleBigSpell, RoleSmallSpell, RoleBuilding,
	RoleAirTarget, RoleSplash, RoleReset, RoleChampion,
}

// DefaultCost is the elixir cost assumed for cards the registry does not
// know. Unknown cards also belong to no role set. This is a documented
// policy, not an error: new cards appear in the game faster than the data
// document is updated, and callers must keep working with degraded
// precision.
const DefaultCost = 4.0

//go:embed data/cards.json
var defaultData []byte

// document is the on-disk shape of the registry data source.
type document struct {
	Cost  map[string]float64 `json:"cost"`
	Roles map[Role][]string  `json:"roles"`
}

// Index is an immutable snapshot of card costs and role memberships.
// Construct one with Load or LoadFile and pass it to every component that
// needs card knowledge. A degraded Index (empty data source) answers every
// query with defaults.
type Index struct {
	cost     map[string]float64
	roles    map[Role]map[string]bool
	degraded bool
}

// Load builds an Index from a registry document. A nil or malformed
// document yields a degraded Index rather than an error.
func Load(data []byte) *Index {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil || len(doc.Cost) == 0 {
		return degradedIndex()
	}

	idx := &Index{
		cost:  make(map[string]float64, len(doc.Cost)),
		roles: make(map[Role]map[string]bool, len(AllRoles)),
	}
	for name, cost := range doc.Cost {
		if cost > 0 {
			idx.cost[Normalize(name)] = cost
		}
	}
	for _, role := range AllRoles {
		members := make(map[string]bool, len(doc.Roles[role]))
		for _, name := range doc.Roles[role] {
			members[Normalize(name)] = true
		}
		idx.roles[role] = members
	}
	return idx
}

// LoadFile builds an Index from a registry document on disk. A missing or
// unreadable file yields a degraded Index.
func LoadFile(path string) *Index {
	data, err := os.ReadFile(path)
	if err != nil {
		return degradedIndex()
	}
	return Load(data)
}

// LoadDefault builds an Index from the data set embedded in the binary.
func LoadDefault() *Index {
	return Load(defaultData)
}

func degradedIndex() *Index {
	idx := &Index{
		cost:     map[string]float64{},
		roles:    make(map[Role]map[string]bool, len(AllRoles)),
		degraded: true,
	}
	for _, role := range AllRoles {
		idx.roles[role] = map[string]bool{}
	}
	return idx
}

// Degraded reports whether the Index was built without usable source data.
// Callers that care (health checks, diagnostics) can surface it; everyone
// else keeps working with defaults.
func (idx *Index) Degraded() bool {
	return idx.degraded
}

// Cost returns the elixir cost of a card, or DefaultCost if unknown.
func (idx *Index) Cost(name string) float64 {
	if cost, ok := idx.cost[Normalize(name)]; ok {
		return cost
	}
	return DefaultCost
}

// Known reports whether the card appears in the cost table.
func (idx *Index) Known(name string) bool {
	_, ok := idx.cost[Normalize(name)]
	return ok
}

// IsRole reports whether a single card belongs to the given role set.
func (idx *Index) IsRole(role Role, name string) bool {
	return idx.roles[role][Normalize(name)]
}

// HasRole reports whether any card in the deck belongs to the given role set.
func (idx *Index) HasRole(role Role, deck []string) bool {
	members := idx.roles[role]
	for _, name := range deck {
		if members[Normalize(name)] {
			return true
		}
	}
	return false
}

// RoleMembers returns the names in a role set, for diagnostics.
func (idx *Index) RoleMembers(role Role) []string {
	members := idx.roles[role]
	out := make([]string, 0, len(members))
	for name := range members {
		out = append(out, name)
	}
	return out
}

// Size returns the number of cards in the cost table.
func (idx *Index) Size() int {
	return len(idx.cost)
}

// Normalize strips a parenthetical variant suffix from a card name, e.g.
// "Archers (Evolved)" -> "Archers". Variant distinctions collapse to the
// base identity for cost and role purposes. Normalizing an already
// normalized name returns it unchanged.
func Normalize(name string) string {
	if i := strings.Index(name, " ("); i >= 0 {
		return name[:i]
	}
	return strings.TrimSpace(name)
}

// Validate checks that a deck is usable as input to the classifier and
// feature builder: non-empty and at most 8 cards.
func Validate(deck []string) error {
	if len(deck) == 0 {
		return fmt.Errorf("deck has no cards")
	}
	if len(deck) > 8 {
		return fmt.Errorf("deck has %d cards, maximum is 8", len(deck))
	}
	return nil
}
