package royale

// Player is a player profile as returned by the card-data API. Only the
// fields the advisor consumes are mapped.
type Player struct {
	Tag      string       `json:"tag"`
	Name     string       `json:"name"`
	Trophies int          `json:"trophies"`
	Cards    []PlayerCard `json:"cards"`
}

// PlayerCard is an owned card in a player profile.
type PlayerCard struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// OwnedNames returns the names of all owned cards.
func (p *Player) OwnedNames() []string {
	names := make([]string, 0, len(p.Cards))
	for _, c := range p.Cards {
		names = append(names, c.Name)
	}
	return names
}

// Battle is one battle-log entry. Fields may be absent for some game modes;
// consumers must skip entries they cannot use rather than fail.
type Battle struct {
	Type       string         `json:"type"`
	BattleTime string         `json:"battleTime"`
	Team       []BattlePlayer `json:"team"`
	Opponent   []BattlePlayer `json:"opponent"`
}

// BattlePlayer is one side of a battle.
type BattlePlayer struct {
	Tag    string       `json:"tag"`
	Name   string       `json:"name"`
	Crowns int          `json:"crowns"`
	Cards  []BattleCard `json:"cards"`
}

// BattleCard is a card played in a battle. The API may append a variant
// suffix to evolved forms; normalization happens at lookup time, not here.
type BattleCard struct {
	Name string `json:"name"`
}

// IsUsable reports whether the battle carries enough data to analyze:
// a 1v1 with card lists on both sides.
func (b *Battle) IsUsable() bool {
	return len(b.Team) == 1 && len(b.Opponent) == 1 &&
		len(b.Team[0].Cards) > 0 && len(b.Opponent[0].Cards) > 0
}

// TeamDeck returns the player's card names, or nil if absent.
func (b *Battle) TeamDeck() []string {
	if len(b.Team) == 0 {
		return nil
	}
	return deckNames(b.Team[0].Cards)
}

// OpponentDeck returns the opponent's card names, or nil if absent.
func (b *Battle) OpponentDeck() []string {
	if len(b.Opponent) == 0 {
		return nil
	}
	return deckNames(b.Opponent[0].Cards)
}

func deckNames(cards []BattleCard) []string {
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}
	return names
}
