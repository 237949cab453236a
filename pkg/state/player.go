package state

import (
	"maps"
	"slices"

	"github.com/jwebster45206/glass-forest/pkg/effect"
	"github.com/jwebster45206/glass-forest/pkg/scenario"
)

// Player holds the player's traits, inventory and whereabouts.
type Player struct {
	Traits    map[effect.Trait]int `json:"traits"`
	Inventory []string             `json:"inventory"` // acquisition order
	Location  string               `json:"location"`
}

// Ensure Player satisfies the view used by descriptions and actions
var _ scenario.PlayerView = (*Player)(nil)

// NewPlayer creates a player with zeroed traits and an empty inventory.
func NewPlayer(location string) *Player {
	traits := make(map[effect.Trait]int, len(effect.Traits))
	for _, t := range effect.Traits {
		traits[t] = 0
	}
	return &Player{
		Traits:    traits,
		Inventory: make([]string, 0),
		Location:  location,
	}
}

// Trait returns the current score for a trait.
func (p *Player) Trait(t effect.Trait) int {
	return p.Traits[t]
}

// Has reports whether the item is in the inventory.
func (p *Player) Has(item string) bool {
	return slices.Contains(p.Inventory, item)
}

// Snapshot returns a deep copy, used to compare state across turns.
func (p *Player) Snapshot() Player {
	return Player{
		Traits:    maps.Clone(p.Traits),
		Inventory: slices.Clone(p.Inventory),
		Location:  p.Location,
	}
}
