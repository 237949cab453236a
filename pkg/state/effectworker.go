package state

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/glass-forest/pkg/effect"
	"github.com/jwebster45206/glass-forest/pkg/scenario"
)

var (
	// ErrUnknownLocation is returned when an effect moves the player somewhere the registry doesn't know.
	ErrUnknownLocation = errors.New("unknown location")
	// ErrItemNotPresent is returned when an effect takes an item the location doesn't hold.
	ErrItemNotPresent = errors.New("item not present")
)

// EffectWorker applies an action's effect to the game state. Effects are
// checked in full before anything changes, so a rejected effect leaves the
// game exactly as it was.
type EffectWorker struct {
	gs       *GameState
	effect   *effect.Effect
	location *scenario.Location // location the effect originated in
	logger   *slog.Logger
}

// NewEffectWorker creates a worker for one effect raised in the given location.
func NewEffectWorker(gs *GameState, e *effect.Effect, loc *scenario.Location, logger *slog.Logger) *EffectWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &EffectWorker{
		gs:       gs,
		effect:   e,
		location: loc,
		logger:   logger,
	}
}

// Validate checks the effect against the current state without applying it.
func (ew *EffectWorker) Validate() error {
	if ew.effect == nil {
		return nil
	}
	if err := ew.effect.Validate(); err != nil {
		return err
	}
	if ew.effect.MoveTo != "" && !ew.gs.World.Has(ew.effect.MoveTo) {
		return fmt.Errorf("move to %q: %w", ew.effect.MoveTo, ErrUnknownLocation)
	}
	for _, item := range ew.effect.Acquire {
		if ew.location == nil || !ew.location.HasItem(item) {
			return fmt.Errorf("acquire %q: %w", item, ErrItemNotPresent)
		}
	}
	return nil
}

// Apply validates the effect, then applies traits, items, movement and quit in that order.
func (ew *EffectWorker) Apply() error {
	if ew.effect.IsEmpty() {
		return nil
	}
	if err := ew.Validate(); err != nil {
		return err
	}

	p := ew.gs.Player
	for t, delta := range ew.effect.Traits {
		if delta == 0 {
			continue
		}
		p.Traits[t] += delta
		ew.logger.Debug("Trait increased", "trait", t, "delta", delta, "value", p.Traits[t])
	}

	for _, item := range ew.effect.Reveal {
		if ew.location == nil || ew.location.HasItem(item) {
			continue
		}
		ew.location.Items = append(ew.location.Items, item)
		ew.logger.Debug("Item revealed", "item", item, "location", ew.location.ID)
	}

	for _, item := range ew.effect.Acquire {
		ew.location.Items = removeItem(ew.location.Items, item)
		p.Inventory = append(p.Inventory, item)
		ew.logger.Debug("Item acquired", "item", item, "location", ew.location.ID)
	}

	if ew.effect.MoveTo != "" && ew.effect.MoveTo != p.Location {
		ew.logger.Info("Location changed", "from", p.Location, "to", ew.effect.MoveTo)
		p.Location = ew.effect.MoveTo
	}

	if ew.effect.Quit {
		ew.gs.IsEnded = true
	}

	return nil
}

// removeItem removes the first occurrence of item
func removeItem(items []string, item string) []string {
	for i, it := range items {
		if it == item {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
