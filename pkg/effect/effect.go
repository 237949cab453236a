package effect

import (
	"errors"
	"fmt"
)

// Trait is one of the personality counters summarizing player choices.
type Trait string

const (
	Aggression Trait = "aggression"
	Creativity Trait = "creativity"
	Empathy    Trait = "empathy"
)

// Traits lists every known trait in display order.
var Traits = []Trait{Aggression, Creativity, Empathy}

// ErrNegativeTrait is returned when an effect would lower a trait.
var ErrNegativeTrait = errors.New("trait deltas must not be negative")

// ParseTrait returns the trait with the given name.
func ParseTrait(name string) (Trait, bool) {
	for _, t := range Traits {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

// Effect is the structured result of an action handler. Handlers build one and
// the state package applies it, so handlers never touch the game state directly.
type Effect struct {
	Narration string        `json:"narration,omitempty"`
	Traits    map[Trait]int `json:"traits,omitempty"`  // deltas, never negative
	Reveal    []string      `json:"reveal,omitempty"`  // items that appear in the owning location
	Acquire   []string      `json:"acquire,omitempty"` // items moved from the current location to inventory
	MoveTo    string        `json:"move_to,omitempty"` // empty means stay
	Quit      bool          `json:"quit,omitempty"`
}

// Stay returns an effect that only narrates.
func Stay(narration string) Effect {
	return Effect{Narration: narration}
}

// Move returns an effect that narrates and sends the player to a location.
func Move(to, narration string) Effect {
	return Effect{MoveTo: to, Narration: narration}
}

// Quit returns an effect that ends the game.
func Quit() Effect {
	return Effect{Quit: true}
}

// WithTrait adds a trait delta to the effect and returns it for chaining.
func (e Effect) WithTrait(t Trait, delta int) Effect {
	if e.Traits == nil {
		e.Traits = make(map[Trait]int)
	}
	e.Traits[t] += delta
	return e
}

// Validate checks the effect for deltas that would break trait monotonicity.
func (e Effect) Validate() error {
	for t, d := range e.Traits {
		if _, ok := ParseTrait(string(t)); !ok {
			return fmt.Errorf("unknown trait %q", t)
		}
		if d < 0 {
			return fmt.Errorf("%s delta %d: %w", t, d, ErrNegativeTrait)
		}
	}
	return nil
}

// IsEmpty reports whether the effect changes nothing.
func (e *Effect) IsEmpty() bool {
	return e == nil || (e.Narration == "" &&
		len(e.Traits) == 0 &&
		len(e.Reveal) == 0 &&
		len(e.Acquire) == 0 &&
		e.MoveTo == "" &&
		!e.Quit)
}
