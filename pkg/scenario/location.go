package scenario

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jwebster45206/glass-forest/pkg/effect"
	"gopkg.in/yaml.v3"
)

// NothingHere is returned when the player inspects an object the location does not have.
const NothingHere = "There's no such thing here."

// PlayerView provides the minimal read-only interface needed to describe
// locations and run actions. This avoids an import cycle with the state package.
type PlayerView interface {
	Trait(t effect.Trait) int
	Has(item string) bool
}

// TraitModifier is an extra sentence shown while the player's trait is above zero.
type TraitModifier struct {
	Trait effect.Trait
	Text  string
}

// TraitModifiers keeps the order the modifiers were authored in.
type TraitModifiers []TraitModifier

// UnmarshalYAML reads a trait -> text mapping while preserving key order.
func (m *TraitModifiers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("trait_modifiers: line %d: expected a mapping", node.Line)
	}
	out := make(TraitModifiers, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		trait, ok := effect.ParseTrait(key.Value)
		if !ok {
			return fmt.Errorf("trait_modifiers: line %d: unknown trait %q", key.Line, key.Value)
		}
		var text string
		if err := value.Decode(&text); err != nil {
			return fmt.Errorf("trait_modifiers.%s: %w", key.Value, err)
		}
		out = append(out, TraitModifier{Trait: trait, Text: text})
	}
	*m = out
	return nil
}

// ActionFunc computes the effect of an action. It must not mutate the player or
// the location; the returned effect is applied by the caller.
type ActionFunc func(p PlayerView, loc *Location) effect.Effect

// Action is a handler bound to a phrase within a location.
type Action struct {
	Exits []string   // every location the handler may send the player to
	Do    ActionFunc // computes the effect
}

// Location represents a node in the navigation graph.
type Location struct {
	ID             string            `yaml:"-"` // Also the key in the registry.
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	TraitModifiers TraitModifiers    `yaml:"trait_modifiers,omitempty"`
	Objects        map[string]string `yaml:"objects,omitempty"` // Lookable object -> description
	Items          []string          `yaml:"items,omitempty"`   // Items that can be taken here
	Actions        map[string]Action `yaml:"-"`                 // Canonical phrase -> action
}

// Describe composes the description the player sees: the base text, one
// sentence per modifier whose trait is above zero, then the visible items.
func (l *Location) Describe(p PlayerView) string {
	var b strings.Builder
	b.WriteString(l.Description)
	for _, m := range l.TraitModifiers {
		if p.Trait(m.Trait) > 0 {
			b.WriteString(" ")
			b.WriteString(m.Text)
		}
	}
	if len(l.Items) > 0 {
		b.WriteString(" You see: ")
		b.WriteString(strings.Join(l.Items, ", "))
	}
	return b.String()
}

// Inspect returns the description of a lookable object.
func (l *Location) Inspect(object string) string {
	if desc, ok := l.Objects[object]; ok {
		return desc
	}
	return NothingHere
}

// HasItem reports whether the item is lying in this location.
func (l *Location) HasItem(item string) bool {
	return slices.Contains(l.Items, item)
}

// ActionPhrases returns the phrases this location responds to, sorted.
func (l *Location) ActionPhrases() []string {
	phrases := make([]string, 0, len(l.Actions))
	for p := range l.Actions {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)
	return phrases
}

// CanonicalPhrase lowercases a command and collapses its whitespace, which is
// the form action phrases are registered and looked up in.
func CanonicalPhrase(input string) string {
	return strings.Join(strings.Fields(strings.ToLower(input)), " ")
}
