package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed world.yaml
var worldYAML []byte

// worldFile is the on-disk shape of world.yaml.
type worldFile struct {
	Start     string               `yaml:"start"`
	Locations map[string]*Location `yaml:"locations"`
}

// Registry maps location IDs to locations. Each game owns its own registry,
// since actions change the items lying around.
type Registry struct {
	start     string
	locations map[string]*Location
}

// NewRegistry builds a fresh registry from the embedded world and the default action tables.
func NewRegistry() (*Registry, error) {
	return LoadRegistry(worldYAML, DefaultActions())
}

// LoadRegistry decodes world data and binds action tables to it by location ID.
func LoadRegistry(data []byte, actions map[string]map[string]Action) (*Registry, error) {
	var wf worldFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&wf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode world: %w", err)
	}
	if len(wf.Locations) == 0 {
		return nil, fmt.Errorf("world defines no locations")
	}

	r := &Registry{
		start:     wf.Start,
		locations: make(map[string]*Location, len(wf.Locations)),
	}
	for id, loc := range wf.Locations {
		if loc == nil {
			loc = &Location{}
		}
		loc.ID = id
		loc.Actions = make(map[string]Action)
		r.locations[id] = loc
	}
	if _, ok := r.locations[r.start]; !ok {
		return nil, fmt.Errorf("start location %q is not defined", r.start)
	}

	for id, table := range actions {
		loc, ok := r.locations[id]
		if !ok {
			return nil, fmt.Errorf("actions bound to unknown location %q", id)
		}
		for phrase, action := range table {
			if action.Do == nil {
				return nil, fmt.Errorf("location %s: action %q has no handler", id, phrase)
			}
			loc.Actions[phrase] = action
		}
	}

	return r, nil
}

// Start returns the ID of the location every game begins in.
func (r *Registry) Start() string {
	return r.start
}

// Get returns the location with the given ID.
func (r *Registry) Get(id string) (*Location, bool) {
	loc, ok := r.locations[id]
	return loc, ok
}

// Has reports whether the ID names a location.
func (r *Registry) Has(id string) bool {
	_, ok := r.locations[id]
	return ok
}

// IDs returns all location IDs, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.locations))
	for id := range r.locations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate reports actions that lead to locations missing from the registry,
// and phrases that can never match a canonicalized command.
func (r *Registry) Validate() []error {
	var errs []error
	for _, id := range r.IDs() {
		loc := r.locations[id]
		for _, phrase := range loc.ActionPhrases() {
			if CanonicalPhrase(phrase) != phrase {
				errs = append(errs, fmt.Errorf("location %s: action %q is not canonical (want %q)", id, phrase, CanonicalPhrase(phrase)))
			}
			for _, exit := range loc.Actions[phrase].Exits {
				if !r.Has(exit) {
					errs = append(errs, fmt.Errorf("location %s: action %q leads to unknown location %q", id, phrase, exit))
				}
			}
		}
	}
	return errs
}
