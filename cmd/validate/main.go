package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jwebster45206/glass-forest/pkg/scenario"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func main() {
	world, err := scenario.NewRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load world: %v\n", err)
		os.Exit(1)
	}

	validator := &WorldValidator{}
	validator.validateWorld(world)

	fmt.Printf("Validated %d locations\n", len(world.IDs()))
	if len(validator.errors) > 0 {
		fmt.Fprintf(os.Stderr, "Validation failed:\n%s\n", strings.Join(validator.errors, "\n"))
		os.Exit(1)
	}

	fmt.Println("World is valid!")
}

type WorldValidator struct {
	errors []string
}

func (v *WorldValidator) validateWorld(world *scenario.Registry) {
	title := cases.Title(language.English)

	for _, id := range world.IDs() {
		v.validateIDFormat("location ID", id)

		loc, _ := world.Get(id)
		if strings.TrimSpace(loc.Description) == "" {
			v.addError(fmt.Sprintf("location %s has no description", id))
		}
		if loc.Name == "" {
			v.addError(fmt.Sprintf("location %s has no name (suggest %q)", id, title.String(strings.ReplaceAll(id, "_", " "))))
		}
		for object := range loc.Objects {
			if object != scenario.CanonicalPhrase(object) {
				v.addError(fmt.Sprintf("location %s: object %q can never be looked at", id, object))
			}
		}
		for _, item := range loc.Items {
			if item != scenario.CanonicalPhrase(item) {
				v.addError(fmt.Sprintf("location %s: item %q can never be taken", id, item))
			}
		}
	}

	for _, err := range world.Validate() {
		v.addError(err.Error())
	}
}

func (v *WorldValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
