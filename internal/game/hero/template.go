// Package hero provides the hero template catalog, roster instances, and the
// experience/leveling progression engine.
package hero

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// Template is an immutable hero catalog entry loaded from YAML.
type Template struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	Class          Class         `yaml:"class"`
	Role           Role          `yaml:"role"`
	Rarity         rarity.Rarity `yaml:"rarity"`
	Description    string        `yaml:"description"`
	Icon           string        `yaml:"icon"`
	Faction        string        `yaml:"faction,omitempty"`
	SpecialAbility string        `yaml:"special_ability,omitempty"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty and Class, Role,
// and Rarity are known values; otherwise one error naming every violation.
func (t *Template) Validate() error {
	var errs []string
	if t.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if t.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if !t.Class.Valid() {
		errs = append(errs, fmt.Sprintf("unknown class %q", t.Class))
	}
	if !t.Role.Valid() {
		errs = append(errs, fmt.Sprintf("unknown role %q", t.Role))
	}
	if !t.Rarity.Valid() {
		errs = append(errs, fmt.Sprintf("unknown rarity %q", t.Rarity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("hero template %q: %s", t.ID, strings.Join(errs, "; "))
	}
	return nil
}

// LoadTemplateFromBytes parses a single hero template from raw YAML bytes.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing hero template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml and *.yml files in dir and returns the
// parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading hero dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
