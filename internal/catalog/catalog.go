// Package catalog loads the fixed OSDI question catalog.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"osdi-survey/internal/domain"
)

//go:embed osdi.yaml
var defaultCatalog []byte

// groupSizes is the OSDI layout: ocular symptoms, vision-related function, environmental triggers.
var groupSizes = []int{5, 4, 3}

// Load reads a catalog from path, or the embedded OSDI catalog when path is empty.
func Load(path string) (domain.Catalog, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return domain.Catalog{}, err
		}
		data = raw
	}
	return Parse(data)
}

// Default returns the embedded catalog.
func Default() domain.Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (domain.Catalog, error) {
	var c domain.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return domain.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := Validate(c); err != nil {
		return domain.Catalog{}, err
	}
	return c, nil
}

// Validate checks the group layout and that every option value is a legal answer.
func Validate(c domain.Catalog) error {
	if len(c.Groups) != len(groupSizes) {
		return fmt.Errorf("%w: want %d groups, got %d", domain.ErrInvalidCatalog, len(groupSizes), len(c.Groups))
	}
	for i, g := range c.Groups {
		if len(g.Questions) != groupSizes[i] {
			return fmt.Errorf("%w: group %q has %d questions, want %d", domain.ErrInvalidCatalog, g.Name, len(g.Questions), groupSizes[i])
		}
	}
	if len(c.Options) == 0 {
		return fmt.Errorf("%w: no answer options", domain.ErrInvalidCatalog)
	}
	for _, o := range c.Options {
		if o.Value < 0 || o.Value > domain.MaxAnswerValue {
			return fmt.Errorf("%w: option %q has value %d", domain.ErrInvalidCatalog, o.Label, o.Value)
		}
	}
	return nil
}
