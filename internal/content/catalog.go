// Package content serves the static association pages: executives, events
// and Tech Guild tracks.
package content

import (
	_ "embed"
	"fmt"

	"github.com/muaishaq001/nacos-hub/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Executives []domain.Executive `yaml:"executives" json:"executives"`
	Events     domain.Events      `yaml:"events" json:"events"`
	Tracks     []domain.Track     `yaml:"tracks" json:"tracks"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse content catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) Track(id string) (domain.Track, bool) {
	for _, t := range c.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Track{}, false
}
