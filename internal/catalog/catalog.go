// internal/catalog/catalog.go
//
// Reference catalog for the tracker: milestone requirements, standard
// project costs and tile placement bonuses.
//
// Initialization behavior (Load):
//   1. If a path is given (CATALOG_FILE), read and parse that file.
//   2. Otherwise fall back to the catalog embedded in the assets package.
//
// Constraints:
//   • Every milestone the tracker knows must appear exactly once.
//   • Milestone targets are positive.
//   • Placement bonuses always include "none".

package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/terraform-os/assets"
	"github.com/robalobadob/terraform-os/internal/tracker"
)

// StandardProject is a fixed-price action listed for reference.
type StandardProject struct {
	Name string `yaml:"name" json:"name"`
	Cost string `yaml:"cost" json:"cost"`
}

// MilestoneCost is the price and reward of funding a milestone.
type MilestoneCost struct {
	MegaCredits   int `yaml:"megacredits" json:"megaCredits"`
	VictoryPoints int `yaml:"victory_points" json:"victoryPoints"`
}

// Catalog is the parsed reference data.
type Catalog struct {
	Milestones       []tracker.Requirement `json:"milestones"`
	MilestoneCost    MilestoneCost         `json:"milestoneCost"`
	StandardProjects []StandardProject     `json:"standardProjects"`
	PlacementBonuses []string              `json:"placementBonuses"`
}

// file is the on-disk shape; milestone keys are decoded as plain strings
// and resolved against the tracker enums in Parse.
type file struct {
	Milestones []struct {
		Key         string `yaml:"key"`
		Description string `yaml:"description"`
		Target      int    `yaml:"target"`
		Criterion   string `yaml:"criterion"`
	} `yaml:"milestones"`
	MilestoneCost    MilestoneCost     `yaml:"milestone_cost"`
	StandardProjects []StandardProject `yaml:"standard_projects"`
	PlacementBonuses []string          `yaml:"placement_bonuses"`
}

// Load reads the catalog at path, or the embedded default if path is empty.
func Load(path string) (*Catalog, error) {
	var (
		raw []byte
		err error
	)
	if path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = assets.Catalog()
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates catalog YAML.
func Parse(raw []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	c := &Catalog{
		MilestoneCost:    f.MilestoneCost,
		StandardProjects: f.StandardProjects,
	}

	seen := make(map[tracker.Milestone]bool)
	for _, m := range f.Milestones {
		key, err := tracker.ParseMilestone(m.Key)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if seen[key] {
			return nil, fmt.Errorf("catalog: milestone %q listed twice", key)
		}
		if m.Target <= 0 {
			return nil, fmt.Errorf("catalog: milestone %q: target must be positive", key)
		}
		crit := tracker.Criterion(strings.TrimSpace(m.Criterion))
		if !crit.Valid() {
			return nil, fmt.Errorf("catalog: milestone %q: unknown criterion %q", key, m.Criterion)
		}
		// The terraformer milestone is the one the state can measure.
		if key == tracker.Terraformer && crit != tracker.CriterionTR {
			return nil, fmt.Errorf("catalog: milestone %q must use criterion %q", key, tracker.CriterionTR)
		}
		seen[key] = true
		c.Milestones = append(c.Milestones, tracker.Requirement{
			Milestone:   key,
			Description: m.Description,
			Target:      m.Target,
			Criterion:   crit,
		})
	}
	for _, m := range tracker.Milestones() {
		if !seen[m] {
			return nil, fmt.Errorf("catalog: milestone %q missing", m)
		}
	}

	hasNone := false
	for _, b := range f.PlacementBonuses {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		hasNone = hasNone || b == "none"
		c.PlacementBonuses = append(c.PlacementBonuses, b)
	}
	if !hasNone {
		return nil, errors.New(`catalog: placement bonuses must include "none"`)
	}
	return c, nil
}

// Requirement returns the requirement for m.
func (c *Catalog) Requirement(m tracker.Milestone) (tracker.Requirement, bool) {
	for _, r := range c.Milestones {
		if r.Milestone == m {
			return r, true
		}
	}
	return tracker.Requirement{}, false
}
