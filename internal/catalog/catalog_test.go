package catalog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/terraform-os/internal/tracker"
)

func TestLoad_EmbeddedDefaultMatchesTrackerDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, tracker.DefaultRequirements(), c.Milestones)
	assert.Equal(t, MilestoneCost{MegaCredits: 8, VictoryPoints: 5}, c.MilestoneCost)
	require.Len(t, c.StandardProjects, 6)
	assert.Equal(t, StandardProject{Name: "City", Cost: "25 M€"}, c.StandardProjects[5])
	assert.Equal(t, []string{"none", "steel", "titanium", "plants", "cards"}, c.PlacementBonuses)

	r, ok := c.Requirement(tracker.Terraformer)
	require.True(t, ok)
	assert.Equal(t, 35, r.Target)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML(40)), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	r, _ := c.Requirement(tracker.Terraformer)
	assert.Equal(t, 40, r.Target)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_RejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"missing milestone": `
milestones:
  - {key: terraformer, description: x, target: 35, criterion: tr}
placement_bonuses: [none]
`,
		"unknown milestone": validYAML(35) + `
  - {key: tycoon, description: x, target: 1, criterion: hand}
`,
		"zero target":           validYAML(0),
		"criterion typo":        strings.Replace(validYAML(35), "criterion: tr}", "criterion: trr}", 1),
		"criterion case":        strings.Replace(validYAML(35), "criterion: tr}", "criterion: TR}", 1),
		"terraformer not on tr": strings.Replace(validYAML(35), "criterion: tr}", "criterion: hand}", 1),
		"no none bonus":         `milestones: []`,
		"not yaml":              "milestones: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func validYAML(terraformerTarget int) string {
	return `
placement_bonuses: [none, steel]
milestones:
  - {key: terraformer, description: "TR", target: ` + strconv.Itoa(terraformerTarget) + `, criterion: tr}
  - {key: mayor, description: m, target: 3, criterion: tiles.city}
  - {key: gardener, description: g, target: 3, criterion: tiles.greenery}
  - {key: builder, description: b, target: 8, criterion: tags.building}
  - {key: planner, description: p, target: 16, criterion: hand}`
}
