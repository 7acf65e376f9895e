// internal/tracker/milestones.go
//
// Milestone progress.
//
// Only criteria the state actually tracks are computed. Today that is the
// terraform rating (terraformer). Tile counts and hand size are not part of
// the state, so milestones that need them stay at 0% and are claimed by hand.

package tracker

import (
	"fmt"
	"math"
)

// Criterion names the quantity a milestone is measured by.
type Criterion string

const (
	CriterionTR            Criterion = "tr"
	CriterionCityTiles     Criterion = "tiles.city"
	CriterionGreeneryTiles Criterion = "tiles.greenery"
	CriterionBuildingTags  Criterion = "tags.building"
	CriterionHand          Criterion = "hand"
)

var criteria = []Criterion{CriterionTR, CriterionCityTiles, CriterionGreeneryTiles, CriterionBuildingTags, CriterionHand}

// Valid reports whether c is one of the known criteria.
func (c Criterion) Valid() bool {
	for _, k := range criteria {
		if c == k {
			return true
		}
	}
	return false
}

// Requirement is the completion criterion of one milestone.
type Requirement struct {
	Milestone   Milestone `json:"key" yaml:"key"`
	Description string    `json:"description" yaml:"description"`
	Target      int       `json:"target" yaml:"target"`
	Criterion   Criterion `json:"criterion" yaml:"criterion"`
}

// Tracked reports whether progress toward r is computed from the state.
func (r Requirement) Tracked() bool { return r.Criterion == CriterionTR }

// current returns the tracked quantity, or false when the state has none.
func (r Requirement) current(s State) (int, bool) {
	switch r.Criterion {
	case CriterionTR:
		return s.TerraformRating, true
	}
	return 0, false
}

// Progress returns clamp(100 × current / target, 0, 100).
// Untracked criteria always report 0.
func Progress(s State, r Requirement) float64 {
	cur, ok := r.current(s)
	if !ok || r.Target <= 0 {
		return 0
	}
	p := 100 * float64(cur) / float64(r.Target)
	return math.Max(0, math.Min(100, p))
}

// MilestoneStatus is one row of the milestone race monitor.
type MilestoneStatus struct {
	Milestone   Milestone `json:"key"`
	Description string    `json:"description"`
	Target      int       `json:"target"`
	Claimed     bool      `json:"claimed"`
	Tracked     bool      `json:"tracked"`
	Progress    float64   `json:"progress"`
	Label       string    `json:"label"`
}

// MilestoneBoard is the full race monitor.
type MilestoneBoard struct {
	Milestones []MilestoneStatus `json:"milestones"`
	Claimed    int               `json:"claimed"`
	MaxClaims  int               `json:"maxClaims"` // informational; not enforced
}

// maxClaims is the number of milestones a game allows to be funded.
const maxClaims = 3

// MilestoneStatuses evaluates every requirement against s.
func MilestoneStatuses(s State, reqs []Requirement) MilestoneBoard {
	b := MilestoneBoard{Milestones: make([]MilestoneStatus, 0, len(reqs)), MaxClaims: maxClaims}
	for _, r := range reqs {
		st := MilestoneStatus{
			Milestone:   r.Milestone,
			Description: r.Description,
			Target:      r.Target,
			Claimed:     s.Milestones[r.Milestone],
			Tracked:     r.Tracked(),
			Progress:    Progress(s, r),
			Label:       "Manual Track",
		}
		if st.Tracked {
			cur, _ := r.current(s)
			st.Label = fmt.Sprintf("%d / %d TR", cur, r.Target)
		}
		if st.Claimed {
			b.Claimed++
		}
		b.Milestones = append(b.Milestones, st)
	}
	return b
}

// DefaultRequirements mirrors the embedded catalog; used when no catalog is loaded.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{Milestone: Terraformer, Description: "TR ≥ 35", Target: 35, Criterion: CriterionTR},
		{Milestone: Mayor, Description: "3 City Tiles", Target: 3, Criterion: CriterionCityTiles},
		{Milestone: Gardener, Description: "3 Greenery Tiles", Target: 3, Criterion: CriterionGreeneryTiles},
		{Milestone: Builder, Description: "8 Building Tags", Target: 8, Criterion: CriterionBuildingTags},
		{Milestone: Planner, Description: "16 Cards in Hand", Target: 16, Criterion: CriterionHand},
	}
}
