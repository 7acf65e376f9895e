package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terraformerReq(t *testing.T) Requirement {
	t.Helper()
	for _, r := range DefaultRequirements() {
		if r.Milestone == Terraformer {
			return r
		}
	}
	t.Fatal("no terraformer requirement")
	return Requirement{}
}

func TestProgress_TerraformerClampsAtHundred(t *testing.T) {
	req := terraformerReq(t)

	assert.Equal(t, 0.0, Progress(Initial().WithTR(0), req))
	assert.Equal(t, 100.0, Progress(Initial().WithTR(35), req))
	assert.Equal(t, 100.0, Progress(Initial().WithTR(50), req))
	assert.InDelta(t, 57.14, Progress(Initial(), req), 0.01)
}

func TestProgress_UntrackedMilestonesStayAtZero(t *testing.T) {
	s := Initial().WithTag(Building, 12).WithTag(City, 5).WithTR(60)

	for _, r := range DefaultRequirements() {
		if r.Milestone == Terraformer {
			continue
		}
		assert.False(t, r.Tracked(), r.Milestone.String())
		assert.Zero(t, Progress(s, r), r.Milestone.String())
	}
}

func TestMilestoneStatuses_LabelsAndClaims(t *testing.T) {
	s := Initial().ToggleMilestone(Mayor).ToggleMilestone(Planner)

	b := MilestoneStatuses(s, DefaultRequirements())

	require.Len(t, b.Milestones, 5)
	assert.Equal(t, 2, b.Claimed)
	assert.Equal(t, 3, b.MaxClaims)
	assert.Equal(t, "20 / 35 TR", b.Milestones[0].Label)
	assert.True(t, b.Milestones[0].Tracked)
	assert.Equal(t, "Manual Track", b.Milestones[1].Label)
	assert.True(t, b.Milestones[1].Claimed)
}
