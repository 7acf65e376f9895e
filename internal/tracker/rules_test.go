package tracker

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitial_MatchesStartingSnapshot(t *testing.T) {
	s := Initial()

	assert.Equal(t, 20, s.TerraformRating)
	assert.Equal(t, 1, s.Generation)
	assert.Equal(t, Ledger{}, s.Resources)
	assert.Equal(t, Ledger{}, s.Production)
	assert.Equal(t, TagCounts{}, s.Tags)
	assert.Equal(t, GlobalParameters{Temperature: -30, Oxygen: 0, Oceans: 0}, s.GlobalParameters)
	assert.Equal(t, MilestoneFlags{}, s.Milestones)
	assert.Zero(t, s.Revision)
}

func TestClampGlobal_StoresClampedValueForEveryRequest(t *testing.T) {
	for v := -100; v <= 100; v++ {
		assert.Equal(t, min(8, max(-30, v)), Initial().WithGlobal(Temperature, v).GlobalParameters.Temperature, "temperature %d", v)
		assert.Equal(t, min(14, max(0, v)), Initial().WithGlobal(Oxygen, v).GlobalParameters.Oxygen, "oxygen %d", v)
		assert.Equal(t, min(9, max(0, v)), Initial().WithGlobal(Oceans, v).GlobalParameters.Oceans, "oceans %d", v)
	}
}

func TestClampTR_HasFloorButNoCeiling(t *testing.T) {
	for _, v := range []int{-1000, -1, 0, 1, 20, 35, 1000} {
		assert.Equal(t, max(0, v), Initial().WithTR(v).TerraformRating, "tr %d", v)
	}
}

func TestClamp_IsIdempotent(t *testing.T) {
	for v := -50; v <= 50; v++ {
		for _, p := range GlobalParams() {
			once := ClampGlobal(p, v)
			assert.Equal(t, once, ClampGlobal(p, once), "%s %d", p, v)
		}
		assert.Equal(t, ClampTR(v), ClampTR(ClampTR(v)))
		assert.Equal(t, ClampGeneration(v), ClampGeneration(ClampGeneration(v)))
	}
}

func TestWithResource_AllowsNegativeValues(t *testing.T) {
	s := Initial().WithResource(Heat, -4).WithProduction(MegaCredits, -5)

	assert.Equal(t, -4, s.Resources[Heat])
	assert.Equal(t, -5, s.Production[MegaCredits])
}

func TestWith_DoesNotModifyReceiver(t *testing.T) {
	base := Initial()
	_ = base.WithResource(Steel, 9).WithTag(Jovian, 2).WithGlobal(Oceans, 4).ToggleMilestone(Mayor)

	assert.Equal(t, Initial(), base)
}

func TestToggleMilestone_TwiceRestoresOriginal(t *testing.T) {
	for _, m := range Milestones() {
		s := Initial()
		once := s.ToggleMilestone(m)
		require.True(t, once.Milestones[m])
		assert.Equal(t, s, once.ToggleMilestone(m))
	}
}

func TestToggleMilestone_TouchesNothingElse(t *testing.T) {
	s := Initial().WithResource(MegaCredits, 30)
	next := s.ToggleMilestone(Terraformer)

	next.Milestones = s.Milestones
	assert.Equal(t, s, next)
}

func TestApply_SetAndAdjust(t *testing.T) {
	s := Initial()

	s, err := Apply(s, Action{Field: FieldResource, Key: "steel", Op: OpSet, Value: 3})
	require.NoError(t, err)
	s, err = Apply(s, Action{Field: FieldResource, Key: "Steel", Op: OpAdjust, Value: -5})
	require.NoError(t, err)
	assert.Equal(t, -2, s.Resources[Steel])

	s, err = Apply(s, Action{Field: FieldProduction, Key: "Energy", Op: OpAdjust, Value: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Production[Energy])

	s, err = Apply(s, Action{Field: FieldGlobal, Key: "temperature", Op: OpAdjust, Value: 100})
	require.NoError(t, err)
	assert.Equal(t, TemperatureMax, s.GlobalParameters.Temperature)

	s, err = Apply(s, Action{Field: FieldTR, Op: OpAdjust, Value: -50})
	require.NoError(t, err)
	assert.Equal(t, 0, s.TerraformRating)

	s, err = Apply(s, Action{Field: FieldTag, Key: "science", Op: OpSet, Value: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, s.Tags[Science])

	s, err = Apply(s, Action{Field: FieldMilestone, Key: "gardener", Op: OpToggle})
	require.NoError(t, err)
	assert.True(t, s.Milestones[Gardener])
}

func TestApply_GenerationNeverBelowOne(t *testing.T) {
	s, err := Apply(Initial(), Action{Field: FieldGeneration, Op: OpAdjust, Value: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Generation)

	s, err = Apply(s, Action{Field: FieldGeneration, Op: OpSet, Value: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, s.Generation)
}

func TestApply_AdjustSaturatesInsteadOfWrapping(t *testing.T) {
	hot := Initial().WithGlobal(Temperature, TemperatureMax)
	s, err := Apply(hot, Action{Field: FieldGlobal, Key: "temperature", Op: OpAdjust, Value: math.MaxInt})
	require.NoError(t, err)
	assert.Equal(t, TemperatureMax, s.GlobalParameters.Temperature)

	s, err = Apply(Initial(), Action{Field: FieldGlobal, Key: "temperature", Op: OpAdjust, Value: math.MinInt})
	require.NoError(t, err)
	assert.Equal(t, TemperatureMin, s.GlobalParameters.Temperature)

	s, err = Apply(Initial(), Action{Field: FieldTR, Op: OpAdjust, Value: math.MaxInt})
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, s.TerraformRating)

	s, err = Apply(Initial().WithResource(Heat, -1), Action{Field: FieldResource, Key: "heat", Op: OpAdjust, Value: math.MinInt})
	require.NoError(t, err)
	assert.Equal(t, math.MinInt, s.Resources[Heat])

	s, err = Apply(Initial().WithResource(Heat, 1), Action{Field: FieldResource, Key: "heat", Op: OpAdjust, Value: math.MaxInt})
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, s.Resources[Heat])
}

func TestApply_MalformedActionsLeaveStateUnchanged(t *testing.T) {
	base := Initial().WithResource(Plants, 5)

	cases := []struct {
		name   string
		action Action
		want   error
	}{
		{"unknown field", Action{Field: "cards", Op: OpSet, Value: 1}, ErrUnknownField},
		{"unknown resource", Action{Field: FieldResource, Key: "gold", Op: OpSet}, ErrUnknownKey},
		{"unknown tag", Action{Field: FieldTag, Key: "venus", Op: OpSet}, ErrUnknownKey},
		{"unknown global", Action{Field: FieldGlobal, Key: "venus", Op: OpSet}, ErrUnknownKey},
		{"toggle resource", Action{Field: FieldResource, Key: "Plants", Op: OpToggle}, ErrInvalidOp},
		{"set milestone", Action{Field: FieldMilestone, Key: "mayor", Op: OpSet, Value: 1}, ErrInvalidOp},
		{"missing op", Action{Field: FieldTR, Value: 3}, ErrInvalidOp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(base, tc.action)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Equal(t, base, got)
		})
	}
}

func TestParse_SuggestsClosestName(t *testing.T) {
	_, err := ParseResource("titanum")
	var uk *UnknownKeyError
	require.ErrorAs(t, err, &uk)
	assert.Equal(t, "Titanium", uk.Suggestion)

	_, err = ParseMilestone("zzzzzzzzzz")
	require.ErrorAs(t, err, &uk)
	assert.Empty(t, uk.Suggestion)
}
