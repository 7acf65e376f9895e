package tracker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() State {
	s := Initial()
	s.Resources = Ledger{MegaCredits: 10, Steel: 2, Titanium: 1, Plants: 0, Energy: 3, Heat: 0}
	s.Production = Ledger{MegaCredits: 5, Steel: 1, Titanium: 0, Plants: 2, Energy: 1, Heat: 0}
	s.TerraformRating = 20
	return s
}

func TestProject_ProductionPhaseOrder(t *testing.T) {
	p := Project(sampleState())

	assert.Equal(t, Ledger{MegaCredits: 35, Steel: 3, Titanium: 1, Plants: 2, Energy: 1, Heat: 3}, p.Resources)
	assert.Equal(t, 44, p.Valuation)
	assert.Equal(t, HeatConversion{Energy: 3, Heat: 3}, p.HeatConversion)
	assert.Equal(t, 2, p.Generation)
}

func TestProject_MegaCreditsNeverNegative(t *testing.T) {
	s := Initial().WithTR(0).WithProduction(MegaCredits, -5).WithResource(MegaCredits, 2)

	assert.Equal(t, 0, Project(s).Resources[MegaCredits])
}

func TestProject_IsPure(t *testing.T) {
	s := sampleState()
	before := s

	first := Project(s)
	second := Project(s)

	assert.Equal(t, first, second)
	assert.Equal(t, before, s)
}

func TestLedger_JSONUsesCanonicalNames(t *testing.T) {
	b, err := json.Marshal(sampleState().Resources)
	require.NoError(t, err)
	assert.JSONEq(t, `{"MegaCredits":10,"Steel":2,"Titanium":1,"Plants":0,"Energy":3,"Heat":0}`, string(b))

	var back Ledger
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, sampleState().Resources, back)
}
