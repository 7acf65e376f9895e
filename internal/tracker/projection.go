// internal/tracker/projection.go
//
// Next-generation forecast.
//
// Production phase order is fixed: all current Energy turns into Heat first,
// then production is added, and TR pays out as MegaCredits income.

package tracker

// Conversion weights used by the valuation rollup.
const (
	steelValue    = 2
	titaniumValue = 3
)

// HeatConversion previews the Energy that becomes Heat (1:1) at the start
// of the production phase.
type HeatConversion struct {
	Energy int `json:"energy"`
	Heat   int `json:"heat"`
}

// Projection is what the player would hold after the current generation resolves.
type Projection struct {
	Generation     int            `json:"generation"` // the generation being forecast
	Resources      Ledger         `json:"resources"`
	Valuation      int            `json:"valuation"` // M€ + 2×Steel + 3×Titanium
	HeatConversion HeatConversion `json:"heatConversion"`
}

// Project computes the forecast for s. It does not modify s.
func Project(s State) Projection {
	res, prod := s.Resources, s.Production

	var next Ledger
	next[MegaCredits] = max(0, res[MegaCredits]+prod[MegaCredits]+s.TerraformRating)
	next[Steel] = res[Steel] + prod[Steel]
	next[Titanium] = res[Titanium] + prod[Titanium]
	next[Plants] = res[Plants] + prod[Plants]
	next[Energy] = prod[Energy]
	next[Heat] = res[Heat] + res[Energy] + prod[Heat]

	return Projection{
		Generation:     s.Generation + 1,
		Resources:      next,
		Valuation:      Valuation(next),
		HeatConversion: HeatConversion{Energy: res[Energy], Heat: res[Energy]},
	}
}

// Valuation rolls a ledger up into MegaCredits at fixed trade weights.
func Valuation(l Ledger) int {
	return l[MegaCredits] + steelValue*l[Steel] + titaniumValue*l[Titanium]
}
