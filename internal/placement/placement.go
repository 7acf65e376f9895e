// Package placement previews what placing a tile on a hex would yield,
// given the tiles around it. It is a calculator, not a board: the caller
// supplies the adjacency counts.
package placement

import (
	"errors"
	"fmt"
	"strings"
)

// A hex has at most six neighbours.
const maxAdjacent = 6

// megaCreditsPerOcean is the cashback for each ocean next to a placed tile.
const megaCreditsPerOcean = 2

var ErrUnknownBonus = errors.New("unknown placement bonus")

// Bonus is the resource printed on the target hex.
type Bonus string

const (
	BonusNone     Bonus = "none"
	BonusSteel    Bonus = "steel"
	BonusTitanium Bonus = "titanium"
	BonusPlants   Bonus = "plants"
	BonusCards    Bonus = "cards"
)

var bonuses = []Bonus{BonusNone, BonusSteel, BonusTitanium, BonusPlants, BonusCards}

// ParseBonus maps a name to a Bonus; "" means none.
func ParseBonus(s string) (Bonus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return BonusNone, nil
	}
	for _, b := range bonuses {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBonus, s)
}

// Input describes the target hex.
type Input struct {
	AdjacentOceans     int    `json:"adjacentOceans"`
	AdjacentCities     int    `json:"adjacentCities"`
	AdjacentGreeneries int    `json:"adjacentGreeneries"`
	Bonus              string `json:"bonus"`
}

// Yield is the preview for the target hex.
type Yield struct {
	AdjacentOceans     int   `json:"adjacentOceans"`
	AdjacentCities     int   `json:"adjacentCities"`
	AdjacentGreeneries int   `json:"adjacentGreeneries"`
	MegaCreditReturn   int   `json:"megaCreditReturn"` // ocean adjacency cashback
	GreeneryVP         int   `json:"greeneryVP"`       // if a greenery goes here: one per adjacent city
	CityVP             int   `json:"cityVP"`           // if a city goes here: one per adjacent greenery
	Bonus              Bonus `json:"bonus"`
}

func clampAdjacent(n int) int { return min(maxAdjacent, max(0, n)) }

// Calculate clamps the adjacency counts to [0, 6] and computes the yield.
func Calculate(in Input) (Yield, error) {
	b, err := ParseBonus(in.Bonus)
	if err != nil {
		return Yield{}, err
	}
	y := Yield{
		AdjacentOceans:     clampAdjacent(in.AdjacentOceans),
		AdjacentCities:     clampAdjacent(in.AdjacentCities),
		AdjacentGreeneries: clampAdjacent(in.AdjacentGreeneries),
		Bonus:              b,
	}
	y.MegaCreditReturn = megaCreditsPerOcean * y.AdjacentOceans
	y.GreeneryVP = y.AdjacentCities
	y.CityVP = y.AdjacentGreeneries
	return y, nil
}
