// internal/tracker/rules.go
//
// Bounded update rules and the state transition function.
// Responsibilities:
//   - Clamp global parameters, terraform rating and generation to their ranges.
//   - Apply a single Action to a State, returning the next State.
//
// Out-of-range values are never an error: they are clamped. Errors are only
// returned for actions that do not name a real field, key or operation.

package tracker

import (
	"errors"
	"fmt"
	"math"
)

// Fixed bounds of the tracked fields.
const (
	TemperatureMin = -30
	TemperatureMax = 8
	OxygenMin      = 0
	OxygenMax      = 14
	OceansMin      = 0
	OceansMax      = 9
	TRMin          = 0
	GenerationMin  = 1
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrUnknownKey   = errors.New("unknown key")
	ErrInvalidOp    = errors.New("invalid operation")
)

// Bounds describes the closed range of a global parameter and the size of
// one step on its track.
type Bounds struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

var globalBounds = [numGlobals]Bounds{
	Temperature: {Min: TemperatureMin, Max: TemperatureMax, Step: 2},
	Oxygen:      {Min: OxygenMin, Max: OxygenMax, Step: 1},
	Oceans:      {Min: OceansMin, Max: OceansMax, Step: 1},
}

// BoundsOf returns the range and step of a global parameter.
func BoundsOf(p GlobalParam) Bounds { return globalBounds[p] }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampGlobal returns v clamped to the range of p.
func ClampGlobal(p GlobalParam, v int) int {
	b := globalBounds[p]
	return clamp(v, b.Min, b.Max)
}

// ClampTR clamps a terraform rating to >= 0. There is no maximum.
func ClampTR(v int) int { return max(TRMin, v) }

// ClampGeneration clamps a generation number to >= 1.
func ClampGeneration(v int) int { return max(GenerationMin, v) }

// ---------------------------------------------------------------------------
// Typed edits. Each returns a modified copy; the receiver is untouched.

func (s State) WithResource(r Resource, v int) State {
	s.Resources[r] = v
	return s
}

func (s State) WithProduction(r Resource, v int) State {
	s.Production[r] = v
	return s
}

func (s State) WithTag(t Tag, v int) State {
	s.Tags[t] = v
	return s
}

// WithGlobal stores the clamped value of a global parameter.
func (s State) WithGlobal(p GlobalParam, v int) State {
	v = ClampGlobal(p, v)
	switch p {
	case Temperature:
		s.GlobalParameters.Temperature = v
	case Oxygen:
		s.GlobalParameters.Oxygen = v
	case Oceans:
		s.GlobalParameters.Oceans = v
	}
	return s
}

func (s State) WithTR(v int) State {
	s.TerraformRating = ClampTR(v)
	return s
}

func (s State) WithGeneration(v int) State {
	s.Generation = ClampGeneration(v)
	return s
}

// ToggleMilestone flips the claimed flag of m. Nothing else changes.
func (s State) ToggleMilestone(m Milestone) State {
	s.Milestones[m] = !s.Milestones[m]
	return s
}

// ---------------------------------------------------------------------------
// Actions

// Field names the part of the state an Action edits.
type Field string

const (
	FieldResource   Field = "resource"
	FieldProduction Field = "production"
	FieldGlobal     Field = "global"
	FieldTR         Field = "tr"
	FieldGeneration Field = "generation"
	FieldTag        Field = "tag"
	FieldMilestone  Field = "milestone"
)

// Op is what an Action does to its field.
type Op string

const (
	OpSet    Op = "set"    // store Value
	OpAdjust Op = "adjust" // store current + Value
	OpToggle Op = "toggle" // milestones only
)

// Action is one discrete user edit.
type Action struct {
	Field Field  `json:"field"`
	Key   string `json:"key,omitempty"` // enum name; unused for tr/generation
	Op    Op     `json:"op"`
	Value int    `json:"value,omitempty"`
}

// Apply returns the state that results from applying a to s.
// On error the returned state is s, unchanged.
func Apply(s State, a Action) (State, error) {
	switch a.Field {
	case FieldResource, FieldProduction:
		r, err := ParseResource(a.Key)
		if err != nil {
			return s, err
		}
		table := s.Resources
		if a.Field == FieldProduction {
			table = s.Production
		}
		v, err := resolve(a, table[r])
		if err != nil {
			return s, err
		}
		if a.Field == FieldProduction {
			return s.WithProduction(r, v), nil
		}
		return s.WithResource(r, v), nil

	case FieldGlobal:
		p, err := ParseGlobalParam(a.Key)
		if err != nil {
			return s, err
		}
		v, err := resolve(a, s.GlobalParameters.Get(p))
		if err != nil {
			return s, err
		}
		return s.WithGlobal(p, v), nil

	case FieldTR:
		v, err := resolve(a, s.TerraformRating)
		if err != nil {
			return s, err
		}
		return s.WithTR(v), nil

	case FieldGeneration:
		v, err := resolve(a, s.Generation)
		if err != nil {
			return s, err
		}
		return s.WithGeneration(v), nil

	case FieldTag:
		t, err := ParseTag(a.Key)
		if err != nil {
			return s, err
		}
		v, err := resolve(a, s.Tags[t])
		if err != nil {
			return s, err
		}
		return s.WithTag(t, v), nil

	case FieldMilestone:
		m, err := ParseMilestone(a.Key)
		if err != nil {
			return s, err
		}
		if a.Op != OpToggle {
			return s, fmt.Errorf("%w: %q on milestone", ErrInvalidOp, a.Op)
		}
		return s.ToggleMilestone(m), nil
	}
	return s, fmt.Errorf("%w: %q", ErrUnknownField, a.Field)
}

// resolve computes the requested (unclamped) value for numeric fields.
func resolve(a Action, current int) (int, error) {
	switch a.Op {
	case OpSet:
		return a.Value, nil
	case OpAdjust:
		return addSaturating(current, a.Value), nil
	}
	return 0, fmt.Errorf("%w: %q on %s", ErrInvalidOp, a.Op, a.Field)
}

// addSaturating returns a+b, pinned to the int range instead of wrapping.
func addSaturating(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
