// internal/tracker/keys.go
//
// Name parsing and JSON encoding for the closed enumerations.
// Names are matched case-insensitively; unknown names produce an
// UnknownKeyError carrying the closest valid name, if any is close enough.

package tracker

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a real name
// before we stop offering it as a suggestion.
const maxSuggestDistance = 3

// UnknownKeyError reports a name that is not part of an enumeration.
type UnknownKeyError struct {
	Kind       string // "resource", "tag", "milestone", "global"
	Key        string
	Suggestion string // empty when nothing is close
}

func (e *UnknownKeyError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s %q (did you mean %q?)", e.Kind, e.Key, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Key)
}

// Is makes errors.Is(err, ErrUnknownKey) hold for every UnknownKeyError.
func (e *UnknownKeyError) Is(target error) bool { return target == ErrUnknownKey }

// lookup finds key in names (case-insensitive) or builds an UnknownKeyError.
func lookup(kind string, names []string, key string) (int, error) {
	k := strings.TrimSpace(key)
	for i, n := range names {
		if strings.EqualFold(n, k) {
			return i, nil
		}
	}
	return -1, &UnknownKeyError{Kind: kind, Key: key, Suggestion: suggest(names, k)}
}

// suggest returns the closest name within maxSuggestDistance, or "".
func suggest(names []string, key string) string {
	best, bestDist := "", maxSuggestDistance+1
	lk := strings.ToLower(key)
	for _, n := range names {
		if d := levenshtein.ComputeDistance(lk, strings.ToLower(n)); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// ParseResource maps a name such as "steel" to its Resource.
func ParseResource(s string) (Resource, error) {
	i, err := lookup("resource", resourceNames[:], s)
	return Resource(i), err
}

// ParseTag maps a name such as "Jovian" to its Tag.
func ParseTag(s string) (Tag, error) {
	i, err := lookup("tag", tagNames[:], s)
	return Tag(i), err
}

// ParseMilestone maps a name such as "mayor" to its Milestone.
func ParseMilestone(s string) (Milestone, error) {
	i, err := lookup("milestone", milestoneNames[:], s)
	return Milestone(i), err
}

// ParseGlobalParam maps a name such as "oxygen" to its GlobalParam.
func ParseGlobalParam(s string) (GlobalParam, error) {
	i, err := lookup("global", globalNames[:], s)
	return GlobalParam(i), err
}

// ---------------------------------------------------------------------------
// JSON: every table is an object keyed by canonical name.

func (l Ledger) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(l))
	for i, v := range l {
		m[resourceNames[i]] = v
	}
	return json.Marshal(m)
}

func (l *Ledger) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	var out Ledger
	for k, v := range m {
		r, err := ParseResource(k)
		if err != nil {
			return err
		}
		out[r] = v
	}
	*l = out
	return nil
}

func (t TagCounts) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(t))
	for i, v := range t {
		m[tagNames[i]] = v
	}
	return json.Marshal(m)
}

func (t *TagCounts) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	var out TagCounts
	for k, v := range m {
		tag, err := ParseTag(k)
		if err != nil {
			return err
		}
		out[tag] = v
	}
	*t = out
	return nil
}

func (f MilestoneFlags) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, len(f))
	for i, v := range f {
		m[milestoneNames[i]] = v
	}
	return json.Marshal(m)
}

func (f *MilestoneFlags) UnmarshalJSON(b []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	var out MilestoneFlags
	for k, v := range m {
		ms, err := ParseMilestone(k)
		if err != nil {
			return err
		}
		out[ms] = v
	}
	*f = out
	return nil
}

func (r Resource) MarshalText() ([]byte, error)    { return []byte(r.String()), nil }
func (m Milestone) MarshalText() ([]byte, error)   { return []byte(m.String()), nil }
func (g GlobalParam) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (m *Milestone) UnmarshalText(b []byte) error {
	v, err := ParseMilestone(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
