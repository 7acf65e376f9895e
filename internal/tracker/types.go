// internal/tracker/types.go
//
// Core type definitions for the game-state tracker.
// Defines:
//   - Resource, Tag, Milestone, GlobalParam: closed enumerations.
//   - Ledger, TagCounts, MilestoneFlags: fixed-size tables indexed by those enums.
//   - State: the single game-state snapshot.
//
// Tables are arrays, so copying a State copies everything; a snapshot can be
// handed out without aliasing the store's copy.

package tracker

import "time"

// Resource is one of the six player resources.
type Resource int

const (
	MegaCredits Resource = iota
	Steel
	Titanium
	Plants
	Energy
	Heat
	numResources
)

var resourceNames = [numResources]string{"MegaCredits", "Steel", "Titanium", "Plants", "Energy", "Heat"}

func (r Resource) String() string {
	if r < 0 || r >= numResources {
		return "Resource(?)"
	}
	return resourceNames[r]
}

// Resources lists every resource in display order.
func Resources() []Resource {
	out := make([]Resource, numResources)
	for i := range out {
		out[i] = Resource(i)
	}
	return out
}

// Tag is a card tag the player counts manually.
type Tag int

const (
	Science Tag = iota
	Building
	Space
	Microbe
	Plant
	Animal
	Jovian
	Earth
	City
	Event
	numTags
)

var tagNames = [numTags]string{"science", "building", "space", "microbe", "plant", "animal", "jovian", "earth", "city", "event"}

func (t Tag) String() string {
	if t < 0 || t >= numTags {
		return "Tag(?)"
	}
	return tagNames[t]
}

// Tags lists every tag in display order.
func Tags() []Tag {
	out := make([]Tag, numTags)
	for i := range out {
		out[i] = Tag(i)
	}
	return out
}

// Milestone is one of the claimable milestones of the base map.
type Milestone int

const (
	Terraformer Milestone = iota
	Mayor
	Gardener
	Builder
	Planner
	numMilestones
)

var milestoneNames = [numMilestones]string{"terraformer", "mayor", "gardener", "builder", "planner"}

func (m Milestone) String() string {
	if m < 0 || m >= numMilestones {
		return "Milestone(?)"
	}
	return milestoneNames[m]
}

// Milestones lists every milestone in display order.
func Milestones() []Milestone {
	out := make([]Milestone, numMilestones)
	for i := range out {
		out[i] = Milestone(i)
	}
	return out
}

// GlobalParam is one of the three planet-wide tracks.
type GlobalParam int

const (
	Temperature GlobalParam = iota
	Oxygen
	Oceans
	numGlobals
)

var globalNames = [numGlobals]string{"temperature", "oxygen", "oceans"}

func (g GlobalParam) String() string {
	if g < 0 || g >= numGlobals {
		return "GlobalParam(?)"
	}
	return globalNames[g]
}

// GlobalParams lists the three global parameters.
func GlobalParams() []GlobalParam {
	return []GlobalParam{Temperature, Oxygen, Oceans}
}

// Ledger maps every Resource to an amount (resources or production).
type Ledger [numResources]int

// TagCounts maps every Tag to a count.
type TagCounts [numTags]int

// MilestoneFlags maps every Milestone to its claimed flag.
type MilestoneFlags [numMilestones]bool

// GlobalParameters holds the three bounded planet tracks.
type GlobalParameters struct {
	Temperature int `json:"temperature"` // -30..8 (°C)
	Oxygen      int `json:"oxygen"`      // 0..14 (%)
	Oceans      int `json:"oceans"`      // 0..9
}

// Get returns the value of a single track.
func (g GlobalParameters) Get(p GlobalParam) int {
	switch p {
	case Temperature:
		return g.Temperature
	case Oxygen:
		return g.Oxygen
	case Oceans:
		return g.Oceans
	}
	return 0
}

// State is one immutable snapshot of the tracked game.
// Revision and UpdatedAt are stamped by the store, never by the rules.
type State struct {
	TerraformRating  int              `json:"terraformRating"`
	Generation       int              `json:"generation"`
	Resources        Ledger           `json:"resources"`
	Production       Ledger           `json:"production"`
	Tags             TagCounts        `json:"tags"`
	GlobalParameters GlobalParameters `json:"globalParameters"`
	Milestones       MilestoneFlags   `json:"milestones"`
	Revision         uint64           `json:"revision"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

const (
	initialTR         = 20
	initialGeneration = 1
)

// Initial returns the snapshot a new process starts from.
func Initial() State {
	return State{
		TerraformRating:  initialTR,
		Generation:       initialGeneration,
		GlobalParameters: GlobalParameters{Temperature: TemperatureMin, Oxygen: OxygenMin, Oceans: OceansMin},
	}
}
