// Package lifecycle holds the plant lifecycle rules: which phases exist,
// which date each phase requires at creation time, and how plant age and
// per-phase durations are derived from the stored dates.
//
// Everything here is pure. The HTTP create handler and the CLI form both
// go through this package so their required-field rules cannot drift.
package lifecycle

import "strings"

// Phase is the cultivation stage a plant is currently labeled with.
type Phase string

const (
	Germination Phase = "germination"
	Vegetation  Phase = "vegetation"
	Flowering   Phase = "flowering"
)

// phases is the logical order germination ⪯ vegetation ⪯ flowering.
var phases = []Phase{Germination, Vegetation, Flowering}

var labels = map[Phase]string{
	Germination: "Germinación",
	Vegetation:  "Vegetación",
	Flowering:   "Floración",
}

// Phases returns all phases in lifecycle order.
func Phases() []Phase {
	return append([]Phase(nil), phases...)
}

// ParsePhase maps user input to a Phase. Surrounding whitespace and case
// are ignored; anything other than the three known values is rejected.
func ParsePhase(s string) (Phase, bool) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

func (p Phase) Valid() bool {
	_, ok := labels[p]
	return ok
}

// Label is the display name of the phase. Unknown values are echoed back.
func (p Phase) Label() string {
	if l, ok := labels[p]; ok {
		return l
	}
	return string(p)
}

// index is the position of p in the lifecycle order, -1 when unknown.
func (p Phase) index() int {
	for i, q := range phases {
		if q == p {
			return i
		}
	}
	return -1
}

func (p Phase) String() string { return string(p) }
