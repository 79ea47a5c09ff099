package lifecycle

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// StartDate picks the first known date in the fixed order germination,
// vegetation, flowering. Nil when the plant has no dates at all.
func StartDate(d Dates) *time.Time {
	switch {
	case d.Germination != nil:
		return d.Germination
	case d.Vegetation != nil:
		return d.Vegetation
	case d.Flowering != nil:
		return d.Flowering
	}
	return nil
}

// Age is the plant's age in days as of asOf. Any partial day counts as a
// full one. A plant without dates, or whose start date is still in the
// future, is 0 days old.
func Age(d Dates, asOf time.Time) int {
	start := StartDate(d)
	if start == nil {
		return 0
	}
	return PhaseDuration(*start, asOf)
}

// PhaseDuration is the number of days from start to next, rounded up.
// It never goes below zero.
func PhaseDuration(start, next time.Time) int {
	diff := next.Sub(start)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(float64(diff) / float64(day)))
}

// Timeline holds the per-phase durations that can be derived from the
// known dates. A nil field means the duration is unknown.
type Timeline struct {
	GerminationDays *int
	VegetationDays  *int
	FloweringDays   *int
}

// Durations derives the timeline of a plant:
//   - days in germination, when both germination and vegetation dates are known;
//   - days in vegetation, when both vegetation and flowering dates are known;
//   - days in flowering, from the flowering date to now.
func Durations(d Dates, now time.Time) Timeline {
	var tl Timeline
	if d.Germination != nil && d.Vegetation != nil {
		n := PhaseDuration(*d.Germination, *d.Vegetation)
		tl.GerminationDays = &n
	}
	if d.Vegetation != nil && d.Flowering != nil {
		n := PhaseDuration(*d.Vegetation, *d.Flowering)
		tl.VegetationDays = &n
	}
	if d.Flowering != nil {
		n := PhaseDuration(*d.Flowering, now)
		tl.FloweringDays = &n
	}
	return tl
}
