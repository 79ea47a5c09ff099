package lifecycle

// PhaseCount is the number of plants in one phase.
type PhaseCount struct {
	Phase Phase  `json:"phase"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summarize counts plants per phase. Every phase is listed, in lifecycle
// order, even when its count is zero. Unknown values are ignored.
func Summarize(ps []Phase) []PhaseCount {
	counts := make(map[Phase]int, len(phases))
	for _, p := range ps {
		counts[p]++
	}

	out := make([]PhaseCount, 0, len(phases))
	for _, p := range phases {
		out = append(out, PhaseCount{Phase: p, Label: p.Label(), Count: counts[p]})
	}
	return out
}
