package stages

import "github.com/mesh-intelligence/puzzlequest/pkg/types"

// Filter returns the stages of c whose mode equals mode, preserving their
// relative order. The result never aliases c.
func Filter(c types.Catalog, mode types.Mode) types.Catalog {
	out := types.Catalog{}
	for _, s := range c {
		if s.Mode == mode {
			out = append(out, s)
		}
	}
	return out
}

// Count returns the number of stages per mode.
func Count(c types.Catalog) map[types.Mode]int {
	counts := make(map[types.Mode]int, len(types.Modes))
	for _, m := range types.Modes {
		counts[m] = 0
	}
	for _, s := range c {
		counts[s.Mode]++
	}
	return counts
}
