package stages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// Find returns the stage matching query, which may be a stage id or a
// case-insensitive stage name. An empty mode searches every mode. On a miss
// the error wraps ErrStageNotFound and names the closest stage, if any.
func Find(c types.Catalog, mode types.Mode, query string) (types.Stage, error) {
	query = strings.TrimSpace(query)
	candidates := c
	if mode != "" {
		candidates = Filter(c, mode)
	}

	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		if idx := candidates.Index(id); idx >= 0 {
			return candidates[idx], nil
		}
	}

	for _, s := range candidates {
		if strings.EqualFold(s.Name, query) {
			return s, nil
		}
	}

	if name, ok := Suggest(candidates, query); ok {
		return types.Stage{}, fmt.Errorf("%w: %q (did you mean %q?)", types.ErrStageNotFound, query, name)
	}
	return types.Stage{}, fmt.Errorf("%w: %q", types.ErrStageNotFound, query)
}

// Suggest returns the stage name closest to query by edit distance, when it
// is close enough to be a plausible typo.
func Suggest(c types.Catalog, query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	best, bestDist := "", -1
	for _, s := range c {
		d := levenshtein.ComputeDistance(q, strings.ToLower(s.Name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = s.Name, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance(q) {
		return "", false
	}
	return best, true
}

func maxSuggestDistance(q string) int {
	if n := len([]rune(q)) / 3; n > 2 {
		return n
	}
	return 2
}
