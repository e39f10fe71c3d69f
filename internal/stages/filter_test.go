package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/puzzlequest/internal/assets"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

func TestFilterKeepsOnlyRequestedModeInOrder(t *testing.T) {
	c := types.Catalog{
		{ID: 1, Name: "A", Image: "a", Mode: types.ModeEasy},
		{ID: 2, Name: "B", Image: "b", Mode: types.ModeHard},
		{ID: 3, Name: "C", Image: "c", Mode: types.ModeEasy},
		{ID: 4, Name: "D", Image: "d", Mode: types.ModeHard},
		{ID: 5, Name: "E", Image: "e", Mode: types.ModeEasy},
	}

	easy := Filter(c, types.ModeEasy)
	assert.Equal(t, []int64{1, 3, 5}, ids(easy))

	hard := Filter(c, types.ModeHard)
	assert.Equal(t, []int64{2, 4}, ids(hard))

	for _, m := range types.Modes {
		for _, s := range Filter(c, m) {
			assert.Equal(t, m, s.Mode)
		}
	}
}

func TestFilterEdgeCases(t *testing.T) {
	assert.NotNil(t, Filter(nil, types.ModeEasy))
	assert.Empty(t, Filter(nil, types.ModeEasy))
	assert.Empty(t, Filter(DefaultCatalog(assets.Resolver{}), "medium"))

	c := types.Catalog{{ID: 1, Name: "A", Image: "a", Mode: types.ModeEasy}}
	out := Filter(c, types.ModeEasy)
	out[0].Name = "changed"
	assert.Equal(t, "A", c[0].Name, "filter result must not alias the source")
}

func TestCount(t *testing.T) {
	counts := Count(nil)
	assert.Equal(t, map[types.Mode]int{types.ModeEasy: 0, types.ModeHard: 0}, counts)

	counts = Count(DefaultCatalog(assets.Resolver{}))
	assert.Equal(t, 12, counts[types.ModeEasy])
	assert.Equal(t, 12, counts[types.ModeHard])
}

func ids(c types.Catalog) []int64 {
	out := make([]int64, len(c))
	for i, s := range c {
		out[i] = s.ID
	}
	return out
}
