package stages

import (
	"path"

	"github.com/mesh-intelligence/puzzlequest/internal/assets"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// defaultStage describes a stage seeded on first run.
type defaultStage struct {
	id   int64
	name string
	file string
}

// easyDefaults and hardDefaults are the stages seeded on first run, in
// display order.
var (
	easyDefaults = []defaultStage{
		{1001, "Fire", "fire.jpg"},
		{1002, "Ground", "ground.jpg"},
		{1003, "Human", "human.jpg"},
		{1004, "Light", "light.jpg"},
		{1005, "Moon", "moon.jpg"},
		{1006, "Mountain", "mountain.jpg"},
		{1007, "Rain", "rain.jpg"},
		{1008, "Rock", "rock.jpg"},
		{1009, "Sky", "sky.jpg"},
		{1010, "Sun", "sun.jpg"},
		{1011, "Water", "water.jpg"},
		{1012, "Wood", "wood.jpg"},
	}
	hardDefaults = []defaultStage{
		{2001, "Autumn", "autumn.jpg"},
		{2002, "Beauty", "beauty.jpg"},
		{2003, "Danger", "danger.jpg"},
		{2004, "Kindness", "kindness.jpg"},
		{2005, "Love", "love.jpg"},
		{2006, "Ocean", "ocean.jpg"},
		{2007, "Spring", "spring.jpg"},
		{2008, "Star", "star.jpg"},
		{2009, "Summer", "summer.jpg"},
		{2010, "True", "true.jpg"},
		{2011, "Land", "land.jpg"},
		{2012, "Winter", "winter.jpg"},
	}
)

// DefaultCatalog returns the fixed first-run catalog: all easy stages
// followed by all hard stages, with image paths resolved through r.
func DefaultCatalog(r assets.Resolver) types.Catalog {
	c := make(types.Catalog, 0, len(easyDefaults)+len(hardDefaults))
	for _, set := range []struct {
		mode  types.Mode
		items []defaultStage
	}{
		{types.ModeEasy, easyDefaults},
		{types.ModeHard, hardDefaults},
	} {
		for _, d := range set.items {
			c = append(c, types.Stage{
				ID:    d.id,
				Name:  d.name,
				Image: r.Path(path.Join("puzzles", string(set.mode), d.file)),
				Mode:  set.mode,
			})
		}
	}
	return c
}
