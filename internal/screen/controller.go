// Package screen implements the home → map → game navigation state machine.
package screen

import (
	"fmt"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// Screen identifies the visible screen.
type Screen string

// Screens.
const (
	Home Screen = "home"
	Map  Screen = "map"
	Game Screen = "game"
)

// Controller tracks the current screen, the selected mode used to filter the
// map, and the stage being played. The zero value is not usable; call New.
type Controller struct {
	screen Screen
	mode   types.Mode
	stage  *types.Stage
}

// New returns a Controller on the home screen with no mode selected.
func New() *Controller {
	return &Controller{screen: Home}
}

// Screen returns the current screen.
func (c *Controller) Screen() Screen { return c.screen }

// Mode returns the selected mode, or "" before any selection.
func (c *Controller) Mode() types.Mode { return c.mode }

// Stage returns the stage being played, or nil outside the game screen.
func (c *Controller) Stage() *types.Stage { return c.stage }

// SelectMode moves from home to the map showing mode.
func (c *Controller) SelectMode(mode types.Mode) error {
	if err := c.expect(Home, "select mode"); err != nil {
		return err
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidMode, mode)
	}
	c.mode = mode
	c.screen = Map
	return nil
}

// ChangeMode switches the map's filter without leaving the map.
func (c *Controller) ChangeMode(mode types.Mode) error {
	if err := c.expect(Map, "change mode"); err != nil {
		return err
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidMode, mode)
	}
	c.mode = mode
	return nil
}

// Back returns from the map to home. The selected mode is kept.
func (c *Controller) Back() error {
	if err := c.expect(Map, "back"); err != nil {
		return err
	}
	c.screen = Home
	return nil
}

// PlayStage moves from the map to the game for stage.
func (c *Controller) PlayStage(stage *types.Stage) error {
	if err := c.expect(Map, "play stage"); err != nil {
		return err
	}
	if stage == nil {
		return types.ErrNilStage
	}
	s := *stage
	c.stage = &s
	c.screen = Game
	return nil
}

// Complete returns from the game to the map and clears the current stage.
func (c *Controller) Complete() error {
	if err := c.expect(Game, "complete"); err != nil {
		return err
	}
	c.stage = nil
	c.screen = Map
	return nil
}

func (c *Controller) expect(from Screen, event string) error {
	if c.screen != from {
		return fmt.Errorf("%w: %s from %s", types.ErrInvalidTransition, event, c.screen)
	}
	return nil
}
