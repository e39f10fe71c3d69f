package stages

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// Editor holds the in-memory catalog and applies admin edits to it. Every
// successful edit persists the whole catalog through the Store before the
// in-memory copy changes, so a failed write leaves the editor untouched.
type Editor struct {
	store   *Store
	catalog types.Catalog
	admin   bool
	now     func() time.Time
	logger  *zap.Logger
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithClock sets the time source used to derive new stage ids.
func WithClock(now func() time.Time) EditorOption {
	return func(e *Editor) { e.now = now }
}

// WithAdmin sets the initial admin flag.
func WithAdmin(admin bool) EditorOption {
	return func(e *Editor) { e.admin = admin }
}

// NewEditor returns an Editor over catalog, which must be the catalog most
// recently loaded from or saved to store.
func NewEditor(store *Store, catalog types.Catalog, opts ...EditorOption) *Editor {
	e := &Editor{
		store:   store,
		catalog: catalog.Clone(),
		now:     time.Now,
		logger:  store.logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OpenEditor loads the catalog from store and returns an Editor over it.
func OpenEditor(store *Store, opts ...EditorOption) (*Editor, error) {
	c, err := store.Load()
	if err != nil {
		return nil, err
	}
	return NewEditor(store, c, opts...), nil
}

// SetAdmin turns admin mode on or off.
func (e *Editor) SetAdmin(admin bool) { e.admin = admin }

// Admin reports whether admin mode is on.
func (e *Editor) Admin() bool { return e.admin }

// Catalog returns a copy of the current catalog.
func (e *Editor) Catalog() types.Catalog { return e.catalog.Clone() }

// Stages returns the current stages for mode.
func (e *Editor) Stages(mode types.Mode) types.Catalog { return Filter(e.catalog, mode) }

// Reload replaces the in-memory catalog with the persisted one.
func (e *Editor) Reload() error {
	c, err := e.store.Load()
	if err != nil {
		return err
	}
	e.catalog = c
	return nil
}

// AddStage appends a new stage with the given name, image and mode. When
// applyToBoth is set, mode is ignored and two stages are appended: an easy
// one and a hard one whose id is the easy id plus one. Returns the appended
// stages.
func (e *Editor) AddStage(name, image string, mode types.Mode, applyToBoth bool) ([]types.Stage, error) {
	if !e.admin {
		return nil, types.ErrAdminRequired
	}

	name = strings.TrimSpace(name)
	image = strings.TrimSpace(image)
	if name == "" {
		return nil, types.ErrInvalidName
	}
	if image == "" {
		return nil, types.ErrInvalidImage
	}

	id := e.nextID()
	var added []types.Stage
	if applyToBoth {
		added = []types.Stage{
			{ID: id, Name: name, Image: image, Mode: types.ModeEasy},
			{ID: id + 1, Name: name, Image: image, Mode: types.ModeHard},
		}
	} else {
		if !mode.Valid() {
			return nil, fmt.Errorf("%w: %q", types.ErrInvalidMode, mode)
		}
		added = []types.Stage{{ID: id, Name: name, Image: image, Mode: mode}}
	}

	next := append(e.catalog.Clone(), added...)
	if err := e.commit(next); err != nil {
		return nil, err
	}

	for _, s := range added {
		e.logger.Info("stage added", zap.Int64("id", s.ID), zap.String("name", s.Name), zap.String("mode", s.Mode.String()))
	}
	return added, nil
}

// DeleteStage removes the stage with the given id after c confirms. Returns
// false with a nil error when the user declines.
func (e *Editor) DeleteStage(id int64, c types.Confirmer) (bool, error) {
	if !e.admin {
		return false, types.ErrAdminRequired
	}

	idx := e.catalog.Index(id)
	if idx < 0 {
		return false, fmt.Errorf("%w: %d", types.ErrStageNotFound, id)
	}
	target := e.catalog[idx]

	if !c.Confirm(fmt.Sprintf("Delete stage %q (%s)?", target.Name, target.Mode)) {
		return false, nil
	}

	next := make(types.Catalog, 0, len(e.catalog)-1)
	next = append(next, e.catalog[:idx]...)
	next = append(next, e.catalog[idx+1:]...)
	if err := e.commit(next); err != nil {
		return false, err
	}

	e.logger.Info("stage deleted", zap.Int64("id", id), zap.String("name", target.Name))
	return true, nil
}

// Replace swaps the whole catalog for next after c confirms.
func (e *Editor) Replace(next types.Catalog, c types.Confirmer) (bool, error) {
	if !e.admin {
		return false, types.ErrAdminRequired
	}
	if err := next.Validate(); err != nil {
		return false, err
	}
	if !c.Confirm(fmt.Sprintf("Replace all %d stages with %d stages?", len(e.catalog), len(next))) {
		return false, nil
	}
	if err := e.commit(next.Clone()); err != nil {
		return false, err
	}
	e.logger.Info("catalog replaced", zap.Int("stages", len(next)))
	return true, nil
}

// Reset restores the default catalog after c confirms.
func (e *Editor) Reset(c types.Confirmer) (bool, error) {
	return e.Replace(e.store.Defaults(), c)
}

// nextID derives a new id from the clock, bumped past every existing id so
// ids stay unique and increasing even within a single millisecond.
func (e *Editor) nextID() int64 {
	id := e.now().UnixMilli()
	if maxID := e.catalog.MaxID(); id <= maxID {
		id = maxID + 1
	}
	return id
}

func (e *Editor) commit(next types.Catalog) error {
	if err := e.store.Save(next); err != nil {
		return err
	}
	e.catalog = next
	return nil
}
