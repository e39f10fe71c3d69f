package types

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is a difficulty tier. Each mode maps to a fixed puzzle grid size.
type Mode string

// Supported modes.
const (
	ModeEasy Mode = "easy"
	ModeHard Mode = "hard"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeEasy, ModeHard}

// Grid sizes per mode.
const (
	EasyGridSize = 2
	HardGridSize = 3
)

// Stage and catalog errors.
var (
	ErrInvalidMode    = errors.New("invalid mode")
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidImage   = errors.New("invalid image")
	ErrInvalidID      = errors.New("invalid stage ID")
	ErrStageNotFound  = errors.New("stage not found")
	ErrDuplicateID    = errors.New("duplicate stage ID")
	ErrCatalogCorrupt = errors.New("catalog is corrupt")
	ErrAdminRequired  = errors.New("admin mode is required")
)

// ParseMode converts s to a Mode. Matching ignores case and surrounding
// whitespace. Returns ErrInvalidMode for anything other than easy or hard.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q (valid: easy, hard)", ErrInvalidMode, s)
	}
	return m, nil
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	return m == ModeEasy || m == ModeHard
}

// GridSize returns the side length of the puzzle grid for m, or 0 for an
// unknown mode.
func (m Mode) GridSize() int {
	switch m {
	case ModeEasy:
		return EasyGridSize
	case ModeHard:
		return HardGridSize
	default:
		return 0
	}
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// Stage is a single puzzle level definition. Stages are immutable once
// created; the catalog only ever appends or removes them.
type Stage struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Mode  Mode   `json:"mode"`
}

// Validate checks that the stage is fully formed.
func (s Stage) Validate() error {
	if s.ID <= 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(s.Image) == "" {
		return ErrInvalidImage
	}
	if !s.Mode.Valid() {
		return ErrInvalidMode
	}
	return nil
}

// Catalog is the ordered collection of stages. Insertion order is display
// order.
type Catalog []Stage

// Clone returns a copy of c that shares no backing array with it.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	copy(out, c)
	return out
}

// Index returns the position of the stage with the given id, or -1.
func (c Catalog) Index(id int64) int {
	for i, s := range c {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// MaxID returns the largest stage id in c, or 0 when c is empty.
func (c Catalog) MaxID() int64 {
	var maxID int64
	for _, s := range c {
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	return maxID
}

// Validate checks every stage and rejects duplicate ids.
func (c Catalog) Validate() error {
	seen := make(map[int64]bool, len(c))
	for i, s := range c {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("stage %d: %w", i, err)
		}
		if seen[s.ID] {
			return fmt.Errorf("stage %d: %w: %d", i, ErrDuplicateID, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
