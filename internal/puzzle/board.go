// Package puzzle models the tile board a stage is played on. The image is cut
// into an N by N grid; the player swaps pieces until every tile sits at its
// home position.
package puzzle

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// ErrTileOutOfRange is returned when a position is outside the board.
var ErrTileOutOfRange = errors.New("tile position out of range")

// Board holds the current arrangement. tiles[pos] is the home index of the
// piece at pos.
type Board struct {
	size  int
	tiles []int
	moves int
}

// New returns a shuffled board for mode. The arrangement is never already
// solved.
func New(mode types.Mode, r *rand.Rand) (*Board, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("new board: %w: %q", types.ErrInvalidMode, mode)
	}
	return NewSize(mode.GridSize(), r), nil
}

// NewSize returns a shuffled board with size rows and columns.
func NewSize(size int, r *rand.Rand) *Board {
	b := &Board{size: size, tiles: make([]int, size*size)}
	for i := range b.tiles {
		b.tiles[i] = i
	}
	if len(b.tiles) < 2 {
		return b
	}
	for b.Solved() {
		r.Shuffle(len(b.tiles), func(i, j int) {
			b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
		})
	}
	return b
}

// Size returns the number of rows (and columns).
func (b *Board) Size() int { return b.size }

// Len returns the number of tiles.
func (b *Board) Len() int { return len(b.tiles) }

// Moves returns how many swaps have been made.
func (b *Board) Moves() int { return b.moves }

// Tile returns the home index of the piece at pos.
func (b *Board) Tile(pos int) (int, error) {
	if pos < 0 || pos >= len(b.tiles) {
		return 0, fmt.Errorf("%w: %d", ErrTileOutOfRange, pos)
	}
	return b.tiles[pos], nil
}

// Swap exchanges the pieces at a and b and counts one move. Swapping a piece
// with itself is a no-op.
func (b *Board) Swap(a, c int) error {
	if a < 0 || a >= len(b.tiles) {
		return fmt.Errorf("%w: %d", ErrTileOutOfRange, a)
	}
	if c < 0 || c >= len(b.tiles) {
		return fmt.Errorf("%w: %d", ErrTileOutOfRange, c)
	}
	if a == c {
		return nil
	}
	b.tiles[a], b.tiles[c] = b.tiles[c], b.tiles[a]
	b.moves++
	return nil
}

// Solved reports whether every piece is home.
func (b *Board) Solved() bool {
	for i, t := range b.tiles {
		if t != i {
			return false
		}
	}
	return true
}

// Placed returns how many pieces are at their home position.
func (b *Board) Placed() int {
	n := 0
	for i, t := range b.tiles {
		if t == i {
			n++
		}
	}
	return n
}
