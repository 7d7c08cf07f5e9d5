// Package board holds the state of one player's tile board: which slots of the
// shared layout are still present, which of them are open, and which pairs can
// be removed.
package board

import (
	"errors"
	"fmt"

	"termjong/layout"
	"termjong/tile"
)

// ErrInvalidRemoval is returned by RemovePair when the pair is not a legal match.
var ErrInvalidRemoval = errors.New("invalid pair removal")

// Move is an unordered pair of open, matching tiles.
type Move struct {
	A layout.Coord
	B layout.Coord
}

func (m Move) String() string {
	return m.A.String() + "-" + m.B.String()
}

// Board is one player's board. The layout and face binding are shared with the
// opponent's board and never modified; only the present set changes.
type Board struct {
	layout  *layout.Layout
	faces   tile.Binding
	present layout.Set
}

// New returns a full board over l with faces dealt by binding.
func New(l *layout.Layout, faces tile.Binding) (*Board, error) {
	if len(faces) != l.Len() {
		return nil, fmt.Errorf("board for %s: %d faces for %d slots", l.Name(), len(faces), l.Len())
	}
	return &Board{
		layout:  l,
		faces:   faces,
		present: l.Full(),
	}, nil
}

// Layout returns the layout the board is built on.
func (b *Board) Layout() *layout.Layout {
	return b.layout
}

// Clone returns an independent copy for simulation. Mutating the clone never
// affects b.
func (b *Board) Clone() *Board {
	return &Board{
		layout:  b.layout,
		faces:   b.faces,
		present: b.present.Clone(),
	}
}

// Present returns the coordinates still on the board, in layout order.
func (b *Board) Present() []layout.Coord {
	out := make([]layout.Coord, 0, b.present.Len())
	b.present.Each(func(i int) {
		out = append(out, b.layout.Coord(i))
	})
	return out
}

// Len returns the number of tiles left.
func (b *Board) Len() int {
	return b.present.Len()
}

// IsEmpty reports whether every tile has been removed.
func (b *Board) IsEmpty() bool {
	return b.present.Len() == 0
}

// Has reports whether a tile is still at c.
func (b *Board) Has(c layout.Coord) bool {
	i, ok := b.layout.Index(c)
	return ok && b.present.Has(i)
}

// FaceAt returns the face of the tile at c, if one is present.
func (b *Board) FaceAt(c layout.Coord) (tile.Face, bool) {
	i, ok := b.layout.Index(c)
	if !ok || !b.present.Has(i) {
		return tile.Face{}, false
	}
	return b.faces[i], true
}

// IsOpen reports whether the tile at c can be selected.
func (b *Board) IsOpen(c layout.Coord) bool {
	return b.layout.IsOpenAt(c, b.present)
}

// Open returns the open coordinates in layout order.
func (b *Board) Open() []layout.Coord {
	idx := b.layout.Open(b.present)
	out := make([]layout.Coord, len(idx))
	for n, i := range idx {
		out[n] = b.layout.Coord(i)
	}
	return out
}

// OpenCount returns the number of open tiles.
func (b *Board) OpenCount() int {
	return b.layout.OpenCount(b.present)
}

// CanMatch reports whether c1 and c2 are two distinct open tiles with matching faces.
func (b *Board) CanMatch(c1, c2 layout.Coord) bool {
	_, _, err := b.checkPair(c1, c2)
	return err == nil
}

func (b *Board) checkPair(c1, c2 layout.Coord) (int, int, error) {
	if c1 == c2 {
		return 0, 0, fmt.Errorf("%s twice: %w", c1, ErrInvalidRemoval)
	}
	i, ok := b.layout.Index(c1)
	if !ok || !b.layout.IsOpen(i, b.present) {
		return 0, 0, fmt.Errorf("%s is not an open tile: %w", c1, ErrInvalidRemoval)
	}
	j, ok := b.layout.Index(c2)
	if !ok || !b.layout.IsOpen(j, b.present) {
		return 0, 0, fmt.Errorf("%s is not an open tile: %w", c2, ErrInvalidRemoval)
	}
	if !b.faces[i].Matches(b.faces[j]) {
		return 0, 0, fmt.Errorf("%s (%s) and %s (%s) do not match: %w", c1, b.faces[i], c2, b.faces[j], ErrInvalidRemoval)
	}
	return i, j, nil
}

// RemovePair removes both tiles or neither. It fails with ErrInvalidRemoval
// unless c1 and c2 are distinct, present, open and matching.
func (b *Board) RemovePair(c1, c2 layout.Coord) error {
	i, j, err := b.checkPair(c1, c2)
	if err != nil {
		return err
	}
	b.present.Remove(i)
	b.present.Remove(j)
	return nil
}

// Unlocked returns how many tiles become open by removing m: the open count
// after the removal minus the tiles that were open before, not counting the
// pair itself. It returns 0 for a pair that is not on the board.
func (b *Board) Unlocked(m Move) int {
	i, ok := b.layout.Index(m.A)
	if !ok || !b.present.Has(i) {
		return 0
	}
	j, ok := b.layout.Index(m.B)
	if !ok || !b.present.Has(j) || i == j {
		return 0
	}

	before := b.layout.OpenCount(b.present)
	if b.layout.IsOpen(i, b.present) {
		before--
	}
	if b.layout.IsOpen(j, b.present) {
		before--
	}

	after := b.present.Clone()
	after.Remove(i)
	after.Remove(j)

	n := b.layout.OpenCount(after) - before
	if n < 0 {
		return 0
	}
	return n
}
