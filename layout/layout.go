// Package layout generates the stepped-pyramid tile layouts and decides which tiles are open.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty selects one of the hand-authored layouts.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists the tiers in increasing size.
var Difficulties = []Difficulty{Easy, Medium, Hard}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty accepts a tier name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// ErrEmptyLayout is returned when a coordinate list is empty, odd-sized or has duplicates.
var ErrEmptyLayout = errors.New("layout needs a non-empty, even set of distinct coordinates")

// Sides holds explicit neighbor slots that replace the unit-step default on one side.
// A nil side keeps the default neighbor.
type Sides struct {
	Left  []Coord
	Right []Coord
}

// Layout is an immutable, ordered set of tile slots. Each slot has a dense
// index 0..Len()-1 which boards use for their present sets.
type Layout struct {
	name   string
	coords []Coord
	index  map[Coord]int

	// Resolved per-index neighbor lists. Slots outside the layout are dropped
	// since nothing can ever occupy them.
	left  [][]int
	right [][]int
	above [][]int

	hasApex bool
	apexZ   int
	apex    []int
}

// New validates coords and resolves the neighbor tables. overrides may be nil.
func New(name string, coords []Coord, overrides map[Coord]Sides) (*Layout, error) {
	if len(coords) == 0 || len(coords)%2 != 0 {
		return nil, fmt.Errorf("%s: %d coordinates: %w", name, len(coords), ErrEmptyLayout)
	}

	l := &Layout{
		name:   name,
		coords: make([]Coord, len(coords)),
		index:  make(map[Coord]int, len(coords)),
		left:   make([][]int, len(coords)),
		right:  make([][]int, len(coords)),
		above:  make([][]int, len(coords)),
	}
	copy(l.coords, coords)

	maxZ := 0
	for i, c := range l.coords {
		if _, dup := l.index[c]; dup {
			return nil, fmt.Errorf("%s: duplicate coordinate %s: %w", name, c, ErrEmptyLayout)
		}
		l.index[c] = i
		if c.Z > maxZ {
			maxZ = c.Z
		}
	}

	for c := range overrides {
		if _, ok := l.index[c]; !ok {
			return nil, fmt.Errorf("%s: neighbor override for %s which is not in the layout", name, c)
		}
	}

	for i, c := range l.coords {
		sides := overrides[c]
		if sides.Left != nil {
			l.left[i] = l.resolve(sides.Left)
		} else {
			l.left[i] = l.resolve([]Coord{c.Left()})
		}
		if sides.Right != nil {
			l.right[i] = l.resolve(sides.Right)
		} else {
			l.right[i] = l.resolve([]Coord{c.Right()})
		}
		for j, o := range l.coords {
			if o.X2 == c.X2 && o.Y2 == c.Y2 && o.Z > c.Z {
				l.above[i] = append(l.above[i], j)
			}
		}
	}

	// A lone tile on the top level is the apex. It rests on the level below
	// without lining up with any column, so it blocks that whole level.
	var top []int
	for i, c := range l.coords {
		if c.Z == maxZ {
			top = append(top, i)
		}
	}
	if maxZ > 0 && len(top) == 1 {
		l.hasApex = true
		l.apexZ = maxZ
		l.apex = top
	}

	return l, nil
}

func (l *Layout) resolve(cs []Coord) []int {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		if i, ok := l.index[c]; ok {
			out = append(out, i)
		}
	}
	return out
}

// Name returns the layout name, e.g. "hard".
func (l *Layout) Name() string {
	return l.name
}

// Len returns the number of slots.
func (l *Layout) Len() int {
	return len(l.coords)
}

// Coord returns the slot with index i.
func (l *Layout) Coord(i int) Coord {
	return l.coords[i]
}

// Coords returns a copy of all slots in layout order.
func (l *Layout) Coords() []Coord {
	out := make([]Coord, len(l.coords))
	copy(out, l.coords)
	return out
}

// Index returns the dense index of c.
func (l *Layout) Index(c Coord) (int, bool) {
	i, ok := l.index[c]
	return i, ok
}

// Levels returns the number of stacking levels, apex included.
func (l *Layout) Levels() int {
	maxZ := 0
	for _, c := range l.coords {
		if c.Z > maxZ {
			maxZ = c.Z
		}
	}
	return maxZ + 1
}

// Apex returns the apex level, if the layout has a lone top tile.
func (l *Layout) Apex() (z int, ok bool) {
	return l.apexZ, l.hasApex
}

// Full returns a set holding every slot of l.
func (l *Layout) Full() Set {
	return FullSet(len(l.coords))
}

// Bounds returns the extent of the layout in half-tile units.
func (l *Layout) Bounds() (minX2, minY2, maxX2, maxY2 int) {
	for i, c := range l.coords {
		if i == 0 || c.X2 < minX2 {
			minX2 = c.X2
		}
		if i == 0 || c.Y2 < minY2 {
			minY2 = c.Y2
		}
		if i == 0 || c.X2 > maxX2 {
			maxX2 = c.X2
		}
		if i == 0 || c.Y2 > maxY2 {
			maxY2 = c.Y2
		}
	}
	return minX2, minY2, maxX2, maxY2
}
