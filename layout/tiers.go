package layout

import "fmt"

// Generate builds the layout for d. The shapes are fixed; no randomness is involved.
func Generate(d Difficulty) (*Layout, error) {
	t, ok := tiers[d]
	if !ok {
		return nil, fmt.Errorf("generate layout: unknown difficulty %d", int(d))
	}
	return New(d.String(), t.coords(), t.overrides())
}

type tier struct {
	coords    func() []Coord
	overrides func() map[Coord]Sides
}

var tiers = map[Difficulty]tier{
	Easy:   {coords: easyCoords, overrides: noOverrides},
	Medium: {coords: mediumCoords, overrides: mediumOverrides},
	Hard:   {coords: hardCoords, overrides: hardOverrides},
}

// Easy: 60 tiles, three levels and an apex at (6.5,2,3).
// The middle row of the base carries one extra end tile at x=11.
func easyCoords() []Coord {
	var cs []Coord
	cs = append(cs, row(3, 10, 0, 0)...)
	cs = append(cs, row(4, 9, 1, 0)...)
	cs = append(cs, row(3, 11, 2, 0)...)
	cs = append(cs, row(4, 9, 3, 0)...)
	cs = append(cs, row(3, 10, 4, 0)...)
	cs = append(cs, block(4, 9, 1, 3, 1)...)
	cs = append(cs, block(5, 8, 2, 2, 2)...)
	cs = append(cs, At(6.5, 2, 3))
	return cs
}

// Medium: 114 tiles, four levels and an apex at (6.5,3,4). Bridges sit between
// rows 3 and 4: one on the left, two on the right.
func mediumCoords() []Coord {
	var cs []Coord
	cs = append(cs, row(2, 11, 0, 0)...)
	cs = append(cs, row(3, 10, 1, 0)...)
	cs = append(cs, row(2, 11, 2, 0)...)
	cs = append(cs, At(1, 3.5, 0))
	cs = append(cs, row(2, 11, 3, 0)...)
	cs = append(cs, row(2, 11, 4, 0)...)
	cs = append(cs, At(12, 3.5, 0), At(13, 3.5, 0))
	cs = append(cs, row(2, 11, 5, 0)...)
	cs = append(cs, row(3, 10, 6, 0)...)
	cs = append(cs, block(4, 9, 1, 5, 1)...)
	cs = append(cs, block(5, 8, 2, 4, 2)...)
	cs = append(cs, block(6, 7, 3, 3, 3)...)
	cs = append(cs, At(6.5, 3, 4))
	return cs
}

func mediumOverrides() map[Coord]Sides {
	return bridgeOverrides(1, 12, 3, 4)
}

// Hard: the 144-tile turtle. Four levels, apex at (6.5,3.5,4), bridges at
// x=0 on the left and x=13, x=14 on the right.
func hardCoords() []Coord {
	var cs []Coord
	cs = append(cs, row(1, 12, 0, 0)...)
	cs = append(cs, row(3, 10, 1, 0)...)
	cs = append(cs, row(2, 11, 2, 0)...)
	cs = append(cs, At(0, 3.5, 0))
	cs = append(cs, row(1, 12, 3, 0)...)
	cs = append(cs, row(1, 12, 4, 0)...)
	cs = append(cs, At(13, 3.5, 0), At(14, 3.5, 0))
	cs = append(cs, row(2, 11, 5, 0)...)
	cs = append(cs, row(3, 10, 6, 0)...)
	cs = append(cs, row(1, 12, 7, 0)...)
	cs = append(cs, block(4, 9, 1, 6, 1)...)
	cs = append(cs, block(5, 8, 2, 5, 2)...)
	cs = append(cs, block(6, 7, 3, 4, 3)...)
	cs = append(cs, At(6.5, 3.5, 4))
	return cs
}

func hardOverrides() map[Coord]Sides {
	return bridgeOverrides(0, 13, 3, 4)
}

// bridgeOverrides wires the half-row bridges at leftX and rightX (y between
// rowA and rowB, level 0) to the end tiles of the two rows they touch. The
// bridge's outer side keeps the unit-step default, which covers the second
// right-hand bridge.
func bridgeOverrides(leftX, rightX, rowA, rowB int) map[Coord]Sides {
	mid := float64(rowA+rowB) / 2
	leftBridge := At(float64(leftX), mid, 0)
	rightBridge := At(float64(rightX), mid, 0)

	innerLeftA := At(float64(leftX+1), float64(rowA), 0)
	innerLeftB := At(float64(leftX+1), float64(rowB), 0)
	innerRightA := At(float64(rightX-1), float64(rowA), 0)
	innerRightB := At(float64(rightX-1), float64(rowB), 0)

	return map[Coord]Sides{
		leftBridge:  {Right: []Coord{innerLeftA, innerLeftB}},
		innerLeftA:  {Left: []Coord{leftBridge}},
		innerLeftB:  {Left: []Coord{leftBridge}},
		rightBridge: {Left: []Coord{innerRightA, innerRightB}},
		innerRightA: {Right: []Coord{rightBridge}},
		innerRightB: {Right: []Coord{rightBridge}},
	}
}

func noOverrides() map[Coord]Sides {
	return nil
}

// row returns the slots x0..x1 (inclusive) on row y at level z.
func row(x0, x1 int, y float64, z int) []Coord {
	out := make([]Coord, 0, x1-x0+1)
	for x := x0; x <= x1; x++ {
		out = append(out, At(float64(x), y, z))
	}
	return out
}

// block returns the rectangle x0..x1 by y0..y1 at level z, row by row.
func block(x0, x1, y0, y1, z int) []Coord {
	var out []Coord
	for y := y0; y <= y1; y++ {
		out = append(out, row(x0, x1, float64(y), z)...)
	}
	return out
}
