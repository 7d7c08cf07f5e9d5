package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coordinate notation:
// - "(x,y,z)" with x and y in tile units, z the stacking level (0 = bottom)
// - half positions are written with a ".5" suffix, e.g. the Hard apex is (6.5,3.5,4)
// - parentheses and spaces are optional when parsing

// Coord identifies one tile slot of a layout. X and Y are kept in half-tile units
// so bridge and apex slots stay exact and Coord can be compared with == and used as a map key.
type Coord struct {
	X2 int
	Y2 int
	Z  int
}

// At builds a Coord from tile-unit positions. x and y are rounded to the nearest half.
func At(x, y float64, z int) Coord {
	return Coord{
		X2: int(math.Round(x * 2)),
		Y2: int(math.Round(y * 2)),
		Z:  z,
	}
}

// X returns the horizontal position in tile units.
func (c Coord) X() float64 {
	return float64(c.X2) / 2
}

// Y returns the vertical position in tile units.
func (c Coord) Y() float64 {
	return float64(c.Y2) / 2
}

// Left returns the unit-step slot to the left on the same row and level.
func (c Coord) Left() Coord {
	return Coord{X2: c.X2 - 2, Y2: c.Y2, Z: c.Z}
}

// Right returns the unit-step slot to the right on the same row and level.
func (c Coord) Right() Coord {
	return Coord{X2: c.X2 + 2, Y2: c.Y2, Z: c.Z}
}

// Key returns a canonical integer encoding of c. Distinct coordinates within
// ±64 tiles and 256 levels map to distinct keys.
func (c Coord) Key() int {
	return (c.Z<<8+(c.Y2+128))<<8 + (c.X2 + 128)
}

// String formats c as "(x,y,z)".
func (c Coord) String() string {
	return fmt.Sprintf("(%s,%s,%d)", halfString(c.X2), halfString(c.Y2), c.Z)
}

// ParseCoord parses the notation produced by Coord.String.
// Both "(6.5,3.5,4)" and "6.5, 3.5, 4" are accepted.
func ParseCoord(s string) (Coord, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	parts := strings.Split(trimmed, ",")
	if len(parts) != 3 {
		return Coord{}, fmt.Errorf("invalid coordinate %q: want x,y,z", s)
	}

	x, err := parseHalf(parts[0])
	if err != nil {
		return Coord{}, fmt.Errorf("invalid x in coordinate %q: %w", s, err)
	}
	y, err := parseHalf(parts[1])
	if err != nil {
		return Coord{}, fmt.Errorf("invalid y in coordinate %q: %w", s, err)
	}
	z, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Coord{}, fmt.Errorf("invalid level in coordinate %q: %w", s, err)
	}
	if z < 0 {
		return Coord{}, fmt.Errorf("invalid level in coordinate %q: negative", s)
	}

	return Coord{X2: x, Y2: y, Z: z}, nil
}

// halfString renders a half-unit value in tile units ("3", "3.5", "-0.5").
func halfString(v int) string {
	return strconv.FormatFloat(float64(v)/2, 'f', -1, 64)
}

// parseHalf parses a tile-unit value and returns it in half units.
func parseHalf(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	doubled := f * 2
	if doubled != math.Trunc(doubled) {
		return 0, fmt.Errorf("%v is not a multiple of 0.5", f)
	}
	return int(doubled), nil
}
