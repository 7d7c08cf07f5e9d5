// Package tile defines the Mahjong tile faces, the 144-tile deck and the
// matching rule between faces.
package tile

import "fmt"

// Category is the suit or honor group of a face.
type Category int

const (
	Dots Category = iota
	Bamboo
	Characters
	Winds
	Dragons
	Flowers
	Seasons
)

var categoryNames = [...]string{"dots", "bamboo", "characters", "wind", "dragon", "flower", "season"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Ranks returns the number of distinct ranks in the category.
func (c Category) Ranks() int {
	switch c {
	case Dots, Bamboo, Characters:
		return 9
	case Winds, Flowers, Seasons:
		return 4
	case Dragons:
		return 3
	}
	return 0
}

// Copies returns how many tiles of each rank the deck holds.
func (c Category) Copies() int {
	if c.IsBonus() {
		return 1
	}
	return 4
}

// IsBonus reports whether faces of the category match any other face of the
// same category regardless of rank.
func (c Category) IsBonus() bool {
	return c == Flowers || c == Seasons
}

// Face is one tile face. Rank starts at 1.
type Face struct {
	Category Category
	Rank     int
}

// Key identifies the group of faces that match each other.
type Key struct {
	Category Category
	Rank     int
}

// MatchKey returns the matching group of f. Bonus faces share one key per category.
func (f Face) MatchKey() Key {
	if f.Category.IsBonus() {
		return Key{Category: f.Category}
	}
	return Key{Category: f.Category, Rank: f.Rank}
}

// Matches reports whether f and o can be removed as a pair.
func (f Face) Matches(o Face) bool {
	return f.MatchKey() == o.MatchKey()
}

// IsBonus reports whether f is a flower or a season.
func (f Face) IsBonus() bool {
	return f.Category.IsBonus()
}

func (f Face) String() string {
	return fmt.Sprintf("%s %d", f.Category, f.Rank)
}

// Categories lists every category in deck order.
var Categories = []Category{Dots, Bamboo, Characters, Winds, Dragons, Flowers, Seasons}
