package tile

import (
	"errors"
	"fmt"
	"math/rand"
)

// DeckSize is the number of tiles in a full deck.
const DeckSize = 144

// ErrDeckSize is returned when a deal asks for an odd number of tiles or more than the deck holds.
var ErrDeckSize = errors.New("invalid deal size")

// Binding maps a layout index to the face dealt there. Both boards of a
// session read the same binding; it is never modified after the deal.
type Binding []Face

// Deck returns the 144 faces in category order.
func Deck() []Face {
	faces := make([]Face, 0, DeckSize)
	for _, c := range Categories {
		for r := 1; r <= c.Ranks(); r++ {
			for n := 0; n < c.Copies(); n++ {
				faces = append(faces, Face{Category: c, Rank: r})
			}
		}
	}
	return faces
}

// Pairs splits the deck into the 72 matching pairs it is made of.
func Pairs() [][2]Face {
	deck := Deck()
	pairs := make([][2]Face, 0, len(deck)/2)
	for i := 0; i+1 < len(deck); i += 2 {
		pairs = append(pairs, [2]Face{deck[i], deck[i+1]})
	}
	return pairs
}

// Deal returns n shuffled faces made of n/2 matching pairs drawn at random
// from the deck. A full deal (n = 144) uses every tile.
func Deal(n int, rng *rand.Rand) (Binding, error) {
	if n <= 0 || n%2 != 0 || n > DeckSize {
		return nil, fmt.Errorf("deal %d tiles: %w", n, ErrDeckSize)
	}

	pairs := Pairs()
	rng.Shuffle(len(pairs), func(i, j int) {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	})

	faces := make(Binding, 0, n)
	for _, p := range pairs[:n/2] {
		faces = append(faces, p[0], p[1])
	}
	rng.Shuffle(len(faces), func(i, j int) {
		faces[i], faces[j] = faces[j], faces[i]
	})
	return faces, nil
}

// At returns the face at layout index i.
func (b Binding) At(i int) (Face, bool) {
	if i < 0 || i >= len(b) {
		return Face{}, false
	}
	return b[i], true
}
