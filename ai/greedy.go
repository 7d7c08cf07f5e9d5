package ai

import (
	"math/rand"

	"termjong/board"
)

// Greedy plays the pair that opens the most tiles. Ties go to the first pair
// in enumeration order unless RandomTies is set.
type Greedy struct {
	Rand       *rand.Rand
	RandomTies bool
}

func (g *Greedy) Name() string {
	return KindGreedy.String()
}

func (g *Greedy) SelectMove(own, _ *board.Board) (board.Move, bool) {
	best := bestByUnlock(own, own.Moves())
	if len(best) == 0 {
		return board.Move{}, false
	}
	if g.RandomTies && len(best) > 1 {
		return best[intn(g.Rand, len(best))], true
	}
	return best[0], true
}

// bestByUnlock returns the moves sharing the highest unlock count, in their
// original order.
func bestByUnlock(b *board.Board, moves []board.Move) []board.Move {
	var best []board.Move
	top := -1
	for _, m := range moves {
		u := b.Unlocked(m)
		switch {
		case u > top:
			top = u
			best = append(best[:0], m)
		case u == top:
			best = append(best, m)
		}
	}
	return best
}
