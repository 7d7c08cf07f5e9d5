package ai

import (
	"math/rand"

	"termjong/board"
)

// Random plays a uniformly random legal pair.
type Random struct {
	Rand *rand.Rand
}

func (r *Random) Name() string {
	return KindRandom.String()
}

func (r *Random) SelectMove(own, _ *board.Board) (board.Move, bool) {
	moves := own.Moves()
	if len(moves) == 0 {
		return board.Move{}, false
	}
	return moves[intn(r.Rand, len(moves))], true
}
