package ai

import (
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"

	"termjong/board"
)

// Adversarial looks ahead over both boards. Each root move is worth
// UnlockWeight*unlocked + Discount*minimax(child), where the minimax alternates
// the computer's plies on its own board (maximizing) with the opponent's plies
// on the opponent board (minimizing). Depth 0 plays like Greedy.
type Adversarial struct {
	Depth  int
	Tuning Tuning
	Rand   *rand.Rand
}

type candidate struct {
	move   board.Move
	unlock int
	score  float64
}

func (a *Adversarial) Name() string {
	return KindAdversarial.String()
}

func (a *Adversarial) SelectMove(own, opp *board.Board) (board.Move, bool) {
	moves := own.Moves()
	if len(moves) == 0 {
		return board.Move{}, false
	}

	if a.Depth <= 0 {
		return bestByUnlock(own, moves)[0], true
	}

	cands, depth, nodes := a.rank(own, opp, moves)

	k := a.Tuning.TopK
	if k < 1 {
		k = 1
	}
	if k > len(cands) {
		k = len(cands)
	}
	pick := cands[0]
	if k > 1 {
		pick = cands[intn(a.Rand, k)]
	}

	log.Debug().
		Int("moves", len(moves)).
		Int("depth", depth).
		Int("nodes", nodes).
		Stringer("move", pick.move).
		Float64("score", pick.score).
		Float64("best", cands[0].score).
		Msg("adversarial move")

	return pick.move, true
}

// rank scores the root moves and sorts them best first. It returns the
// depth actually searched and the number of search nodes visited.
func (a *Adversarial) rank(own, opp *board.Board, moves []board.Move) ([]candidate, int, int) {
	depth := a.Depth
	if depth > 1 && a.Tuning.WideThreshold > 0 && len(moves) > a.Tuning.WideThreshold {
		depth--
	}

	nodes := 0
	cands := a.candidates(own, moves)
	for i := range cands {
		child := own.Clone()
		if err := child.RemovePair(cands[i].move.A, cands[i].move.B); err != nil {
			log.Error().Err(err).Stringer("move", cands[i].move).Msg("enumerated move rejected")
			cands[i].score = math.Inf(-1)
			continue
		}
		future := a.search(child, opp, depth-1, math.Inf(-1), math.Inf(1), false, &nodes)
		cands[i].score = a.Tuning.UnlockWeight*float64(cands[i].unlock) + a.Tuning.Discount*future
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})
	return cands, depth, nodes
}

// candidates scores moves by unlock count and keeps the Width best, stable on ties.
func (a *Adversarial) candidates(b *board.Board, moves []board.Move) []candidate {
	cands := make([]candidate, len(moves))
	for i, m := range moves {
		cands[i] = candidate{move: m, unlock: b.Unlocked(m)}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].unlock > cands[j].unlock
	})
	if w := a.Tuning.Width; w > 0 && len(cands) > w {
		cands = cands[:w]
	}
	return cands
}

func (a *Adversarial) search(own, opp *board.Board, plies int, alpha, beta float64, maximizing bool, nodes *int) float64 {
	*nodes++
	if plies <= 0 || own.IsEmpty() || (opp != nil && opp.IsEmpty()) {
		return a.evaluate(own, opp)
	}

	if maximizing {
		moves := own.Moves()
		if len(moves) == 0 {
			return a.evaluate(own, opp)
		}
		value := math.Inf(-1)
		for _, c := range a.candidates(own, moves) {
			child := own.Clone()
			if err := child.RemovePair(c.move.A, c.move.B); err != nil {
				continue
			}
			value = math.Max(value, a.search(child, opp, plies-1, alpha, beta, false, nodes))
			alpha = math.Max(alpha, value)
			if beta <= alpha {
				break
			}
		}
		return value
	}

	if opp == nil {
		return a.evaluate(own, opp)
	}
	moves := opp.Moves()
	if len(moves) == 0 {
		return a.evaluate(own, opp)
	}
	value := math.Inf(1)
	for _, c := range a.candidates(opp, moves) {
		child := opp.Clone()
		if err := child.RemovePair(c.move.A, c.move.B); err != nil {
			continue
		}
		value = math.Min(value, a.search(own, child, plies-1, alpha, beta, true, nodes))
		beta = math.Min(beta, value)
		if beta <= alpha {
			break
		}
	}
	return value
}

// evaluate scores a position from the computer's side. A cleared board ends
// the race outright.
func (a *Adversarial) evaluate(own, opp *board.Board) float64 {
	if own.IsEmpty() {
		return a.Tuning.FinishBonus
	}
	oppMoves, oppRemaining := 0, 0
	if opp != nil {
		if opp.IsEmpty() {
			return -a.Tuning.FinishBonus
		}
		oppMoves = len(opp.Moves())
		oppRemaining = opp.Len()
	}
	t := a.Tuning
	return t.MobilityWeight*float64(len(own.Moves())-oppMoves) +
		t.RaceWeight*float64(oppRemaining-own.Len()) +
		t.OpenWeight*float64(own.OpenCount())
}
