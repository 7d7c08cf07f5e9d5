package board

import "termjong/tile"

// Moves returns every legal pair on the board, recomputed from the current
// state. Pairs are ordered by the layout index of A, then of B, with A before B.
func (b *Board) Moves() []Move {
	open := b.layout.Open(b.present)

	groups := make(map[tile.Key][]int)
	pos := make([]int, len(open))
	for n, i := range open {
		k := b.faces[i].MatchKey()
		pos[n] = len(groups[k])
		groups[k] = append(groups[k], i)
	}

	var moves []Move
	for n, i := range open {
		group := groups[b.faces[i].MatchKey()]
		for _, j := range group[pos[n]+1:] {
			moves = append(moves, Move{A: b.layout.Coord(i), B: b.layout.Coord(j)})
		}
	}
	return moves
}

// HasMoves reports whether at least one legal pair exists.
func (b *Board) HasMoves() bool {
	seen := make(map[tile.Key]bool)
	for _, i := range b.layout.Open(b.present) {
		k := b.faces[i].MatchKey()
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}
