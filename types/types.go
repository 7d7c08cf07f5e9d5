// Package types contains the race snapshots handed from the engine to the UI.
package types

import (
	"termjong/board"
	"termjong/game"
	"termjong/layout"
	"termjong/tile"
)

// Tile is one present tile as the UI draws it.
type Tile struct {
	Coord layout.Coord
	Face  tile.Face
	Open  bool
}

// BoardView is a copy of one player's board.
type BoardView struct {
	Player    game.Player
	Tiles     []Tile
	Remaining int
	Moves     int
	Status    game.Status
	Score     int
	LastMove  *board.Move
}

// Snapshot is an immutable copy of the race. Callbacks receive a fresh one so
// the UI never reads engine state while the computer is moving.
type Snapshot struct {
	Deal       int
	MoveNumber int
	Turn       game.Player
	Thinking   bool
	Layout     *layout.Layout
	Boards     [2]BoardView
	Selected   *layout.Coord
	Finished   bool
	Outcome    game.Outcome
	Strategy   string
	History    []game.Turn
}

// Board returns the view of p's board.
func (s *Snapshot) Board(p game.Player) *BoardView {
	return &s.Boards[p]
}

// TileAt finds the present tile at c.
func (v *BoardView) TileAt(c layout.Coord) (Tile, bool) {
	for _, t := range v.Tiles {
		if t.Coord == c {
			return t, true
		}
	}
	return Tile{}, false
}

// Top returns the highest present tile at the position (x2, y2), if any.
func (v *BoardView) Top(x2, y2 int) (Tile, bool) {
	var top Tile
	found := false
	for _, t := range v.Tiles {
		if t.Coord.X2 != x2 || t.Coord.Y2 != y2 {
			continue
		}
		if !found || t.Coord.Z > top.Coord.Z {
			top, found = t, true
		}
	}
	return top, found
}

// Supersedes reports whether s is not an older state of the race than o.
// Callbacks may deliver snapshots out of order; the UI keeps the latest.
func (s *Snapshot) Supersedes(o *Snapshot) bool {
	if o == nil {
		return true
	}
	if s.Deal != o.Deal {
		return s.Deal > o.Deal
	}
	return s.MoveNumber >= o.MoveNumber
}

// IsMyTurn reports whether the human may click.
func (s *Snapshot) IsMyTurn() bool {
	return !s.Finished && !s.Thinking && s.Turn == game.Human
}

// FromSession copies the state of s. last holds the most recent move per board.
func FromSession(s *game.Session, last [2]*board.Move, thinking bool) *Snapshot {
	history := s.History()
	snap := &Snapshot{
		Deal:       s.Deal(),
		MoveNumber: len(history),
		Turn:       s.Turn(),
		Thinking:   thinking,
		Layout:     s.Layout(),
		Strategy:   s.Strategy().Name(),
		History:    history,
	}
	snap.Outcome, snap.Finished = s.Outcome()
	if c, ok := s.Selection(); ok {
		snap.Selected = &c
	}

	for _, p := range game.Players {
		b := s.Board(p)
		view := BoardView{
			Player:    p,
			Remaining: b.Len(),
			Moves:     len(b.Moves()),
			Status:    s.Status(p),
			Score:     s.Score(p),
		}
		if last[p] != nil {
			m := *last[p]
			view.LastMove = &m
		}
		for _, c := range b.Present() {
			f, _ := b.FaceAt(c)
			view.Tiles = append(view.Tiles, Tile{Coord: c, Face: f, Open: b.IsOpen(c)})
		}
		snap.Boards[p] = view
	}
	return snap
}
