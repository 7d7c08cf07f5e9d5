package ui

import (
	"testing"

	"termjong/board"
	"termjong/game"
	"termjong/layout"
	"termjong/types"
)

func testBoard(t *testing.T) *TileBoardUI {
	t.Helper()
	settings := game.DefaultSettings()
	settings.Difficulty = layout.Easy
	settings.FirstMover = game.FirstHuman
	settings.Seed = 42
	s, err := game.NewSession(settings)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return &TileBoardUI{
		Snapshot: types.FromSession(s, [2]*board.Move{}, false),
		selX:     -1,
		selY:     -1,
	}
}

func TestPositionsAreDistinct(t *testing.T) {
	g := testBoard(t)
	view := g.Snapshot.Board(game.Human)
	ps := positions(view)
	seen := make(map[[2]int]bool)
	for _, p := range ps {
		if seen[p] {
			t.Fatalf("position %v listed twice", p)
		}
		seen[p] = true
	}
	if len(ps) >= len(view.Tiles) {
		t.Fatalf("%d positions for %d stacked tiles", len(ps), len(view.Tiles))
	}
}

func TestMoveSelection(t *testing.T) {
	g := testBoard(t)
	if g.SelectedTile() != nil {
		t.Fatal("no tile should be under a fresh cursor")
	}

	g.MoveSelection(1, 0)
	first := g.SelectedTile()
	if first == nil {
		t.Fatal("first move should place the cursor on a tile")
	}
	view := g.Snapshot.Board(game.Human)
	if tl, _ := view.TileAt(*first); !tl.Open {
		t.Fatalf("cursor placed on blocked tile %s", first)
	}

	x := g.selX
	g.MoveSelection(1, 0)
	if g.selX <= x {
		t.Fatalf("moving right went from x2=%d to x2=%d", x, g.selX)
	}

	g.ResetSelection()
	if g.HasCursor() {
		t.Fatal("cursor should be cleared")
	}
}

func TestJumpToOpen(t *testing.T) {
	g := testBoard(t)
	view := g.Snapshot.Board(game.Human)
	seen := make(map[[2]int]bool)
	for i := 0; i < 8; i++ {
		g.JumpToOpen()
		c := g.SelectedTile()
		if c == nil {
			t.Fatal("jump left the cursor off the board")
		}
		if tl, _ := view.TileAt(*c); !tl.Open {
			t.Fatalf("jump landed on blocked tile %s", c)
		}
		seen[[2]int{g.selX, g.selY}] = true
	}
	if len(seen) < 2 {
		t.Fatal("jumping should visit more than one open tile")
	}
}

func TestHistoryFollowsLatestSnapshot(t *testing.T) {
	settings := game.DefaultSettings()
	settings.Difficulty = layout.Easy
	settings.FirstMover = game.FirstHuman
	settings.Seed = 42
	s, err := game.NewSession(settings)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	moves := s.Board(game.Human).Moves()
	if len(moves) == 0 {
		t.Skip("no legal pair on the human board")
	}
	if _, err := s.AttemptMatch(game.Human, moves[0].A, moves[0].B); err != nil {
		t.Fatalf("AttemptMatch: %v", err)
	}
	afterHuman := types.FromSession(s, [2]*board.Move{}, false)
	if _, ok := s.ComputerMove(); !ok {
		t.Skip("computer had no move")
	}
	afterComputer := types.FromSession(s, [2]*board.Move{}, false)

	g := &TileBoardUI{selX: -1, selY: -1}
	// callbacks delivered out of order
	if !g.apply(afterComputer) {
		t.Fatal("first snapshot rejected")
	}
	if g.apply(afterHuman) {
		t.Fatal("older snapshot replaced a newer one")
	}

	history := g.History()
	if len(history) != 2 {
		t.Fatalf("History() has %d turns, want 2", len(history))
	}
	if history[0].Player != game.Human || history[1].Player != game.Computer {
		t.Fatalf("History() = %+v", history)
	}
}
