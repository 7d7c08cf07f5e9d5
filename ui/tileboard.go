// Package ui specifies custom controls for tview to play the tile race in the terminal.
package ui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termjong/ai"
	"termjong/config"
	"termjong/engine"
	"termjong/game"
	"termjong/layout"
	"termjong/types"
)

const (
	// a tile spans two half units each way: 4 columns and 2 rows
	tileW     = 4
	tileH     = 2
	boardGap  = 4
	labelRows = 1
)

type TileBoardUI struct {
	Box       *tview.Box
	Snapshot  *types.Snapshot
	hint      *tview.TextView
	cfg       *config.Config
	finished  bool
	selX      int
	selY      int
	hintTile  *layout.Coord
	status    string
	app       *tview.Application
	eng       engine.RaceEngine
	infoPanel *GameInfoPanel
	focusMode bool
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *TileBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *TileBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *TileBoardUI) IsFocusMode() bool {
	return g.focusMode
}

// SelectedTile returns the topmost human tile under the cursor.
func (g *TileBoardUI) SelectedTile() *layout.Coord {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	if g.Snapshot == nil {
		return nil
	}
	t, ok := g.Snapshot.Board(game.Human).Top(g.selX, g.selY)
	if !ok {
		return nil
	}
	return &t.Coord
}

// HasCursor reports whether the cursor is on the board.
func (g *TileBoardUI) HasCursor() bool {
	return g.selX != -1 || g.selY != -1
}

// MoveSelection moves the cursor to the nearest tile position in direction (h, v).
func (g *TileBoardUI) MoveSelection(h, v int) {
	if g.finished || g.Snapshot == nil {
		g.ResetSelection()
		return
	}
	view := g.Snapshot.Board(game.Human)
	if !g.HasCursor() {
		g.placeCursor(view)
		return
	}

	best, bestScore := [2]int{}, -1
	for _, pos := range positions(view) {
		dx, dy := pos[0]-g.selX, pos[1]-g.selY
		along, across := dx*h+dy*v, dx*v+dy*h
		if along <= 0 {
			continue
		}
		if across < 0 {
			across = -across
		}
		score := along + 2*across
		if bestScore == -1 || score < bestScore {
			best, bestScore = pos, score
		}
	}
	if bestScore == -1 {
		return
	}
	g.selX, g.selY = best[0], best[1]
}

// placeCursor puts the cursor on the last revealed tile, or on the first open one.
func (g *TileBoardUI) placeCursor(view *types.BoardView) {
	if m := view.LastMove; m != nil {
		for _, c := range []layout.Coord{m.A, m.B} {
			if _, ok := view.Top(c.X2, c.Y2); ok {
				g.selX, g.selY = c.X2, c.Y2
				return
			}
		}
	}
	for _, t := range view.Tiles {
		if t.Open {
			g.selX, g.selY = t.Coord.X2, t.Coord.Y2
			return
		}
	}
	if len(view.Tiles) > 0 {
		g.selX, g.selY = view.Tiles[0].Coord.X2, view.Tiles[0].Coord.Y2
	}
}

// JumpToOpen moves the cursor to the next open tile in reading order.
func (g *TileBoardUI) JumpToOpen() {
	if g.finished || g.Snapshot == nil {
		return
	}
	var open [][2]int
	for _, t := range g.Snapshot.Board(game.Human).Tiles {
		if t.Open {
			open = append(open, [2]int{t.Coord.X2, t.Coord.Y2})
		}
	}
	if len(open) == 0 {
		return
	}
	sortPositions(open)
	for _, pos := range open {
		if pos[1] > g.selY || (pos[1] == g.selY && pos[0] > g.selX) {
			g.selX, g.selY = pos[0], pos[1]
			return
		}
	}
	g.selX, g.selY = open[0][0], open[0][1]
}

func (g *TileBoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

// positions lists the distinct tile positions of a board, seen from above.
func positions(view *types.BoardView) [][2]int {
	seen := make(map[[2]int]bool)
	var out [][2]int
	for _, t := range view.Tiles {
		pos := [2]int{t.Coord.X2, t.Coord.Y2}
		if !seen[pos] {
			seen[pos] = true
			out = append(out, pos)
		}
	}
	sortPositions(out)
	return out
}

func sortPositions(ps [][2]int) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i][1] != ps[j][1] {
			return ps[i][1] < ps[j][1]
		}
		return ps[i][0] < ps[j][0]
	})
}

func NewTileBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *TileBoardUI {
	tileBoard := &TileBoardUI{
		Box:  tview.NewBox(),
		hint: hint,
		app:  app,
		selX: -1,
		selY: -1,
	}
	tileBoard.SetConfig(c)
	tileBoard.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		snap := tileBoard.Snapshot
		if snap == nil || snap.Layout == nil {
			return x, y, 1, 1
		}
		boardW, boardH := boardSize(snap.Layout)

		players := game.Players
		if tileBoard.focusMode {
			players = []game.Player{game.Human}
		}
		for i, p := range players {
			left := x + 1 + i*(boardW+boardGap)
			tileBoard.drawLabel(screen, left, y, snap, p)
			tileBoard.drawBoard(screen, left, y+labelRows, snap, p)
		}
		screen.Show()
		return x, y, len(players)*(boardW+boardGap) - boardGap + 2, boardH + labelRows
	})
	return tileBoard
}

// boardSize returns the screen size of one board of l.
func boardSize(l *layout.Layout) (int, int) {
	minX2, minY2, maxX2, maxY2 := l.Bounds()
	return (maxX2-minX2)*2 + tileW, maxY2 - minY2 + tileH
}

func (g *TileBoardUI) drawLabel(s tcell.Screen, x, y int, snap *types.Snapshot, p game.Player) {
	view := snap.Board(p)
	name := "You"
	if p == game.Computer {
		name = fmt.Sprintf("Computer (%s)", snap.Strategy)
	}
	label := fmt.Sprintf("%s  %d pts  %d left", name, view.Score, view.Remaining)
	if view.Status.Terminal() {
		label += "  · " + view.Status.String()
	}

	style := tcell.StyleDefault.Foreground(MenuColors.Label)
	if !snap.Finished && snap.Turn == p {
		style = tcell.StyleDefault.Foreground(MenuColors.Selected).Bold(true)
	}
	col := x
	for _, ch := range label {
		s.SetContent(col, y, ch, nil, style)
		col++
	}
}

func (g *TileBoardUI) drawBoard(s tcell.Screen, x, y int, snap *types.Snapshot, p game.Player) {
	minX2, minY2, _, _ := snap.Layout.Bounds()
	boardW, boardH := boardSize(snap.Layout)
	felt := tcell.StyleDefault.Background(tcell.PaletteColor(g.cfg.Theme.Colors.BoardColor))
	for row := y; row < y+boardH; row++ {
		for col := x; col < x+boardW; col++ {
			s.SetContent(col, row, ' ', nil, felt)
		}
	}

	view := snap.Board(p)
	tiles := make([]types.Tile, len(view.Tiles))
	copy(tiles, view.Tiles)
	sort.Slice(tiles, func(i, j int) bool {
		a, b := tiles[i].Coord, tiles[j].Coord
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y2 != b.Y2 {
			return a.Y2 < b.Y2
		}
		return a.X2 < b.X2
	})

	// positions emptied or revealed by the last move
	lastSlots := make(map[[2]int]bool)
	if view.LastMove != nil {
		for _, c := range []layout.Coord{view.LastMove.A, view.LastMove.B} {
			lastSlots[[2]int{c.X2, c.Y2}] = true
		}
	}

	var cursor *layout.Coord
	if p == game.Human {
		cursor = g.SelectedTile()
	}

	for _, t := range tiles {
		top, _ := view.Top(t.Coord.X2, t.Coord.Y2)
		isTop := top.Coord == t.Coord
		style := g.tileStyle(t)
		switch {
		case cursor != nil && *cursor == t.Coord:
			if g.cfg.Theme.DrawCursorBackground {
				style = style.Background(tcell.PaletteColor(g.cfg.Theme.Colors.CursorColorBG)).
					Foreground(tcell.PaletteColor(g.cfg.Theme.Colors.CursorColorFG))
			}
		case p == game.Human && snap.Selected != nil && *snap.Selected == t.Coord:
			style = style.Background(tcell.PaletteColor(g.cfg.Theme.Colors.SelectedColorBG))
		case p == game.Human && g.hintTile != nil && *g.hintTile == t.Coord:
			style = style.Background(tcell.PaletteColor(g.cfg.Theme.Colors.HintColorBG))
		case isTop && lastSlots[[2]int{t.Coord.X2, t.Coord.Y2}] && g.cfg.Theme.DrawLastPlayedBackground:
			style = style.Background(tcell.PaletteColor(g.cfg.Theme.Colors.LastPlayedColorBG))
		}
		edge := g.cfg.Theme.Symbols.Edge
		if cursor != nil && *cursor == t.Coord && !g.cfg.Theme.DrawCursorBackground {
			edge = g.cfg.Theme.Symbols.Cursor
		}
		drawTileCell(s, style, edge, FaceGlyph(t.Face), g.levelRune(t.Coord.Z),
			x+(t.Coord.X2-minX2)*2, y+(t.Coord.Y2-minY2))
	}

	// mark slots the last move emptied down to the felt
	for pos := range lastSlots {
		if _, ok := view.Top(pos[0], pos[1]); ok {
			continue
		}
		style := felt
		if g.cfg.Theme.DrawLastPlayedBackground {
			style = felt.Background(tcell.PaletteColor(g.cfg.Theme.Colors.LastPlayedColorBG))
		}
		drawEmptyCell(s, style, g.cfg.Theme.Symbols.EmptySlot, x+(pos[0]-minX2)*2, y+(pos[1]-minY2))
	}

	if p == game.Human && g.HasCursor() && cursor == nil {
		style := felt.Background(tcell.PaletteColor(g.cfg.Theme.Colors.CursorColorBG))
		drawEmptyCell(s, style, g.cfg.Theme.Symbols.Cursor, x+(g.selX-minX2)*2, y+(g.selY-minY2))
	}
}

func (g *TileBoardUI) tileStyle(t types.Tile) tcell.Style {
	colors := g.cfg.Theme.Colors
	bg := colors.TileColor
	if t.Coord.Z%2 == 1 {
		bg = colors.TileColorAlt
	}
	if !t.Open && g.cfg.Theme.DimBlockedTiles {
		bg = colors.BlockedTileColor
	}
	return tcell.StyleDefault.Background(tcell.PaletteColor(bg)).Foreground(faceColor(g.cfg, t.Face))
}

func (g *TileBoardUI) levelRune(z int) rune {
	if !g.cfg.Theme.ShowLevels {
		return ' '
	}
	return rune('1' + z)
}

// drawTileCell draws one tile: the edge and the face on the first row, the
// level on the second.
func drawTileCell(s tcell.Screen, style tcell.Style, edge rune, glyph string, level rune, l, t int) {
	s.SetContent(l, t, edge, nil, style)
	col := l + 1
	for _, ch := range glyph {
		s.SetContent(col, t, ch, nil, style)
		col++
	}
	for ; col < l+tileW; col++ {
		s.SetContent(col, t, ' ', nil, style)
	}
	s.SetContent(l, t+1, edge, nil, style)
	s.SetContent(l+1, t+1, level, nil, style)
	s.SetContent(l+2, t+1, ' ', nil, style)
	s.SetContent(l+3, t+1, ' ', nil, style)
}

func drawEmptyCell(s tcell.Screen, style tcell.Style, r rune, l, t int) {
	for row := 0; row < tileH; row++ {
		for col := 0; col < tileW; col++ {
			s.SetContent(l+col, t+row, ' ', nil, style)
		}
	}
	s.SetContent(l+1, t, r, nil, style)
}

// ConnectEngine connects the board to a race engine.
func (g *TileBoardUI) ConnectEngine(e engine.RaceEngine) error {
	g.finished = false
	g.eng = e
	g.hintTile = nil
	g.status = ""
	g.ResetSelection()

	e.OnMove(func(t game.Turn, snap *types.Snapshot) {
		// Spawn goroutine to avoid deadlock when called from main thread
		go g.app.QueueUpdateDraw(func() {
			if g.eng != e || !g.apply(snap) {
				return
			}
			if t.Player == game.Computer {
				g.status = fmt.Sprintf("  ◌ Computer took %s  +%d\n", t.Move, t.Points)
			}
			g.refreshHint()
		})
	})

	e.OnBoardDone(func(p game.Player, r game.Reason, snap *types.Snapshot) {
		go g.app.QueueUpdateDraw(func() {
			if g.eng != e || !g.apply(snap) {
				return
			}
			g.status = "  " + boardDoneText(p, r) + "\n"
			g.refreshHint()
		})
	})

	e.OnGameEnd(func(o game.Outcome, snap *types.Snapshot) {
		go g.app.QueueUpdateDraw(func() {
			if g.eng != e || !g.apply(snap) {
				return
			}
			g.finished = true
			g.ResetSelection()
			g.refreshHint()
		})
	})

	if err := e.Connect(); err != nil {
		return err
	}
	g.Snapshot = e.GetSnapshot()
	g.finished = g.Snapshot.Finished
	g.refreshHint()
	return nil
}

// apply installs snap unless a later one is already shown.
func (g *TileBoardUI) apply(snap *types.Snapshot) bool {
	if !snap.Supersedes(g.Snapshot) {
		return false
	}
	if g.Snapshot != nil && snap.Deal != g.Snapshot.Deal {
		}
	g.Snapshot = snap
	g.finished = snap.Finished
	return true
}

func boardDoneText(p game.Player, r game.Reason) string {
	who := "Your"
	if p == game.Computer {
		who = "Computer's"
	}
	switch r {
	case game.ReasonCleared:
		return fmt.Sprintf("★ %s board is cleared", who)
	case game.ReasonOpponentCleared:
		return fmt.Sprintf("✗ %s board lost the race", who)
	}
	return fmt.Sprintf("◌ %s board has no moves left", who)
}

// Click clicks the tile under the cursor.
func (g *TileBoardUI) Click() {
	if g.finished || g.eng == nil {
		return
	}
	c := g.SelectedTile()
	if c == nil {
		return
	}
	if !g.eng.IsMyTurn() {
		return
	}
	g.hintTile = nil
	switch g.eng.Click(*c) {
	case game.ClickIgnored:
		g.status = "  ✗ That tile is blocked\n"
	case game.ClickRejected:
		g.status = "  ✗ Those tiles do not match\n"
	case game.ClickMatched:
		g.status = ""
	}
	g.apply(g.eng.GetSnapshot())
	g.refreshHint()
}

// ShowHint highlights one tile of a legal pair and moves the cursor onto it.
func (g *TileBoardUI) ShowHint() {
	if g.finished || g.eng == nil || !g.cfg.Game.Hints {
		return
	}
	c, ok := g.eng.Hint()
	if !ok {
		return
	}
	g.hintTile = &c
	g.selX, g.selY = c.X2, c.Y2
	g.refreshHint()
}

// Restart deals a new race with the same settings.
func (g *TileBoardUI) Restart() error {
	if g.eng == nil {
		return nil
	}
	if err := g.eng.Restart(); err != nil {
		return err
	}
	g.hintTile = nil
	g.status = ""
	g.ResetSelection()
	g.apply(g.eng.GetSnapshot())
	g.refreshHint()
	return nil
}

// CycleStrategy switches the computer to the next strategy. The race continues.
func (g *TileBoardUI) CycleStrategy() error {
	if g.eng == nil || g.Snapshot == nil {
		return nil
	}
	kind, err := ai.ParseKind(g.Snapshot.Strategy)
	if err != nil {
		return err
	}
	next := ai.Kinds[(int(kind)+1)%len(ai.Kinds)]
	if err := g.eng.SetStrategy(next); err != nil {
		return err
	}
	g.status = fmt.Sprintf("  ◆ Computer now plays %s\n", next)
	g.apply(g.eng.GetSnapshot())
	g.refreshHint()
	return nil
}

// CycleDifficulty deals a new race on the next layout.
func (g *TileBoardUI) CycleDifficulty() error {
	if g.eng == nil || g.Snapshot == nil {
		return nil
	}
	d, err := layout.ParseDifficulty(g.Snapshot.Layout.Name())
	if err != nil {
		return err
	}
	next := layout.Difficulties[(int(d)+1)%len(layout.Difficulties)]
	if err := g.eng.SetDifficulty(next); err != nil {
		return err
	}
	g.hintTile = nil
	g.status = fmt.Sprintf("  ◆ New race on %s\n", next)
	g.ResetSelection()
	g.apply(g.eng.GetSnapshot())
	g.refreshHint()
	return nil
}

// Close disconnects the engine.
func (g *TileBoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
}

func (g *TileBoardUI) SetConfig(c *config.Config) {
	g.cfg = c
}

// History returns the turns played up to the shown state of the race.
func (g *TileBoardUI) History() []game.Turn {
	if g.Snapshot == nil {
		return nil
	}
	return g.Snapshot.History
}

func (g *TileBoardUI) refreshHint() {
	// Update info panel if available
	if g.infoPanel != nil {
		g.infoPanel.SetSnapshot(g.Snapshot)
	}

	// Focus mode shows minimal hint
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	if g.finished && g.Snapshot != nil {
		statusLine = "───────── Race Complete ─────────\n\n"
		you, them := g.Snapshot.Board(game.Human), g.Snapshot.Board(game.Computer)
		turnLine = fmt.Sprintf("  %s  (%d vs %d)\n", outcomeText(g.Snapshot.Outcome), you.Score, them.Score)
		controlsLine = "\n  r · rematch   q · return to menu"
	} else {
		statusLine = g.status

		switch {
		case g.eng != nil && g.eng.IsMyTurn():
			turnLine = "  ● Your move\n"
		case g.Snapshot != nil && g.Snapshot.Board(game.Human).Status.Terminal():
			turnLine = "  ◌ Computer plays on...\n"
		default:
			turnLine = "  ◌ Thinking...\n"
		}

		controlsLine = `
  hjkl/↑↓←→ move   ⏎ pick   n next open   ? hint
  r restart   d layout   s computer   f focus   q quit`
	}

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

func outcomeText(o game.Outcome) string {
	switch o {
	case game.OutcomeWin:
		return "You win!"
	case game.OutcomeLose:
		return "The computer wins."
	case game.OutcomeTie:
		return "Tie."
	}
	return "Both boards are stuck."
}

// IsFinished returns true if the race is over.
func (g *TileBoardUI) IsFinished() bool {
	return g.finished
}
