package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"termjong/game"
	"termjong/types"
)

const panelWidth = 30

// GameInfoPanel displays race information and move history alongside the boards.
type GameInfoPanel struct {
	box      *tview.TextView
	snapshot *types.Snapshot
	history  func() []game.Turn
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetSnapshot updates the panel with the current race.
func (p *GameInfoPanel) SetSnapshot(snap *types.Snapshot) {
	p.snapshot = snap
	p.refresh()
}

// SetHistory sets the source of the turns listed under Moves.
func (p *GameInfoPanel) SetHistory(history func() []game.Turn) {
	p.history = history
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.snapshot == nil {
		p.box.SetText("")
		return
	}
	snap := p.snapshot

	var text string

	// Race Info section
	text += "[white::b]Race Info[-:-:-]\n"
	text += "[dimgray]────────────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Layout:[-:-:-] %s (%d)\n", snap.Layout.Name(), snap.Layout.Len())
	text += fmt.Sprintf("[white]Computer:[-:-:-] %s\n", snap.Strategy)
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", snap.MoveNumber)

	for _, pl := range game.Players {
		view := snap.Board(pl)
		name := "You"
		if pl == game.Computer {
			name = "Computer"
		}
		text += fmt.Sprintf("\n[white::b]%s[-:-:-] %s\n", name, statusTag(view.Status))
		text += fmt.Sprintf("  score %d\n", view.Score)
		text += fmt.Sprintf("  tiles %d   pairs %d\n", view.Remaining, view.Moves)
	}

	if p.history != nil {
		moves := p.history()
		if len(moves) > 0 {
			text += "\n[white::b]Moves[-:-:-]\n"
			text += "[dimgray]────────────────────────────[-:-:-]\n"

			// Show last N moves that fit, with scroll
			maxVisible := 10
			start := 0
			if len(moves) > maxVisible {
				start = len(moves) - maxVisible
			}

			for i := start; i < len(moves); i++ {
				m := moves[i]

				who := "[white]Y[-]"
				if m.Player == game.Computer {
					who = "[dimgray]C[-]"
				}

				marker := " "
				if i == len(moves)-1 {
					marker = "[white]>[-]"
				}

				text += fmt.Sprintf("%s[dimgray]%3d.[-] %s +%-3d %d left\n", marker, m.Number, who, m.Points, m.Remaining)
			}

			if start > 0 {
				text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
			}
		}
	}

	p.box.SetText(text)
}

func statusTag(s game.Status) string {
	switch s {
	case game.Won:
		return "[green]cleared[-]"
	case game.Lost:
		return "[red]lost[-]"
	case game.Stuck:
		return "[yellow]stuck[-]"
	}
	return ""
}

// CreateGameLayout creates the main game layout with boards and side panel.
func CreateGameLayout(board *TileBoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, board, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with boards, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *TileBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	// Create the info panel
	infoPanel := NewGameInfoPanel()

	// Store panel reference in board for updates
	board.infoPanel = infoPanel
	infoPanel.SetHistory(board.History)

	// Refresh the info panel with current state
	if board.Snapshot != nil {
		infoPanel.SetSnapshot(board.Snapshot)
	}

	// Create horizontal flex: boards | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), panelWidth, 0, false)

	// Main vertical flex: board area on top, status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 6, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered human board.
func BuildFocusLayout(gameFrame *tview.Flex, board *TileBoardUI) {
	gameFrame.Clear()

	boardWidth, boardHeight := 60, 16
	if board.Snapshot != nil && board.Snapshot.Layout != nil {
		w, h := boardSize(board.Snapshot.Layout)
		boardWidth, boardHeight = w+2, h+labelRows
	}

	// Center board with flex spacers
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)               // left spacer
	centerRow.AddItem(board.Box, boardWidth, 0, true) // board (fixed width)
	centerRow.AddItem(nil, 0, 1, false)               // right spacer

	gameFrame.AddItem(centerRow, boardHeight, 0, true) // center row (fixed height)
	gameFrame.AddItem(nil, 0, 1, false)                // bottom spacer
}
