package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"termjong/config"
	"termjong/layout"
	"termjong/tile"
	"termjong/types"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	// Current selection
	selectedFeltColor int
	selectedTileColor int
	editingTile       bool // true = editing tile color, false = editing felt color
}

type paletteEntry struct {
	code int
	name string
}

// Table colors (dark tones behind the tiles)
var feltColors = []paletteEntry{
	{22, "Felt Green"},
	{28, "Bright Green"},
	{23, "Teal"},
	{24, "Dark Cyan"},
	{17, "Navy Blue"},
	{18, "Dark Blue"},
	{54, "Purple"},
	{52, "Dark Maroon"},
	{88, "Dark Red"},
	{94, "Saddle Brown"},
	{58, "Olive"},
	{236, "Dark Gray"},
	{232, "Black"},
	{16, "True Black"},
}

// Tile colors (light tones that contrast with the faces)
var tileColors = []paletteEntry{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{223, "Peach"},
	{187, "Ivory"},
	{188, "Light Beige"},
	{195, "Ice Blue"},
	{194, "Mint"},
	{225, "Pale Pink"},
	{255, "White"},
	{252, "Light Gray"},
	{250, "Gray"},
	{180, "Tan"},
}

var previewFaces = []tile.Face{
	{Category: tile.Dots, Rank: 5},
	{Category: tile.Bamboo, Rank: 2},
	{Category: tile.Characters, Rank: 9},
	{Category: tile.Winds, Rank: 1},
	{Category: tile.Dragons, Rank: 1},
	{Category: tile.Flowers, Rank: 3},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:               cfg,
		onDone:            onDone,
		selectedFeltColor: cfg.Theme.Colors.BoardColor,
		selectedTileColor: cfg.Theme.Colors.TileColor,
	}

	// Create the color list
	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)

	cc.populateColorList()

	// Handle selection change (preview)
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		entries := cc.entries()
		if index < 0 || index >= len(entries) {
			return
		}
		if cc.editingTile {
			cc.selectedTileColor = entries[index].code
		} else {
			cc.selectedFeltColor = entries[index].code
		}
	})

	// Handle selection confirm (apply)
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(cc.entries()) {
			return
		}
		if cc.editingTile {
			cc.cfg.Theme.Colors.TileColor = cc.selectedTileColor
			cc.save()
			// Switch back to felt color selection
			cc.editingTile = false
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.BoardColor = cc.selectedFeltColor
		cc.save()
		onDone()
	})

	// Create preview box
	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Tile Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) save() {
	if err := cc.cfg.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to save colors")
	}
}

func (cc *ColorConfigUI) entries() []paletteEntry {
	if cc.editingTile {
		return tileColors
	}
	return feltColors
}

// populateColorList fills the list with appropriate colors based on editing mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedFeltColor
	cc.colorList.SetTitle(" Select Table Color (Tab: switch to tile) ")
	if cc.editingTile {
		current = cc.selectedTileColor
		cc.colorList.SetTitle(" Select Tile Color (Tab: switch to table) ")
	}
	for i, c := range cc.entries() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	// Set current selection
	for i, c := range cc.entries() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if width < 36 || height < 10 {
		return x, y, width, height
	}

	// Draw a short two-level row with the selected colors
	preview := *cc.cfg
	preview.Theme.Colors.BoardColor = cc.selectedFeltColor
	preview.Theme.Colors.TileColor = cc.selectedTileColor

	felt := tcell.StyleDefault.Background(tcell.PaletteColor(cc.selectedFeltColor))
	startX := x + 2
	startY := y + 1
	for row := startY; row < startY+6; row++ {
		for col := startX; col < startX+len(previewFaces)*tileW+4; col++ {
			screen.SetContent(col, row, ' ', nil, felt)
		}
	}

	board := &TileBoardUI{cfg: &preview}
	for i, f := range previewFaces {
		t := types.Tile{Face: f, Open: i == 0 || i == len(previewFaces)-1}
		drawTileCell(screen, board.tileStyle(t), preview.Theme.Symbols.Edge, FaceGlyph(f), board.levelRune(0),
			startX+2+i*tileW, startY+3)
	}
	top := types.Tile{Coord: layout.Coord{Z: 1}, Face: previewFaces[4], Open: true}
	drawTileCell(screen, board.tileStyle(top), preview.Theme.Symbols.Edge, FaceGlyph(top.Face), board.levelRune(1),
		startX+2+tileW*2+tileW/2, startY+1)

	// Draw color info
	infoStyle := tcell.StyleDefault
	info := fmt.Sprintf("Table: %d  Tile: %d", cc.selectedFeltColor, cc.selectedTileColor)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+7, ch, nil, infoStyle)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between table color and tile color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingTile = !cc.editingTile
	cc.populateColorList()
}
