package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette for everything drawn around the boards.
var MenuColors = struct {
	Border     tcell.Color // setup form border
	Title      tcell.Color
	Label      tcell.Color // form labels and idle board labels
	Hint       tcell.Color
	Selected   tcell.Color // label of the board whose turn it is
	ButtonBG   tcell.Color
	ButtonText tcell.Color
}{
	Border:     tcell.PaletteColor(60),
	Title:      tcell.PaletteColor(255),
	Label:      tcell.PaletteColor(250),
	Hint:       tcell.PaletteColor(245),
	Selected:   tcell.PaletteColor(109),
	ButtonBG:   tcell.PaletteColor(60),
	ButtonText: tcell.PaletteColor(255),
}
