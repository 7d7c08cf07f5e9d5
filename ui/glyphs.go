package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"termjong/config"
	"termjong/tile"
)

var suitSymbols = map[tile.Category]rune{
	tile.Dots:       '●',
	tile.Bamboo:     '‖',
	tile.Characters: '✕',
}

var windLetters = []rune{'E', 'S', 'W', 'N'}
var dragonLetters = []rune{'R', 'G', 'W'}

// FaceGlyph returns the two-cell label drawn on a tile.
func FaceGlyph(f tile.Face) string {
	switch f.Category {
	case tile.Dots, tile.Bamboo, tile.Characters:
		return fmt.Sprintf("%d%c", f.Rank, suitSymbols[f.Category])
	case tile.Winds:
		if f.Rank >= 1 && f.Rank <= len(windLetters) {
			return string(windLetters[f.Rank-1]) + "~"
		}
	case tile.Dragons:
		if f.Rank >= 1 && f.Rank <= len(dragonLetters) {
			return string(dragonLetters[f.Rank-1]) + "▲"
		}
	case tile.Flowers:
		return fmt.Sprintf("✿%d", f.Rank)
	case tile.Seasons:
		return fmt.Sprintf("❄%d", f.Rank)
	}
	return "??"
}

// faceColor picks the foreground for a face from the theme.
func faceColor(c *config.Config, f tile.Face) tcell.Color {
	colors := c.Theme.Colors
	switch f.Category {
	case tile.Dots:
		return tcell.PaletteColor(colors.DotsColor)
	case tile.Bamboo:
		return tcell.PaletteColor(colors.BambooColor)
	case tile.Characters:
		return tcell.PaletteColor(colors.CharactersColor)
	case tile.Flowers, tile.Seasons:
		return tcell.PaletteColor(colors.BonusColor)
	}
	return tcell.PaletteColor(colors.HonorColor)
}
