package ui

import (
	"testing"

	"termjong/tile"
)

func TestFaceGlyph(t *testing.T) {
	tests := []struct {
		face tile.Face
		want string
	}{
		{tile.Face{Category: tile.Dots, Rank: 5}, "5●"},
		{tile.Face{Category: tile.Bamboo, Rank: 1}, "1‖"},
		{tile.Face{Category: tile.Characters, Rank: 9}, "9✕"},
		{tile.Face{Category: tile.Winds, Rank: 4}, "N~"},
		{tile.Face{Category: tile.Dragons, Rank: 2}, "G▲"},
		{tile.Face{Category: tile.Flowers, Rank: 3}, "✿3"},
		{tile.Face{Category: tile.Seasons, Rank: 1}, "❄1"},
		{tile.Face{Category: tile.Winds, Rank: 7}, "??"},
	}

	for _, tt := range tests {
		if got := FaceGlyph(tt.face); got != tt.want {
			t.Errorf("FaceGlyph(%s) = %q, want %q", tt.face, got, tt.want)
		}
	}
}

func TestEveryDeckFaceHasTwoCellGlyph(t *testing.T) {
	for _, f := range tile.Deck() {
		if n := len([]rune(FaceGlyph(f))); n != 2 {
			t.Fatalf("FaceGlyph(%s) has %d runes", f, n)
		}
	}
}
