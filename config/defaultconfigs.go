package config

import "termjong/ai"

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		DimBlockedTiles:          true,
		ShowLevels:               true,
		Colors: ConfigColors{
			BoardColor:        22,
			TileColor:         230,
			TileColorAlt:      187,
			BlockedTileColor:  244,
			DotsColor:         25,
			BambooColor:       28,
			CharactersColor:   124,
			HonorColor:        232,
			BonusColor:        130,
			CursorColorFG:     15,
			CursorColorBG:     4,
			SelectedColorBG:   3,
			HintColorBG:       6,
			LastPlayedColorBG: 2,
		},
		Symbols: ConfigSymbols{
			EmptySlot: '·',
			Cursor:    '▒',
			Edge:      '│',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameConfig{
			Difficulty:       "hard",
			FirstMover:       "random",
			StalemateByScore: true,
			AIDelayMs:        600,
			Hints:            true,
		},
		AI: AIConfig{
			Strategy:       "adversarial",
			Depth:          ai.DefaultDepth,
			Width:          ai.DefaultTuning.Width,
			TopK:           ai.DefaultTuning.TopK,
			WideThreshold:  ai.DefaultTuning.WideThreshold,
			UnlockWeight:   ai.DefaultTuning.UnlockWeight,
			Discount:       ai.DefaultTuning.Discount,
			MobilityWeight: ai.DefaultTuning.MobilityWeight,
			RaceWeight:     ai.DefaultTuning.RaceWeight,
			OpenWeight:     ai.DefaultTuning.OpenWeight,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
