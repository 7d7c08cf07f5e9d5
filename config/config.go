package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"termjong/ai"
	"termjong/game"
	"termjong/layout"
)

var (
	cfgFile = "termjong/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board"`
	TileColor         int `json:"tile"`
	TileColorAlt      int `json:"tile_alt"`
	BlockedTileColor  int `json:"blocked_tile"`
	DotsColor         int `json:"dots"`
	BambooColor       int `json:"bamboo"`
	CharactersColor   int `json:"characters"`
	HonorColor        int `json:"honor"`
	BonusColor        int `json:"bonus"`
	CursorColorFG     int `json:"cursor_fg"`
	CursorColorBG     int `json:"cursor_bg"`
	SelectedColorBG   int `json:"selected_bg"`
	HintColorBG       int `json:"hint_bg"`
	LastPlayedColorBG int `json:"last_played_bg"`
}

type ConfigSymbols struct {
	EmptySlot rune `json:"empty"`
	Cursor    rune `json:"cursor"`
	Edge      rune `json:"edge"`
}

type Theme struct {
	DrawCursorBackground     bool          `json:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	DimBlockedTiles          bool          `json:"dim_blocked"`
	ShowLevels               bool          `json:"show_levels"`
	Colors                   ConfigColors  `json:"colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// GameConfig holds the race defaults used for new sessions.
type GameConfig struct {
	Difficulty       string `json:"difficulty"`
	FirstMover       string `json:"first_mover"`
	StalemateByScore bool   `json:"stalemate_by_score"`
	AIDelayMs        int    `json:"ai_delay_ms"`
	Hints            bool   `json:"hints"`
	Seed             int64  `json:"seed"`
}

// AIConfig holds the computer strategy and its search weights.
type AIConfig struct {
	Strategy       string  `json:"strategy"`
	Depth          int     `json:"depth"`
	Width          int     `json:"width"`
	TopK           int     `json:"top_k"`
	WideThreshold  int     `json:"wide_threshold"`
	RandomTies     bool    `json:"random_ties"`
	UnlockWeight   float64 `json:"unlock_weight"`
	Discount       float64 `json:"discount"`
	MobilityWeight float64 `json:"mobility_weight"`
	RaceWeight     float64 `json:"race_weight"`
	OpenWeight     float64 `json:"open_weight"`
}

type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Config struct {
	Theme Theme      `json:"theme"`
	Game  GameConfig `json:"game"`
	AI    AIConfig   `json:"ai"`
	Log   LogConfig  `json:"log"`
}

// InitConfig loads the config file if there is one, applies environment
// overrides and validates the result.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(&config); err != nil {
		return nil, err
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.EmptySlot, c.Theme.Symbols.Cursor, c.Theme.Symbols.Edge} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if _, err := layout.ParseDifficulty(c.Game.Difficulty); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if _, err := game.ParseFirstMover(c.Game.FirstMover); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Game.AIDelayMs < 0 {
		return &InvalidConfig{"ai_delay_ms must not be negative"}
	}
	if _, err := ai.ParseKind(c.AI.Strategy); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.AI.Depth < 0 || c.AI.Depth > 6 {
		return &InvalidConfig{fmt.Sprintf("ai depth %d out of range 0-6", c.AI.Depth)}
	}
	if c.AI.Width < 0 || c.AI.TopK < 1 || c.AI.WideThreshold < 0 {
		return &InvalidConfig{"ai width and wide_threshold must be >= 0, top_k >= 1"}
	}
	if c.AI.Discount < 0 || c.AI.Discount > 1 {
		return &InvalidConfig{"ai discount must be between 0 and 1"}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return &InvalidConfig{fmt.Sprintf("log level %q", c.Log.Level)}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
