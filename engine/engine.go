// Package engine defines the interface the UI drives a race through.
package engine

import (
	"time"

	"termjong/ai"
	"termjong/game"
	"termjong/layout"
	"termjong/types"
)

// RaceEngine runs a human-versus-computer race and paces the computer's moves.
type RaceEngine interface {
	// Connect deals the first race. If the computer moves first it starts thinking.
	Connect() error

	// GetSnapshot returns a copy of the current race.
	GetSnapshot() *types.Snapshot

	// Click selects, deselects or matches the tile at c on the human board.
	// Clicks are ignored while the computer is moving.
	Click(c layout.Coord) game.ClickResult

	// Hint returns one tile of a legal pair on the human board.
	Hint() (layout.Coord, bool)

	// IsMyTurn returns true if the human may click.
	IsMyTurn() bool

	// Restart deals again. SetDifficulty also switches layout.
	Restart() error
	SetDifficulty(d layout.Difficulty) error

	// SetStrategy swaps the computer strategy without restarting.
	SetStrategy(kind ai.Kind) error

	// OnMove registers a callback for every removed pair, by either player.
	// The snapshot is passed directly to avoid lock contention.
	OnMove(func(t game.Turn, snap *types.Snapshot))

	// OnBoardDone registers a callback for a board becoming terminal.
	OnBoardDone(func(p game.Player, r game.Reason, snap *types.Snapshot))

	// OnGameEnd registers a callback for when both boards are terminal.
	OnGameEnd(func(o game.Outcome, snap *types.Snapshot))

	// Close stops any pending computer move.
	Close()
}

// GameConfig holds configuration for starting a race.
type GameConfig struct {
	Settings game.Settings
	AIDelay  time.Duration // pause before each computer move
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Settings: game.DefaultSettings(),
		AIDelay:  600 * time.Millisecond,
	}
}
