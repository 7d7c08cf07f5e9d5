package config

import (
	"termjong/ai"
	"termjong/game"
	"termjong/layout"
)

// Tuning returns the adversarial weights from the AI section.
func (c *Config) Tuning() ai.Tuning {
	t := ai.DefaultTuning
	t.UnlockWeight = c.AI.UnlockWeight
	t.Discount = c.AI.Discount
	t.MobilityWeight = c.AI.MobilityWeight
	t.RaceWeight = c.AI.RaceWeight
	t.OpenWeight = c.AI.OpenWeight
	t.Width = c.AI.Width
	t.TopK = c.AI.TopK
	t.WideThreshold = c.AI.WideThreshold
	return t
}

// Settings converts the config into session settings. Call Validate first.
func (c *Config) Settings() (game.Settings, error) {
	d, err := layout.ParseDifficulty(c.Game.Difficulty)
	if err != nil {
		return game.Settings{}, &InvalidConfig{err.Error()}
	}
	kind, err := ai.ParseKind(c.AI.Strategy)
	if err != nil {
		return game.Settings{}, &InvalidConfig{err.Error()}
	}
	first, err := game.ParseFirstMover(c.Game.FirstMover)
	if err != nil {
		return game.Settings{}, &InvalidConfig{err.Error()}
	}
	return game.Settings{
		Difficulty:       d,
		Strategy:         kind,
		Depth:            c.AI.Depth,
		Tuning:           c.Tuning(),
		RandomTies:       c.AI.RandomTies,
		FirstMover:       first,
		StalemateByScore: c.Game.StalemateByScore,
		Seed:             c.Game.Seed,
	}, nil
}
