package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"termjong/ai"
	"termjong/game"
	"termjong/layout"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig
	if err := c.Validate(); err != nil {
		t.Fatalf("DefaultConfig.Validate() = %v", err)
	}
	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings(): %v", err)
	}
	if s.Difficulty != layout.Hard || s.Strategy != ai.KindAdversarial || s.FirstMover != game.FirstRandom {
		t.Fatalf("unexpected default settings %+v", s)
	}
	if s.Tuning != ai.DefaultTuning {
		t.Fatalf("default tuning %+v differs from ai.DefaultTuning", s.Tuning)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"control symbol", func(c *Config) { c.Theme.Symbols.Cursor = 7 }},
		{"difficulty", func(c *Config) { c.Game.Difficulty = "impossible" }},
		{"first mover", func(c *Config) { c.Game.FirstMover = "nobody" }},
		{"delay", func(c *Config) { c.Game.AIDelayMs = -1 }},
		{"strategy", func(c *Config) { c.AI.Strategy = "oracle" }},
		{"depth", func(c *Config) { c.AI.Depth = 12 }},
		{"top k", func(c *Config) { c.AI.TopK = 0 }},
		{"discount", func(c *Config) { c.AI.Discount = 1.5 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			tt.mutate(&c)
			err := c.Validate()
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Fatalf("Validate() = %v, want *InvalidConfig", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvStrategy, "greedy")
	t.Setenv(EnvDifficulty, "easy")
	t.Setenv(EnvSeed, "1234")

	c := DefaultConfig
	if err := ApplyEnv(&c); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.Log.Level != "debug" || c.AI.Strategy != "greedy" || c.Game.Difficulty != "easy" || c.Game.Seed != 1234 {
		t.Fatalf("env not applied: %+v %+v %+v", c.Log, c.AI, c.Game)
	}
	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings(): %v", err)
	}
	if s.Difficulty != layout.Easy || s.Strategy != ai.KindGreedy || s.Seed != 1234 {
		t.Fatalf("Settings() = %+v", s)
	}
}

func TestApplyEnvBadSeed(t *testing.T) {
	t.Setenv(EnvSeed, "twelve")
	c := DefaultConfig
	if err := ApplyEnv(&c); err == nil {
		t.Fatal("expected error for a non-numeric seed")
	}
}

func inDir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestApplyEnvDotEnvFile(t *testing.T) {
	tests := []struct {
		name    string
		content string // empty: no .env file
		wantErr bool
	}{
		{"missing", "", false},
		{"valid", "TERMJONG_TEST_VALUE=1\n", false},
		{"malformed", "TERMJONG-SEED=1\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != "" {
				if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(tt.content), 0600); err != nil {
					t.Fatalf("WriteFile: %v", err)
				}
			}
			inDir(t, dir)

			c := DefaultConfig
			err := ApplyEnv(&c)
			if tt.wantErr {
				var invalid *InvalidConfig
				if !errors.As(err, &invalid) {
					t.Fatalf("ApplyEnv() = %v, want *InvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv: %v", err)
			}
		})
	}
}

func TestSaveAndReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := DefaultConfig
	c.Game.Difficulty = "medium"
	c.AI.Depth = 3
	c.Theme.Colors.TileColor = 100
	if err := saveCfgFile(path, &c, 0600); err != nil {
		t.Fatalf("saveCfgFile: %v", err)
	}

	got := DefaultConfig
	if err := readCfgFile(path, &got); err != nil {
		t.Fatalf("readCfgFile: %v", err)
	}
	if got != c {
		t.Fatalf("read %+v, want %+v", got, c)
	}
}

func TestReadCfgFileErrors(t *testing.T) {
	dir := t.TempDir()
	c := DefaultConfig
	if err := readCfgFile(filepath.Join(dir, "missing.json"), &c); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	var invalid *InvalidConfig
	if err := readCfgFile(bad, &c); !errors.As(err, &invalid) {
		t.Fatalf("readCfgFile(bad) = %v, want *InvalidConfig", err)
	}
}
