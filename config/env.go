package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvLogLevel   = "TERMJONG_LOG_LEVEL"
	EnvStrategy   = "TERMJONG_STRATEGY"
	EnvDifficulty = "TERMJONG_DIFFICULTY"
	EnvSeed       = "TERMJONG_SEED"
)

// ApplyEnv loads a .env file from the working directory, if present, and
// copies the TERMJONG_* variables into c. Variables already set in the
// process environment win over the .env file.
func ApplyEnv(c *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &InvalidConfig{fmt.Sprintf(".env: %v", err)}
	}

	if v := getEnv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := getEnv(EnvStrategy); v != "" {
		c.AI.Strategy = v
	}
	if v := getEnv(EnvDifficulty); v != "" {
		c.Game.Difficulty = v
	}
	if v := getEnv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s=%q is not an integer", EnvSeed, v)}
		}
		c.Game.Seed = seed
	}
	return nil
}

func getEnv(k string) string {
	return strings.TrimSpace(os.Getenv(k))
}
