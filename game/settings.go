package game

import (
	"fmt"
	"math/rand"
	"strings"

	"termjong/ai"
	"termjong/layout"
	"termjong/tile"
)

// FirstMover decides who plays first after a deal.
type FirstMover int

const (
	FirstRandom FirstMover = iota
	FirstHuman
	FirstComputer
)

func (f FirstMover) String() string {
	switch f {
	case FirstRandom:
		return "random"
	case FirstHuman:
		return "human"
	case FirstComputer:
		return "computer"
	}
	return fmt.Sprintf("firstmover(%d)", int(f))
}

// ParseFirstMover accepts random, human or computer.
func ParseFirstMover(s string) (FirstMover, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "":
		return FirstRandom, nil
	case "human", "player":
		return FirstHuman, nil
	case "computer", "ai":
		return FirstComputer, nil
	}
	return 0, fmt.Errorf("unknown first mover %q", s)
}

// Settings configures a session.
type Settings struct {
	Difficulty layout.Difficulty
	Strategy   ai.Kind
	Depth      int
	Tuning     ai.Tuning
	RandomTies bool
	FirstMover FirstMover
	// StalemateByScore decides a race where both boards are stuck by score.
	// Without it the outcome is Stuck.
	StalemateByScore bool
	// Seed for the deal, turn order and AI picks. Zero draws a fresh seed.
	Seed int64
}

// DefaultSettings is a hard board against the adversarial computer.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:       layout.Hard,
		Strategy:         ai.KindAdversarial,
		Depth:            ai.DefaultDepth,
		Tuning:           ai.DefaultTuning,
		FirstMover:       FirstRandom,
		StalemateByScore: true,
	}
}

// Dealer binds faces to n layout slots.
type Dealer func(n int, rng *rand.Rand) (tile.Binding, error)

// Option customizes a session beyond its Settings.
type Option func(*Session)

// WithListener receives session events.
func WithListener(l Listener) Option {
	return func(s *Session) {
		s.listener = l
	}
}

// WithLayout plays on l instead of the generated layout for the difficulty.
func WithLayout(l *layout.Layout) Option {
	return func(s *Session) {
		s.layout = l
	}
}

// WithStrategy replaces the computer strategy built from Settings.
func WithStrategy(st ai.Strategy) Option {
	return func(s *Session) {
		s.strategy = st
	}
}

// WithDealer replaces the random deal.
func WithDealer(d Dealer) Option {
	return func(s *Session) {
		s.dealer = d
	}
}
