// Package ai picks the computer's next pair. Every strategy is a pure function
// of the two boards: simulations run on clones and the live boards are never
// touched.
package ai

import (
	"fmt"
	"math/rand"
	"strings"

	"termjong/board"
)

// Strategy selects a move for the board own. opp is the opponent's board and
// may be nil for strategies that ignore it. The boolean is false when own has
// no legal pair; that is not an error.
type Strategy interface {
	Name() string
	SelectMove(own, opp *board.Board) (board.Move, bool)
}

// Kind names a strategy.
type Kind int

const (
	KindRandom Kind = iota
	KindGreedy
	KindAdversarial
)

// Kinds lists the strategies from weakest to strongest.
var Kinds = []Kind{KindRandom, KindGreedy, KindAdversarial}

func (k Kind) String() string {
	switch k {
	case KindRandom:
		return "random"
	case KindGreedy:
		return "greedy"
	case KindAdversarial:
		return "adversarial"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts a strategy name or the difficulty label it is shown under
// (easy, medium, hard).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "easy":
		return KindRandom, nil
	case "greedy", "medium":
		return KindGreedy, nil
	case "adversarial", "hard", "lookahead":
		return KindAdversarial, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

// Options configures New.
type Options struct {
	Rand       *rand.Rand
	Depth      int
	Tuning     Tuning
	RandomTies bool
}

type Option func(*Options)

// WithRand sets the random source used for picks and tie-breaks.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		o.Rand = r
	}
}

// WithDepth sets the lookahead depth of the adversarial strategy.
func WithDepth(depth int) Option {
	return func(o *Options) {
		o.Depth = depth
	}
}

// WithTuning replaces the adversarial weights.
func WithTuning(t Tuning) Option {
	return func(o *Options) {
		o.Tuning = t
	}
}

// WithRandomTies makes the greedy strategy break ties at random.
func WithRandomTies(on bool) Option {
	return func(o *Options) {
		o.RandomTies = on
	}
}

// DefaultDepth is the adversarial lookahead in plies.
const DefaultDepth = 2

// New builds the strategy named by kind.
func New(kind Kind, opts ...Option) (Strategy, error) {
	o := Options{Depth: DefaultDepth, Tuning: DefaultTuning}
	for _, opt := range opts {
		opt(&o)
	}

	switch kind {
	case KindRandom:
		return &Random{Rand: o.Rand}, nil
	case KindGreedy:
		return &Greedy{Rand: o.Rand, RandomTies: o.RandomTies}, nil
	case KindAdversarial:
		if o.Depth < 0 {
			return nil, fmt.Errorf("adversarial depth %d: must not be negative", o.Depth)
		}
		return &Adversarial{Depth: o.Depth, Tuning: o.Tuning, Rand: o.Rand}, nil
	}
	return nil, fmt.Errorf("unknown strategy kind %d", int(kind))
}

// intn draws from r, or from the package source when r is nil.
func intn(r *rand.Rand, n int) int {
	if r == nil {
		return rand.Intn(n)
	}
	return r.Intn(n)
}
