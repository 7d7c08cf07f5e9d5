// Package sim races two computer strategies against each other without a UI.
// Each race owns its session, so races run in parallel.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"termjong/ai"
	"termjong/game"
)

// Config describes a batch of races. Settings.Strategy drives the computer
// board; Challenger drives the board normally played by the human.
type Config struct {
	Races      int
	Workers    int
	Settings   game.Settings
	Challenger ai.Kind
}

// Result is the end of one race, from the challenger's side.
type Result struct {
	Seed            int64
	Outcome         game.Outcome
	Turns           int
	ChallengerScore int
	ComputerScore   int
	ChallengerLeft  int
	ComputerLeft    int
	Took            time.Duration
}

// Report aggregates a batch.
type Report struct {
	Config  Config
	Results []Result
	Took    time.Duration
}

// Run plays cfg.Races races. Seeds are derived from cfg.Settings.Seed, or
// drawn fresh when it is zero.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Races <= 0 {
		return nil, fmt.Errorf("simulate: %d races", cfg.Races)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	base := cfg.Settings.Seed
	if base == 0 {
		base = game.NewSeed()
	}

	started := time.Now()
	results := make([]Result, cfg.Races)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Races; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := race(cfg, base+int64(i))
			if err != nil {
				return fmt.Errorf("race %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Config: cfg, Results: results, Took: time.Since(started)}
	log.Info().
		Int("races", cfg.Races).
		Int("workers", cfg.Workers).
		Dur("took", report.Took).
		Msg("simulation finished")
	return report, nil
}

func race(cfg Config, seed int64) (Result, error) {
	started := time.Now()
	settings := cfg.Settings
	settings.Seed = seed

	s, err := game.NewSession(settings)
	if err != nil {
		return Result{}, err
	}
	challenger, err := ai.New(cfg.Challenger,
		ai.WithRand(rand.New(rand.NewSource(seed^0x5f5f))),
		ai.WithDepth(settings.Depth),
		ai.WithTuning(settings.Tuning),
		ai.WithRandomTies(settings.RandomTies),
	)
	if err != nil {
		return Result{}, err
	}

	limit := 2*s.Layout().Len() + 2
	for step := 0; !s.Over(); step++ {
		if step > limit {
			return Result{}, fmt.Errorf("seed %d: race did not end", seed)
		}
		if s.Turn() == game.Computer {
			s.ComputerMove()
			continue
		}
		m, ok := challenger.SelectMove(s.Board(game.Human), s.Board(game.Computer))
		if !ok {
			return Result{}, fmt.Errorf("seed %d: challenger to move without a pair", seed)
		}
		if _, err := s.AttemptMatch(game.Human, m.A, m.B); err != nil {
			return Result{}, err
		}
	}

	outcome, _ := s.Outcome()
	return Result{
		Seed:            seed,
		Outcome:         outcome,
		Turns:           len(s.History()),
		ChallengerScore: s.Score(game.Human),
		ComputerScore:   s.Score(game.Computer),
		ChallengerLeft:  s.Remaining(game.Human),
		ComputerLeft:    s.Remaining(game.Computer),
		Took:            time.Since(started),
	}, nil
}

// Tally counts outcomes.
func (r *Report) Tally() map[game.Outcome]int {
	out := make(map[game.Outcome]int)
	for _, res := range r.Results {
		out[res.Outcome]++
	}
	return out
}

// Averages returns the mean challenger and computer score and tiles left.
func (r *Report) Averages() (challengerScore, computerScore, challengerLeft, computerLeft float64) {
	if len(r.Results) == 0 {
		return 0, 0, 0, 0
	}
	for _, res := range r.Results {
		challengerScore += float64(res.ChallengerScore)
		computerScore += float64(res.ComputerScore)
		challengerLeft += float64(res.ChallengerLeft)
		computerLeft += float64(res.ComputerLeft)
	}
	n := float64(len(r.Results))
	return challengerScore / n, computerScore / n, challengerLeft / n, computerLeft / n
}
