package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"

	"termjong/game"
)

var outcomeColors = map[game.Outcome]string{
	game.OutcomeWin:   "2",
	game.OutcomeLose:  "1",
	game.OutcomeTie:   "3",
	game.OutcomeStuck: "8",
}

// Write prints the report to w, colored for the terminal w is attached to.
func (r *Report) Write(w io.Writer) error {
	out := termenv.NewOutput(w)
	cfg := r.Config

	title := out.String(fmt.Sprintf("%s vs %s on %s", cfg.Challenger, cfg.Settings.Strategy, cfg.Settings.Difficulty)).Bold()
	if _, err := fmt.Fprintf(w, "%s  (%d races, %s)\n", title, len(r.Results), r.Took.Round(time.Millisecond)); err != nil {
		return err
	}

	tally := r.Tally()
	for _, o := range []game.Outcome{game.OutcomeWin, game.OutcomeLose, game.OutcomeTie, game.OutcomeStuck} {
		label := out.String(fmt.Sprintf("%-6s", o)).Foreground(out.Color(outcomeColors[o]))
		pct := 0.0
		if len(r.Results) > 0 {
			pct = 100 * float64(tally[o]) / float64(len(r.Results))
		}
		if _, err := fmt.Fprintf(w, "  %s %4d  %5.1f%%\n", label, tally[o], pct); err != nil {
			return err
		}
	}

	score, oppScore, left, oppLeft := r.Averages()
	_, err := fmt.Fprintf(w, "  avg score %.1f vs %.1f, avg tiles left %.1f vs %.1f\n", score, oppScore, left, oppLeft)
	return err
}
