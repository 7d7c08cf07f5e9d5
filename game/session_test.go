package game

import (
	"errors"
	"math/rand"
	"testing"

	"termjong/ai"
	"termjong/board"
	"termjong/layout"
	"termjong/tile"
)

type recorder struct {
	matches   []Turn
	terminals map[Player]Reason
	outcomes  []Outcome
}

func newRecorder() *recorder {
	return &recorder{terminals: make(map[Player]Reason)}
}

func (r *recorder) OnMatch(t Turn) {
	r.matches = append(r.matches, t)
}

func (r *recorder) OnTerminal(p Player, reason Reason) {
	r.terminals[p] = reason
}

func (r *recorder) OnBothTerminal(o Outcome) {
	r.outcomes = append(r.outcomes, o)
}

func testSettings(d layout.Difficulty, kind ai.Kind, seed int64) Settings {
	s := DefaultSettings()
	s.Difficulty = d
	s.Strategy = kind
	s.FirstMover = FirstHuman
	s.Seed = seed
	return s
}

// fixedDealer always deals faces in the given order.
func fixedDealer(faces ...tile.Face) Dealer {
	return func(n int, _ *rand.Rand) (tile.Binding, error) {
		if n != len(faces) {
			return nil, tile.ErrDeckSize
		}
		return append(tile.Binding(nil), faces...), nil
	}
}

func customLayout(t *testing.T, coords ...layout.Coord) *layout.Layout {
	t.Helper()
	l, err := layout.New("custom", coords, nil)
	if err != nil {
		t.Fatalf("layout.New: %v", err)
	}
	return l
}

// playOut drives both sides with strategy-chosen moves until the race ends.
func playOut(t *testing.T, s *Session, human ai.Strategy) int {
	t.Helper()
	steps := 0
	limit := s.Layout().Len() + 2
	for !s.Over() {
		if steps > limit {
			t.Fatalf("race did not end after %d steps", steps)
		}
		steps++
		if s.Turn() == Computer {
			if _, ok := s.ComputerMove(); !ok && !s.Over() && s.Turn() == Computer {
				t.Fatal("computer to move but played nothing")
			}
			continue
		}
		m, ok := human.SelectMove(s.Board(Human), s.Board(Computer))
		if !ok {
			t.Fatalf("human to move with status %s but no move", s.Status(Human))
		}
		if _, err := s.AttemptMatch(Human, m.A, m.B); err != nil {
			t.Fatalf("AttemptMatch(%v): %v", m, err)
		}
	}
	return steps
}

func TestNewSessionDealsSharedFaces(t *testing.T) {
	for _, d := range layout.Difficulties {
		t.Run(d.String(), func(t *testing.T) {
			s, err := NewSession(testSettings(d, ai.KindGreedy, 3))
			if err != nil {
				t.Fatalf("NewSession: %v", err)
			}
			if s.Remaining(Human) != s.Layout().Len() || s.Remaining(Computer) != s.Layout().Len() {
				t.Fatal("boards should start full")
			}
			for _, c := range s.Layout().Coords() {
				fh, _ := s.FaceAt(Human, c)
				fc, _ := s.FaceAt(Computer, c)
				if fh != fc {
					t.Fatalf("face at %v differs between boards: %v vs %v", c, fh, fc)
				}
			}
			if s.Score(Human) != 0 || s.Score(Computer) != 0 {
				t.Fatal("scores should start at zero")
			}
		})
	}
}

func TestNewSessionBadDifficulty(t *testing.T) {
	if _, err := NewSession(testSettings(layout.Difficulty(7), ai.KindRandom, 1)); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestClickSelectionStateMachine(t *testing.T) {
	rec := newRecorder()
	s, err := NewSession(testSettings(layout.Hard, ai.KindGreedy, 5), WithListener(rec))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	moves := s.Board(Human).Moves()
	if len(moves) == 0 {
		t.Skip("deal has no opening pair")
	}
	m := moves[0]

	if res, _ := s.Click(layout.At(6, 3, 3)); res != ClickIgnored {
		t.Fatalf("click on a closed tile = %s, want ignored", res)
	}
	if res, _ := s.Click(m.A); res != ClickSelected {
		t.Fatalf("first click = %s, want selected", res)
	}
	if res, _ := s.Click(m.A); res != ClickDeselected {
		t.Fatalf("second click on the same tile = %s, want deselected", res)
	}
	if _, ok := s.Selection(); ok {
		t.Fatal("selection should be cleared")
	}

	s.Click(m.A)
	unlocked := s.Board(Human).Unlocked(m)
	res, turn := s.Click(m.B)
	if res != ClickMatched || turn == nil {
		t.Fatalf("matching click = %s, want matched", res)
	}
	if turn.Points != Points(unlocked) || s.Score(Human) != Points(unlocked) {
		t.Fatalf("points = %d, score = %d, want %d", turn.Points, s.Score(Human), Points(unlocked))
	}
	if _, ok := s.Selection(); ok {
		t.Fatal("selection should be cleared after a match")
	}
	if s.Remaining(Human) != s.Layout().Len()-2 {
		t.Fatalf("Remaining = %d", s.Remaining(Human))
	}
	if len(rec.matches) != 1 {
		t.Fatalf("OnMatch called %d times", len(rec.matches))
	}

	if s.Status(Computer) == Active && s.Turn() != Computer {
		t.Fatal("turn should pass to the computer")
	}
	if res, _ := s.Click(m.A); res != ClickIgnored {
		t.Fatalf("click during the computer's turn = %s, want ignored", res)
	}
}

func TestClickRejectedKeepsSelection(t *testing.T) {
	l := customLayout(t, layout.At(0, 0, 0), layout.At(3, 0, 0), layout.At(6, 0, 0), layout.At(9, 0, 0))
	dot, bamboo := tile.Face{Category: tile.Dots, Rank: 1}, tile.Face{Category: tile.Bamboo, Rank: 1}
	s, err := NewSession(testSettings(layout.Easy, ai.KindGreedy, 1),
		WithLayout(l), WithDealer(fixedDealer(dot, bamboo, dot, bamboo)))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	s.Click(layout.At(0, 0, 0))
	if res, _ := s.Click(layout.At(3, 0, 0)); res != ClickRejected {
		t.Fatalf("mismatched click = %s, want rejected", res)
	}
	if c, ok := s.Selection(); !ok || c != layout.At(0, 0, 0) {
		t.Fatalf("selection = %v, %v; want the first tile", c, ok)
	}
	if s.Remaining(Human) != 4 {
		t.Fatal("rejected match changed the board")
	}
}

func TestAttemptMatchErrors(t *testing.T) {
	s, err := NewSession(testSettings(layout.Medium, ai.KindGreedy, 9))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	moves := s.Board(Computer).Moves()
	if len(moves) == 0 {
		t.Skip("deal has no opening pair")
	}
	if _, err := s.AttemptMatch(Computer, moves[0].A, moves[0].B); !errors.Is(err, ErrIllegalMatch) {
		t.Fatalf("out-of-turn match error = %v, want ErrIllegalMatch", err)
	}
	if _, err := s.AttemptMatch(Human, moves[0].A, moves[0].A); !errors.Is(err, ErrIllegalMatch) {
		t.Fatalf("same-tile match error = %v, want ErrIllegalMatch", err)
	}
	if _, ok := s.ComputerMove(); ok {
		t.Fatal("ComputerMove played on the human's turn")
	}
}

func TestClearingBoardWinsRace(t *testing.T) {
	tests := []struct {
		first   FirstMover
		outcome Outcome
		winner  Player
	}{
		{FirstHuman, OutcomeWin, Human},
		{FirstComputer, OutcomeLose, Computer},
	}
	for _, tt := range tests {
		t.Run(tt.first.String(), func(t *testing.T) {
			rec := newRecorder()
			face := tile.Face{Category: tile.Winds, Rank: 2}
			settings := testSettings(layout.Easy, ai.KindGreedy, 1)
			settings.FirstMover = tt.first
			s, err := NewSession(settings,
				WithLayout(customLayout(t, layout.At(0, 0, 0), layout.At(3, 0, 0))),
				WithDealer(fixedDealer(face, face)),
				WithListener(rec))
			if err != nil {
				t.Fatalf("NewSession: %v", err)
			}

			if tt.winner == Human {
				if _, err := s.AttemptMatch(Human, layout.At(0, 0, 0), layout.At(3, 0, 0)); err != nil {
					t.Fatalf("AttemptMatch: %v", err)
				}
			} else if _, ok := s.ComputerMove(); !ok {
				t.Fatal("ComputerMove played nothing")
			}

			if s.Status(tt.winner) != Won || s.Status(tt.winner.Opponent()) != Lost {
				t.Fatalf("statuses = %s/%s", s.Status(tt.winner), s.Status(tt.winner.Opponent()))
			}
			o, over := s.Outcome()
			if !over || o != tt.outcome {
				t.Fatalf("Outcome() = %s, %v; want %s", o, over, tt.outcome)
			}
			if rec.terminals[tt.winner] != ReasonCleared || rec.terminals[tt.winner.Opponent()] != ReasonOpponentCleared {
				t.Fatalf("terminal reasons = %v", rec.terminals)
			}
			if len(rec.outcomes) != 1 {
				t.Fatalf("OnBothTerminal called %d times", len(rec.outcomes))
			}
			if s.Score(tt.winner) != BasePoints {
				t.Fatalf("winner score = %d, want %d", s.Score(tt.winner), BasePoints)
			}
		})
	}
}

func TestBothStuckOutcome(t *testing.T) {
	dot1, dot2 := tile.Face{Category: tile.Dots, Rank: 1}, tile.Face{Category: tile.Dots, Rank: 2}
	for _, byScore := range []bool{true, false} {
		rec := newRecorder()
		settings := testSettings(layout.Easy, ai.KindRandom, 1)
		settings.StalemateByScore = byScore
		s, err := NewSession(settings,
			WithLayout(customLayout(t, layout.At(0, 0, 0), layout.At(3, 0, 0))),
			WithDealer(fixedDealer(dot1, dot2)),
			WithListener(rec))
		if err != nil {
			t.Fatalf("NewSession: %v", err)
		}

		want := OutcomeStuck
		if byScore {
			want = OutcomeTie
		}
		if o, over := s.Outcome(); !over || o != want {
			t.Errorf("byScore=%v: Outcome() = %s, %v; want %s", byScore, o, over, want)
		}
		if s.Status(Human) != Stuck || s.Status(Computer) != Stuck {
			t.Errorf("byScore=%v: statuses = %s/%s", byScore, s.Status(Human), s.Status(Computer))
		}
		if len(rec.terminals) != 2 || len(rec.outcomes) != 1 {
			t.Errorf("byScore=%v: events terminals=%v outcomes=%v", byScore, rec.terminals, rec.outcomes)
		}
	}
}

func TestTerminalHumanLeavesTurnWithComputer(t *testing.T) {
	s, err := NewSession(testSettings(layout.Easy, ai.KindGreedy, 2))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.status[Human] = Stuck
	s.advance(Computer)
	if s.Turn() != Computer {
		t.Fatalf("Turn() = %s, want computer", s.Turn())
	}
	s.advance(Human)
	if s.Turn() != Computer {
		t.Fatalf("Turn() after a stuck human = %s, want computer", s.Turn())
	}
}

func TestTwentyTileRaceEndsClassified(t *testing.T) {
	var coords []layout.Coord
	coords = append(coords, rowOf(0, 5, 0, 0)...)
	coords = append(coords, rowOf(0, 5, 1, 0)...)
	coords = append(coords, rowOf(1, 4, 0, 1)...)
	coords = append(coords, rowOf(1, 4, 1, 1)...)
	l := customLayout(t, coords...)
	if l.Len() != 20 {
		t.Fatalf("layout has %d coordinates, want 20", l.Len())
	}

	// ten distinct faces, each once per pair
	distinct := func(n int, rng *rand.Rand) (tile.Binding, error) {
		var faces tile.Binding
		for i := 0; i < n/2; i++ {
			f := tile.Face{Category: tile.Category(i % 3), Rank: i/3 + 1}
			faces = append(faces, f, f)
		}
		rng.Shuffle(len(faces), func(i, j int) { faces[i], faces[j] = faces[j], faces[i] })
		return faces, nil
	}

	for seed := int64(1); seed <= 10; seed++ {
		s, err := NewSession(testSettings(layout.Easy, ai.KindGreedy, seed), WithLayout(l), WithDealer(distinct))
		if err != nil {
			t.Fatalf("NewSession: %v", err)
		}
		playOut(t, s, &ai.Random{Rand: rand.New(rand.NewSource(seed))})

		for _, p := range Players {
			b := s.Board(p)
			switch st := s.Status(p); {
			case b.IsEmpty():
				if st != Won {
					t.Fatalf("seed %d: empty %s board has status %s", seed, p, st)
				}
			case st == Stuck:
				if len(b.Moves()) != 0 {
					t.Fatalf("seed %d: stuck %s board still has moves", seed, p)
				}
			case st == Lost:
				if s.Status(p.Opponent()) != Won {
					t.Fatalf("seed %d: %s lost without the opponent winning", seed, p)
				}
			default:
				t.Fatalf("seed %d: %s board ended %s", seed, p, st)
			}
		}
	}
}

func rowOf(x0, x1 int, y float64, z int) []layout.Coord {
	var out []layout.Coord
	for x := x0; x <= x1; x++ {
		out = append(out, layout.At(float64(x), y, z))
	}
	return out
}

func TestHardRandomRaceTerminates(t *testing.T) {
	rec := newRecorder()
	s, err := NewSession(testSettings(layout.Hard, ai.KindRandom, 77), WithListener(rec))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	steps := playOut(t, s, &ai.Random{Rand: rand.New(rand.NewSource(78))})
	if steps > 144 {
		t.Fatalf("race took %d steps", steps)
	}

	total := 0
	prev := map[Player]int{}
	for _, turn := range s.History() {
		if turn.Points < BasePoints {
			t.Fatalf("turn %d scored %d", turn.Number, turn.Points)
		}
		prev[turn.Player] += turn.Points
		total++
	}
	for _, p := range Players {
		if prev[p] != s.Score(p) {
			t.Fatalf("%s score %d does not add up to %d", p, s.Score(p), prev[p])
		}
		if want := 144 - 2*countTurns(s.History(), p); s.Remaining(p) != want {
			t.Fatalf("%s has %d tiles, want %d", p, s.Remaining(p), want)
		}
	}
	if total != len(rec.matches) || len(rec.outcomes) != 1 {
		t.Fatalf("events: %d matches for %d turns, %d outcomes", len(rec.matches), total, len(rec.outcomes))
	}
}

func countTurns(history []Turn, p Player) int {
	n := 0
	for _, t := range history {
		if t.Player == p {
			n++
		}
	}
	return n
}

func TestRestartAndSetDifficulty(t *testing.T) {
	s, err := NewSession(testSettings(layout.Easy, ai.KindGreedy, 12))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	playOut(t, s, &ai.Greedy{})

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Over() || len(s.History()) != 0 || s.Score(Human) != 0 || s.Remaining(Computer) != 60 {
		t.Fatal("Restart did not reset the race")
	}

	if err := s.SetDifficulty(layout.Medium); err != nil {
		t.Fatalf("SetDifficulty: %v", err)
	}
	if s.Layout().Len() != 114 || s.Remaining(Human) != 114 {
		t.Fatalf("SetDifficulty(medium) gave %d tiles", s.Layout().Len())
	}
	if s.Settings().Difficulty != layout.Medium {
		t.Fatal("settings not updated")
	}
}

func TestSetStrategyKeepsRace(t *testing.T) {
	settings := testSettings(layout.Easy, ai.KindRandom, 4)
	settings.FirstMover = FirstComputer
	s, err := NewSession(settings)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, ok := s.ComputerMove(); !ok {
		t.Skip("computer has no opening pair")
	}
	if err := s.SetStrategy(ai.KindAdversarial); err != nil {
		t.Fatalf("SetStrategy: %v", err)
	}
	if s.Strategy().Name() != "adversarial" || len(s.History()) != 1 {
		t.Fatal("SetStrategy should swap the strategy without restarting")
	}
}

func TestHintIsPartOfLegalMove(t *testing.T) {
	s, err := NewSession(testSettings(layout.Hard, ai.KindGreedy, 31))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	b := s.Board(Human)
	for i := 0; i < 20; i++ {
		c, ok := s.Hint()
		if !ok {
			t.Skip("deal has no opening pair")
		}
		if !inSomeMove(b.Moves(), c) {
			t.Fatalf("hint %v is not part of a legal pair", c)
		}
	}
}

func inSomeMove(moves []board.Move, c layout.Coord) bool {
	for _, m := range moves {
		if m.A == c || m.B == c {
			return true
		}
	}
	return false
}

func TestPoints(t *testing.T) {
	tests := []struct{ unlocked, want int }{
		{0, 10}, {1, 12}, {4, 18}, {-3, 10},
	}
	for _, tt := range tests {
		if got := Points(tt.unlocked); got != tt.want {
			t.Errorf("Points(%d) = %d, want %d", tt.unlocked, got, tt.want)
		}
	}
}

func TestParseFirstMover(t *testing.T) {
	for _, f := range []FirstMover{FirstRandom, FirstHuman, FirstComputer} {
		got, err := ParseFirstMover(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFirstMover(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseFirstMover("nobody"); err == nil {
		t.Error("expected error")
	}
}
