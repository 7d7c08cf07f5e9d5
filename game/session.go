// Package game runs a race between a human board and a computer board dealt
// with the same faces: turn order, legality of human matches, scoring and the
// end of the race.
package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	"termjong/ai"
	"termjong/board"
	"termjong/layout"
	"termjong/tile"
)

// ErrIllegalMatch is returned when a requested pair cannot be removed. The
// session state, selection included, is left unchanged.
var ErrIllegalMatch = errors.New("illegal match")

// Turn records one removed pair.
type Turn struct {
	Number    int
	Player    Player
	Move      board.Move
	Unlocked  int
	Points    int
	Remaining int
}

// ClickResult tells the caller what a click on the human board did.
type ClickResult int

const (
	ClickIgnored ClickResult = iota
	ClickSelected
	ClickDeselected
	ClickMatched
	ClickRejected
)

func (c ClickResult) String() string {
	switch c {
	case ClickIgnored:
		return "ignored"
	case ClickSelected:
		return "selected"
	case ClickDeselected:
		return "deselected"
	case ClickMatched:
		return "matched"
	case ClickRejected:
		return "rejected"
	}
	return fmt.Sprintf("click(%d)", int(c))
}

// Session holds all state of one race. It is not safe for concurrent use.
type Session struct {
	settings Settings
	rng      *rand.Rand
	hints    *rand.Rand
	seed     int64

	layout   *layout.Layout
	faces    tile.Binding
	dealer   Dealer
	strategy ai.Strategy
	listener Listener

	boards [2]*board.Board
	status [2]Status
	scores [2]int
	turn   Player

	selected    layout.Coord
	hasSelected bool

	history []Turn
	over    bool
	outcome Outcome
	deals   int
}

// NewSession deals a new race. The layout comes from settings.Difficulty
// unless WithLayout is given.
func NewSession(settings Settings, opts ...Option) (*Session, error) {
	s := &Session{
		settings: settings,
		dealer:   tile.Deal,
		listener: NopListener{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.seed = settings.Seed
	if s.seed == 0 {
		s.seed = NewSeed()
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	s.hints = rand.New(rand.NewSource(s.seed ^ hintSalt))

	if s.layout == nil {
		l, err := layout.Generate(settings.Difficulty)
		if err != nil {
			return nil, err
		}
		s.layout = l
	}
	if s.strategy == nil {
		st, err := s.buildStrategy(settings.Strategy)
		if err != nil {
			return nil, err
		}
		s.strategy = st
	}

	if err := s.deal(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) buildStrategy(kind ai.Kind) (ai.Strategy, error) {
	return ai.New(kind,
		ai.WithRand(s.rng),
		ai.WithDepth(s.settings.Depth),
		ai.WithTuning(s.settings.Tuning),
		ai.WithRandomTies(s.settings.RandomTies),
	)
}

// deal binds new faces, rebuilds both boards and resets scores and turn order.
func (s *Session) deal() error {
	faces, err := s.dealer(s.layout.Len(), s.rng)
	if err != nil {
		return fmt.Errorf("deal %s: %w", s.layout.Name(), err)
	}
	var boards [2]*board.Board
	for _, p := range Players {
		b, err := board.New(s.layout, faces)
		if err != nil {
			return err
		}
		boards[p] = b
	}

	s.faces = faces
	s.boards = boards
	s.deals++
	s.status = [2]Status{Active, Active}
	s.scores = [2]int{}
	s.history = nil
	s.over = false
	s.outcome = OutcomeStuck
	s.clearSelection()

	switch s.settings.FirstMover {
	case FirstHuman:
		s.turn = Human
	case FirstComputer:
		s.turn = Computer
	default:
		s.turn = Players[s.rng.Intn(len(Players))]
	}

	log.Info().
		Str("layout", s.layout.Name()).
		Int("tiles", s.layout.Len()).
		Str("strategy", s.strategy.Name()).
		Int64("seed", s.seed).
		Stringer("first", s.turn).
		Msg("new race")

	for _, p := range Players {
		if !s.boards[p].HasMoves() {
			s.markTerminal(p, Stuck, ReasonNoMoves)
		}
	}
	s.finishIfDone()
	s.advance(s.turn.Opponent())
	return nil
}

// Restart deals again on the same layout with the same strategy.
func (s *Session) Restart() error {
	return s.deal()
}

// SetDifficulty switches to the generated layout for d and deals again.
func (s *Session) SetDifficulty(d layout.Difficulty) error {
	l, err := layout.Generate(d)
	if err != nil {
		return err
	}
	s.settings.Difficulty = d
	s.layout = l
	return s.deal()
}

// SetStrategy changes the computer strategy. The race continues.
func (s *Session) SetStrategy(kind ai.Kind) error {
	st, err := s.buildStrategy(kind)
	if err != nil {
		return err
	}
	s.settings.Strategy = kind
	s.strategy = st
	log.Info().Str("strategy", st.Name()).Msg("strategy changed")
	return nil
}

// Click applies a click on the human board at c. Clicking an open tile selects
// it, clicking the selected tile clears the selection and clicking a second
// tile attempts the match. A rejected match keeps the first selection.
func (s *Session) Click(c layout.Coord) (ClickResult, *Turn) {
	if s.over || s.turn != Human || s.status[Human].Terminal() {
		return ClickIgnored, nil
	}
	if !s.boards[Human].IsOpen(c) {
		return ClickIgnored, nil
	}
	if !s.hasSelected {
		s.selected, s.hasSelected = c, true
		return ClickSelected, nil
	}
	if s.selected == c {
		s.clearSelection()
		return ClickDeselected, nil
	}

	t, err := s.AttemptMatch(Human, s.selected, c)
	if err != nil {
		log.Debug().Err(err).Msg("click rejected")
		return ClickRejected, nil
	}
	return ClickMatched, &t
}

// AttemptMatch removes the pair a, b from p's board if it is p's turn and the
// tiles are open and matching. It fails with ErrIllegalMatch otherwise.
func (s *Session) AttemptMatch(p Player, a, b layout.Coord) (Turn, error) {
	switch {
	case s.over:
		return Turn{}, fmt.Errorf("race is over: %w", ErrIllegalMatch)
	case s.status[p].Terminal():
		return Turn{}, fmt.Errorf("%s board is %s: %w", p, s.status[p], ErrIllegalMatch)
	case s.turn != p:
		return Turn{}, fmt.Errorf("not the %s's turn: %w", p, ErrIllegalMatch)
	case !s.boards[p].CanMatch(a, b):
		return Turn{}, fmt.Errorf("%s and %s: %w", a, b, ErrIllegalMatch)
	}
	return s.apply(p, board.Move{A: a, B: b})
}

// ComputerMove plays one computer move if it is the computer's turn. The
// boolean is false when nothing was played.
func (s *Session) ComputerMove() (Turn, bool) {
	if s.over || s.turn != Computer || s.status[Computer].Terminal() {
		return Turn{}, false
	}

	m, ok := s.strategy.SelectMove(s.boards[Computer], s.boards[Human].Clone())
	if !ok {
		s.markTerminal(Computer, Stuck, ReasonNoMoves)
		s.finishIfDone()
		s.advance(Computer)
		return Turn{}, false
	}

	t, err := s.apply(Computer, m)
	if err != nil {
		log.Error().Err(err).Stringer("move", m).Msg("computer move rejected")
		return Turn{}, false
	}
	return t, true
}

// apply removes m from p's board, scores it and hands over the turn.
func (s *Session) apply(p Player, m board.Move) (Turn, error) {
	b := s.boards[p]
	unlocked := b.Unlocked(m)
	if err := b.RemovePair(m.A, m.B); err != nil {
		log.Error().Err(err).Stringer("player", p).Msg("remove pair")
		return Turn{}, err
	}

	points := Points(unlocked)
	s.scores[p] += points
	if p == Human {
		s.clearSelection()
	}

	t := Turn{
		Number:    len(s.history) + 1,
		Player:    p,
		Move:      m,
		Unlocked:  unlocked,
		Points:    points,
		Remaining: b.Len(),
	}
	s.history = append(s.history, t)

	log.Debug().
		Int("turn", t.Number).
		Stringer("player", p).
		Stringer("move", m).
		Int("unlocked", unlocked).
		Int("points", points).
		Int("remaining", t.Remaining).
		Msg("match")
	s.listener.OnMatch(t)

	switch {
	case b.IsEmpty():
		s.markTerminal(p, Won, ReasonCleared)
		if !s.status[p.Opponent()].Terminal() {
			s.markTerminal(p.Opponent(), Lost, ReasonOpponentCleared)
		} else {
			s.status[p.Opponent()] = Lost
		}
	case !b.HasMoves():
		s.markTerminal(p, Stuck, ReasonNoMoves)
	}
	s.finishIfDone()
	s.advance(p)
	return t, nil
}

// advance passes the turn to the opponent of last if its board can still
// move, otherwise leaves it with last while last can move.
func (s *Session) advance(last Player) {
	if s.over {
		return
	}
	next := last.Opponent()
	switch {
	case !s.status[next].Terminal():
		s.turn = next
	case !s.status[last].Terminal():
		s.turn = last
	}
}

func (s *Session) markTerminal(p Player, st Status, r Reason) {
	s.status[p] = st
	log.Info().Stringer("player", p).Stringer("status", st).Stringer("reason", r).Msg("board finished")
	s.listener.OnTerminal(p, r)
}

// finishIfDone ends the race once both boards are terminal.
func (s *Session) finishIfDone() {
	if s.over || !s.status[Human].Terminal() || !s.status[Computer].Terminal() {
		return
	}
	s.over = true
	s.clearSelection()

	switch {
	case s.status[Human] == Won:
		s.outcome = OutcomeWin
	case s.status[Computer] == Won:
		s.outcome = OutcomeLose
	case !s.settings.StalemateByScore:
		s.outcome = OutcomeStuck
	case s.scores[Human] > s.scores[Computer]:
		s.outcome = OutcomeWin
	case s.scores[Human] < s.scores[Computer]:
		s.outcome = OutcomeLose
	default:
		s.outcome = OutcomeTie
	}

	log.Info().
		Stringer("outcome", s.outcome).
		Int("human", s.scores[Human]).
		Int("computer", s.scores[Computer]).
		Int("turns", len(s.history)).
		Msg("race over")
	s.listener.OnBothTerminal(s.outcome)
}

func (s *Session) clearSelection() {
	s.selected, s.hasSelected = layout.Coord{}, false
}

// hintSalt separates the hint draws from the deal and the computer's picks.
const hintSalt = 0x5eed

// Hint returns one tile of a random legal pair on the human board.
func (s *Session) Hint() (layout.Coord, bool) {
	moves := s.boards[Human].Moves()
	if len(moves) == 0 {
		return layout.Coord{}, false
	}
	m := moves[s.hints.Intn(len(moves))]
	if s.hints.Intn(2) == 0 {
		return m.A, true
	}
	return m.B, true
}

// FaceAt returns the face of the tile at c on p's board, if present.
func (s *Session) FaceAt(p Player, c layout.Coord) (tile.Face, bool) {
	return s.boards[p].FaceAt(c)
}

// Board returns a copy of p's board.
func (s *Session) Board(p Player) *board.Board {
	return s.boards[p].Clone()
}

// IsOpen reports whether the tile at c on p's board is open.
func (s *Session) IsOpen(p Player, c layout.Coord) bool {
	return s.boards[p].IsOpen(c)
}

// MovesAvailable counts the legal pairs on p's board.
func (s *Session) MovesAvailable(p Player) int {
	return len(s.boards[p].Moves())
}

// Remaining returns the number of tiles left on p's board.
func (s *Session) Remaining(p Player) int {
	return s.boards[p].Len()
}

func (s *Session) Status(p Player) Status {
	return s.status[p]
}

func (s *Session) Score(p Player) int {
	return s.scores[p]
}

// Turn returns the player to move.
func (s *Session) Turn() Player {
	return s.turn
}

// Selection returns the selected tile on the human board.
func (s *Session) Selection() (layout.Coord, bool) {
	return s.selected, s.hasSelected
}

// Over reports whether both boards are terminal.
func (s *Session) Over() bool {
	return s.over
}

// Outcome returns the race result once it is over.
func (s *Session) Outcome() (Outcome, bool) {
	return s.outcome, s.over
}

// History returns the pairs removed so far, in order.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) Layout() *layout.Layout {
	return s.layout
}

func (s *Session) Settings() Settings {
	return s.settings
}

func (s *Session) Strategy() ai.Strategy {
	return s.strategy
}

// Deal counts the deals of the session, starting at 1.
func (s *Session) Deal() int {
	return s.deals
}

// Seed returns the seed the session's random source was built from.
func (s *Session) Seed() int64 {
	return s.seed
}
