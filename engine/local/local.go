// Package local runs a race in-process. The session itself is synchronous;
// this package serializes human clicks with the computer's moves and inserts
// the pause before each computer move.
package local

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"termjong/ai"
	"termjong/board"
	"termjong/engine"
	"termjong/game"
	"termjong/layout"
	"termjong/types"
)

// Pacer delays the computer's move so the human can follow it.
type Pacer interface {
	Pause(d time.Duration)
}

// SleepPacer pauses with time.Sleep.
type SleepPacer struct{}

func (SleepPacer) Pause(d time.Duration) {
	time.Sleep(d)
}

type eventKind int

const (
	eventMove eventKind = iota
	eventBoardDone
	eventGameEnd
)

type event struct {
	kind    eventKind
	turn    game.Turn
	player  game.Player
	reason  game.Reason
	outcome game.Outcome
}

// queue collects session events while the lock is held. They are delivered
// once it is released.
type queue struct {
	events []event
}

func (q *queue) OnMatch(t game.Turn) {
	q.events = append(q.events, event{kind: eventMove, turn: t})
}

func (q *queue) OnTerminal(p game.Player, r game.Reason) {
	q.events = append(q.events, event{kind: eventBoardDone, player: p, reason: r})
}

func (q *queue) OnBothTerminal(o game.Outcome) {
	q.events = append(q.events, event{kind: eventGameEnd, outcome: o})
}

func (q *queue) drain() []event {
	out := q.events
	q.events = nil
	return out
}

// LocalEngine implements engine.RaceEngine on top of a game.Session.
type LocalEngine struct {
	config  engine.GameConfig
	pacer   Pacer
	session *game.Session
	queue   *queue

	lastMove   [2]*board.Move
	thinking   bool
	closed     bool
	generation int

	sessionOpts []game.Option

	moveCallback func(t game.Turn, snap *types.Snapshot)
	doneCallback func(p game.Player, r game.Reason, snap *types.Snapshot)
	endCallback  func(o game.Outcome, snap *types.Snapshot)

	mu sync.Mutex
	wg sync.WaitGroup
}

var _ engine.RaceEngine = (*LocalEngine)(nil)

// NewLocalEngine creates an engine. A nil pacer uses SleepPacer. opts are
// passed to every session the engine creates.
func NewLocalEngine(cfg engine.GameConfig, pacer Pacer, opts ...game.Option) *LocalEngine {
	if pacer == nil {
		pacer = SleepPacer{}
	}
	return &LocalEngine{
		config:      cfg,
		pacer:       pacer,
		queue:       &queue{},
		sessionOpts: opts,
	}
}

// Connect deals the first race.
func (e *LocalEngine) Connect() error {
	opts := append([]game.Option{game.WithListener(e.queue)}, e.sessionOpts...)
	s, err := game.NewSession(e.config.Settings, opts...)
	if err != nil {
		return fmt.Errorf("failed to start race: %w", err)
	}

	e.mu.Lock()
	e.session = s
	e.afterDealLocked()
	events, snap, gen, start := e.flushLocked()
	e.mu.Unlock()

	e.dispatch(events, snap)
	if start {
		e.startComputer(gen)
	}
	return nil
}

// GetSnapshot returns a copy of the current race.
func (e *LocalEngine) GetSnapshot() *types.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Click forwards a click on the human board. It is ignored while the computer
// is moving.
func (e *LocalEngine) Click(c layout.Coord) game.ClickResult {
	e.mu.Lock()
	if e.closed || e.thinking {
		e.mu.Unlock()
		return game.ClickIgnored
	}

	res, turn := e.session.Click(c)
	if turn != nil {
		m := turn.Move
		e.lastMove[game.Human] = &m
	}
	events, snap, gen, start := e.flushLocked()
	e.mu.Unlock()

	log.Debug().Stringer("coord", c).Stringer("result", res).Msg("click")

	// Notify callbacks (outside lock to prevent deadlock)
	e.dispatch(events, snap)
	if start {
		e.startComputer(gen)
	}
	return res
}

// Hint returns one tile of a legal pair on the human board.
func (e *LocalEngine) Hint() (layout.Coord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.thinking || e.session.Over() {
		return layout.Coord{}, false
	}
	return e.session.Hint()
}

// IsMyTurn returns true if the human may click.
func (e *LocalEngine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.thinking && !e.session.Over() && e.session.Turn() == game.Human
}

// Restart deals again on the current layout.
func (e *LocalEngine) Restart() error {
	return e.redeal(func(s *game.Session) error { return s.Restart() })
}

// SetDifficulty switches layout and deals again.
func (e *LocalEngine) SetDifficulty(d layout.Difficulty) error {
	return e.redeal(func(s *game.Session) error { return s.SetDifficulty(d) })
}

func (e *LocalEngine) redeal(fn func(s *game.Session) error) error {
	e.mu.Lock()
	e.generation++
	e.thinking = false
	e.queue.drain()
	if err := fn(e.session); err != nil {
		e.mu.Unlock()
		return err
	}
	e.afterDealLocked()
	events, snap, gen, start := e.flushLocked()
	e.mu.Unlock()

	e.dispatch(events, snap)
	if start {
		e.startComputer(gen)
	}
	return nil
}

// SetStrategy swaps the computer strategy. A move already being computed
// finishes with the old strategy.
func (e *LocalEngine) SetStrategy(kind ai.Kind) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.SetStrategy(kind)
}

func (e *LocalEngine) afterDealLocked() {
	e.lastMove = [2]*board.Move{}
}

// flushLocked takes the pending events and a snapshot, and decides whether
// the computer should start moving. A start is claimed for the current
// generation, which is returned with it. Must be called while holding the lock.
func (e *LocalEngine) flushLocked() ([]event, *types.Snapshot, int, bool) {
	start := false
	if !e.thinking && !e.closed && !e.session.Over() && e.session.Turn() == game.Computer {
		e.thinking = true
		e.wg.Add(1)
		start = true
	}
	return e.queue.drain(), e.snapshotLocked(), e.generation, start
}

func (e *LocalEngine) snapshotLocked() *types.Snapshot {
	return types.FromSession(e.session, e.lastMove, e.thinking)
}

// startComputer runs the loop claimed by flushLocked for generation gen.
func (e *LocalEngine) startComputer(gen int) {
	go e.triggerComputerMoves(gen)
}

// triggerComputerMoves plays computer moves until the turn passes back to the
// human or the race ends. A restart bumps the generation, which abandons the loop.
func (e *LocalEngine) triggerComputerMoves(gen int) {
	defer e.wg.Done()
	for {
		e.pacer.Pause(e.config.AIDelay)

		e.mu.Lock()
		if e.closed || gen != e.generation {
			e.mu.Unlock()
			return
		}

		started := time.Now()
		turn, ok := e.session.ComputerMove()
		if ok {
			m := turn.Move
			e.lastMove[game.Computer] = &m
			log.Debug().Stringer("move", m).Dur("took", time.Since(started)).Msg("computer moved")
		}
		again := !e.session.Over() && e.session.Turn() == game.Computer && ok
		e.thinking = again
		events, snap := e.queue.drain(), e.snapshotLocked()
		e.mu.Unlock()

		// Notify callbacks (outside lock)
		e.dispatch(events, snap)
		if !again {
			return
		}
	}
}

func (e *LocalEngine) dispatch(events []event, snap *types.Snapshot) {
	for _, ev := range events {
		switch ev.kind {
		case eventMove:
			if e.moveCallback != nil {
				e.moveCallback(ev.turn, snap)
			}
		case eventBoardDone:
			if e.doneCallback != nil {
				e.doneCallback(ev.player, ev.reason, snap)
			}
		case eventGameEnd:
			if e.endCallback != nil {
				e.endCallback(ev.outcome, snap)
			}
		}
	}
}

// OnMove registers a callback for every removed pair.
func (e *LocalEngine) OnMove(callback func(t game.Turn, snap *types.Snapshot)) {
	e.moveCallback = callback
}

// OnBoardDone registers a callback for a board becoming terminal.
func (e *LocalEngine) OnBoardDone(callback func(p game.Player, r game.Reason, snap *types.Snapshot)) {
	e.doneCallback = callback
}

// OnGameEnd registers a callback for when the race ends.
func (e *LocalEngine) OnGameEnd(callback func(o game.Outcome, snap *types.Snapshot)) {
	e.endCallback = callback
}

// Wait blocks until no computer move is pending.
func (e *LocalEngine) Wait() {
	e.wg.Wait()
}

// Close abandons any pending computer move and waits for it to stop.
func (e *LocalEngine) Close() {
	e.mu.Lock()
	e.closed = true
	e.generation++
	e.mu.Unlock()
	e.wg.Wait()
}
