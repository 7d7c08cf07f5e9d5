package game

import "fmt"

// Player identifies one of the two boards.
type Player int

const (
	Human Player = iota
	Computer
)

// Players lists both sides in board order.
var Players = []Player{Human, Computer}

func (p Player) String() string {
	switch p {
	case Human:
		return "human"
	case Computer:
		return "computer"
	}
	return fmt.Sprintf("player(%d)", int(p))
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Human {
		return Computer
	}
	return Human
}

// Status is the state of one board. Every status other than Active is terminal.
type Status int

const (
	Active Status = iota
	Stuck
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Stuck:
		return "stuck"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Terminal reports whether the board can no longer move.
func (s Status) Terminal() bool {
	return s != Active
}

// Reason explains why a board became terminal.
type Reason int

const (
	ReasonCleared Reason = iota
	ReasonNoMoves
	ReasonOpponentCleared
)

func (r Reason) String() string {
	switch r {
	case ReasonCleared:
		return "cleared"
	case ReasonNoMoves:
		return "no moves"
	case ReasonOpponentCleared:
		return "opponent cleared"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Outcome is the result of a race from the human player's side.
type Outcome int

const (
	OutcomeWin Outcome = iota
	OutcomeLose
	OutcomeTie
	OutcomeStuck
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomeTie:
		return "tie"
	case OutcomeStuck:
		return "stuck"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Listener receives session events. Callbacks run synchronously inside the
// session call that caused them and must not call back into the session.
type Listener interface {
	OnMatch(t Turn)
	OnTerminal(p Player, r Reason)
	OnBothTerminal(o Outcome)
}

// NopListener ignores every event. Embed it to implement part of Listener.
type NopListener struct{}

func (NopListener) OnMatch(Turn) {}
func (NopListener) OnTerminal(Player, Reason) {}
func (NopListener) OnBothTerminal(Outcome) {}
