package game

import (
	"testing"

	"termjong/ai"
)

func TestNewSeed(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		s := NewSeed()
		if s <= 0 {
			t.Fatalf("NewSeed() = %d, want > 0", s)
		}
		seen[s] = true
	}
	if len(seen) < 99 {
		t.Fatalf("only %d distinct seeds out of 100", len(seen))
	}
}

func TestZeroSeedIsReplaced(t *testing.T) {
	settings := DefaultSettings()
	s, err := NewSession(settings)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.Seed() == 0 {
		t.Fatal("session kept a zero seed")
	}
	if s.Deal() != 1 {
		t.Fatalf("Deal() = %d after the first deal", s.Deal())
	}
	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Deal() != 2 {
		t.Fatalf("Deal() = %d after a restart", s.Deal())
	}
}

func TestHintsKeepSeededRaceReproducible(t *testing.T) {
	settings := DefaultSettings()
	settings.Strategy = ai.KindRandom
	settings.FirstMover = FirstComputer
	settings.Seed = 99

	plain, err := NewSession(settings)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	hinted, err := NewSession(settings)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	for round := 0; round < 6; round++ {
		for i := 0; i < 5; i++ {
			hinted.Hint()
		}
		want, ok := plain.ComputerMove()
		if !ok {
			return
		}
		got, _ := hinted.ComputerMove()
		if got != want {
			t.Fatalf("round %d: computer played %v after hints, %v without", round, got.Move, want.Move)
		}

		moves := plain.Board(Human).Moves()
		if len(moves) == 0 {
			return
		}
		for _, s := range []*Session{plain, hinted} {
			if _, err := s.AttemptMatch(Human, moves[0].A, moves[0].B); err != nil {
				t.Fatalf("round %d: AttemptMatch: %v", round, err)
			}
		}
	}
}
