package gameset

import (
	"time"

	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/formation"
	"github.com/futsalboard/server/internal/roster"
)

// ScoreFor re-derives one side's score from the full event log. Goals count
// for their own side; own goals count for the opposite side. Never cached:
// edits and deletes of past events are always reflected.
func (s *GameSet) ScoreFor(side roster.Side) int {
	n := 0
	for _, ev := range s.Events {
		switch ev.Type {
		case EventGoal:
			if ev.Team == side {
				n++
			}
		case EventOwnGoal:
			if ev.Team == side.Opposite() {
				n++
			}
		}
	}
	return n
}

func (s *GameSet) Score() Score {
	return Score{TeamA: s.ScoreFor(roster.SideA), TeamB: s.ScoreFor(roster.SideB)}
}

// Start moves scheduled → active and zeroes the clock. With requireFormation
// the set must hold a fully confirmed formation first.
func (s *GameSet) Start(requireFormation bool) error {
	if s.State != StateScheduled {
		return domain.ErrValidation("set %s cannot start from state %s", s.Name, s.State)
	}
	if requireFormation {
		if s.Formation == nil {
			return domain.ErrValidation("set %s has no formation assigned", s.Name)
		}
		if err := formation.Confirm(*s.Formation); err != nil {
			return err
		}
	}
	s.Elapsed = 0
	s.State = StateActive
	return nil
}

func (s *GameSet) Pause() error {
	if s.State != StateActive {
		return domain.ErrValidation("set %s is not active", s.Name)
	}
	s.State = StatePaused
	return nil
}

func (s *GameSet) Resume() error {
	if s.State != StatePaused {
		return domain.ErrValidation("set %s is not paused", s.Name)
	}
	s.State = StateActive
	return nil
}

// Complete freezes the derived score and the completion timestamp.
// Completing an already-completed set is a no-op returning the frozen score.
func (s *GameSet) Complete(now time.Time) (Score, error) {
	if s.State == StateCompleted {
		return *s.FinalScore, nil
	}
	if s.State == StateScheduled {
		return Score{}, domain.ErrValidation("set %s has not started", s.Name)
	}
	sc := s.Score()
	s.FinalScore = &sc
	s.CompletedAt = &now
	s.State = StateCompleted
	return sc, nil
}

// Tick advances the clock by one second while active and auto-completes the
// set when the scheduled duration is reached. Ticks in any other state are
// no-ops, so a stray timer firing after pause or completion cannot advance
// anything. Returns true when this tick completed the set.
func (s *GameSet) Tick(now time.Time) bool {
	if s.State != StateActive {
		return false
	}
	s.Elapsed++
	if s.Elapsed >= s.Duration*60 {
		_, _ = s.Complete(now)
		return true
	}
	return false
}

// refreshFinal re-derives the frozen score after a post-completion
// correction. The completion timestamp stays fixed.
func (s *GameSet) refreshFinal() {
	if s.State == StateCompleted {
		sc := s.Score()
		s.FinalScore = &sc
	}
}
