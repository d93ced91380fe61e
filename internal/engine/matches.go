package engine

import (
	"strings"
	"time"

	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/formation"
	"github.com/futsalboard/server/internal/gameset"
	"github.com/futsalboard/server/internal/match"
	"github.com/futsalboard/server/internal/roster"
)

// ---- Match management ----

func (e *Engine) Matches() []match.Match {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]match.Match, len(e.matches))
	copy(out, e.matches)
	return out
}

// MatchView pairs a match with its rolled-up score and outcome.
type MatchView struct {
	Match   match.Match   `json:"match"`
	Score   gameset.Score `json:"score"`
	Outcome match.Outcome `json:"outcome"`
}

func (e *Engine) Match(id string) (MatchView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, err := e.findMatch(id)
	if err != nil {
		return MatchView{}, err
	}
	return MatchView{Match: *m, Score: m.AggregateScore(), Outcome: m.Outcome()}, nil
}

func (e *Engine) CreateMatch(name, venue, date string) (match.Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, err := match.New(name, venue, date)
	if err != nil {
		return match.Match{}, err
	}
	e.matches = append(e.matches, m)
	e.persist()
	return m, nil
}

func (e *Engine) UpdateMatch(id, name, venue string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	name = strings.TrimSpace(name)
	venue = strings.TrimSpace(venue)
	if name == "" || venue == "" {
		return domain.ErrValidation("match name and venue are required")
	}
	m, err := e.findMatch(id)
	if err != nil {
		return err
	}
	m.Name = name
	m.Venue = venue
	e.persist()
	return nil
}

func (e *Engine) DeleteMatch(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.matches {
		if e.matches[i].ID == id {
			for j := range e.matches[i].Sets {
				e.stopClockLocked(e.matches[i].Sets[j].ID)
			}
			e.matches = append(e.matches[:i], e.matches[i+1:]...)
			e.persist()
			return nil
		}
	}
	return domain.ErrNotFound("match", id)
}

func (e *Engine) DuplicateMatch(id string) (match.Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, err := e.findMatch(id)
	if err != nil {
		return match.Match{}, err
	}
	dup := m.Duplicate()
	e.matches = append(e.matches, dup)
	e.persist()
	return dup, nil
}

func (e *Engine) SetMatchStatus(id string, status match.Status) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !status.Valid() {
		return domain.ErrValidation("unknown match status %q", status)
	}
	m, err := e.findMatch(id)
	if err != nil {
		return err
	}
	m.Status = status
	e.persist()
	return nil
}

// ---- Set setup ----

func (e *Engine) CreateSet(matchID, name string, durationMinutes int, teamAID, teamBID string) (gameset.GameSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, err := e.findMatch(matchID)
	if err != nil {
		return gameset.GameSet{}, err
	}
	teamA, err := e.findTeam(teamAID)
	if err != nil {
		return gameset.GameSet{}, err
	}
	teamB, err := e.findTeam(teamBID)
	if err != nil {
		return gameset.GameSet{}, err
	}
	s, err := gameset.New(name, durationMinutes, *teamA, *teamB)
	if err != nil {
		return gameset.GameSet{}, err
	}
	m.Sets = append(m.Sets, *s)
	e.persist()
	return *s, nil
}

// SetView pairs a set with its live derived score.
type SetView struct {
	Set   gameset.GameSet `json:"set"`
	Score gameset.Score   `json:"score"`
}

func (e *Engine) Set(setID string) (SetView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return SetView{}, err
	}
	return SetView{Set: *s, Score: s.Score()}, nil
}

func (e *Engine) UpdateSet(setID, name string, durationMinutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrValidation("set name is required")
	}
	if durationMinutes <= 0 {
		return domain.ErrValidation("set duration must be positive, got %d", durationMinutes)
	}
	_, s, err := e.findSet(setID)
	if err != nil {
		return err
	}
	if s.State == gameset.StateCompleted {
		return domain.ErrValidation("set %s is completed", s.Name)
	}
	s.Name = name
	s.Duration = durationMinutes
	e.persist()
	return nil
}

func (e *Engine) DeleteSet(setID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for mi := range e.matches {
		sets := e.matches[mi].Sets
		for si := range sets {
			if sets[si].ID == setID {
				e.stopClockLocked(setID)
				e.matches[mi].Sets = append(sets[:si], sets[si+1:]...)
				e.persist()
				return nil
			}
		}
	}
	return domain.ErrNotFound("set", setID)
}

// ---- Formation ----

func (e *Engine) AssignFormation(setID, template string, pickA, pickB []string) (formation.Assignment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return formation.Assignment{}, err
	}
	a, err := formation.Assign(template, s.TeamA, s.TeamB, pickA, pickB)
	if err != nil {
		return formation.Assignment{}, err
	}
	s.Formation = &a
	e.persist()
	return a, nil
}

func (e *Engine) SwapFormationSlot(setID string, side roster.Side, index int, playerID string) (formation.Assignment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return formation.Assignment{}, err
	}
	if s.Formation == nil {
		return formation.Assignment{}, domain.ErrValidation("set %s has no formation assigned", s.Name)
	}
	a, err := formation.Swap(*s.Formation, side, index, playerID, s.Roster(side))
	if err != nil {
		return formation.Assignment{}, err
	}
	s.Formation = &a
	e.persist()
	return a, nil
}

func (e *Engine) ConfirmFormation(setID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return err
	}
	if s.Formation == nil {
		return domain.ErrValidation("set %s has no formation assigned", s.Name)
	}
	return formation.Confirm(*s.Formation)
}

// ---- Set lifecycle ----

func (e *Engine) StartSet(setID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, s, err := e.findSet(setID)
	if err != nil {
		return err
	}
	if err := s.Start(e.requireFormation); err != nil {
		return err
	}
	if m.Status == match.StatusScheduled {
		m.Status = match.StatusOngoing
	}
	e.startClockLocked(setID)
	e.persist()
	return nil
}

func (e *Engine) PauseSet(setID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return err
	}
	if err := s.Pause(); err != nil {
		return err
	}
	e.stopClockLocked(setID)
	e.persist()
	return nil
}

func (e *Engine) ResumeSet(setID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return err
	}
	if err := s.Resume(); err != nil {
		return err
	}
	e.startClockLocked(setID)
	e.persist()
	return nil
}

func (e *Engine) CompleteSet(setID string) (gameset.Score, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return gameset.Score{}, err
	}
	sc, err := s.Complete(time.Now())
	if err != nil {
		return gameset.Score{}, err
	}
	e.stopClockLocked(setID)
	e.persist()
	return sc, nil
}

// ---- Events ----

func (e *Engine) RecordGoal(setID string, side roster.Side, scorerID, assistID string) (gameset.GameEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return gameset.GameEvent{}, err
	}
	ev, err := s.RecordGoal(side, scorerID, assistID)
	if err != nil {
		return gameset.GameEvent{}, err
	}
	e.persist()
	return ev, nil
}

func (e *Engine) RecordOwnGoal(setID string, side roster.Side, scorerID string) (gameset.GameEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return gameset.GameEvent{}, err
	}
	ev, err := s.RecordOwnGoal(side, scorerID)
	if err != nil {
		return gameset.GameEvent{}, err
	}
	e.persist()
	return ev, nil
}

func (e *Engine) EditEvent(setID, eventID string, upd gameset.EventUpdate) (gameset.GameEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return gameset.GameEvent{}, err
	}
	ev, err := s.EditEvent(eventID, upd)
	if err != nil {
		return gameset.GameEvent{}, err
	}
	e.persist()
	return ev, nil
}

func (e *Engine) DeleteEvent(setID, eventID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return err
	}
	if err := s.DeleteEvent(eventID); err != nil {
		return err
	}
	e.persist()
	return nil
}

func (e *Engine) Substitute(setID string, side roster.Side, outID, inID string) (gameset.GameEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return gameset.GameEvent{}, err
	}
	ev, err := s.Substitute(side, outID, inID)
	if err != nil {
		return gameset.GameEvent{}, err
	}
	e.persist()
	return ev, nil
}

// ---- lookup ----

func (e *Engine) findMatch(id string) (*match.Match, error) {
	for i := range e.matches {
		if e.matches[i].ID == id {
			return &e.matches[i], nil
		}
	}
	return nil, domain.ErrNotFound("match", id)
}

func (e *Engine) findSet(setID string) (*match.Match, *gameset.GameSet, error) {
	for mi := range e.matches {
		for si := range e.matches[mi].Sets {
			if e.matches[mi].Sets[si].ID == setID {
				return &e.matches[mi], &e.matches[mi].Sets[si], nil
			}
		}
	}
	return nil, nil, domain.ErrNotFound("set", setID)
}
