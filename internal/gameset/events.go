package gameset

import (
	"sort"

	"github.com/google/uuid"

	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/roster"
)

// RecordGoal appends a goal for the given side at the current clock.
// scorerID must be on that side's roster snapshot; assistID is optional and
// must name a different player. Validation happens before any state change.
func (s *GameSet) RecordGoal(side roster.Side, scorerID, assistID string) (GameEvent, error) {
	scorer, err := s.requireScorer(side, scorerID)
	if err != nil {
		return GameEvent{}, err
	}
	var assist *roster.Player
	if assistID != "" {
		if assistID == scorerID {
			return GameEvent{}, domain.ErrValidation("assist player must differ from the scorer")
		}
		p, ok := s.findAnyPlayer(assistID)
		if !ok {
			return GameEvent{}, domain.ErrValidation("assist player %s is not in this set", assistID)
		}
		assist = &p
	}
	ev := s.newEvent(EventGoal, side, scorer)
	ev.AssistPlayer = assist
	s.append(ev)
	return ev, nil
}

// RecordOwnGoal appends an own goal. side is the team of the player who
// scored on themselves; the goal credits the opposite side.
func (s *GameSet) RecordOwnGoal(side roster.Side, scorerID string) (GameEvent, error) {
	scorer, err := s.requireScorer(side, scorerID)
	if err != nil {
		return GameEvent{}, err
	}
	ev := s.newEvent(EventOwnGoal, side, scorer)
	s.append(ev)
	return ev, nil
}

func (s *GameSet) requireScorer(side roster.Side, scorerID string) (roster.Player, error) {
	if !side.Valid() {
		return roster.Player{}, domain.ErrValidation("invalid side %q", side)
	}
	if s.State != StateActive && s.State != StatePaused {
		return roster.Player{}, domain.ErrValidation("set %s is not in play", s.Name)
	}
	if scorerID == "" {
		return roster.Player{}, domain.ErrValidation("a scoring player is required")
	}
	p, ok := s.Roster(side).FindPlayer(scorerID)
	if !ok {
		return roster.Player{}, domain.ErrValidation("player %s is not on side %s of this set", scorerID, side)
	}
	return p, nil
}

func (s *GameSet) findAnyPlayer(id string) (roster.Player, bool) {
	if p, ok := s.TeamA.FindPlayer(id); ok {
		return p, true
	}
	return s.TeamB.FindPlayer(id)
}

func (s *GameSet) newEvent(t EventType, side roster.Side, player roster.Player) GameEvent {
	return GameEvent{
		ID:      uuid.NewString(),
		Time:    FormatClock(s.Elapsed),
		Seconds: s.Elapsed,
		Type:    t,
		Player:  player,
		Team:    side,
	}
}

func (s *GameSet) append(ev GameEvent) {
	s.Events = append(s.Events, ev)
	s.refreshFinal()
}

// EventUpdate carries the changes an edit applies. Nil fields are left as
// they are.
type EventUpdate struct {
	Seconds     *int
	PlayerName  *string
	Type        *EventType
	AssistID    *string
	ClearAssist bool
}

// EditEvent corrects an existing event. All validation runs before anything
// is written, so a rejected edit leaves the log untouched. A time change
// re-sorts the log by the seconds field (stable, so same-second events keep
// insertion order). On a completed set the frozen score is re-derived; the
// completion timestamp stays fixed.
func (s *GameSet) EditEvent(id string, upd EventUpdate) (GameEvent, error) {
	idx := s.eventIndex(id)
	if idx < 0 {
		return GameEvent{}, domain.ErrNotFound("event", id)
	}
	ev := s.Events[idx]
	if ev.Type == EventSubstitution {
		return GameEvent{}, domain.ErrValidation("substitution entries cannot be edited")
	}

	if upd.Type != nil {
		switch *upd.Type {
		case EventGoal, EventOwnGoal:
			ev.Type = *upd.Type
		default:
			return GameEvent{}, domain.ErrValidation("cannot change an event to type %q", *upd.Type)
		}
	}
	if upd.PlayerName != nil {
		if *upd.PlayerName == "" {
			return GameEvent{}, domain.ErrValidation("a scoring player is required")
		}
		ev.Player.Name = *upd.PlayerName
	}
	if upd.ClearAssist {
		ev.AssistPlayer = nil
	} else if upd.AssistID != nil {
		p, ok := s.findAnyPlayer(*upd.AssistID)
		if !ok {
			return GameEvent{}, domain.ErrValidation("assist player %s is not in this set", *upd.AssistID)
		}
		if p.ID == ev.Player.ID {
			return GameEvent{}, domain.ErrValidation("assist player must differ from the scorer")
		}
		ev.AssistPlayer = &p
	}
	if ev.Type == EventOwnGoal {
		// own goals carry no assist
		ev.AssistPlayer = nil
	}
	resort := false
	if upd.Seconds != nil {
		if *upd.Seconds < 0 {
			return GameEvent{}, domain.ErrValidation("event time cannot be negative")
		}
		ev.Seconds = *upd.Seconds
		ev.Time = FormatClock(*upd.Seconds)
		resort = true
	}

	s.Events[idx] = ev
	if resort {
		sort.SliceStable(s.Events, func(i, j int) bool {
			return s.Events[i].Seconds < s.Events[j].Seconds
		})
	}
	s.refreshFinal()
	return ev, nil
}

// DeleteEvent removes an event by id. Embedded player snapshots carry no
// back-references, so nothing cascades.
func (s *GameSet) DeleteEvent(id string) error {
	idx := s.eventIndex(id)
	if idx < 0 {
		return domain.ErrNotFound("event", id)
	}
	s.Events = append(s.Events[:idx], s.Events[idx+1:]...)
	s.refreshFinal()
	return nil
}

func (s *GameSet) eventIndex(id string) int {
	for i := range s.Events {
		if s.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// Substitute swaps the active-slot player outID for bench player inID on the
// given side. It is a roster-state change: the audit entry it appends has no
// effect on the score.
func (s *GameSet) Substitute(side roster.Side, outID, inID string) (GameEvent, error) {
	if !side.Valid() {
		return GameEvent{}, domain.ErrValidation("invalid side %q", side)
	}
	if s.Formation == nil {
		return GameEvent{}, domain.ErrValidation("set %s has no formation to substitute in", s.Name)
	}
	team := s.Roster(side)
	in, ok := team.FindPlayer(inID)
	if !ok {
		return GameEvent{}, domain.ErrValidation("player %s is not on side %s of this set", inID, side)
	}
	out, ok := team.FindPlayer(outID)
	if !ok {
		return GameEvent{}, domain.ErrValidation("player %s is not on side %s of this set", outID, side)
	}

	outSlot, inSlot := -1, -1
	for i, sl := range s.Formation.Slots {
		if sl.Side != side || sl.Player == nil {
			continue
		}
		switch sl.Player.ID {
		case outID:
			outSlot = i
		case inID:
			inSlot = i
		}
	}
	if outSlot < 0 {
		return GameEvent{}, domain.ErrValidation("player %s is not on the field", out.Name)
	}
	if inSlot >= 0 {
		return GameEvent{}, domain.ErrValidation("player %s is already on the field", in.Name)
	}

	cp := in
	s.Formation.Slots[outSlot].Player = &cp

	ev := s.newEvent(EventSubstitution, side, in)
	outCp := out
	inCp := in
	ev.PlayerOut = &outCp
	ev.PlayerIn = &inCp
	s.Events = append(s.Events, ev)
	return ev, nil
}
