package engine

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/gameset"
	"github.com/futsalboard/server/internal/match"
	"github.com/futsalboard/server/internal/roster"
)

// savedSet is a completed set archived outside any match, kept for the
// cross-match statistics it still feeds.
type savedSet = gameset.GameSet

// Snapshot is the full JSON tree the engine serializes to and accepts back.
// It must round-trip losslessly through Serialize/Deserialize.
type Snapshot struct {
	Teams     []roster.Team `json:"teams"`
	Matches   []match.Match `json:"matches"`
	SavedSets []savedSet    `json:"savedTeamSets,omitempty"`
}

type ImportMode string

const (
	ImportMerge   ImportMode = "merge"
	ImportReplace ImportMode = "replace"
)

type ImportResult struct {
	Teams     int `json:"teams"`
	Matches   int `json:"matches"`
	SavedSets int `json:"savedTeamSets"`
}

// Export returns a copy of the full state.
func (e *Engine) Export() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Teams:     make([]roster.Team, len(e.teams)),
		Matches:   make([]match.Match, len(e.matches)),
		SavedSets: append([]savedSet(nil), e.savedSets...),
	}
	for i, t := range e.teams {
		snap.Teams[i] = t.Clone()
	}
	copy(snap.Matches, e.matches)
	return snap
}

func (e *Engine) Serialize() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return json.Marshal(e.snapshotLocked())
}

// Deserialize restores state from serialized bytes. Best-effort: on any
// parse failure the engine starts empty rather than failing.
func (e *Engine) Deserialize(data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		e.log.Warn("snapshot parse failed, starting empty", "error", err)
		e.teams = []roster.Team{}
		e.matches = []match.Match{}
		e.savedSets = nil
		return
	}
	e.teams = snap.Teams
	e.matches = snap.Matches
	e.savedSets = snap.SavedSets
	if e.teams == nil {
		e.teams = []roster.Team{}
	}
	if e.matches == nil {
		e.matches = []match.Match{}
	}
}

// Import applies a full snapshot. Replace swaps the state wholesale; merge
// folds the snapshot in, de-duplicating teams and matches by name and
// regenerating entity ids so imported entities cannot collide with existing
// ones. A snapshot that fails to parse is rejected atomically: nothing
// changes.
func (e *Engine) Import(data []byte, mode ImportMode) (ImportResult, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return ImportResult{}, domain.ErrParse("invalid import payload", err)
	}
	if snap.Teams == nil && snap.Matches == nil && snap.SavedSets == nil {
		return ImportResult{}, domain.ErrParse("import payload has no teams, matches or savedTeamSets", nil)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch mode {
	case ImportReplace:
		for id, stop := range e.clocks {
			close(stop)
			delete(e.clocks, id)
		}
		e.teams = snap.Teams
		e.matches = snap.Matches
		e.savedSets = snap.SavedSets
		if e.teams == nil {
			e.teams = []roster.Team{}
		}
		if e.matches == nil {
			e.matches = []match.Match{}
		}
		e.persist()
		return ImportResult{Teams: len(e.teams), Matches: len(e.matches), SavedSets: len(e.savedSets)}, nil

	case ImportMerge:
		res := ImportResult{}
		res.Teams = e.mergeTeamsLocked(snap.Teams)
		for _, m := range snap.Matches {
			if e.matchByName(m.Name) != nil {
				continue
			}
			e.matches = append(e.matches, regenerateMatch(m))
			res.Matches++
		}
		seen := map[string]bool{}
		for _, s := range e.savedSets {
			seen[s.ID] = true
		}
		for _, s := range snap.SavedSets {
			if seen[s.ID] {
				continue
			}
			e.savedSets = append(e.savedSets, s)
			res.SavedSets++
		}
		e.persist()
		return res, nil

	default:
		return ImportResult{}, domain.ErrValidation("unknown import mode %q", mode)
	}
}

func (e *Engine) matchByName(name string) *match.Match {
	for i := range e.matches {
		if e.matches[i].Name == name {
			return &e.matches[i]
		}
	}
	return nil
}

// regenerateTeam gives an imported team a fresh id. Player ids are kept:
// events and formation slots embed them, and player lookups are always
// scoped to one team, so they cannot collide across teams.
func regenerateTeam(t roster.Team) roster.Team {
	out := t.Clone()
	out.ID = uuid.NewString()
	return out
}

func regenerateMatch(m match.Match) match.Match {
	out := m
	out.ID = uuid.NewString()
	out.Sets = make([]gameset.GameSet, len(m.Sets))
	for i, s := range m.Sets {
		cp := s
		cp.ID = uuid.NewString()
		cp.TeamA = s.TeamA.Clone()
		cp.TeamB = s.TeamB.Clone()
		cp.Events = append([]gameset.GameEvent(nil), s.Events...)
		out.Sets[i] = cp
	}
	return out
}
