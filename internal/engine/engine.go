// Package engine owns the in-memory match state and serializes every
// operation under one mutex: each mutation runs to completion before the next
// is accepted, and no entity is ever left half-updated. Persistence is
// best-effort on every top-level mutation; failures are logged, never fatal.
package engine

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/match"
	"github.com/futsalboard/server/internal/roster"
)

const (
	keyTeams     = "teams"
	keyMatches   = "matches"
	keySavedSets = "savedTeamSets"
)

// KV is the persisted store the engine writes snapshots to. A nil KV runs
// the engine purely in memory.
type KV interface {
	Put(key string, value any) error
	Get(key string, dest any) error
}

type Engine struct {
	mu  sync.Mutex
	log *slog.Logger
	kv  KV

	teams     []roster.Team
	matches   []match.Match
	savedSets []savedSet

	clocks           map[string]chan struct{}
	requireFormation bool
}

func New(log *slog.Logger, kv KV, requireFormation bool) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		log:              log,
		kv:               kv,
		teams:            []roster.Team{},
		matches:          []match.Match{},
		clocks:           map[string]chan struct{}{},
		requireFormation: requireFormation,
	}
}

// Load restores state from the store. Parsing is best-effort: anything that
// fails to load is treated as empty.
func (e *Engine) Load() {
	if e.kv == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	var teams []roster.Team
	if err := e.kv.Get(keyTeams, &teams); err == nil {
		e.teams = teams
	} else {
		e.log.Warn("no stored teams, starting empty", "error", err)
	}
	var matches []match.Match
	if err := e.kv.Get(keyMatches, &matches); err == nil {
		e.matches = matches
	} else {
		e.log.Warn("no stored matches, starting empty", "error", err)
	}
	var saved []savedSet
	if err := e.kv.Get(keySavedSets, &saved); err == nil {
		e.savedSets = saved
	}
}

// persist writes the current state. Callers hold the mutex.
func (e *Engine) persist() {
	if e.kv == nil {
		return
	}
	if err := e.kv.Put(keyTeams, e.teams); err != nil {
		e.log.Error("persist teams failed", "error", err)
	}
	if err := e.kv.Put(keyMatches, e.matches); err != nil {
		e.log.Error("persist matches failed", "error", err)
	}
	if err := e.kv.Put(keySavedSets, e.savedSets); err != nil {
		e.log.Error("persist saved sets failed", "error", err)
	}
}

// ---- Roster store ----

func (e *Engine) Teams() []roster.Team {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]roster.Team, len(e.teams))
	for i, t := range e.teams {
		out[i] = t.Clone()
	}
	return out
}

func (e *Engine) CreateTeam(name string) (roster.Team, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, err := roster.NewTeam(name)
	if err != nil {
		return roster.Team{}, err
	}
	e.teams = append(e.teams, t)
	e.persist()
	return t.Clone(), nil
}

func (e *Engine) RenameTeam(id, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrValidation("team name is required")
	}
	t, err := e.findTeam(id)
	if err != nil {
		return err
	}
	t.Name = name
	e.persist()
	return nil
}

// DeleteTeam removes a team from the roster store. Historical sets keep
// their snapshots, so past results are unaffected.
func (e *Engine) DeleteTeam(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.teams {
		if e.teams[i].ID == id {
			e.teams = append(e.teams[:i], e.teams[i+1:]...)
			e.persist()
			return nil
		}
	}
	return domain.ErrNotFound("team", id)
}

func (e *Engine) AddPlayer(teamID, name string) (roster.Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, err := e.findTeam(teamID)
	if err != nil {
		return roster.Player{}, err
	}
	p, err := t.AddPlayer(name)
	if err != nil {
		return roster.Player{}, err
	}
	e.persist()
	return p, nil
}

func (e *Engine) RenamePlayer(teamID, playerID, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, err := e.findTeam(teamID)
	if err != nil {
		return err
	}
	if err := t.RenamePlayer(playerID, name); err != nil {
		return err
	}
	e.persist()
	return nil
}

func (e *Engine) RemovePlayer(teamID, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, err := e.findTeam(teamID)
	if err != nil {
		return err
	}
	if err := t.RemovePlayer(playerID); err != nil {
		return err
	}
	e.persist()
	return nil
}

// MergeTeams folds imported teams into the roster store, de-duplicating by
// name: an existing team keeps its data, new teams are appended. Returns the
// number of teams added.
func (e *Engine) MergeTeams(teams []roster.Team) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	added := e.mergeTeamsLocked(teams)
	if added > 0 {
		e.persist()
	}
	return added
}

// Bootstrap seeds the roster store with two default five-a-side teams. It
// refuses to run over existing teams.
func (e *Engine) Bootstrap() ([]roster.Team, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.teams) > 0 {
		return nil, domain.ErrConflict("roster store already has teams")
	}
	a, b := roster.DefaultTeams()
	e.teams = append(e.teams, a, b)
	e.persist()
	return []roster.Team{a.Clone(), b.Clone()}, nil
}

func (e *Engine) findTeam(id string) (*roster.Team, error) {
	for i := range e.teams {
		if e.teams[i].ID == id {
			return &e.teams[i], nil
		}
	}
	return nil, domain.ErrNotFound("team", id)
}

func (e *Engine) teamByName(name string) *roster.Team {
	for i := range e.teams {
		if e.teams[i].Name == name {
			return &e.teams[i]
		}
	}
	return nil
}

func (e *Engine) mergeTeamsLocked(teams []roster.Team) int {
	added := 0
	for _, t := range teams {
		if e.teamByName(t.Name) != nil {
			continue
		}
		e.teams = append(e.teams, regenerateTeam(t))
		added++
	}
	return added
}
