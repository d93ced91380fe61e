package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/match"
	"github.com/futsalboard/server/internal/roster"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(nil, nil, false)
	t.Cleanup(e.Shutdown)
	return e
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestTeamCRUD(t *testing.T) {
	e := newEngine(t)

	team, err := e.CreateTeam("Lions")
	require.NoError(t, err)
	_, err = e.CreateTeam("  ")
	require.Error(t, err)

	p, err := e.AddPlayer(team.ID, "Alice")
	require.NoError(t, err)
	require.NoError(t, e.RenamePlayer(team.ID, p.ID, "Alicia"))
	require.NoError(t, e.RenameTeam(team.ID, "Lionesses"))

	teams := e.Teams()
	require.Len(t, teams, 1)
	assert.Equal(t, "Lionesses", teams[0].Name)
	assert.Equal(t, "Alicia", teams[0].Players[0].Name)

	// returned slices are detached copies
	teams[0].Name = "Hacked"
	teams[0].Players[0].Name = "Hacked"
	fresh := e.Teams()
	assert.Equal(t, "Lionesses", fresh[0].Name)
	assert.Equal(t, "Alicia", fresh[0].Players[0].Name)

	require.NoError(t, e.RemovePlayer(team.ID, p.ID))
	require.NoError(t, e.DeleteTeam(team.ID))
	assert.Equal(t, "NOT_FOUND", appCode(t, e.DeleteTeam(team.ID)))
}

func TestBootstrap(t *testing.T) {
	e := newEngine(t)

	teams, err := e.Bootstrap()
	require.NoError(t, err)
	require.Len(t, teams, 2)

	_, err = e.Bootstrap()
	assert.Equal(t, "CONFLICT", appCode(t, err))
}

// seedMatch creates two teams, a match and one scheduled set, returning the
// set id.
func seedMatch(t *testing.T, e *Engine) (match.Match, string) {
	t.Helper()
	teamA, err := e.CreateTeam("Lions")
	require.NoError(t, err)
	teamB, err := e.CreateTeam("Tigers")
	require.NoError(t, err)
	for _, name := range []string{"P1", "P2"} {
		_, err = e.AddPlayer(teamA.ID, name)
		require.NoError(t, err)
	}
	_, err = e.AddPlayer(teamB.ID, "P3")
	require.NoError(t, err)

	m, err := e.CreateMatch("Friendly", "Hall 1", "2026-03-01")
	require.NoError(t, err)
	s, err := e.CreateSet(m.ID, "Set 1", 10, teamA.ID, teamB.ID)
	require.NoError(t, err)
	return m, s.ID
}

func TestMatchFlow(t *testing.T) {
	e := newEngine(t)
	m, setID := seedMatch(t, e)

	require.NoError(t, e.StartSet(setID))

	mv, err := e.Match(m.ID)
	require.NoError(t, err)
	assert.Equal(t, match.StatusOngoing, mv.Match.Status, "starting play moves the match along")

	sv, err := e.Set(setID)
	require.NoError(t, err)
	p1 := sv.Set.TeamA.Players[0]
	p2 := sv.Set.TeamA.Players[1]
	p3 := sv.Set.TeamB.Players[0]

	_, err = e.RecordGoal(setID, roster.SideA, p1.ID, p2.ID)
	require.NoError(t, err)
	_, err = e.RecordOwnGoal(setID, roster.SideB, p3.ID)
	require.NoError(t, err)

	sv, err = e.Set(setID)
	require.NoError(t, err)
	assert.Equal(t, 2, sv.Score.TeamA)
	assert.Equal(t, 0, sv.Score.TeamB)

	score, err := e.CompleteSet(setID)
	require.NoError(t, err)
	assert.Equal(t, 2, score.TeamA)

	// completing again returns the frozen score
	again, err := e.CompleteSet(setID)
	require.NoError(t, err)
	assert.Equal(t, score, again)

	require.Error(t, e.UpdateSet(setID, "Renamed", 15), "completed set rejects edits")

	mv, err = e.Match(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, mv.Score.TeamA)
	assert.Equal(t, match.OutcomeTeamA, mv.Outcome)
}

func TestDuplicateMatch(t *testing.T) {
	e := newEngine(t)
	m, setID := seedMatch(t, e)

	require.NoError(t, e.StartSet(setID))
	sv, err := e.Set(setID)
	require.NoError(t, err)
	_, err = e.RecordGoal(setID, roster.SideA, sv.Set.TeamA.Players[0].ID, "")
	require.NoError(t, err)
	_, err = e.CompleteSet(setID)
	require.NoError(t, err)

	cp, err := e.DuplicateMatch(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Friendly (copy)", cp.Name)
	require.Len(t, cp.Sets, 1)
	assert.Empty(t, cp.Sets[0].Events)

	// the copy is playable on its own
	require.NoError(t, e.StartSet(cp.Sets[0].ID))
	require.NoError(t, e.PauseSet(cp.Sets[0].ID))
}

func TestSetMatchStatus(t *testing.T) {
	e := newEngine(t)
	m, _ := seedMatch(t, e)

	require.NoError(t, e.SetMatchStatus(m.ID, match.StatusCancelled))
	require.Error(t, e.SetMatchStatus(m.ID, match.Status("running")))

	mv, err := e.Match(m.ID)
	require.NoError(t, err)
	assert.Equal(t, match.StatusCancelled, mv.Match.Status)
}

func TestDeleteMatchAndSet(t *testing.T) {
	e := newEngine(t)
	m, setID := seedMatch(t, e)

	require.NoError(t, e.StartSet(setID))
	require.NoError(t, e.DeleteSet(setID))
	_, err := e.Set(setID)
	assert.Equal(t, "NOT_FOUND", appCode(t, err))

	require.NoError(t, e.DeleteMatch(m.ID))
	_, err = e.Match(m.ID)
	assert.Equal(t, "NOT_FOUND", appCode(t, err))
}

func TestArchiveSet(t *testing.T) {
	e := newEngine(t)
	m, setID := seedMatch(t, e)

	assert.Equal(t, "VALIDATION_ERROR", appCode(t, e.ArchiveSet(setID)), "only completed sets archive")

	require.NoError(t, e.StartSet(setID))
	sv, err := e.Set(setID)
	require.NoError(t, err)
	_, err = e.RecordGoal(setID, roster.SideA, sv.Set.TeamA.Players[0].ID, "")
	require.NoError(t, err)
	_, err = e.CompleteSet(setID)
	require.NoError(t, err)

	require.NoError(t, e.ArchiveSet(setID))
	assert.Equal(t, "CONFLICT", appCode(t, e.ArchiveSet(setID)))

	// archived results survive the match being deleted
	require.NoError(t, e.DeleteMatch(m.ID))
	sum := e.StatsSummary()
	assert.Equal(t, 1, sum.TotalGames)
	assert.Equal(t, 1, sum.TotalGoals)

	// while the match lives, the set is not double counted
	rows := e.TeamStandings()
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].GamesPlayed)
}

func TestFormationFlow(t *testing.T) {
	e := New(nil, nil, true) // formation required before play
	t.Cleanup(e.Shutdown)

	teamA, err := e.CreateTeam("Lions")
	require.NoError(t, err)
	teamB, err := e.CreateTeam("Tigers")
	require.NoError(t, err)
	for _, name := range []string{"A1", "A2", "A3"} {
		_, err = e.AddPlayer(teamA.ID, name)
		require.NoError(t, err)
	}
	for _, name := range []string{"B1", "B2"} {
		_, err = e.AddPlayer(teamB.ID, name)
		require.NoError(t, err)
	}
	m, err := e.CreateMatch("Friendly", "Hall 1", "")
	require.NoError(t, err)
	s, err := e.CreateSet(m.ID, "Set 1", 10, teamA.ID, teamB.ID)
	require.NoError(t, err)

	require.Error(t, e.StartSet(s.ID), "no formation yet")

	a, err := e.AssignFormation(s.ID, "2v2", nil, nil)
	require.NoError(t, err)
	require.Len(t, a.Slots, 4)

	sv, err := e.Set(s.ID)
	require.NoError(t, err)
	bench := sv.Set.TeamA.Players[2]
	swapped, err := e.SwapFormationSlot(s.ID, roster.SideA, 0, bench.ID)
	require.NoError(t, err)
	assert.Equal(t, bench.ID, swapped.Slots[0].Player.ID)

	require.NoError(t, e.ConfirmFormation(s.ID))
	require.NoError(t, e.StartSet(s.ID))

	fielded := swapped.Slots[1].Player
	_, err = e.Substitute(s.ID, roster.SideA, fielded.ID, sv.Set.TeamA.Players[0].ID)
	require.NoError(t, err)
	require.NoError(t, e.PauseSet(s.ID))
	require.NoError(t, e.ResumeSet(s.ID))
	_, err = e.CompleteSet(s.ID)
	require.NoError(t, err)
}
