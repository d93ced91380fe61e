package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futsalboard/server/internal/gameset"
	"github.com/futsalboard/server/internal/roster"
)

func TestSerializeRoundTrip(t *testing.T) {
	e := newEngine(t)
	m, setID := seedMatch(t, e)

	require.NoError(t, e.StartSet(setID))
	sv, err := e.Set(setID)
	require.NoError(t, err)
	_, err = e.RecordGoal(setID, roster.SideA, sv.Set.TeamA.Players[0].ID, "")
	require.NoError(t, err)

	data, err := e.Serialize()
	require.NoError(t, err)

	// wire shape: three top-level collections
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "teams")
	assert.Contains(t, raw, "matches")

	other := newEngine(t)
	other.Deserialize(data)

	assert.Len(t, other.Teams(), 2)
	mv, err := other.Match(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, mv.Score.TeamA)

	got, err := other.Set(setID)
	require.NoError(t, err)
	assert.Equal(t, gameset.StateActive, got.Set.State)
	require.Len(t, got.Set.Events, 1)
}

func TestDeserializeGarbageStartsEmpty(t *testing.T) {
	e := newEngine(t)
	_, err := e.CreateTeam("Lions")
	require.NoError(t, err)

	e.Deserialize([]byte("{not json"))
	assert.Empty(t, e.Teams())
	assert.Empty(t, e.Matches())
}

func TestImportRejectsGarbageAtomically(t *testing.T) {
	e := newEngine(t)
	_, err := e.CreateTeam("Lions")
	require.NoError(t, err)

	_, err = e.Import([]byte("{not json"), ImportMerge)
	assert.Equal(t, "PARSE_ERROR", appCode(t, err))

	_, err = e.Import([]byte(`{"something":"else"}`), ImportMerge)
	assert.Equal(t, "PARSE_ERROR", appCode(t, err))

	// a rejected import changes nothing
	teams := e.Teams()
	require.Len(t, teams, 1)
	assert.Equal(t, "Lions", teams[0].Name)
}

func TestImportMergeDeduplicatesByName(t *testing.T) {
	src := newEngine(t)
	srcMatch, setID := seedMatch(t, src)
	require.NoError(t, src.StartSet(setID))
	sv, err := src.Set(setID)
	require.NoError(t, err)
	_, err = src.RecordGoal(setID, roster.SideA, sv.Set.TeamA.Players[0].ID, "")
	require.NoError(t, err)
	data, err := src.Serialize()
	require.NoError(t, err)

	dst := newEngine(t)
	existing, err := dst.CreateTeam("Lions") // collides with the export
	require.NoError(t, err)
	_, err = dst.AddPlayer(existing.ID, "Keeper")
	require.NoError(t, err)

	res, err := dst.Import(data, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Teams, "only Tigers is new")
	assert.Equal(t, 1, res.Matches)

	teams := dst.Teams()
	require.Len(t, teams, 2)
	var lions roster.Team
	for _, tm := range teams {
		if tm.Name == "Lions" {
			lions = tm
		}
	}
	assert.Equal(t, existing.ID, lions.ID, "existing team keeps its data")
	require.Len(t, lions.Players, 1)
	assert.Equal(t, "Keeper", lions.Players[0].Name)

	// imported match got fresh ids but kept its log
	matches := dst.Matches()
	require.Len(t, matches, 1)
	assert.NotEqual(t, srcMatch.ID, matches[0].ID)
	require.Len(t, matches[0].Sets, 1)
	assert.Len(t, matches[0].Sets[0].Events, 1)
	assert.Equal(t, 1, matches[0].Sets[0].ScoreFor(roster.SideA))
}

func TestImportMergeSkipsExistingMatchByName(t *testing.T) {
	src := newEngine(t)
	seedMatch(t, src)
	data, err := src.Serialize()
	require.NoError(t, err)

	dst := newEngine(t)
	res1, err := dst.Import(data, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 1, res1.Matches)

	res2, err := dst.Import(data, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 0, res2.Matches, "same name is not imported twice")
	assert.Len(t, dst.Matches(), 1)
}

func TestImportReplaceSwapsState(t *testing.T) {
	src := newEngine(t)
	seedMatch(t, src)
	data, err := src.Serialize()
	require.NoError(t, err)

	dst := newEngine(t)
	_, err = dst.CreateTeam("Old Guard")
	require.NoError(t, err)

	res, err := dst.Import(data, ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Teams)

	teams := dst.Teams()
	require.Len(t, teams, 2)
	for _, tm := range teams {
		assert.NotEqual(t, "Old Guard", tm.Name)
	}
}

func TestEventEditThroughEngine(t *testing.T) {
	e := newEngine(t)
	_, setID := seedMatch(t, e)
	require.NoError(t, e.StartSet(setID))

	sv, err := e.Set(setID)
	require.NoError(t, err)
	ev, err := e.RecordGoal(setID, roster.SideA, sv.Set.TeamA.Players[0].ID, "")
	require.NoError(t, err)

	secs := 42
	got, err := e.EditEvent(setID, ev.ID, gameset.EventUpdate{Seconds: &secs})
	require.NoError(t, err)
	assert.Equal(t, 42, got.Seconds)

	require.NoError(t, e.DeleteEvent(setID, ev.ID))
	sv, err = e.Set(setID)
	require.NoError(t, err)
	assert.Empty(t, sv.Set.Events)
	assert.Equal(t, 0, sv.Score.TeamA)
}
