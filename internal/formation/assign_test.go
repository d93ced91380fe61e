package formation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futsalboard/server/internal/roster"
)

func makeTeam(t *testing.T, name string, players ...string) roster.Team {
	t.Helper()
	team, err := roster.NewTeam(name)
	require.NoError(t, err)
	for _, p := range players {
		_, err := team.AddPlayer(p)
		require.NoError(t, err)
	}
	return team
}

func TestTemplates(t *testing.T) {
	names := TemplateNames()
	assert.Contains(t, names, "2v2")
	assert.Contains(t, names, "6v6")

	tpl, err := Lookup("3v3")
	require.NoError(t, err)
	assert.Len(t, tpl.TeamA, 3)
	assert.Len(t, tpl.TeamB, 3)

	_, err = Lookup("7v7")
	require.Error(t, err)
}

func TestAutoAssignFillsRosterOrder(t *testing.T) {
	teamA := makeTeam(t, "Lions", "A1", "A2", "A3")
	teamB := makeTeam(t, "Tigers", "B1", "B2")

	a, err := AutoAssign("2v2", teamA, teamB)
	require.NoError(t, err)
	require.Len(t, a.Slots, 4)

	assert.Equal(t, "A1", a.Slots[0].Player.Name)
	assert.Equal(t, "A2", a.Slots[1].Player.Name)
	assert.Equal(t, "B1", a.Slots[2].Player.Name)
	assert.Equal(t, "B2", a.Slots[3].Player.Name)
	require.NoError(t, Confirm(a))
}

func TestAssignRejectsShortRoster(t *testing.T) {
	teamA := makeTeam(t, "Lions", "A1", "A2")
	teamB := makeTeam(t, "Tigers", "B1", "B2", "B3")

	_, err := AutoAssign("3v3", teamA, teamB)
	require.Error(t, err)
}

func TestAssignExplicitPicks(t *testing.T) {
	teamA := makeTeam(t, "Lions", "A1", "A2", "A3")
	teamB := makeTeam(t, "Tigers", "B1", "B2")

	picksA := []string{teamA.Players[2].ID, ""}
	a, err := Assign("2v2", teamA, teamB, picksA, nil)
	require.NoError(t, err)

	assert.Equal(t, "A3", a.Slots[0].Player.Name)
	assert.Nil(t, a.Slots[1].Player)
	require.Error(t, Confirm(a), "open slot must block confirmation")

	dupe := []string{teamA.Players[0].ID, teamA.Players[0].ID}
	_, err = Assign("2v2", teamA, teamB, dupe, nil)
	require.Error(t, err)

	_, err = Assign("2v2", teamA, teamB, []string{"ghost", ""}, nil)
	require.Error(t, err)
}

func TestSwapMovesPlayer(t *testing.T) {
	teamA := makeTeam(t, "Lions", "A1", "A2", "A3")
	teamB := makeTeam(t, "Tigers", "B1", "B2")

	a, err := AutoAssign("2v2", teamA, teamB)
	require.NoError(t, err)

	sub := teamA.Players[2]
	got, err := Swap(a, roster.SideA, 0, sub.ID, teamA)
	require.NoError(t, err)
	assert.Equal(t, "A3", got.Slots[0].Player.Name)
	// original untouched
	assert.Equal(t, "A1", a.Slots[0].Player.Name)

	// moving a player already on the field vacates the old slot
	moved, err := Swap(got, roster.SideA, 1, sub.ID, teamA)
	require.NoError(t, err)
	assert.Nil(t, moved.Slots[0].Player)
	assert.Equal(t, "A3", moved.Slots[1].Player.Name)

	again, err := Swap(moved, roster.SideA, 1, sub.ID, teamA)
	require.NoError(t, err)
	assert.Equal(t, moved.Slots, again.Slots, "repeating a swap is a no-op")

	// side B never affected
	assert.Equal(t, "B1", moved.Slots[2].Player.Name)
	assert.Equal(t, "B2", moved.Slots[3].Player.Name)
}

func TestSwapErrors(t *testing.T) {
	teamA := makeTeam(t, "Lions", "A1", "A2")
	teamB := makeTeam(t, "Tigers", "B1", "B2")
	a, err := AutoAssign("2v2", teamA, teamB)
	require.NoError(t, err)

	_, err = Swap(a, roster.Side("X"), 0, teamA.Players[0].ID, teamA)
	require.Error(t, err)
	_, err = Swap(a, roster.SideA, 9, teamA.Players[0].ID, teamA)
	require.Error(t, err)
	_, err = Swap(a, roster.SideA, 0, "ghost", teamA)
	require.Error(t, err)
}

func TestActiveIDs(t *testing.T) {
	teamA := makeTeam(t, "Lions", "A1", "A2")
	teamB := makeTeam(t, "Tigers", "B1", "B2")
	a, err := AutoAssign("2v2", teamA, teamB)
	require.NoError(t, err)

	ids := ActiveIDs(a, roster.SideA)
	require.Len(t, ids, 2)
	assert.Equal(t, teamA.Players[0].ID, ids[0])
}
