package formation

import (
	"strconv"

	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/roster"
)

// SlotAssignment maps one template slot to a player. A nil Player means the
// slot is unfilled; that is allowed everywhere except Confirm.
type SlotAssignment struct {
	Side   roster.Side    `json:"side"`
	Index  int            `json:"index"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Player *roster.Player `json:"player,omitempty"`
}

type Assignment struct {
	Template   string           `json:"template"`
	Slots      []SlotAssignment `json:"slots"`
	TeamACount int              `json:"teamACount"`
	TeamBCount int              `json:"teamBCount"`
}

// Assign builds an assignment for the given template over the two roster
// snapshots. pickA/pickB are per-slot player ids; pass nil for auto
// assignment, which fills slots in roster order. A pick entry may be empty to
// leave that slot open. The rosters themselves are never mutated.
func Assign(templateName string, teamA, teamB roster.Team, pickA, pickB []string) (Assignment, error) {
	tpl, err := Lookup(templateName)
	if err != nil {
		return Assignment{}, err
	}
	if len(teamA.Players) < len(tpl.TeamA) {
		return Assignment{}, domain.ErrValidation("team %s has %d players, %s needs %d",
			teamA.Name, len(teamA.Players), templateName, len(tpl.TeamA))
	}
	if len(teamB.Players) < len(tpl.TeamB) {
		return Assignment{}, domain.ErrValidation("team %s has %d players, %s needs %d",
			teamB.Name, len(teamB.Players), templateName, len(tpl.TeamB))
	}

	a := Assignment{
		Template:   templateName,
		TeamACount: len(tpl.TeamA),
		TeamBCount: len(tpl.TeamB),
	}
	sideA, err := fillSide(roster.SideA, tpl.TeamA, teamA, pickA)
	if err != nil {
		return Assignment{}, err
	}
	sideB, err := fillSide(roster.SideB, tpl.TeamB, teamB, pickB)
	if err != nil {
		return Assignment{}, err
	}
	a.Slots = append(sideA, sideB...)
	return a, nil
}

// AutoAssign is Assign with roster-order picks on both sides.
func AutoAssign(templateName string, teamA, teamB roster.Team) (Assignment, error) {
	return Assign(templateName, teamA, teamB, nil, nil)
}

func fillSide(side roster.Side, slots []Slot, team roster.Team, picks []string) ([]SlotAssignment, error) {
	out := make([]SlotAssignment, 0, len(slots))
	seen := map[string]bool{}
	for i, sl := range slots {
		sa := SlotAssignment{Side: side, Index: i, X: sl.X, Y: sl.Y}
		var id string
		if picks == nil {
			// first available, first filled
			id = team.Players[i].ID
		} else if i < len(picks) {
			id = picks[i]
		}
		if id != "" {
			p, ok := team.FindPlayer(id)
			if !ok {
				return nil, domain.ErrValidation("player %s is not on team %s", id, team.Name)
			}
			if seen[id] {
				return nil, domain.ErrValidation("player %s assigned to more than one slot", p.Name)
			}
			seen[id] = true
			cp := p
			sa.Player = &cp
		}
		out = append(out, sa)
	}
	return out, nil
}

// Swap returns a copy of the assignment with the given slot reassigned to
// playerID. If the player already holds another slot on the same side that
// slot is vacated, so applying the same swap twice yields the same
// assignment. The other side's slots are never touched.
func Swap(a Assignment, side roster.Side, index int, playerID string, team roster.Team) (Assignment, error) {
	if !side.Valid() {
		return Assignment{}, domain.ErrValidation("invalid side %q", side)
	}
	p, ok := team.FindPlayer(playerID)
	if !ok {
		return Assignment{}, domain.ErrValidation("player %s is not on team %s", playerID, team.Name)
	}

	out := a
	out.Slots = make([]SlotAssignment, len(a.Slots))
	copy(out.Slots, a.Slots)

	target := -1
	for i, sl := range out.Slots {
		if sl.Side != side {
			continue
		}
		if sl.Index == index {
			target = i
		} else if sl.Player != nil && sl.Player.ID == playerID {
			out.Slots[i].Player = nil
		}
	}
	if target < 0 {
		return Assignment{}, domain.ErrNotFound("formation slot", string(side)+"/"+strconv.Itoa(index))
	}
	cp := p
	out.Slots[target].Player = &cp
	return out, nil
}

// Confirm validates that every required slot is filled. Assignments may be
// held with open slots while the operator is still choosing, but a set may
// not start on one.
func Confirm(a Assignment) error {
	if len(a.Slots) == 0 {
		return domain.ErrValidation("no formation applied")
	}
	for _, sl := range a.Slots {
		if sl.Player == nil {
			return domain.ErrValidation("slot %d of side %s is unfilled", sl.Index, sl.Side)
		}
	}
	return nil
}

// ActiveIDs lists the player ids currently occupying slots on one side.
func ActiveIDs(a Assignment, side roster.Side) []string {
	var ids []string
	for _, sl := range a.Slots {
		if sl.Side == side && sl.Player != nil {
			ids = append(ids, sl.Player.ID)
		}
	}
	return ids
}
