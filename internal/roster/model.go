package roster

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/futsalboard/server/internal/domain"
)

// Side selects one of the two rosters of a set.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

func (s Side) Valid() bool { return s == SideA || s == SideB }

func (s Side) Opposite() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Player carries only identity. Events embed copies of it, so removing a
// player from a team never touches historical records.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewTeam(name string) (Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, domain.ErrValidation("team name is required")
	}
	return Team{
		ID:        uuid.NewString(),
		Name:      name,
		Players:   []Player{},
		CreatedAt: time.Now(),
	}, nil
}

func NewPlayer(name string) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, domain.ErrValidation("player name is required")
	}
	return Player{ID: uuid.NewString(), Name: name}, nil
}

// Clone returns an owned deep copy. Sets snapshot their teams with it so
// later roster edits do not retroactively alter historical sets.
func (t Team) Clone() Team {
	out := t
	out.Players = make([]Player, len(t.Players))
	copy(out.Players, t.Players)
	return out
}

func (t Team) FindPlayer(id string) (Player, bool) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (t *Team) AddPlayer(name string) (Player, error) {
	p, err := NewPlayer(name)
	if err != nil {
		return Player{}, err
	}
	t.Players = append(t.Players, p)
	return p, nil
}

func (t *Team) RenamePlayer(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrValidation("player name is required")
	}
	for i := range t.Players {
		if t.Players[i].ID == id {
			t.Players[i].Name = name
			return nil
		}
	}
	return domain.ErrNotFound("player", id)
}

func (t *Team) RemovePlayer(id string) error {
	for i := range t.Players {
		if t.Players[i].ID == id {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound("player", id)
}

// DefaultTeams scaffolds two five-a-side teams with numbered players, the
// empty-state bootstrap the app ships with.
func DefaultTeams() (Team, Team) {
	build := func(teamName string, first int) Team {
		t, _ := NewTeam(teamName)
		for i := 0; i < 5; i++ {
			_, _ = t.AddPlayer("Player " + strconv.Itoa(first+i))
		}
		return t
	}
	return build("Team A", 1), build("Team B", 6)
}
