package gameset

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/formation"
	"github.com/futsalboard/server/internal/roster"
)

type EventType string

const (
	EventGoal    EventType = "goal"
	EventOwnGoal EventType = "ownGoal"
	// EventSubstitution is an audit entry only; score derivation ignores it.
	EventSubstitution EventType = "substitution"
)

type State string

const (
	StateScheduled State = "scheduled"
	StateActive    State = "active"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// GameEvent is one timestamped entry in a set's log. Player fields are
// embedded snapshots taken at event time, never references into a roster.
// Seconds is authoritative for ordering; Time is its display form.
type GameEvent struct {
	ID           string         `json:"id"`
	Time         string         `json:"time"`
	Seconds      int            `json:"realTime"`
	Type         EventType      `json:"type"`
	Player       roster.Player  `json:"player"`
	AssistPlayer *roster.Player `json:"assistPlayer,omitempty"`
	Team         roster.Side    `json:"team"`
	PlayerOut    *roster.Player `json:"playerOut,omitempty"`
	PlayerIn     *roster.Player `json:"playerIn,omitempty"`
}

type Score struct {
	TeamA int `json:"teamA"`
	TeamB int `json:"teamB"`
}

// GameSet is one timed period of play between two team snapshots.
type GameSet struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Duration    int                   `json:"duration"` // minutes
	TeamA       roster.Team           `json:"teamA"`
	TeamB       roster.Team           `json:"teamB"`
	State       State                 `json:"state"`
	Elapsed     int                   `json:"elapsed"` // seconds
	Events      []GameEvent           `json:"events"`
	Formation   *formation.Assignment `json:"formation,omitempty"`
	FinalScore  *Score                `json:"finalScore,omitempty"`
	CompletedAt *time.Time            `json:"completedAt,omitempty"`
}

// New snapshots both teams, so later roster edits leave the set untouched.
func New(name string, durationMinutes int, teamA, teamB roster.Team) (*GameSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrValidation("set name is required")
	}
	if durationMinutes <= 0 {
		return nil, domain.ErrValidation("set duration must be positive, got %d", durationMinutes)
	}
	if teamA.ID == teamB.ID {
		return nil, domain.ErrValidation("the same team cannot play both sides of a set")
	}
	return &GameSet{
		ID:       uuid.NewString(),
		Name:     name,
		Duration: durationMinutes,
		TeamA:    teamA.Clone(),
		TeamB:    teamB.Clone(),
		State:    StateScheduled,
		Events:   []GameEvent{},
	}, nil
}

func (s *GameSet) Roster(side roster.Side) roster.Team {
	if side == roster.SideA {
		return s.TeamA
	}
	return s.TeamB
}

// FormatClock renders seconds-since-start as mm:ss.
func FormatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
