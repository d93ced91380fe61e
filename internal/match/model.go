package match

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/gameset"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Outcome of a match's aggregate score. A draw is a valid result, not an
// error.
type Outcome string

const (
	OutcomeTeamA Outcome = "teamA"
	OutcomeTeamB Outcome = "teamB"
	OutcomeDraw  Outcome = "draw"
)

// Match is a named occasion containing ordered sets. It has no events of its
// own; its score is always rolled up from the sets.
type Match struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Venue     string            `json:"venue"`
	Date      string            `json:"date"`
	Status    Status            `json:"status"`
	Sets      []gameset.GameSet `json:"sets"`
	CreatedAt time.Time         `json:"createdAt"`
}

func New(name, venue, date string) (Match, error) {
	name = strings.TrimSpace(name)
	venue = strings.TrimSpace(venue)
	if name == "" || venue == "" {
		return Match{}, domain.ErrValidation("match name and venue are required")
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	return Match{
		ID:        uuid.NewString(),
		Name:      name,
		Venue:     venue,
		Date:      date,
		Status:    StatusScheduled,
		Sets:      []gameset.GameSet{},
		CreatedAt: time.Now(),
	}, nil
}

// AggregateScore sums the derived score of every set. Sets with no events
// contribute 0:0 rather than being skipped, which keeps per-set averages
// well-defined downstream.
func (m Match) AggregateScore() gameset.Score {
	var total gameset.Score
	for i := range m.Sets {
		sc := m.Sets[i].Score()
		total.TeamA += sc.TeamA
		total.TeamB += sc.TeamB
	}
	return total
}

func (m Match) Outcome() Outcome {
	sc := m.AggregateScore()
	switch {
	case sc.TeamA > sc.TeamB:
		return OutcomeTeamA
	case sc.TeamB > sc.TeamA:
		return OutcomeTeamB
	default:
		return OutcomeDraw
	}
}

// Duplicate copies a match under fresh ids with every set reset to scheduled
// and its event log emptied.
func (m Match) Duplicate() Match {
	out := m
	out.ID = uuid.NewString()
	out.Name = m.Name + " (copy)"
	out.Date = time.Now().Format("2006-01-02")
	out.Status = StatusScheduled
	out.CreatedAt = time.Now()
	out.Sets = make([]gameset.GameSet, len(m.Sets))
	for i, s := range m.Sets {
		cp := s
		cp.ID = uuid.NewString()
		cp.TeamA = s.TeamA.Clone()
		cp.TeamB = s.TeamB.Clone()
		cp.State = gameset.StateScheduled
		cp.Elapsed = 0
		cp.Events = []gameset.GameEvent{}
		cp.FinalScore = nil
		cp.CompletedAt = nil
		out.Sets[i] = cp
	}
	return out
}
