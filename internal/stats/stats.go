// Package stats derives player leaderboards and team standings from a flat,
// de-duplicated collection of sets. Everything here is a pure function of its
// input: re-sorting or filtering never mutates the rows it was given.
package stats

import (
	"sort"

	"github.com/futsalboard/server/internal/gameset"
	"github.com/futsalboard/server/internal/roster"
)

type PlayerRow struct {
	PlayerID          string  `json:"playerId"`
	Name              string  `json:"name"`
	TeamName          string  `json:"teamName"`
	GamesPlayed       int     `json:"gamesPlayed"`
	Goals             int     `json:"goals"`
	OwnGoals          int     `json:"ownGoals"`
	Assists           int     `json:"assists"`
	GoalsPerGame      float64 `json:"goalsPerGame"`
	TotalContribution int     `json:"totalContribution"`
}

type TeamRow struct {
	Name                string  `json:"name"`
	GamesPlayed         int     `json:"gamesPlayed"`
	Wins                int     `json:"wins"`
	Draws               int     `json:"draws"`
	Losses              int     `json:"losses"`
	GoalsFor            int     `json:"goalsFor"`
	GoalsAgainst        int     `json:"goalsAgainst"`
	Points              int     `json:"points"`
	GoalDifference      int     `json:"goalDifference"`
	WinPercentage       float64 `json:"winPercentage"`
	AverageGoalsPerGame float64 `json:"averageGoalsPerGame"`
}

type Summary struct {
	TotalGames          int     `json:"totalGames"`
	TotalGoals          int     `json:"totalGoals"`
	TotalPlayers        int     `json:"totalPlayers"`
	AverageGoalsPerGame float64 `json:"averageGoalsPerGame"`
}

// Players aggregates per-player rows across sets. A player is counted as
// having played a set by appearing in its roster snapshot, whether or not
// they touched the ball. Players seen only in events (after a roster
// correction) still get rows, with gamesPlayed derived from roster
// appearances only. Rows come back in first-seen order.
func Players(sets []gameset.GameSet) []PlayerRow {
	rows := map[string]*PlayerRow{}
	var order []string

	get := func(p roster.Player, teamName string) *PlayerRow {
		r, ok := rows[p.ID]
		if !ok {
			r = &PlayerRow{PlayerID: p.ID, Name: p.Name, TeamName: teamName}
			rows[p.ID] = r
			order = append(order, p.ID)
		}
		return r
	}

	for i := range sets {
		set := &sets[i]
		for _, p := range set.TeamA.Players {
			get(p, set.TeamA.Name).GamesPlayed++
		}
		for _, p := range set.TeamB.Players {
			get(p, set.TeamB.Name).GamesPlayed++
		}
		for _, ev := range set.Events {
			teamName := set.Roster(ev.Team).Name
			switch ev.Type {
			case gameset.EventGoal:
				get(ev.Player, teamName).Goals++
				if ev.AssistPlayer != nil {
					get(*ev.AssistPlayer, teamName).Assists++
				}
			case gameset.EventOwnGoal:
				get(ev.Player, teamName).OwnGoals++
			}
		}
	}

	out := make([]PlayerRow, 0, len(order))
	for _, id := range order {
		r := *rows[id]
		gp := r.GamesPlayed
		if gp < 1 {
			gp = 1
		}
		r.GoalsPerGame = float64(r.Goals) / float64(gp)
		r.TotalContribution = r.Goals + r.Assists
		out = append(out, r)
	}
	return out
}

// Teams aggregates win/draw/loss records keyed by team name, so a team whose
// roster was edited between matches (and so carries different snapshot ids)
// still accumulates one row. Rows come back in first-seen order.
func Teams(sets []gameset.GameSet) []TeamRow {
	rows := map[string]*TeamRow{}
	var order []string

	get := func(name string) *TeamRow {
		r, ok := rows[name]
		if !ok {
			r = &TeamRow{Name: name}
			rows[name] = r
			order = append(order, name)
		}
		return r
	}

	for i := range sets {
		set := &sets[i]
		scoreA := set.ScoreFor(roster.SideA)
		scoreB := set.ScoreFor(roster.SideB)

		record := func(name string, goalsFor, goalsAgainst int) {
			r := get(name)
			r.GamesPlayed++
			r.GoalsFor += goalsFor
			r.GoalsAgainst += goalsAgainst
			switch {
			case goalsFor > goalsAgainst:
				r.Wins++
			case goalsFor == goalsAgainst:
				r.Draws++
			default:
				r.Losses++
			}
		}
		record(set.TeamA.Name, scoreA, scoreB)
		record(set.TeamB.Name, scoreB, scoreA)
	}

	out := make([]TeamRow, 0, len(order))
	for _, name := range order {
		r := *rows[name]
		r.Points = r.Wins*3 + r.Draws
		r.GoalDifference = r.GoalsFor - r.GoalsAgainst
		if r.GamesPlayed > 0 {
			r.WinPercentage = float64(r.Wins) / float64(r.GamesPlayed) * 100
			r.AverageGoalsPerGame = float64(r.GoalsFor) / float64(r.GamesPlayed)
		}
		out = append(out, r)
	}
	return out
}

// Standings orders team rows by points descending, then goal difference
// descending. The sort is stable: rows tied on both keys keep their input
// order, and callers needing a third tie-break apply their own.
func Standings(rows []TeamRow) []TeamRow {
	out := make([]TeamRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].GoalDifference > out[j].GoalDifference
	})
	return out
}

// DefaultLeaderboardSize caps leaderboards when the caller gives no limit.
const DefaultLeaderboardSize = 10

// TopScorers returns up to limit players with at least one goal, most goals
// first. The input slice is left untouched.
func TopScorers(rows []PlayerRow, limit int) []PlayerRow {
	return top(rows, limit,
		func(r PlayerRow) int { return r.Goals })
}

// TopAssisters returns up to limit players with at least one assist, most
// assists first.
func TopAssisters(rows []PlayerRow, limit int) []PlayerRow {
	return top(rows, limit,
		func(r PlayerRow) int { return r.Assists })
}

func top(rows []PlayerRow, limit int, key func(PlayerRow) int) []PlayerRow {
	out := make([]PlayerRow, 0, len(rows))
	for _, r := range rows {
		if key(r) > 0 {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Summarize produces the overview counters shown on the statistics screen.
// TotalGoals counts goal events only; own goals are not a player achievement.
func Summarize(sets []gameset.GameSet) Summary {
	sum := Summary{TotalGames: len(sets)}
	for i := range sets {
		for _, ev := range sets[i].Events {
			if ev.Type == gameset.EventGoal {
				sum.TotalGoals++
			}
		}
	}
	sum.TotalPlayers = len(Players(sets))
	if sum.TotalGames > 0 {
		sum.AverageGoalsPerGame = float64(sum.TotalGoals) / float64(sum.TotalGames)
	}
	return sum
}
