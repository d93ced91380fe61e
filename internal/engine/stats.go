package engine

import (
	"github.com/futsalboard/server/internal/domain"
	"github.com/futsalboard/server/internal/gameset"
	"github.com/futsalboard/server/internal/stats"
)

// allSetsLocked flattens every set across matches plus the saved-set
// archive, de-duplicated by id as the statistics engine requires of its
// caller.
func (e *Engine) allSetsLocked() []gameset.GameSet {
	seen := map[string]bool{}
	var out []gameset.GameSet
	for mi := range e.matches {
		for _, s := range e.matches[mi].Sets {
			if !seen[s.ID] {
				seen[s.ID] = true
				out = append(out, s)
			}
		}
	}
	for _, s := range e.savedSets {
		if !seen[s.ID] {
			seen[s.ID] = true
			out = append(out, s)
		}
	}
	return out
}

// ArchiveSet copies a completed set into the saved-set archive, where it
// keeps feeding statistics even if its match is later deleted.
func (e *Engine) ArchiveSet(setID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, s, err := e.findSet(setID)
	if err != nil {
		return err
	}
	if s.State != gameset.StateCompleted {
		return domain.ErrValidation("set %s is not completed", s.Name)
	}
	for _, saved := range e.savedSets {
		if saved.ID == s.ID {
			return domain.ErrConflict("set " + s.Name + " is already archived")
		}
	}
	e.savedSets = append(e.savedSets, *s)
	e.persist()
	return nil
}

func (e *Engine) PlayerStats() []stats.PlayerRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return stats.Players(e.allSetsLocked())
}

// TeamStandings returns the team table already in standings order.
func (e *Engine) TeamStandings() []stats.TeamRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return stats.Standings(stats.Teams(e.allSetsLocked()))
}

func (e *Engine) StatsSummary() stats.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return stats.Summarize(e.allSetsLocked())
}

func (e *Engine) TopScorers(limit int) []stats.PlayerRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return stats.TopScorers(stats.Players(e.allSetsLocked()), limit)
}

func (e *Engine) TopAssisters(limit int) []stats.PlayerRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return stats.TopAssisters(stats.Players(e.allSetsLocked()), limit)
}
