package engine

import (
	"time"

	"github.com/futsalboard/server/internal/gameset"
)

// Each active set gets one clock goroutine ticking the set once a second.
// The goroutine exits when its stop channel closes, when it has been
// superseded by a newer clock for the same set, or when a tick completes the
// set. State checks happen under the engine mutex, so a tick that loses the
// race against pause or complete advances nothing.

func (e *Engine) startClockLocked(setID string) {
	if _, ok := e.clocks[setID]; ok {
		return
	}
	stop := make(chan struct{})
	e.clocks[setID] = stop
	go e.runClock(setID, stop)
}

func (e *Engine) stopClockLocked(setID string) {
	if stop, ok := e.clocks[setID]; ok {
		close(stop)
		delete(e.clocks, setID)
	}
}

func (e *Engine) runClock(setID string, stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if e.tick(setID, stop) {
				return
			}
		}
	}
}

// tick advances the set by one second. Returns true when this clock is done.
func (e *Engine) tick(setID string, stop chan struct{}) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clocks[setID] != stop {
		// superseded by pause/resume; a newer clock owns the set
		return true
	}
	_, s, err := e.findSet(setID)
	if err != nil || s.State != gameset.StateActive {
		delete(e.clocks, setID)
		return true
	}
	if s.Tick(time.Now()) {
		delete(e.clocks, setID)
		e.log.Info("set reached scheduled duration",
			"set", s.Name, "teamA", s.FinalScore.TeamA, "teamB", s.FinalScore.TeamB)
		e.persist()
		return true
	}
	return false
}

// Shutdown stops every running clock.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, stop := range e.clocks {
		close(stop)
		delete(e.clocks, id)
	}
}
