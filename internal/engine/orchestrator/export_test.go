package orchestrator

import "time"

// SetClock replaces the clock used to stamp outcomes.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
}
