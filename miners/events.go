package miners

import (
	"fmt"
	"time"
)

// Event describes one finished level, or the end of the run when State is
// not Running.
type Event struct {
	Level          int
	Strategy       string
	Candidates     int
	BasketsChecked int
	BasketsSkipped int
	Frequent       int
	MaxSupport     int
	Elapsed        time.Duration
	State          State
}

func (e *Event) String() string {
	if e.State != Running {
		return fmt.Sprintf("%v at level %d", e.State, e.Level)
	}
	return fmt.Sprintf(
		"level %d (%s): %d candidates, %d baskets checked, %d skipped, %d frequent, max support %d, %v",
		e.Level, e.Strategy, e.Candidates, e.BasketsChecked, e.BasketsSkipped, e.Frequent, e.MaxSupport, e.Elapsed)
}

type Observer interface {
	Observe(*Event)
}

type Observers []Observer

func (o Observers) Observe(e *Event) {
	for _, obs := range o {
		obs.Observe(e)
	}
}

type nop struct{}

func (nop) Observe(*Event) {}

// Nop discards every event.
var Nop Observer = nop{}
