package miners

import (
	"context"
)

import (
	"github.com/timtadh/maxsets/stores/baskets"
	"github.com/timtadh/maxsets/types/itemset"
)

// Note: the miner's Close function should close the reporter that was
// passed into it.
type Miner interface {
	Mine(context.Context, baskets.Store, Reporter) (*Result, error)
	Close() error
}

// Reporter receives the maximal result of every completed level, in level
// order.
type Reporter interface {
	Report(*itemset.Maximal) error
	Close() error
}

type State int

const (
	Running State = iota
	Exhausted
	Done
)

func (s State) String() string {
	switch s {
	case Running:
		return "level"
	case Exhausted:
		return "exhausted"
	case Done:
		return "done"
	}
	return "unknown"
}

// Result holds the maximal result of every completed level. Levels[i] is
// level i+1.
type Result struct {
	State  State
	Levels []*itemset.Maximal
}

func (r *Result) Maximal(k int) *itemset.Maximal {
	if k < 1 || k > len(r.Levels) {
		return nil
	}
	return r.Levels[k-1]
}

// Last is the maximal result of the largest completed level or nil if not
// even the single items were frequent.
func (r *Result) Last() *itemset.Maximal {
	if len(r.Levels) == 0 {
		return nil
	}
	return r.Levels[len(r.Levels)-1]
}
