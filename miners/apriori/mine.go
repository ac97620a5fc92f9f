package apriori

import (
	"context"
	"time"
)

import (
	"github.com/timtadh/maxsets/config"
	"github.com/timtadh/maxsets/miners"
	"github.com/timtadh/maxsets/stores/baskets"
	"github.com/timtadh/maxsets/types/itemset"
)

// Miner is the level driver. Starting from the frequent single items it
// repeatedly asks the Generator for the next level until a level has no
// frequent itemsets (Exhausted) or the configured target size has been
// reported (Done). Every completed level's maximal result is kept and
// handed to the reporter as soon as the level completes.
type Miner struct {
	Config    *config.Config
	Generator Generator
	Observer  miners.Observer
	rptr      miners.Reporter
}

func NewMiner(conf *config.Config, obs miners.Observer) (*Miner, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	gen, err := NewGenerator(conf.StrategyName())
	if err != nil {
		return nil, err
	}
	if obs == nil {
		obs = miners.Nop
	}
	m := &Miner{
		Config:    conf,
		Generator: gen,
		Observer:  obs,
	}
	return m, nil
}

func (m *Miner) Close() error {
	if m.rptr == nil {
		return nil
	}
	return m.rptr.Close()
}

// Mine runs the levels against the store. The context is checked between
// levels and before each basket of a scan, with or without parallelism;
// when it is cancelled the level in progress is abandoned and the levels
// completed so far are returned along with the context's error. rptr may
// be nil.
func (m *Miner) Mine(ctx context.Context, store baskets.Store, rptr miners.Reporter) (*miners.Result, error) {
	m.rptr = rptr
	support := m.Config.Support
	workers := m.Config.Workers()
	res := &miners.Result{State: miners.Running}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	start := time.Now()
	table, stats, err := Singletons(ctx, store, support, workers)
	if err != nil {
		return res, err
	}
	m.observe("items", table, stats, start)
	for {
		if table.Len() == 0 {
			return m.finish(res, miners.Exhausted, table.Level), nil
		}
		max := table.Maximal()
		res.Levels = append(res.Levels, max)
		if rptr != nil {
			if err := rptr.Report(max); err != nil {
				return res, err
			}
		}
		if m.Config.TargetK > 0 && table.Level >= m.Config.TargetK {
			return m.finish(res, miners.Done, table.Level), nil
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		start = time.Now()
		table, stats, err = m.Generator.Next(ctx, store, table, support, workers)
		if err != nil {
			return res, err
		}
		m.observe(m.Generator.Name(), table, stats, start)
	}
}

func (m *Miner) observe(strategy string, table *itemset.Table, stats LevelStats, start time.Time) {
	e := &miners.Event{
		Level:          table.Level,
		Strategy:       strategy,
		Candidates:     stats.Candidates,
		BasketsChecked: stats.Checked,
		BasketsSkipped: stats.Skipped,
		Frequent:       table.Len(),
		Elapsed:        time.Since(start),
		State:          miners.Running,
	}
	if table.Len() > 0 {
		e.MaxSupport = table.Maximal().Support
	}
	m.Observer.Observe(e)
}

func (m *Miner) finish(res *miners.Result, state miners.State, level int) *miners.Result {
	res.State = state
	m.Observer.Observe(&miners.Event{
		Level:    level,
		Strategy: m.Generator.Name(),
		State:    state,
	})
	return res
}
