package apriori

import (
	"context"
)

import (
	"golang.org/x/sync/errgroup"
)

import (
	"github.com/timtadh/maxsets/config"
	"github.com/timtadh/maxsets/stores/baskets"
	"github.com/timtadh/maxsets/types/itemset"
)

// Generator produces the frequent itemsets of level prev.Level+1 from the
// frequent itemsets of prev. A candidate is considered if and only if all
// of its (k-1)-subsets are in prev.
type Generator interface {
	Name() string
	Next(ctx context.Context, store baskets.Store, prev *itemset.Table, support, workers int) (*itemset.Table, LevelStats, error)
}

func NewGenerator(strategy string) (Generator, error) {
	switch strategy {
	case config.JoinStrategy:
		return Join{}, nil
	case config.BasketStrategy, "":
		return Basket{}, nil
	}
	return nil, &config.ConfigError{Field: "strategy", Value: strategy, Reason: "must be join or basket"}
}

// Join materializes the candidates by joining every pair of frequent
// (k-1)-itemsets and then counts them. Quadratic in prev.Len().
type Join struct{}

func (Join) Name() string {
	return config.JoinStrategy
}

func (j Join) Next(ctx context.Context, store baskets.Store, prev *itemset.Table, support, workers int) (*itemset.Table, LevelStats, error) {
	k := prev.Level + 1
	candidates, err := JoinCandidates(ctx, prev, workers)
	if err != nil {
		return nil, LevelStats{}, err
	}
	if len(candidates) == 0 {
		return itemset.NewTable(k), LevelStats{}, nil
	}
	counts, stats, err := Count(ctx, store, candidates, prev.Alive(), k, workers)
	if err != nil {
		return nil, LevelStats{}, err
	}
	return counts.Threshold(k, support), stats, nil
}

// JoinCandidates returns the unions of size prev.Level+1 of every pair of
// entries in prev whose (k-1)-subsets are all in prev. Rows of the pair
// triangle are dealt to the workers round robin.
func JoinCandidates(ctx context.Context, prev *itemset.Table, workers int) (map[string]itemset.Set, error) {
	if workers < 1 {
		workers = 1
	}
	k := prev.Level + 1
	entries := prev.Entries()
	n := len(entries)
	shards := make([]map[string]itemset.Set, workers)
	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		shards[w] = make(map[string]itemset.Set)
		g.Go(func() error {
			for i := w; i < n; i += workers {
				for j := i + 1; j < n; j++ {
					u := entries[i].Items.Union(entries[j].Items)
					if u.Len() != k {
						continue
					}
					key := u.Key()
					if _, has := shards[w][key]; has {
						continue
					}
					if allSubsetsFrequent(u, prev) {
						shards[w][key] = u
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	candidates := shards[0]
	for _, shard := range shards[1:] {
		for key, u := range shard {
			candidates[key] = u
		}
	}
	return candidates, nil
}

// Basket never materializes the candidate set. Each basket, restricted to
// the alive items, is expanded into its k-combinations and a combination
// is counted when all of its (k-1)-subsets are in prev. Preferable when
// prev is large compared to the number of baskets.
type Basket struct{}

func (Basket) Name() string {
	return config.BasketStrategy
}

func (b Basket) Next(ctx context.Context, store baskets.Store, prev *itemset.Table, support, workers int) (*itemset.Table, LevelStats, error) {
	k := prev.Level + 1
	if prev.Len() < k {
		// k distinct (k-1)-subsets are needed to support any candidate
		return itemset.NewTable(k), LevelStats{}, nil
	}
	counts, stats, err := scan(ctx, store, prev.Alive(), k, workers, subsetCounter(prev, k))
	if err != nil {
		return nil, LevelStats{}, err
	}
	stats.Candidates = len(counts)
	return counts.Threshold(k, support), stats, nil
}
