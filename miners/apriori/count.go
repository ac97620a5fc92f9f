package apriori

import (
	"context"
)

import (
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
	"golang.org/x/sync/errgroup"
)

import (
	"github.com/timtadh/maxsets/stores/baskets"
	"github.com/timtadh/maxsets/types/itemset"
)

const batchSize = 512

// LevelStats are the work counters of one level.
type LevelStats struct {
	Candidates int
	Checked    int
	Skipped    int
}

func (s *LevelStats) add(o LevelStats) {
	s.Checked += o.Checked
	s.Skipped += o.Skipped
}

// basketCounter adds the contributions of one (already filtered) basket
// to counts.
type basketCounter func(basket itemset.Set, counts itemset.Counts)

// prefilter restricts the basket to the alive items. ok is false when
// fewer than k items remain.
func prefilter(basket itemset.Set, alive *set.SortedSet, k int) (_ itemset.Set, ok bool) {
	if len(basket) < k {
		return nil, false
	}
	if alive == nil {
		return basket, true
	}
	filtered := basket.Filter(func(item string) bool {
		return alive.Has(types.String(item))
	})
	return filtered, len(filtered) >= k
}

// scan feeds every basket of the store through prefilter and count. With
// more than one worker the baskets are dealt out in batches and the
// partial counts are summed once all workers finish, so the result does not
// depend on the number of workers.
func scan(ctx context.Context, store baskets.Store, alive *set.SortedSet, k, workers int, count basketCounter) (itemset.Counts, LevelStats, error) {
	if workers <= 1 {
		counts := make(itemset.Counts)
		var stats LevelStats
		err := baskets.Each(store, func(_ int32, basket itemset.Set) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if b, ok := prefilter(basket, alive, k); ok {
				count(b, counts)
				stats.Checked++
			} else {
				stats.Skipped++
			}
			return nil
		})
		if err != nil {
			return nil, LevelStats{}, err
		}
		return counts, stats, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	batches := make(chan []itemset.Set, workers)
	g.Go(func() error {
		defer close(batches)
		send := func(batch []itemset.Set) error {
			select {
			case batches <- batch:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		batch := make([]itemset.Set, 0, batchSize)
		err := baskets.Each(store, func(_ int32, basket itemset.Set) error {
			if err := gctx.Err(); err != nil {
				return err
			}
			batch = append(batch, basket)
			if len(batch) < batchSize {
				return nil
			}
			if err := send(batch); err != nil {
				return err
			}
			batch = make([]itemset.Set, 0, batchSize)
			return nil
		})
		if err != nil {
			return err
		}
		if len(batch) > 0 {
			return send(batch)
		}
		return nil
	})
	partials := make([]itemset.Counts, workers)
	pstats := make([]LevelStats, workers)
	for w := 0; w < workers; w++ {
		w := w
		partials[w] = make(itemset.Counts)
		g.Go(func() error {
			for batch := range batches {
				for _, basket := range batch {
					if b, ok := prefilter(basket, alive, k); ok {
						count(b, partials[w])
						pstats[w].Checked++
					} else {
						pstats[w].Skipped++
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, LevelStats{}, err
	}
	counts := partials[0]
	var stats LevelStats
	stats.add(pstats[0])
	for w := 1; w < workers; w++ {
		counts.Merge(partials[w])
		stats.add(pstats[w])
	}
	return counts, stats, nil
}

func allSubsetsFrequent(items itemset.Set, prev *itemset.Table) bool {
	for i := range items {
		if !prev.HasKey(items.Without(i).Key()) {
			return false
		}
	}
	return true
}

// itemCounter counts every item of the basket. Baskets are sets so an
// item is counted at most once per basket.
func itemCounter(basket itemset.Set, counts itemset.Counts) {
	for _, item := range basket {
		single := itemset.Set{item}
		counts.Inc(single.Key(), single)
	}
}

// candidateCounter counts the candidates contained in the basket. Small
// baskets are expanded into their k-combinations and looked up; when that
// would produce more combinations than there are candidates each candidate
// is tested against the basket instead.
func candidateCounter(candidates map[string]itemset.Set, k int) basketCounter {
	return func(basket itemset.Set, counts itemset.Counts) {
		if CombinationsExceed(len(basket), k, len(candidates)) {
			for key, c := range candidates {
				if c.SubsetOf(basket) {
					counts.Inc(key, c)
				}
			}
			return
		}
		buf := make(itemset.Set, k)
		Combinations(len(basket), k, func(idx []int) error {
			for i, j := range idx {
				buf[i] = basket[j]
			}
			key := buf.Key()
			if c, has := candidates[key]; has {
				counts.Inc(key, c)
			}
			return nil
		})
	}
}

// subsetCounter enumerates the k-combinations of the basket and counts
// those whose every (k-1)-subset is in prev.
func subsetCounter(prev *itemset.Table, k int) basketCounter {
	return func(basket itemset.Set, counts itemset.Counts) {
		buf := make(itemset.Set, k)
		Combinations(len(basket), k, func(idx []int) error {
			for i, j := range idx {
				buf[i] = basket[j]
			}
			key := buf.Key()
			if e, has := counts[key]; has {
				e.Support++
			} else if allSubsetsFrequent(buf, prev) {
				counts.Inc(key, itemset.New(buf...))
			}
			return nil
		})
	}
}

// Count computes the support of each candidate of size k over the store.
// Candidates contained in no basket are absent from the result.
func Count(ctx context.Context, store baskets.Store, candidates map[string]itemset.Set, alive *set.SortedSet, k, workers int) (itemset.Counts, LevelStats, error) {
	counts, stats, err := scan(ctx, store, alive, k, workers, candidateCounter(candidates, k))
	if err != nil {
		return nil, LevelStats{}, err
	}
	stats.Candidates = len(candidates)
	return counts, stats, nil
}

// Singletons is the first pass: the support of every item, thresholded.
func Singletons(ctx context.Context, store baskets.Store, support, workers int) (*itemset.Table, LevelStats, error) {
	counts, stats, err := scan(ctx, store, nil, 1, workers, itemCounter)
	if err != nil {
		return nil, LevelStats{}, err
	}
	stats.Candidates = len(counts)
	return counts.Threshold(1, support), stats, nil
}
