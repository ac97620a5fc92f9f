package apriori

import (
	"math/big"
)

// Combinations calls do with every k element subset of the indexes
// 0..n-1 in lexicographic order. The slice handed to do is reused between
// calls. A non-nil error from do stops the enumeration and is returned.
func Combinations(n, k int, do func(idx []int) error) error {
	if k < 0 || k > n {
		return nil
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if err := do(idx); err != nil {
			return err
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return nil
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// CombinationsExceed reports whether n choose k is larger than threshold.
// If n < k then it returns false.
func CombinationsExceed(n, k, threshold int) bool {
	if n < k {
		return false
	}
	combinations := &big.Int{}
	combinations = combinations.Binomial(int64(n), int64(k))
	t := &big.Int{}
	t.SetInt64(int64(threshold))
	return combinations.Cmp(t) > 0
}
