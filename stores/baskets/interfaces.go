package baskets

import ()

import (
	"github.com/timtadh/maxsets/types/itemset"
)

// Store is a read-only, ordered, repeatable collection of baskets. Baskets
// are numbered by their position in the input.
type Store interface {
	Size() int
	Iterate() (Iterator, error)
	Close() error
}

// Iterator yields baskets in transaction order. It returns a nil next
// iterator once exhausted or on error.
type Iterator func() (tx int32, basket itemset.Set, err error, next Iterator)

func Do(run func() (Iterator, error), do func(tx int32, basket itemset.Set) error) error {
	it, err := run()
	if err != nil {
		return err
	}
	var tx int32
	var basket itemset.Set
	for tx, basket, err, it = it(); it != nil; tx, basket, err, it = it() {
		e := do(tx, basket)
		if e != nil {
			return e
		}
	}
	return err
}
