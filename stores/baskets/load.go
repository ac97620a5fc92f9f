package baskets

import (
	"io"
)

import (
	"github.com/timtadh/maxsets/types/itemset"
)

type Writable interface {
	Store
	Add(basket itemset.Set) error
}

// Load fills the store from the input using the line loader. Any failure
// is reported as a *LoadError.
func Load(input io.Reader, loader *itemset.Loader, into Writable) (*itemset.Description, error) {
	d, err := loader.Load(input, into)
	if err != nil {
		return nil, loadError("read", err)
	}
	return d, nil
}

// Each visits every basket. Failures of the store itself come back as a
// *LoadError; errors returned by do are passed through untouched.
func Each(s Store, do func(tx int32, basket itemset.Set) error) error {
	var doErr error
	err := Do(s.Iterate, func(tx int32, basket itemset.Set) error {
		doErr = do(tx, basket)
		return doErr
	})
	if doErr != nil {
		return doErr
	}
	return loadError("iterate", err)
}
